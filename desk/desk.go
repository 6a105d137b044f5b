// Package desk is the service layer: it ties the document store, the text
// extractors, the classifier and the analysis engine together and exposes
// every operation as an MCP tool.
//
// All tool responses are formatted report text. Failures never terminate
// the process; they surface as in-band tool errors carrying remediation
// hints for the calling agent.
package desk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/docdesk/audit"
	"github.com/hazyhaar/docdesk/docstore"
	"github.com/hazyhaar/docdesk/extract"
	"github.com/hazyhaar/docdesk/idgen"
	"github.com/hazyhaar/docdesk/kit"
)

// defaultIdentifier is the fallback document owner when a call omits the
// phone number.
const defaultIdentifier = "default_user"

// Config configures a Service.
type Config struct {
	Store     docstore.Store
	Extractor *extract.Extractor
	Logger    *slog.Logger

	// Audit receives one entry per tool call when set.
	Audit *audit.SQLiteLogger

	// OwnerNumber is the configured owner phone number, reported by validate.
	OwnerNumber string

	// EngineTag names this instance in the response signature.
	EngineTag string

	// DisableSignature turns off the response signature decorator.
	DisableSignature bool

	NewDocID idgen.Generator
	NewTag   idgen.Generator
}

func (c *Config) defaults() {
	if c.Store == nil {
		c.Store = docstore.NewMemory()
	}
	if c.Extractor == nil {
		c.Extractor = extract.New(extract.Config{Logger: c.Logger})
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.EngineTag == "" {
		c.EngineTag = "docdesk"
	}
	if c.NewDocID == nil {
		c.NewDocID = idgen.NanoID(8)
	}
	if c.NewTag == nil {
		c.NewTag = idgen.NanoID(8)
	}
}

// Service implements the document tool surface.
type Service struct {
	store     docstore.Store
	extractor *extract.Extractor
	log       *slog.Logger
	auditor   *audit.SQLiteLogger
	owner     string
	engineTag string
	signature bool
	newDocID  idgen.Generator
	newTag    idgen.Generator
}

// New builds a Service, filling config defaults.
func New(cfg Config) *Service {
	cfg.defaults()
	return &Service{
		store:     cfg.Store,
		extractor: cfg.Extractor,
		log:       cfg.Logger,
		auditor:   cfg.Audit,
		owner:     cfg.OwnerNumber,
		engineTag: cfg.EngineTag,
		signature: !cfg.DisableSignature,
		newDocID:  cfg.NewDocID,
		newTag:    cfg.NewTag,
	}
}

// sign appends the response signature to a successful report: engine tag
// plus a fresh per-call session tag.
func (s *Service) sign(report string) string {
	if !s.signature {
		return report
	}
	return fmt.Sprintf("%s\n\n---\n_%s | session %s_", report, s.engineTag, s.newTag())
}

// record writes one tool call to the audit trail. Fire-and-forget: a full
// audit buffer drops the entry rather than blocking the call.
func (s *Service) record(ctx context.Context, action string, params any, start time.Time, err error) {
	if s.auditor == nil {
		return
	}
	data, _ := json.Marshal(params)
	e := &audit.Entry{
		Action:     action,
		Parameters: string(data),
		Transport:  kit.GetTransport(ctx),
		SessionID:  kit.GetSessionID(ctx),
		RemoteAddr: kit.GetRemoteAddr(ctx),
		DurationUs: time.Since(start).Microseconds(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	s.auditor.LogAsync(e)
}

// identifierOf applies the default owner fallback before normalization.
func identifierOf(phoneNumber string) string {
	if phoneNumber == "" {
		return defaultIdentifier
	}
	return phoneNumber
}

// preview cuts s to at most n runes for report display.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
