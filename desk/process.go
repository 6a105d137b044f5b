package desk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/docdesk/analyze"
	"github.com/hazyhaar/docdesk/classify"
	"github.com/hazyhaar/docdesk/docstore"
	"github.com/hazyhaar/docdesk/phonekey"
)

// ProcessRequest carries the process_document arguments.
type ProcessRequest struct {
	PhoneNumber  string `json:"phone_number"`
	Operation    string `json:"operation"`
	Instructions string `json:"instructions"`
}

// Process runs one analysis operation against the caller's stored document.
func (s *Service) Process(ctx context.Context, req *ProcessRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "process_document", req, start, err) }()

	key := phonekey.Normalize(identifierOf(req.PhoneNumber))

	sess, err := s.lookup(key)
	if err != nil {
		return "", err
	}

	opName := req.Operation
	if opName == "" {
		opName = string(analyze.OpSummarize)
	}
	op, err := analyze.ParseOperation(opName)
	if err != nil {
		return "", err
	}

	cat := classify.Classify(sess.Text)
	s.log.Info("processing document",
		"identifier", key, "doc_id", sess.DocID, "operation", op, "type", cat)

	var b strings.Builder
	fmt.Fprintf(&b, "Processing %q (doc %s) for %s\n\n", sess.Filename, sess.DocID, key)
	b.WriteString(analyze.Run(op, sess.Text, cat))
	if req.Instructions != "" {
		fmt.Fprintf(&b, "\n_Instructions received (%q); analysis operations are fixed heuristics and do not interpret them._\n", req.Instructions)
	}
	return s.sign(b.String()), nil
}

// SearchRequest carries the search_document arguments.
type SearchRequest struct {
	SearchQuery   string `json:"search_query"`
	PhoneNumber   string `json:"phone_number"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// Search finds occurrences of a query in the caller's stored document.
func (s *Service) Search(ctx context.Context, req *SearchRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "search_document", req, start, err) }()

	key := phonekey.Normalize(identifierOf(req.PhoneNumber))

	sess, err := s.lookup(key)
	if err != nil {
		return "", err
	}

	report := fmt.Sprintf("Searching %q (doc %s) for %s\n\n%s",
		sess.Filename, sess.DocID, key,
		analyze.Search(sess.Text, req.SearchQuery, req.CaseSensitive))
	return s.sign(report), nil
}

// lookup fetches the session for a normalized key, turning absence into a
// caller-actionable message.
func (s *Service) lookup(key string) (*docstore.Session, error) {
	sess, err := s.store.Get(key)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("no document found for %s: upload one first with upload_document", key)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}
