// Package audit records tool invocations to a SQLite journal.
//
// Every docdesk tool call produces one Entry: the action name, the
// (JSON-encoded) parameters, outcome, duration, and the transport/session
// identity taken from the call context. Logging is best-effort — a failing
// audit store never blocks or fails the tool call itself.
package audit

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/hazyhaar/docdesk/idgen"
	"github.com/hazyhaar/docdesk/kit"
)

// Schema for the audit_log table. Applied by Init.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	entry_id    TEXT PRIMARY KEY,
	timestamp   INTEGER NOT NULL,
	action      TEXT NOT NULL,
	parameters  TEXT NOT NULL DEFAULT '{}',
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	transport   TEXT NOT NULL DEFAULT '',
	session_id  TEXT NOT NULL DEFAULT '',
	remote_addr TEXT NOT NULL DEFAULT '',
	duration_us INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_log(action);
`

// Entry is one audited tool invocation.
type Entry struct {
	EntryID    string
	Timestamp  int64 // unix milliseconds
	Action     string
	Parameters string // JSON
	Status     string // "success" or "error"
	Error      string
	Transport  string
	SessionID  string
	RemoteAddr string
	DurationUs int64
}

// SQLiteLogger persists audit entries, synchronously or via a buffered
// background writer.
type SQLiteLogger struct {
	db    *sql.DB
	newID idgen.Generator
	ch    chan *Entry
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	closed bool
}

// Option configures a SQLiteLogger.
type Option func(*SQLiteLogger)

// WithIDGenerator sets a custom ID generator for entry IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(l *SQLiteLogger) { l.newID = gen }
}

// NewSQLiteLogger creates a logger backed by the given database connection.
func NewSQLiteLogger(db *sql.DB, opts ...Option) *SQLiteLogger {
	l := &SQLiteLogger{
		db:    db,
		newID: idgen.Prefixed("aud_", idgen.Default),
		ch:    make(chan *Entry, 256),
		done:  make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}
	go l.flushLoop()
	return l
}

// Init creates the audit_log table if it doesn't exist.
func (l *SQLiteLogger) Init() error {
	_, err := l.db.Exec(Schema)
	return err
}

// Log writes one entry synchronously, filling defaults from ctx.
func (l *SQLiteLogger) Log(ctx context.Context, e *Entry) error {
	l.fillDefaults(ctx, e)
	return l.insert(e)
}

// LogAsync queues an entry for background persistence. Non-blocking; drops
// the entry if the buffer is full or the logger is closed.
func (l *SQLiteLogger) LogAsync(e *Entry) {
	l.fillDefaults(context.Background(), e)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.ch <- e:
	default:
	}
}

// Close drains the buffer and stops the background writer. Entries logged
// after Close are dropped.
func (l *SQLiteLogger) Close() error {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.ch)
		l.mu.Unlock()
		<-l.done
	})
	return nil
}

func (l *SQLiteLogger) fillDefaults(ctx context.Context, e *Entry) {
	if e.EntryID == "" {
		e.EntryID = l.newID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	if e.Status == "" {
		if e.Error != "" {
			e.Status = "error"
		} else {
			e.Status = "success"
		}
	}
	if e.Parameters == "" {
		e.Parameters = "{}"
	}
	if e.Transport == "" {
		e.Transport = kit.GetTransport(ctx)
	}
	if e.SessionID == "" {
		e.SessionID = kit.GetSessionID(ctx)
	}
	if e.RemoteAddr == "" {
		e.RemoteAddr = kit.GetRemoteAddr(ctx)
	}
}

func (l *SQLiteLogger) insert(e *Entry) error {
	_, err := l.db.Exec(`
		INSERT INTO audit_log (
			entry_id, timestamp, action, parameters, status, error,
			transport, session_id, remote_addr, duration_us
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		e.EntryID, e.Timestamp, e.Action, e.Parameters, e.Status, e.Error,
		e.Transport, e.SessionID, e.RemoteAddr, e.DurationUs)
	return err
}

func (l *SQLiteLogger) flushLoop() {
	defer close(l.done)
	for e := range l.ch {
		if err := l.insert(e); err != nil {
			slog.Error("audit insert failed", "action", e.Action, "error", err)
		}
	}
}
