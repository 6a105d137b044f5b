// Package docstore holds the per-identifier document sessions.
//
// Each normalized identifier maps to at most one Session: a new upload for
// the same identifier silently replaces the previous one. Sessions live for
// the process lifetime — persistence across restarts is out of scope.
package docstore

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get when no document has been uploaded for the
// identifier. Callers surface it as a user-actionable "upload first" message,
// never as a generic failure.
var ErrNotFound = errors.New("no document found for this identifier")

// Session is the single stored document associated with an identifier.
type Session struct {
	Identifier string    // normalized phone key
	DocID      string    // short opaque token; collisions accepted
	Filename   string    // as supplied by the caller
	Extension  string    // lower-cased format name, no leading dot (e.g. "txt")
	Text       string    // extracted text (may be a degraded notice for legacy formats)
	Raw        []byte    // original payload, retained for re-processing
	UploadedAt time.Time
}

// Store is the session registry. Put overwrites unconditionally.
type Store interface {
	Put(id string, s *Session)
	Get(id string) (*Session, error)
	Delete(id string)
}

// Memory is a mutex-guarded in-memory Store. Concurrent calls for different
// identifiers do not interfere; an upload racing a read on the same
// identifier observes either the old or the new session, never a torn one.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*Session)}
}

func (m *Memory) Put(id string, s *Session) {
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
}

func (m *Memory) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Memory) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
