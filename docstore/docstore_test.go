package docstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	m := NewMemory()
	s := &Session{
		Identifier: "+11234567890",
		DocID:      "ab12cd34",
		Filename:   "notes.txt",
		Extension:  ".txt",
		Text:       "hello",
		Raw:        []byte("hello"),
		UploadedAt: time.Now(),
	}
	m.Put(s.Identifier, s)

	got, err := m.Get("+11234567890")
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatal("Get returned a different session than stored")
	}
}

func TestGetNotFound(t *testing.T) {
	m := NewMemory()
	_, err := m.Get("+10000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutReplaces(t *testing.T) {
	m := NewMemory()
	m.Put("+1555", &Session{DocID: "old", Text: "first upload"})
	m.Put("+1555", &Session{DocID: "new", Text: "second upload"})

	got, err := m.Get("+1555")
	if err != nil {
		t.Fatal(err)
	}
	if got.DocID != "new" {
		t.Fatalf("expected replacement session, got doc %q", got.DocID)
	}
	if m.Len() != 1 {
		t.Fatalf("expected single slot per identifier, got %d sessions", m.Len())
	}
}

func TestDelete(t *testing.T) {
	m := NewMemory()
	m.Put("+1555", &Session{DocID: "x"})
	m.Delete("+1555")
	if _, err := m.Get("+1555"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("+1%010d", n)
			for j := 0; j < 100; j++ {
				m.Put(id, &Session{DocID: fmt.Sprintf("d%d", j)})
				if _, err := m.Get(id); err != nil {
					t.Errorf("Get(%s): %v", id, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if m.Len() != 16 {
		t.Fatalf("expected 16 sessions, got %d", m.Len())
	}
}
