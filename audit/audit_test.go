package audit

import (
	"context"
	"testing"

	"github.com/hazyhaar/docdesk/dbopen"
	_ "modernc.org/sqlite"
)

func TestSQLiteLogger_Init(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db)
	defer logger.Close()

	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='audit_log'").Scan(&count)
	if count != 1 {
		t.Fatal("audit_log table not created")
	}
}

func TestSQLiteLogger_Log_Sync(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db)
	defer logger.Close()
	logger.Init()

	entry := &Entry{
		Action:     "upload_document",
		Parameters: `{"filename":"a.txt"}`,
	}
	if err := logger.Log(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	if entry.EntryID == "" {
		t.Fatal("entry_id not generated")
	}
	if entry.Timestamp == 0 {
		t.Fatal("timestamp not set")
	}
	if entry.Status != "success" {
		t.Fatalf("status: got %q, want 'success'", entry.Status)
	}
	if entry.Transport != "http" {
		t.Fatalf("transport: got %q, want 'http'", entry.Transport)
	}

	var action string
	db.QueryRow("SELECT action FROM audit_log WHERE entry_id = ?", entry.EntryID).Scan(&action)
	if action != "upload_document" {
		t.Fatalf("DB action: got %q", action)
	}
}

func TestSQLiteLogger_LogAsync(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db)
	logger.Init()

	entry := &Entry{Action: "search_document"}
	logger.LogAsync(entry)

	// Close flushes the buffer.
	logger.Close()

	var count int
	db.QueryRow("SELECT COUNT(*) FROM audit_log WHERE action='search_document'").Scan(&count)
	if count != 1 {
		t.Fatalf("async entry count: got %d", count)
	}
}

func TestSQLiteLogger_LogAsync_AfterClose(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db)
	logger.Init()
	logger.Close()

	// Must be a silent drop, not a send on the closed channel.
	logger.LogAsync(&Entry{Action: "upload_document"})
	logger.Close()

	var count int
	db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&count)
	if count != 0 {
		t.Fatalf("entry logged after Close: got %d rows", count)
	}
}

func TestSQLiteLogger_FillDefaults_Error(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db)
	defer logger.Close()
	logger.Init()

	entry := &Entry{
		Action: "process_document",
		Error:  "no document found",
	}
	logger.Log(context.Background(), entry)

	if entry.Status != "error" {
		t.Fatalf("status for error entry: got %q", entry.Status)
	}
}

func TestSQLiteLogger_WithIDGenerator(t *testing.T) {
	db := dbopen.OpenMemory(t)
	logger := NewSQLiteLogger(db, WithIDGenerator(func() string { return "fixed_id" }))
	defer logger.Close()
	logger.Init()

	entry := &Entry{Action: "validate"}
	logger.Log(context.Background(), entry)

	if entry.EntryID != "fixed_id" {
		t.Fatalf("entry_id: got %q, want 'fixed_id'", entry.EntryID)
	}
}
