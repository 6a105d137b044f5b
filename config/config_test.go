package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("AUTH_TOKEN", "tok-1")
	t.Setenv("MY_NUMBER", "+15550001111")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AuthToken != "tok-1" || cfg.MyNumber != "+15550001111" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.Port != "8086" || cfg.LogLevel != "info" || cfg.AuditDB != "db/audit.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("AUTH_TOKEN", "")
	t.Setenv("MY_NUMBER", "")

	if _, err := Load(""); !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}

func TestLoad_FileThenEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docdesk.yaml")
	body := "auth_token: file-token\nmy_number: '+15550009999'\nport: '9000'\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AUTH_TOKEN", "env-token")
	t.Setenv("MY_NUMBER", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AuthToken != "env-token" {
		t.Errorf("env should override file: %q", cfg.AuthToken)
	}
	if cfg.MyNumber != "+15550009999" || cfg.Port != "9000" || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTH_TOKEN", "tok")
	t.Setenv("MY_NUMBER", "+1555")

	if _, err := Load(path); err == nil {
		t.Fatal("want parse error for malformed YAML")
	}
}
