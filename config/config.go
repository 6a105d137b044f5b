// Package config loads docdesk settings: an optional YAML file first,
// environment variables on top. Environment always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full docdesk runtime configuration.
type Config struct {
	Port         string `yaml:"port"`
	AuthToken    string `yaml:"auth_token"`
	MyNumber     string `yaml:"my_number"`
	AuditDB      string `yaml:"audit_db"`
	MCPTransport string `yaml:"mcp_transport"` // "", "stdio", "quic"
	MCPQUICAddr  string `yaml:"mcp_quic_addr"`
	TLSCert      string `yaml:"tls_cert"`
	TLSKey       string `yaml:"tls_key"`
	LogLevel     string `yaml:"log_level"`
	EngineTag    string `yaml:"engine_tag"`

	DisableSignature bool  `yaml:"disable_signature"`
	MaxFileSize      int64 `yaml:"max_file_size"`
}

// ErrMissingRequired marks absent mandatory settings.
var ErrMissingRequired = errors.New("missing required configuration")

// Load reads the optional YAML file named by CONFIG_FILE (or the path
// argument when non-empty), applies environment overrides, fills defaults,
// and validates. AUTH_TOKEN and MY_NUMBER are mandatory.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.AuthToken, "AUTH_TOKEN")
	overrideString(&cfg.MyNumber, "MY_NUMBER")
	overrideString(&cfg.AuditDB, "AUDIT_DB")
	overrideString(&cfg.MCPTransport, "MCP_TRANSPORT")
	overrideString(&cfg.MCPQUICAddr, "MCP_QUIC_ADDR")
	overrideString(&cfg.TLSCert, "TLS_CERT")
	overrideString(&cfg.TLSKey, "TLS_KEY")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.EngineTag, "ENGINE_TAG")
	overrideBool(&cfg.DisableSignature, "DISABLE_SIGNATURE")
	overrideInt64(&cfg.MaxFileSize, "MAX_FILE_SIZE")

	if cfg.Port == "" {
		cfg.Port = "8086"
	}
	if cfg.AuditDB == "" {
		cfg.AuditDB = "db/audit.db"
	}
	if cfg.MCPQUICAddr == "" {
		cfg.MCPQUICAddr = ":9444"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.EngineTag == "" {
		cfg.EngineTag = "docdesk"
	}

	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("%w: AUTH_TOKEN", ErrMissingRequired)
	}
	if cfg.MyNumber == "" {
		return nil, fmt.Errorf("%w: MY_NUMBER", ErrMissingRequired)
	}
	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func overrideInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
