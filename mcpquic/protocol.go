// Package mcpquic serves MCP sessions over QUIC streams: one connection,
// one bidirectional stream, one MCP session. ALPN and a 4-byte magic prefix
// reject non-MCP traffic before any JSON-RPC is exchanged.
package mcpquic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/quic-go/quic-go"
)

// ALPNProtocolMCP is the TLS ALPN token for MCP-over-QUIC.
const ALPNProtocolMCP = "mcp-quic-v1"

// MagicBytesMCP opens every MCP stream, rejecting protocol confusion early.
const MagicBytesMCP = "MCP1"

// MaxMessageSize bounds a single JSON-RPC message.
const MaxMessageSize = 10 * 1024 * 1024

// QUIC tuning shared by server and client.
const (
	DefaultIdleTimeout = 5 * time.Minute
	DefaultKeepAlive   = 30 * time.Second
)

// Application-level error codes carried on connection close.
const (
	ConnErrorNoError           quic.ApplicationErrorCode = 0x00
	ConnErrorInternal          quic.ApplicationErrorCode = 0x01
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x02
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03
)

// StreamErrorProtocolConfusion cancels a stream that failed the magic check.
const StreamErrorProtocolConfusion quic.StreamErrorCode = 0x01

var (
	ErrInvalidMagicBytes = errors.New("invalid magic bytes")
	ErrUnsupportedALPN   = errors.New("unsupported ALPN protocol")
	ErrConnectionClosed  = errors.New("connection closed")
)

// ConnectionError wraps a transport failure with the peer and close code.
type ConnectionError struct {
	RemoteAddr string
	Code       quic.ApplicationErrorCode
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mcpquic %s (code 0x%02x): %v", e.RemoteAddr, uint64(e.Code), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SendMagicBytes writes the stream preamble (client side).
func SendMagicBytes(w io.Writer) error {
	if _, err := io.WriteString(w, MagicBytesMCP); err != nil {
		return fmt.Errorf("send magic bytes: %w", err)
	}
	return nil
}

// ValidateMagicBytes consumes and checks the stream preamble (server side).
func ValidateMagicBytes(r io.Reader) error {
	buf := make([]byte, len(MagicBytesMCP))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("read magic bytes: %w", err)
	}
	if string(buf) != MagicBytesMCP {
		return fmt.Errorf("%w: %q", ErrInvalidMagicBytes, buf)
	}
	return nil
}

// ProductionQUICConfig is the QUIC tuning shared by server and client.
// 0-RTT stays disabled: tool calls are not replay-safe.
func ProductionQUICConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:  DefaultIdleTimeout,
		KeepAlivePeriod: DefaultKeepAlive,
		Allow0RTT:       false,
	}
}
