// Package extract converts uploaded document bytes to plain text.
//
// Supported formats:
//   - .docx  — Microsoft Word (archive/zip → word/document.xml)
//   - .doc   — legacy Word (degraded: OLE2 detection + byte-level fallback)
//   - .pdf   — PDF text extraction (pdfcpu, per-page content streams)
//   - .txt   — plain text (UTF-8 with single-byte encoding fallbacks)
//   - .odt   — OpenDocument Text (archive/zip → content.xml)
//   - .rtf   — Rich Text Format (control-word stripper)
//   - .html  — HTML (visible text of the DOM)
//
// Each extractor is isolated and independently failable: a failure is
// reported as *Error carrying the format and the underlying cause.
//
// Usage:
//
//	ex := extract.New(extract.Config{})
//	format, err := extract.Detect("report.docx")
//	text, err := ex.Text(data, format)
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a document type.
type Format string

const (
	FormatDocx Format = "docx"
	FormatDoc  Format = "doc"
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatODT  Format = "odt"
	FormatRTF  Format = "rtf"
	FormatHTML Format = "html"
)

// ErrUnsupported marks an extension outside the supported set. The wrapping
// message lists the supported formats so it can be shown to the caller as-is.
var ErrUnsupported = errors.New("unsupported format")

// Error is an extraction failure for a known format, carrying the cause.
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string { return fmt.Sprintf("extract %s: %v", e.Format, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Config configures the extractor.
type Config struct {
	// MaxFileSize is the maximum file size for File extraction (default: 100 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for debug messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Extractor dispatches extraction by format.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// Detect returns the document format based on the filename extension.
func Detect(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return FormatDocx, nil
	case ".doc":
		return FormatDoc, nil
	case ".pdf":
		return FormatPDF, nil
	case ".txt", ".text":
		return FormatTXT, nil
	case ".odt":
		return FormatODT, nil
	case ".rtf":
		return FormatRTF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q — supported formats: %s",
			ErrUnsupported, ext, strings.Join(Supported(), ", "))
	}
}

// Text extracts plain text from raw document bytes.
func (e *Extractor) Text(data []byte, format Format) (string, error) {
	e.logger.Debug("extracting document", "format", format, "bytes", len(data))

	var text string
	var err error
	switch format {
	case FormatDocx:
		text, err = extractDocx(data)
	case FormatDoc:
		text, err = extractDoc(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatTXT:
		text, err = extractText(data)
	case FormatODT:
		text, err = extractODT(data)
	case FormatRTF:
		text, err = extractRTF(data)
	case FormatHTML:
		text, err = extractHTML(data)
	default:
		return "", fmt.Errorf("%w: no extractor for %q — supported formats: %s",
			ErrUnsupported, format, strings.Join(Supported(), ", "))
	}
	if err != nil {
		return "", &Error{Format: format, Err: err}
	}
	return text, nil
}

// File reads a file and extracts text based on its extension. Used by the
// direct-content pipeline, which tags temp files with a format extension.
func (e *Extractor) File(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), e.cfg.MaxFileSize)
	}

	format, err := Detect(path)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return e.Text(data, format)
}

// Supported returns all supported format extensions.
func Supported() []string {
	return []string{"docx", "doc", "pdf", "txt", "odt", "rtf", "html"}
}
