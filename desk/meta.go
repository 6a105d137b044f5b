package desk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/docdesk/extract"
)

// Validate reports the configured owner number without the leading "+",
// the upstream ownership-check convention.
func (s *Service) Validate(ctx context.Context) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "validate", nil, start, err) }()
	return strings.TrimPrefix(s.owner, "+"), nil
}

// toolCatalog is the static tool capability listing. Order matches the
// registration order in RegisterMCP.
var toolCatalog = []struct{ name, desc string }{
	{"upload_document", "Upload a base64-encoded document and extract its text"},
	{"process_document", "Run summarize, analyze, extract_key_points, word_count or format_clean on the uploaded document"},
	{"search_document", "Find a query string in the uploaded document with surrounding context"},
	{"convert_word_to_pdf", "Convert a Word document to PDF (text only)"},
	{"handle_document_direct", "Analyze inline content (base64 file bytes or literal text) without storing a session"},
	{"process_any_document", "Analyze document text passed directly"},
	{"handle_preprocessing_failure", "Turn an upstream pipeline error into recovery guidance"},
	{"validate", "Report the configured owner number"},
	{"list_tools", "List the available tools"},
	{"list_formats", "List the supported document formats"},
}

// ListTools reports the tool catalog.
func (s *Service) ListTools(ctx context.Context) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "list_tools", nil, start, err) }()

	var b strings.Builder
	b.WriteString("**Available Tools**\n\n")
	for _, t := range toolCatalog {
		fmt.Fprintf(&b, "- %s: %s\n", t.name, t.desc)
	}
	return s.sign(b.String()), nil
}

// ListFormats reports the supported upload formats.
func (s *Service) ListFormats(ctx context.Context) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "list_formats", nil, start, err) }()

	var b strings.Builder
	b.WriteString("**Supported Formats**\n\n")
	for _, f := range extract.Supported() {
		fmt.Fprintf(&b, "- .%s\n", f)
	}
	b.WriteString("\nUpload with upload_document (base64), or pass plain text to process_any_document.")
	return s.sign(b.String()), nil
}
