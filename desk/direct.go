package desk

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hazyhaar/docdesk/analyze"
	"github.com/hazyhaar/docdesk/classify"
)

// placeholderMarkers flag inputs that are pipeline notices about a document
// rather than the document itself.
var placeholderMarkers = []string{
	"document received",
	"use process_any_document",
}

// DirectRequest carries the handle_document_direct arguments.
type DirectRequest struct {
	DocumentID string `json:"document_id"`
	Content    string `json:"content"`
	FileType   string `json:"file_type"`
}

// Direct handles a document that bypassed the upload flow: content arrives
// inline, as base64 file bytes or as literal text, and is analyzed without
// creating a stored session.
func (s *Service) Direct(ctx context.Context, req *DirectRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "handle_document_direct", req, start, err) }()

	if req.Content == "" {
		var b strings.Builder
		b.WriteString("**No Content Provided**\n\n")
		fmt.Fprintf(&b, "Document %q was referenced without any content.\n\n", req.DocumentID)
		b.WriteString("- If you have the document's text, call process_any_document with text_content.\n")
		b.WriteString("- If you have the file, base64-encode it and call upload_document.\n")
		return s.sign(b.String()), nil
	}

	// Base64 first; anything that fails strict decoding is literal text.
	literal := false
	data, decodeErr := base64.StdEncoding.DecodeString(req.Content)
	if decodeErr != nil {
		data = []byte(req.Content)
		literal = true
	}

	ext := sniffExtension(req.FileType, data, literal)

	tmp, err := os.CreateTemp("", "docdesk-*."+ext)
	if err != nil {
		return "", fmt.Errorf("stage document: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("stage document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("stage document: %w", err)
	}

	text, extractErr := s.extractor.File(ctx, tmp.Name())
	fellBack := false
	if extractErr != nil {
		if !literal {
			return "", fmt.Errorf("extraction failed for document %q (.%s): %w. Convert the file and upload it with upload_document, or pass its text through process_any_document", req.DocumentID, ext, extractErr)
		}
		// Literal text that the extractor rejected is still analyzable.
		text = req.Content
		fellBack = true
	}

	cat := classify.Classify(text)
	s.log.Info("direct document handled",
		"document_id", req.DocumentID, "ext", ext, "literal", literal, "chars", len(text))

	var b strings.Builder
	fmt.Fprintf(&b, "**Direct Document Handling** (id %q)\n\n", req.DocumentID)
	if fellBack {
		b.WriteString("_Content was treated as plain text after extraction failed._\n\n")
	}
	b.WriteString(analyze.Overview(text, cat))
	return s.sign(b.String()), nil
}

// sniffExtension resolves the staging extension: the caller's file_type when
// given, otherwise magic bytes, otherwise txt.
func sniffExtension(fileType string, data []byte, literal bool) string {
	ft := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(fileType)), ".")
	if ft != "" && ft != "auto" {
		return ft
	}
	if literal {
		return "txt"
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return "pdf"
	case bytes.HasPrefix(data, []byte("PK")):
		return "docx"
	case bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}):
		return "doc"
	case bytes.HasPrefix(bytes.TrimLeft(bytes.ToLower(data), " \t\r\n"), []byte("<!doctype")),
		bytes.HasPrefix(bytes.TrimLeft(bytes.ToLower(data), " \t\r\n"), []byte("<html")):
		return "html"
	default:
		return "txt"
	}
}

// ProcessAnyRequest carries the process_any_document arguments.
type ProcessAnyRequest struct {
	TextContent  string `json:"text_content"`
	DocumentType string `json:"document_type"`
	AnalysisType string `json:"analysis_type"`
}

// ProcessAny analyzes document text passed directly, without a stored
// session. Placeholder notices are answered with guidance instead of being
// analyzed as content.
func (s *Service) ProcessAny(ctx context.Context, req *ProcessAnyRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "process_any_document", req, start, err) }()

	trimmed := strings.TrimSpace(req.TextContent)
	if trimmed == "" || isPlaceholder(trimmed) {
		var b strings.Builder
		b.WriteString("**No Document Content**\n\n")
		b.WriteString("The input looks like a pipeline notice, not document content.\n\n")
		b.WriteString("- Pass the document's actual text in text_content.\n")
		b.WriteString("- Or base64-encode the original file and call upload_document.\n")
		return s.sign(b.String()), nil
	}

	cat := classify.Classify(req.TextContent)
	typeLabel := cat.Label()
	if dt := strings.ToLower(strings.TrimSpace(req.DocumentType)); dt != "" && dt != "auto" {
		typeLabel = req.DocumentType // caller-asserted type wins for display
	}

	var body string
	switch strings.ToLower(req.AnalysisType) {
	case "", "comprehensive":
		body = analyze.Analyze(req.TextContent, cat) + "\n" + analyze.KeyPoints(req.TextContent)
	case "summary":
		body = analyze.Summarize(req.TextContent)
	case "extract":
		body = analyze.KeyPoints(req.TextContent)
	default:
		body = analyze.QuickCounts(req.TextContent)
	}

	s.log.Info("direct text analyzed",
		"analysis_type", req.AnalysisType, "type", cat, "chars", len(req.TextContent))

	report := fmt.Sprintf("**Direct Text Analysis** (type: %s)\n\n%s", typeLabel, body)
	return s.sign(report), nil
}

func isPlaceholder(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// FailureRequest carries the handle_preprocessing_failure arguments.
type FailureRequest struct {
	ErrorMessage string `json:"error_message"`
	DocumentInfo string `json:"document_info"`
}

// PreprocessingFailure turns an upstream pipeline error into recovery
// guidance for the calling agent.
func (s *Service) PreprocessingFailure(ctx context.Context, req *FailureRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "handle_preprocessing_failure", req, start, err) }()

	var b strings.Builder
	b.WriteString("**Document Preprocessing Failed**\n\n")
	fmt.Fprintf(&b, "**Upstream error:** %s\n", req.ErrorMessage)
	if req.DocumentInfo != "" {
		fmt.Fprintf(&b, "**Document:** %s\n", req.DocumentInfo)
	}
	b.WriteString("\n**Recovery options:**\n")
	b.WriteString("- Re-upload the file base64-encoded via upload_document.\n")
	b.WriteString("- Paste the document's text into process_any_document.\n")
	b.WriteString("- Legacy .doc files extract poorly; convert to .docx first.\n")
	b.WriteString("- Verify the file is not empty, truncated, or password-protected.\n")
	return s.sign(b.String()), nil
}
