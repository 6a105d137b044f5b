package desk

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/docdesk/convert"
	"github.com/hazyhaar/docdesk/extract"
)

// ConvertRequest carries the convert_word_to_pdf arguments.
type ConvertRequest struct {
	DocumentData string `json:"document_data"`
	Filename     string `json:"filename"`
}

// Convert renders a Word document as a PDF and returns it base64-encoded.
// Only the text survives the conversion: styles, tables, and images are
// flattened into the page flow.
func (s *Service) Convert(ctx context.Context, req *ConvertRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "convert_word_to_pdf", req, start, err) }()

	data, err := base64.StdEncoding.DecodeString(req.DocumentData)
	if err != nil {
		return "", fmt.Errorf("%w: %v. Encode the raw Word file bytes with standard base64 and retry", ErrDecode, err)
	}

	format, err := extract.Detect(req.Filename)
	if err != nil {
		return "", err
	}
	if format != extract.FormatDocx && format != extract.FormatDoc {
		return "", fmt.Errorf("convert_word_to_pdf accepts Word documents only (.docx, .doc), got %q", req.Filename)
	}

	text, err := s.extractor.Text(data, format)
	if err != nil {
		return "", fmt.Errorf("extraction failed for %q: %w", req.Filename, err)
	}

	title := strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename))
	pdfBytes, err := convert.TextToPDF(title, text)
	if err != nil {
		return "", fmt.Errorf("pdf conversion failed for %q: %w", req.Filename, err)
	}
	pdfName := title + ".pdf"

	s.log.Info("document converted",
		"filename", req.Filename,
		"output", pdfName,
		"input_bytes", len(data),
		"output_bytes", len(pdfBytes))

	var b strings.Builder
	b.WriteString("**Conversion Complete**\n\n")
	fmt.Fprintf(&b, "Successfully converted %s to PDF.\n\n", req.Filename)
	fmt.Fprintf(&b, "- Output: %s\n", pdfName)
	fmt.Fprintf(&b, "- Size: %d bytes\n\n", len(pdfBytes))
	b.WriteString("**PDF (base64):**\n")
	b.WriteString(base64.StdEncoding.EncodeToString(pdfBytes))
	b.WriteString("\n\nDecode the block above to recover the PDF bytes.")
	return s.sign(b.String()), nil
}
