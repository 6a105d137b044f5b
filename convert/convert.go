// Package convert renders extracted document text as a PDF.
//
// This backs the convert_word_to_pdf tool: the Word document's text is
// extracted upstream and laid out here into a single-column A4 page flow.
// Formatting (styles, tables, images) is not preserved.
package convert

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// TextToPDF renders plain text into a PDF document, with an optional title
// line. Text is translated to the core-font codepage; characters outside it
// degrade to their closest equivalent.
func TextToPDF(title, text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(title), "", "L", false)
		pdf.Ln(4)
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(text), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
