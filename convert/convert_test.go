package convert

import (
	"bytes"
	"testing"
)

func TestTextToPDF(t *testing.T) {
	out, err := TextToPDF("Quarterly Memo", "First paragraph.\nSecond paragraph.")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(16, len(out))])
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Fatal("output missing PDF trailer")
	}
}

func TestTextToPDF_NoTitle(t *testing.T) {
	out, err := TextToPDF("", "body only")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
}
