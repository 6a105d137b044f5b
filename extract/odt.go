package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractODT parses an .odt payload by reading content.xml from the ZIP
// archive. Heading and paragraph blocks are joined with blank lines.
func extractODT(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	var contentFile *zip.File
	for _, f := range r.File {
		if f.Name == "content.xml" {
			contentFile = f
			break
		}
	}
	if contentFile == nil {
		return "", fmt.Errorf("content.xml not found in archive")
	}

	rc, err := contentFile.Open()
	if err != nil {
		return "", fmt.Errorf("open content.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var blocks []string
	var currentText strings.Builder
	var inBlock bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// <text:p> and <text:h> carry the document content.
			if t.Name.Local == "p" || t.Name.Local == "h" {
				inBlock = true
				currentText.Reset()
			}

		case xml.CharData:
			if inBlock {
				currentText.Write(t)
			}

		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "h") && inBlock {
				inBlock = false
				if text := strings.TrimSpace(currentText.String()); text != "" {
					blocks = append(blocks, text)
				}
			}
		}
	}

	return strings.Join(blocks, "\n\n"), nil
}
