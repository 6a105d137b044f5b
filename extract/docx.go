package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractDocx parses a .docx payload by reading word/document.xml from the
// ZIP archive. Body paragraphs come first, then tables: each table row is
// rendered as one line with cell texts joined by " | ". Blocks are joined
// with blank lines.
func extractDocx(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)

	var paragraphs []string
	var tableRows []string

	var tableDepth int
	var currentCells []string
	var currentText strings.Builder
	var inParagraph bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				if tableDepth > 0 {
					currentCells = currentCells[:0]
				}
			case "tc":
				if tableDepth > 0 {
					currentText.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					currentText.Reset()
				}
			}

		case xml.CharData:
			if inParagraph || tableDepth > 0 {
				currentText.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "tr":
				if tableDepth > 0 && len(currentCells) > 0 {
					tableRows = append(tableRows, strings.Join(currentCells, " | "))
				}
			case "tc":
				if tableDepth > 0 {
					if text := strings.TrimSpace(currentText.String()); text != "" {
						currentCells = append(currentCells, text)
					}
					currentText.Reset()
				}
			case "p":
				if inParagraph && tableDepth == 0 {
					inParagraph = false
					if text := strings.TrimSpace(currentText.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			}
		}
	}

	blocks := append(paragraphs, tableRows...)
	return strings.Join(blocks, "\n\n"), nil
}
