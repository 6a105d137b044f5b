package extract

import (
	"bytes"
	"fmt"
)

// ole2Magic is the compound-file signature every legacy .doc starts with.
var ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DocDegradedNotice is returned for structurally valid legacy DOC payloads.
// Full legacy Word parsing is unsupported; extraction degrades to this fixed
// notice so callers know to convert the document rather than getting garbage.
const DocDegradedNotice = "Legacy DOC file detected. Full text extraction is not supported for this format — convert the document to DOCX for complete extraction."

// extractDoc handles legacy .doc payloads: a recognized OLE2 container yields
// the degraded notice; anything else falls back to best-effort Latin-1
// decoding of the raw bytes.
func extractDoc(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty payload")
	}
	if bytes.HasPrefix(data, ole2Magic) {
		return DocDegradedNotice, nil
	}
	return decodeLatin1(data), nil
}
