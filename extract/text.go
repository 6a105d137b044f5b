package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractText decodes a plain-text payload. Valid UTF-8 round-trips exactly;
// otherwise the prioritized single-byte encodings are tried in order, and as
// a last resort invalid UTF-8 sequences are replaced.
func extractText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	// Latin-1 accepts every byte, so in practice the chain ends there; the
	// remaining entries mirror the upstream priority list for completeness.
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		if decoded, err := cm.NewDecoder().Bytes(data); err == nil {
			return string(decoded), nil
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
}

// decodeLatin1 maps every byte through ISO-8859-1. Used as the best-effort
// fallback for legacy binary formats.
func decodeLatin1(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}
