package extract

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// skipDestinations are RTF groups carrying no document text.
var skipDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"object":     true,
	"header":     true,
	"footer":     true,
}

// extractRTF strips RTF control words and groups, keeping the visible text.
// It is a degraded extractor, not a full RTF parser: paragraph and line
// breaks are preserved, hex and unicode escapes are decoded, and formatting
// destinations (font table, color table, embedded objects) are skipped.
func extractRTF(data []byte) (string, error) {
	if !strings.HasPrefix(string(data), `{\rtf`) {
		return "", fmt.Errorf("missing {\\rtf header")
	}

	var out strings.Builder
	src := string(data)
	skipDepth := 0 // >0 while inside a non-text destination
	depth := 0

	for i := 0; i < len(src); {
		c := src[i]
		switch c {
		case '{':
			depth++
			i++
		case '}':
			if skipDepth > 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
			i++
		case '\\':
			word, param, next := readControl(src, i+1)
			i = next
			if skipDepth > 0 {
				continue
			}
			switch word {
			case "par", "line", "row":
				out.WriteByte('\n')
			case "tab", "cell":
				out.WriteByte(' ')
			case "'":
				if b, err := strconv.ParseUint(param, 16, 8); err == nil {
					out.WriteRune(charmap.Windows1252.DecodeByte(byte(b)))
				}
			case "u":
				if n, err := strconv.ParseInt(param, 10, 32); err == nil {
					if n < 0 {
						n += 65536
					}
					out.WriteRune(rune(n))
					// the substitution character after \uN is consumed
					if i < len(src) && src[i] == '?' {
						i++
					}
				}
			case "\\", "{", "}":
				out.WriteByte(word[0])
			case "*":
				// \* marks an ignorable destination
				skipDepth = depth
			default:
				if skipDestinations[word] {
					skipDepth = depth
				}
			}
		case '\r', '\n':
			i++
		default:
			if skipDepth == 0 {
				out.WriteByte(c)
			}
			i++
		}
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("no text content")
	}
	return text, nil
}

// readControl parses the control word or symbol starting at src[i] (the byte
// after the backslash). It returns the word, its parameter (numeric suffix,
// or the two hex digits of \'), and the index of the first byte after the
// control.
func readControl(src string, i int) (word, param string, next int) {
	if i >= len(src) {
		return "", "", i
	}
	c := src[i]
	if !isAlpha(c) {
		// control symbol: \', \\, \{, \}, \*, \~ ...
		if c == '\'' && i+2 < len(src) {
			return "'", src[i+1 : i+3], i + 3
		}
		return string(c), "", i + 1
	}
	start := i
	for i < len(src) && isAlpha(src[i]) {
		i++
	}
	word = src[start:i]
	pstart := i
	if i < len(src) && src[i] == '-' {
		i++
	}
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	param = src[pstart:i]
	// a single space terminates the control word and is not text
	if i < len(src) && src[i] == ' ' {
		i++
	}
	return word, param, i
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
