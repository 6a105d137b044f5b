package analyze

import (
	"fmt"
	"strings"
	"unicode"
)

// maxMatches caps how many occurrences a search reports.
const maxMatches = 10

// contextRadius is how many characters of surrounding text each match carries.
const contextRadius = 50

// Occurrence is one query hit with its character position and surrounding
// text. Positions count runes, not bytes, so multi-byte text reports the
// offsets a reader would count.
type Occurrence struct {
	Position int
	Context  string
}

// FindOccurrences scans text for query, overlapping matches included
// (the scan restarts one character past each hit). Case-insensitive search
// folds per rune but reports context from the original text. An empty
// query matches nothing. At most maxMatches occurrences are returned.
func FindOccurrences(text, query string, caseSensitive bool) []Occurrence {
	if query == "" {
		return nil
	}

	haystack := []rune(text)
	needle := []rune(query)
	if !caseSensitive {
		haystack = lowerRunes(haystack)
		needle = lowerRunes(needle)
	}
	original := []rune(text)

	var out []Occurrence
	for at := 0; at+len(needle) <= len(haystack) && len(out) < maxMatches; at++ {
		if !runesEqual(haystack[at:at+len(needle)], needle) {
			continue
		}
		start := at - contextRadius
		if start < 0 {
			start = 0
		}
		end := at + len(needle) + contextRadius
		if end > len(original) {
			end = len(original)
		}
		out = append(out, Occurrence{Position: at, Context: string(original[start:end])})
	}
	return out
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Search formats a report of every occurrence of query in text.
func Search(text, query string, caseSensitive bool) string {
	matches := FindOccurrences(text, query, caseSensitive)

	mode := "case-insensitive"
	if caseSensitive {
		mode = "case-sensitive"
	}

	var b strings.Builder
	b.WriteString("**Search Results**\n\n")
	fmt.Fprintf(&b, "**Query:** %q (%s)\n", query, mode)
	fmt.Fprintf(&b, "**Matches found:** %d\n\n", len(matches))

	if len(matches) == 0 {
		b.WriteString("No matches found in the document.\n")
		return b.String()
	}

	for i, m := range matches {
		fmt.Fprintf(&b, "**Match %d** (position %d):\n...%s...\n\n", i+1, m.Position, m.Context)
	}
	if len(matches) == maxMatches {
		fmt.Fprintf(&b, "(showing first %d matches)\n", maxMatches)
	}
	return b.String()
}
