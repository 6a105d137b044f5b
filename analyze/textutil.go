package analyze

import (
	"strings"
	"unicode/utf8"
)

// wordPunct is the punctuation stripped from word edges before counting.
const wordPunct = `.,!?;:"()[]{}`

// flatten replaces newlines with spaces so sentence splitting ignores line
// structure.
func flatten(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

// splitSentences performs the naive ". " split used by summarize. The result
// always has at least one element, mirroring the upstream behavior.
func splitSentences(text string) []string {
	return strings.Split(flatten(text), ". ")
}

// paragraphsOf splits on blank lines and drops whitespace-only blocks.
func paragraphsOf(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeWord lower-cases a token and strips edge punctuation.
func normalizeWord(w string) string {
	return strings.ToLower(strings.Trim(w, wordPunct))
}

// truncateRunes cuts s to at most n runes, appending "..." when truncated.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// runeLen counts characters, not bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// readingMinutes estimates reading time at 200 words per minute, rounding
// up so even a one-word document reads as a minute.
func readingMinutes(words int) int {
	return words/200 + 1
}
