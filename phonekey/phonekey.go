// Package phonekey canonicalizes caller-supplied phone-number strings into
// stable session keys.
//
// The rule is a compatibility heuristic, not an E.164 parser: it reproduces
// the upstream system's behavior exactly so that existing callers keep
// addressing the same sessions. Numbers without a leading "+" are assumed
// US unless they already start with "1" or exceed 10 digits.
package phonekey

import "strings"

// Normalize strips surrounding whitespace, inner spaces, and hyphens, then
// ensures a leading "+". It never fails; non-numeric input is passed through
// the same rule, since the store only needs key stability.
//
//	"1234567890"      → "+1234567890"
//	"+1 234-567-8900" → "+12345678900"
//	"919876543210"    → "+919876543210"
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	if strings.HasPrefix(s, "+") {
		return s
	}
	if strings.HasPrefix(s, "1") || len(s) > 10 {
		return "+" + s
	}
	return "+1" + s
}
