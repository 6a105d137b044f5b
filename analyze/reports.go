package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/docdesk/classify"
)

var (
	formalMarkers   = []string{"therefore", "however", "furthermore", "consequently"}
	informalMarkers = []string{"like", "really", "pretty", "kinda"}

	// importanceKeywords flag sentences worth surfacing as key points.
	importanceKeywords = []string{
		"important", "key", "main", "significant", "critical",
		"essential", "primary", "major", "conclusion", "result",
	}
)

// Summarize reports word/char counts, the first three sentences as a naive
// summary, and basic reading metrics.
func Summarize(text string) string {
	words := strings.Fields(text)
	sentences := splitSentences(text)

	n := 3
	if len(sentences) < n {
		n = len(sentences)
	}
	summary := strings.Join(sentences[:n], ". ") + "."

	var b strings.Builder
	b.WriteString("**Document Summary**\n\n")
	fmt.Fprintf(&b, "**Statistics:** %d words, %d characters\n\n", len(words), runeLen(text))
	b.WriteString("**Summary:**\n")
	b.WriteString(summary)
	b.WriteString("\n\n**Key Points:**\n")
	fmt.Fprintf(&b, "- Document contains %d sentences\n", len(sentences))
	fmt.Fprintf(&b, "- Average words per sentence: %.1f\n", float64(len(words))/float64(len(sentences)))
	fmt.Fprintf(&b, "- Estimated reading time: %d minute(s)\n", readingMinutes(len(words)))
	return b.String()
}

// Analyze reports structural counts, density, tone, and the detected type.
func Analyze(text string, cat classify.Category) string {
	lines := strings.Split(text, "\n")
	paragraphs := paragraphsOf(text)
	words := strings.Fields(text)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[normalizeWord(w)] = struct{}{}
	}

	var avgParagraph float64
	longest := 0
	for _, p := range paragraphs {
		if n := len(strings.Fields(p)); n > longest {
			longest = n
		}
	}
	if len(paragraphs) > 0 {
		avgParagraph = float64(len(words)) / float64(len(paragraphs))
	}

	density := "Low"
	switch {
	case avgParagraph > 50:
		density = "High"
	case avgParagraph > 20:
		density = "Medium"
	}

	var b strings.Builder
	b.WriteString("**Document Analysis**\n\n")
	fmt.Fprintf(&b, "**Detected type:** %s\n\n", cat.Label())
	b.WriteString("**Structure:**\n")
	fmt.Fprintf(&b, "- Total lines: %d\n", len(lines))
	fmt.Fprintf(&b, "- Paragraphs: %d\n", len(paragraphs))
	fmt.Fprintf(&b, "- Words: %d\n", len(words))
	fmt.Fprintf(&b, "- Characters: %d\n", runeLen(text))
	fmt.Fprintf(&b, "- Unique words: %d\n\n", len(unique))
	b.WriteString("**Content:**\n")
	fmt.Fprintf(&b, "- Average paragraph length: %.1f words\n", avgParagraph)
	fmt.Fprintf(&b, "- Longest paragraph: %d words\n", longest)
	fmt.Fprintf(&b, "- Document density: %s\n\n", density)
	fmt.Fprintf(&b, "**Tone:** %s\n", guessTone(text))
	return b.String()
}

// guessTone picks a tone label by marker presence; formal markers win.
func guessTone(text string) string {
	lower := strings.ToLower(text)
	for _, m := range formalMarkers {
		if strings.Contains(lower, m) {
			return "Technical/Formal"
		}
	}
	for _, m := range informalMarkers {
		if strings.Contains(lower, m) {
			return "Casual/Informal"
		}
	}
	return "Standard"
}

// keyPointsOf returns up to five key sentences plus how many sentences were
// analyzed. The first ten sentences are scanned for importance keywords;
// when none match, the first five sentences stand in.
func keyPointsOf(text string) (points []string, analyzed int) {
	var sentences []string
	for _, s := range strings.Split(flatten(text), ".") {
		s = strings.TrimSpace(s)
		if runeLen(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	scan := len(sentences)
	if scan > 10 {
		scan = 10
	}
	for _, s := range sentences[:scan] {
		lower := strings.ToLower(s)
		for _, kw := range importanceKeywords {
			if strings.Contains(lower, kw) {
				points = append(points, s+".")
				break
			}
		}
	}

	if len(points) == 0 {
		fallback := len(sentences)
		if fallback > 5 {
			fallback = 5
		}
		for _, s := range sentences[:fallback] {
			points = append(points, s+".")
		}
	}
	if len(points) > 5 {
		points = points[:5]
	}
	return points, len(sentences)
}

// KeyPoints reports the most important-looking sentences.
func KeyPoints(text string) string {
	points, analyzed := keyPointsOf(text)

	var b strings.Builder
	b.WriteString("**Key Points Extracted**\n\n")
	b.WriteString("**Main Points:**\n")
	if len(points) == 0 {
		b.WriteString("- (no sentences longer than 20 characters found)\n")
	}
	for _, p := range points {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n**Extraction Summary:**\n")
	fmt.Fprintf(&b, "- Analyzed %d sentences\n", analyzed)
	fmt.Fprintf(&b, "- Identified %d key points\n", len(points))
	b.WriteString("- Based on keyword and sentence-structure heuristics\n")
	return b.String()
}

// WordCount reports totals and the top-10 word frequency table. Ties keep
// first-encountered order.
func WordCount(text string) string {
	words := strings.Fields(text)

	freq := make(map[string]int, len(words))
	var order []string
	totalLen := 0
	for _, w := range words {
		totalLen += runeLen(w)
		key := normalizeWord(w)
		if _, seen := freq[key]; !seen {
			order = append(order, key)
		}
		freq[key]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	top := order
	if len(top) > 10 {
		top = top[:10]
	}

	var avgLen float64
	if len(words) > 0 {
		avgLen = float64(totalLen) / float64(len(words))
	}

	var b strings.Builder
	b.WriteString("**Word Count Analysis**\n\n")
	b.WriteString("**Statistics:**\n")
	fmt.Fprintf(&b, "- Total words: %d\n", len(words))
	fmt.Fprintf(&b, "- Unique words: %d\n", len(freq))
	fmt.Fprintf(&b, "- Characters (with spaces): %d\n", runeLen(text))
	fmt.Fprintf(&b, "- Characters (without spaces): %d\n\n", runeLen(strings.ReplaceAll(text, " ", "")))
	b.WriteString("**Most Frequent Words:**\n")
	for _, w := range top {
		fmt.Fprintf(&b, "- %s: %d time(s)\n", w, freq[w])
	}
	b.WriteString("\n**Reading Metrics:**\n")
	fmt.Fprintf(&b, "- Estimated reading time: %d minute(s)\n", readingMinutes(len(words)))
	fmt.Fprintf(&b, "- Average word length: %.1f characters\n", avgLen)
	return b.String()
}

// FormatClean strips each line, drops blanks, and rejoins paragraphs with
// blank-line separators. The displayed result is capped at 2000 characters.
func FormatClean(text string) string {
	originalLines := strings.Split(text, "\n")
	var cleanLines []string
	for _, line := range originalLines {
		if line := strings.TrimSpace(line); line != "" {
			cleanLines = append(cleanLines, line)
		}
	}
	cleaned := strings.Join(cleanLines, "\n\n")

	var b strings.Builder
	b.WriteString("**Cleaned Document**\n\n")
	b.WriteString("**Cleaned Content:**\n---\n")
	b.WriteString(truncateRunes(cleaned, 2000))
	b.WriteString("\n---\n\n**Cleaning Summary:**\n")
	b.WriteString("- Removed extra whitespace\n")
	b.WriteString("- Standardized line breaks\n")
	fmt.Fprintf(&b, "- Original lines: %d\n", len(originalLines))
	fmt.Fprintf(&b, "- Cleaned lines: %d\n", len(cleanLines))
	return b.String()
}

// Overview is the generic analysis used by the direct-content pipeline:
// counts, detected type, key points, and a short preview.
func Overview(text string, cat classify.Category) string {
	words := strings.Fields(text)
	lines := strings.Split(text, "\n")
	points, _ := keyPointsOf(text)

	var b strings.Builder
	b.WriteString("**Document Overview**\n\n")
	fmt.Fprintf(&b, "**Detected type:** %s\n\n", cat.Label())
	fmt.Fprintf(&b, "**Statistics:** %d words, %d lines, %d characters\n\n",
		len(words), len(lines), runeLen(text))
	b.WriteString("**Key Points:**\n")
	if len(points) == 0 {
		b.WriteString("- (content too short for key-point extraction)\n")
	}
	for _, p := range points {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	b.WriteString("\n**Content Preview:**\n---\n")
	b.WriteString(truncateRunes(text, 300))
	b.WriteString("\n---\n")
	return b.String()
}

// QuickCounts is the minimal depth of the direct-content pipeline.
func QuickCounts(text string) string {
	words := strings.Fields(text)
	lines := strings.Split(text, "\n")
	return fmt.Sprintf("**Quick Stats:** %d words, %d lines, %d characters\n",
		len(words), len(lines), runeLen(text))
}
