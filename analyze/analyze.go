// Package analyze turns extracted document text into formatted reports.
//
// Every operation is a pure function of the text (plus, where useful, the
// classifier's category): deterministic output for identical input, no
// stored state. The "analysis" here is heuristic keyword and statistics
// matching, not semantic understanding.
package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hazyhaar/docdesk/classify"
)

// Operation selects a document processing report.
type Operation string

const (
	OpSummarize   Operation = "summarize"
	OpAnalyze     Operation = "analyze"
	OpKeyPoints   Operation = "extract_key_points"
	OpWordCount   Operation = "word_count"
	OpFormatClean Operation = "format_clean"
)

// ErrUnknownOperation marks an operation name outside the known set.
var ErrUnknownOperation = errors.New("unknown operation")

// Operations returns the valid process operations in their documented order.
func Operations() []Operation {
	return []Operation{OpSummarize, OpAnalyze, OpKeyPoints, OpWordCount, OpFormatClean}
}

// ParseOperation validates an operation name at the boundary. Unknown names
// yield ErrUnknownOperation with the valid set listed in the message.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	for _, known := range Operations() {
		if op == known {
			return op, nil
		}
	}
	names := make([]string, 0, 5)
	for _, known := range Operations() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("%w: %q — valid operations: %s",
		ErrUnknownOperation, s, strings.Join(names, ", "))
}

// Run dispatches a parsed operation. The category is consulted only by the
// operations that report it; passing classify.Classify(text) is always safe.
func Run(op Operation, text string, cat classify.Category) string {
	switch op {
	case OpSummarize:
		return Summarize(text)
	case OpAnalyze:
		return Analyze(text, cat)
	case OpKeyPoints:
		return KeyPoints(text)
	case OpWordCount:
		return WordCount(text)
	case OpFormatClean:
		return FormatClean(text)
	default:
		// Unreachable for parsed operations; kept so a future constant
		// cannot silently fall through.
		return fmt.Sprintf("unknown operation %q", op)
	}
}
