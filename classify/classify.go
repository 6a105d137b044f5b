// Package classify assigns a coarse content category to extracted text.
//
// Classification is a priority-ordered keyword scan, not semantic analysis:
// code categories are checked before academic ones, academic before
// business, and the first match wins. The category steers which structured
// report the analysis layer produces.
package classify

import "strings"

// Category is a coarse document type label.
type Category string

const (
	CCode            Category = "c_code"
	PythonCode       Category = "python_code"
	JSCode           Category = "js_code"
	ResearchPaper    Category = "research_paper"
	LabReport        Category = "lab_report"
	BusinessDocument Category = "business_document"
	GeneralDocument  Category = "general_document"
)

// rule ties a category to its trigger substrings. Order matters: rules are
// evaluated top to bottom and the first hit wins.
var rules = []struct {
	category Category
	triggers []string
}{
	{CCode, []string{"#include", "int main", "void main", "printf", "scanf"}},
	{PythonCode, []string{"def ", "import ", "print(", "if __name__"}},
	{JSCode, []string{"function", "var ", "let ", "console.log", "document."}},
	{ResearchPaper, []string{"abstract", "introduction", "methodology", "bibliography"}},
	{LabReport, []string{"experiment", "procedure", "results", "conclusion", "hypothesis"}},
	{BusinessDocument, []string{"meeting", "agenda", "action items", "quarterly"}},
}

// Classify returns the first matching category for the text, or
// GeneralDocument when nothing triggers.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(lower, trigger) {
				return r.category
			}
		}
	}
	return GeneralDocument
}

// Label returns the human-readable name used in reports.
func (c Category) Label() string {
	switch c {
	case CCode:
		return "C/C++ Code"
	case PythonCode:
		return "Python Code"
	case JSCode:
		return "JavaScript Code"
	case ResearchPaper:
		return "Research Paper"
	case LabReport:
		return "Lab Report"
	case BusinessDocument:
		return "Business Document"
	default:
		return "General Document"
	}
}

// IsCode reports whether the category is a programming-language one.
func (c Category) IsCode() bool {
	return c == CCode || c == PythonCode || c == JSCode
}
