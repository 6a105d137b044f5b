package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"c include", "#include <stdio.h>\nint main() { return 0; }", CCode},
		{"c printf", "printf debugging at its finest", CCode},
		{"python def", "def handler(req): pass", PythonCode},
		{"python main guard", "if __name__ == '__main__':", PythonCode},
		{"javascript", "console.log('hi'); let x = 1;", JSCode},
		{"research", "Abstract\nWe present a novel approach.\nBibliography follows.", ResearchPaper},
		{"lab report", "The experiment followed this procedure closely.", LabReport},
		{"business", "Agenda for the quarterly review meeting.", BusinessDocument},
		{"general", "Once upon a time there was a goat.", GeneralDocument},
		{"empty", "", GeneralDocument},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("%s: Classify = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyOrderSensitive(t *testing.T) {
	// Code categories take priority over academic ones: a document carrying
	// both "def " and "abstract" is Python code.
	text := "abstract interfaces are nice\ndef run(): pass"
	if got := Classify(text); got != PythonCode {
		t.Fatalf("Classify = %q, want %q", got, PythonCode)
	}

	// Academic beats business.
	text = "Introduction\nThe meeting of minds."
	if got := Classify(text); got != ResearchPaper {
		t.Fatalf("Classify = %q, want %q", got, ResearchPaper)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "function f() { console.log('x') }\nresults and conclusion"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify not deterministic: %q then %q", first, got)
		}
	}
}

func TestLabel(t *testing.T) {
	if PythonCode.Label() != "Python Code" {
		t.Fatalf("label: %q", PythonCode.Label())
	}
	if !JSCode.IsCode() || ResearchPaper.IsCode() {
		t.Fatal("IsCode misclassified")
	}
}
