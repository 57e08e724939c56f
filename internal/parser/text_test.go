package parser

import (
	"strings"
	"testing"
)

func TestTextParser_Verbatim(t *testing.T) {
	input := "# Todo App\n\nFeatures:\n- must support login\n"
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
}

func TestTextParser_NormalizesLineEndings(t *testing.T) {
	input := "\ufeffFeatures:\r\n- one\r- two\n"
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(input), "crlf.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Features:\n- one\n- two\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTextWriter_BlockSeparation(t *testing.T) {
	var w textWriter
	w.heading(9, "  Deep   heading ")
	w.paragraph("line one\n\n  line two  ")
	w.bullet("a")
	w.bullet("   ")
	w.numbered(2, "b")
	w.endList()
	w.bullet("c")
	w.heading(0, "Top")

	want := "###### Deep heading\n\nline one\nline two\n\n- a\n2. b\n\n- c\n\n# Top\n"
	if got := w.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
