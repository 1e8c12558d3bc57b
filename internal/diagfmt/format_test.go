package diagfmt

import (
	"strings"
	"testing"

	"vela/internal/diag"
)

func TestFormatIncludesMessageLocationAndCaret(t *testing.T) {
	source := "let x = 1\nlet y = ;\n"
	r := NewReporter("bad.vl", source)

	d := diag.Diagnostic{
		Severity: diag.Error,
		Message:  "expected expression",
		Range: diag.Range{
			Focus: diag.Position{Line: 2, Column: 9, Offset: 18},
		},
	}

	out := r.Format(d)
	if !strings.Contains(out, "expected expression") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "bad.vl:2:9") {
		t.Errorf("output missing location: %q", out)
	}
	if !strings.Contains(out, "let y = ;") {
		t.Errorf("output missing source excerpt: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("output missing caret marker: %q", out)
	}
}

func TestFormatIncludesNotesAndHelp(t *testing.T) {
	r := NewReporter("dup.vl", "let x = 1\nlet x = 2\n")

	d := diag.Diagnostic{
		Severity: diag.Error,
		Message:  "redefinition of 'x'",
		Range:    diag.Range{Focus: diag.Position{Line: 2, Column: 5}},
		Notes: []diag.Note{
			{Message: "previously defined here", Range: diag.Range{Focus: diag.Position{Line: 1, Column: 5}}},
		},
		Help: "rename one of the bindings",
	}

	out := r.Format(d)
	if !strings.Contains(out, "previously defined here") {
		t.Errorf("output missing note: %q", out)
	}
	if !strings.Contains(out, "rename one of the bindings") {
		t.Errorf("output missing help text: %q", out)
	}
}

func TestFormatOutOfRangeLineOmitsExcerpt(t *testing.T) {
	r := NewReporter("empty.vl", "")

	d := diag.Diagnostic{
		Severity: diag.Warning,
		Message:  "unexpected end of file",
		Range:    diag.Range{Focus: diag.Position{Line: 99, Column: 1}},
	}

	out := r.Format(d)
	if !strings.Contains(out, "unexpected end of file") {
		t.Errorf("output missing message: %q", out)
	}
	if strings.Contains(out, "^") {
		t.Errorf("expected no excerpt or caret for an out-of-range line: %q", out)
	}
}
