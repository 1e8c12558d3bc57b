package sym

import "testing"

func TestInternIdempotent(t *testing.T) {
	in := NewInterner(nil)
	a := in.InternString("hello")
	b := in.InternString("hello")
	if a != b {
		t.Fatalf("expected same symbol, got %d and %d", a, b)
	}
	if in.String(a) != "hello" {
		t.Fatalf("expected round-trip, got %q", in.String(a))
	}
}

func TestBlankAndKeywordsReserved(t *testing.T) {
	in := NewInterner([]string{"fun", "let"})
	if in.String(Blank) != "_" {
		t.Fatalf("expected blank symbol to be \"_\", got %q", in.String(Blank))
	}
	if sy, ok := in.Lookup("fun"); !ok || in.String(sy) != "fun" {
		t.Fatalf("expected \"fun\" to be pre-interned")
	}
}

func TestDistinctBytesDistinctSymbols(t *testing.T) {
	in := NewInterner(nil)
	a := in.InternString("x")
	b := in.InternString("y")
	if a == b {
		t.Fatalf("expected distinct symbols for distinct bytes")
	}
}
