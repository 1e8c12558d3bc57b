package scope

import (
	"testing"

	"vela/internal/sym"
)

func TestPushPopRestoresBase(t *testing.T) {
	s := New()
	s.Push()
	s.Define(sym.Symbol(1), "a")
	s.Push()
	s.Define(sym.Symbol(2), "b")
	s.Pop()
	if _, ok := s.Lookup(sym.Symbol(2), 0); ok {
		t.Fatal("expected inner binding to be gone after pop")
	}
	if v, ok := s.Lookup(sym.Symbol(1), Unbounded); !ok || v != "a" {
		t.Fatalf("expected outer binding to survive, got %v %v", v, ok)
	}
	s.Pop()
	if s.Len() != 0 {
		t.Fatalf("expected empty stack after matching pops, got len %d", s.Len())
	}
}

func TestMaxDepthZeroIsInnermostOnly(t *testing.T) {
	s := New()
	s.Push()
	s.Define(sym.Symbol(1), "outer")
	s.Push()
	if _, ok := s.Lookup(sym.Symbol(1), 0); ok {
		t.Fatal("expected maxDepth 0 to miss the outer scope")
	}
	if _, ok := s.Lookup(sym.Symbol(1), Unbounded); !ok {
		t.Fatal("expected unbounded lookup to find the outer scope")
	}
}

func TestSameScopeDuplicateDetection(t *testing.T) {
	s := New()
	s.Push()
	s.Define(sym.Symbol(5), "first")
	if _, ok := s.Lookup(sym.Symbol(5), 0); !ok {
		t.Fatal("expected to find same-scope definition with maxDepth 0")
	}
}

func TestIsToplevel(t *testing.T) {
	s := New()
	s.Push()
	s.MarkPackageScope()
	if !s.IsToplevel() {
		t.Fatal("expected toplevel scope to report IsToplevel")
	}
	s.Push()
	if s.IsToplevel() {
		t.Fatal("expected nested scope to not report IsToplevel")
	}
	s.Pop()
	if !s.IsToplevel() {
		t.Fatal("expected returning to package scope to restore IsToplevel")
	}
	s.Pop()
}
