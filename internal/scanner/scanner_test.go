package scanner

import (
	"testing"

	"vela/internal/sym"
)

func newTestScanner(src string) *Scanner {
	return New([]byte(src), sym.NewInterner(Keywords()))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := newTestScanner("fun let var if else return struct type use mut this reads writes customIdent").ScanAll()
	expected := []TokenType{
		FUN, LET, VAR, IF, ELSE, RETURN, STRUCT, TYPE, USE, MUT, THIS,
		READS, WRITES, IDENTIFIER,
	}
	for i, exp := range expected {
		if toks[i].Type != exp {
			t.Errorf("token %d: expected %v got %v", i, exp, toks[i].Type)
		}
	}
}

func TestNumberBases(t *testing.T) {
	toks := newTestScanner("42 0x1F 0b101 0o17").ScanAll()
	expectedBases := []int{10, 16, 2, 8}
	for i, base := range expectedBases {
		if toks[i].Type != INT_LIT {
			t.Fatalf("token %d: expected INT_LIT got %v", i, toks[i].Type)
		}
		if toks[i].Base != base {
			t.Errorf("token %d: expected base %d got %d", i, base, toks[i].Base)
		}
	}
}

func TestDigitSeparatorTrailingRejected(t *testing.T) {
	s := newTestScanner("123_")
	_ = s.ScanAll()
	if len(s.errors) == 0 {
		t.Fatal("expected trailing digit separator to be rejected")
	}
}

func TestDigitSeparatorBetweenDigitsAccepted(t *testing.T) {
	s := newTestScanner("1_000")
	toks := s.ScanAll()
	if len(s.errors) != 0 {
		t.Fatalf("expected no errors, got %v", s.errors)
	}
	if toks[0].IntValue != 1000 {
		t.Fatalf("expected 1000, got %d", toks[0].IntValue)
	}
}

func TestUint64BoundaryLiterals(t *testing.T) {
	toks := newTestScanner("18446744073709551615 18446744073709551616").ScanAll()
	if toks[0].Overflowed {
		t.Error("expected 2^64-1 to fit u64")
	}
	if !toks[1].Overflowed {
		t.Error("expected 2^64 to overflow u64")
	}
}

func TestBlockCommentSlashStarSlashNotClosed(t *testing.T) {
	s := newTestScanner("/*/ */")
	toks := s.ScanAll()
	if toks[0].Type != BLOCK_COMMENT {
		t.Fatalf("expected a block comment token, got %v", toks[0].Type)
	}
	if toks[0].Lexeme != "/*/ */" {
		t.Errorf("expected /*/ to require the following */ to close, got %q", toks[0].Lexeme)
	}
}

func TestBlockCommentPlainClosed(t *testing.T) {
	toks := newTestScanner("/* hi */").ScanAll()
	if toks[0].Type != BLOCK_COMMENT || toks[0].Lexeme != "/* hi */" {
		t.Fatalf("expected closed block comment, got %v %q", toks[0].Type, toks[0].Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	s := newTestScanner(`"unterminated`)
	_ = s.ScanAll()
	if len(s.errors) == 0 {
		t.Fatal("expected unterminated string error")
	}
}

func TestImplicitSemicolonAfterNewline(t *testing.T) {
	toks := newTestScanner("x\ny").ScanAll()
	// IDENTIFIER(x), SEMI, IDENTIFIER(y), EOF
	if toks[1].Type != SEMI {
		t.Fatalf("expected ASI to insert a SEMI, got %v", toks[1].Type)
	}
}

func TestNoImplicitSemicolonWithoutArmedToken(t *testing.T) {
	toks := newTestScanner("+\ny").ScanAll()
	if toks[1].Type == SEMI {
		t.Fatal("expected no ASI after a token that does not arm insert_semi")
	}
}

func TestNoImplicitSemicolonWithoutNewline(t *testing.T) {
	toks := newTestScanner("x y").ScanAll()
	if toks[1].Type == SEMI {
		t.Fatal("expected no ASI when no newline was crossed")
	}
}
