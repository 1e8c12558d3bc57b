// Command vela-fmt canonicalizes whitespace and indentation in a vela
// source file by re-emitting its token stream, the way a formatter for a
// hand-rolled front end works directly off the same lexer the compiler
// uses rather than a second, formatting-only grammar.
package main

import (
	"fmt"
	"os"
	"strings"

	"vela/internal/scanner"
	"vela/internal/sym"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: vela-fmt <file.vl>")
		os.Exit(1)
	}
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	in := sym.NewInterner(scanner.Keywords())
	s := scanner.New(source, in)
	toks := s.ScanAll()
	if errs := s.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", path, e.Position.Line, e.Position.Column, e.Message)
		}
		os.Exit(1)
	}

	fmt.Print(Format(toks))
}

// Format re-emits toks with one statement per line, brace-depth
// indentation, and a single space around binary/assignment operators.
func Format(toks []scanner.Token) string {
	var b strings.Builder
	depth := 0
	needIndent := true

	writeIndent := func() {
		b.WriteString(strings.Repeat("\t", depth))
	}

	for i, t := range toks {
		if t.Type == scanner.EOF {
			break
		}
		if t.Type == scanner.COMMENT || t.Type == scanner.DOC_COMMENT || t.Type == scanner.BLOCK_COMMENT {
			if needIndent {
				writeIndent()
				needIndent = false
			}
			b.WriteString(t.Lexeme)
			b.WriteString("\n")
			needIndent = true
			continue
		}

		switch t.Type {
		case scanner.RIGHT_BRACE:
			depth--
		}

		if needIndent {
			writeIndent()
			needIndent = false
		} else if needsSpaceBefore(t.Type, toks, i) {
			b.WriteString(" ")
		}

		b.WriteString(tokenText(t))

		switch t.Type {
		case scanner.LEFT_BRACE:
			depth++
			b.WriteString("\n")
			needIndent = true
		case scanner.RIGHT_BRACE, scanner.SEMI:
			b.WriteString("\n")
			needIndent = true
		}
	}
	return b.String()
}

func tokenText(t scanner.Token) string {
	if t.Type == scanner.SEMI {
		return ";"
	}
	if t.Type == scanner.STRING_LIT {
		return `"` + t.Lexeme + `"`
	}
	return t.Lexeme
}

// needsSpaceBefore keeps punctuation tight (no space before a comma, `;`,
// `.`, `::`, `:`, a closing paren or bracket, or a call's opening paren)
// while everything else, `}` included, gets one separating space.
func needsSpaceBefore(t scanner.TokenType, toks []scanner.Token, i int) bool {
	switch t {
	case scanner.COMMA, scanner.SEMI, scanner.RIGHT_PAREN, scanner.RIGHT_BRACKET,
		scanner.DOT, scanner.DOUBLE_COLON, scanner.COLON:
		return false
	case scanner.LEFT_PAREN:
		if i > 0 && isCallable(toks[i-1].Type) {
			return false
		}
	}
	if i > 0 {
		switch toks[i-1].Type {
		case scanner.LEFT_PAREN, scanner.LEFT_BRACKET, scanner.DOT, scanner.DOUBLE_COLON:
			return false
		}
	}
	return true
}

func isCallable(t scanner.TokenType) bool {
	switch t {
	case scanner.IDENTIFIER, scanner.RIGHT_PAREN, scanner.RIGHT_BRACKET, scanner.THIS:
		return true
	default:
		return false
	}
}
