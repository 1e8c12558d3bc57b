package scanner

import "vela/internal/sym"

// TokenType is a closed enumeration of the scanner's lexical classes.
//
// regenerate tokentype_string.go with `go generate ./internal/scanner`
//
//go:generate stringer -type=TokenType
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	SEMI // implicit or explicit statement terminator

	IDENTIFIER
	INT_LIT
	FLOAT_LIT
	STRING_LIT

	// Keywords
	FUN
	LET
	VAR
	IF
	ELSE
	RETURN
	STRUCT
	TYPE
	USE
	MUT
	THIS
	READS
	WRITES
	ASSERT
	TRUE
	FALSE

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	LESS_LESS
	GREATER
	GREATER_EQUAL
	GREATER_GREATER
	AND
	AMPERSAND
	OR
	PIPE
	CARET
	QUESTION

	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL

	COMMA
	DOT
	COLON
	DOUBLE_COLON

	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	POUND

	COMMENT
	DOC_COMMENT
	BLOCK_COMMENT
)

var keywords = map[string]TokenType{
	"fun": FUN, "let": LET, "var": VAR, "if": IF, "else": ELSE,
	"return": RETURN, "struct": STRUCT, "type": TYPE, "use": USE,
	"mut": MUT, "this": THIS, "reads": READS, "writes": WRITES,
	"assert": ASSERT, "true": TRUE, "false": FALSE,
}

// Keywords returns every reserved word, for seeding the symbol interner's
// sentinel handles.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// Position is a 1-based (line, column) plus a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token is one lexical unit plus everything the parser needs from it
// without re-scanning: the raw lexeme, a decoded numeric value, and (for
// identifiers) an interned symbol.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position

	IntValue   uint64
	FloatValue float64
	Base       int // 2, 8, 10, or 16, for INT_LIT/FLOAT_LIT
	Overflowed bool

	Sym sym.Symbol // set for IDENTIFIER
}

// insertsSemi reports whether tok arms automatic semicolon insertion: the
// scanner emits a synthetic SEMI before the next token if the source
// crossed a newline since tok was scanned.
func insertsSemi(t TokenType) bool {
	switch t {
	case IDENTIFIER, INT_LIT, FLOAT_LIT, STRING_LIT, TRUE, FALSE,
		RIGHT_PAREN, RIGHT_BRACE, RIGHT_BRACKET, RETURN, THIS:
		return true
	default:
		return false
	}
}
