package parser

import (
	"vela/internal/scanner"
	"vela/internal/types"
)

// parseTypeExpr is the recursive-descent counterpart to the expression
// Pratt table: type syntax has no infix operators worth a full parselet
// table, only a handful of unambiguous prefixes (*, &, mut &, ?, []/[N])
// wrapping a named-type primary.
func (p *Parser) parseTypeExpr() *types.Type {
	switch p.cur.Type {
	case scanner.STAR:
		p.advance()
		return p.store.PtrType(p.parseTypeExpr(), p.cfg.PointerSize)

	case scanner.AMPERSAND:
		p.advance()
		return p.store.RefType(p.parseTypeExpr(), false, p.cfg.PointerSize)

	case scanner.MUT:
		p.advance()
		p.consume(scanner.AMPERSAND, "expected '&' after 'mut' in a type")
		return p.store.RefType(p.parseTypeExpr(), true, p.cfg.PointerSize)

	case scanner.QUESTION:
		p.advance()
		return p.store.OptionalType(p.parseTypeExpr())

	case scanner.LEFT_BRACKET:
		p.advance()
		if p.match(scanner.RIGHT_BRACKET) {
			mut := p.match(scanner.MUT)
			return p.store.SliceType(p.parseTypeExpr(), mut, p.cfg.PointerSize)
		}
		lenTok := p.cur
		p.consume(scanner.INT_LIT, "expected an array length")
		p.consume(scanner.RIGHT_BRACKET, "expected ']' after array length")
		return p.store.ArrayType(p.parseTypeExpr(), uint32(lenTok.IntValue))

	case scanner.IDENTIFIER:
		tok := p.cur
		p.advance()
		return p.resolveNamedType(tok)

	case scanner.LEFT_BRACE:
		placeholder := p.takeStructPlaceholder()
		if placeholder == nil {
			placeholder = &types.Type{Kind: types.Struct}
		}
		return p.finishStructBody(placeholder)

	default:
		p.errorAt(p.cur, "expected a type")
		return p.universe.Void
	}
}

// resolveNamedType looks up tok as a previously-defined type name; used both
// by the ordinary type-expression grammar and by the parameter list's
// bare-type reinterpretation (a name never followed by its own type is
// itself a type reference).
func (p *Parser) resolveNamedType(tok scanner.Token) *types.Type {
	v, ok := p.pkgdefs[tok.Lexeme]
	if !ok {
		p.errorAt(tok, "undeclared type %q", tok.Lexeme)
		return p.universe.Void
	}
	t, ok := v.(*types.Type)
	if !ok {
		p.errorAt(tok, "%q does not name a type", tok.Lexeme)
		return p.universe.Void
	}
	return t
}
