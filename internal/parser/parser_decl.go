package parser

import (
	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

// parseTypeDecl parses `type Name [= ]TypeExpr;`. Per stmt_typedef, the
// name is defined twice: once as a TypeDecl node (participating in
// ordinary duplicate-definition checking), and once more directly rebound
// to the resolved type itself, so later lookups of Name skip the typedef
// indirection entirely. When the body is a struct literal (`type Point {
// ... }`), Name is registered against a placeholder before the body is
// parsed, so self-referential fields (`next &Point`) resolve.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	tok := p.cur
	p.advance() // 'type'
	nameTok := p.cur
	name := nameTok.Lexeme
	p.consume(scanner.IDENTIFIER, "expected a type name")
	p.match(scanner.EQUAL)

	selfRef := p.check(scanner.LEFT_BRACE)
	if selfRef {
		placeholder := &types.Type{Kind: types.Struct, Name: name}
		if prev, exists := p.pkgdefs[name]; exists {
			p.errorAtWithNote(nameTok, asNode(prev), "previously defined here", "redefinition of %q", name)
		}
		p.pkgdefs[name] = placeholder
		p.pushStructPlaceholder(placeholder)
	}

	resolved := p.parseTypeExpr()
	if resolved.Kind == types.Struct && resolved.Name == "" {
		resolved.Name = name
	}

	td := &ast.TypeDecl{Name: name, Resolved: resolved}
	td.StartPos = p.tokPos(tok)
	td.Stop = p.tokPos(p.prev)

	if selfRef {
		p.defineReplace(name, td)
	} else {
		p.define(name, td)
	}
	p.defineReplace(name, resolved)
	return td
}

// parseUse parses `use path::to::module;`.
func (p *Parser) parseUse() *ast.UseDecl {
	tok := p.cur
	p.advance() // 'use'
	nameTok := p.cur
	p.consume(scanner.IDENTIFIER, "expected a module path segment")
	path := []string{nameTok.Lexeme}
	for p.match(scanner.DOUBLE_COLON) {
		nt := p.cur
		p.consume(scanner.IDENTIFIER, "expected a module path segment")
		path = append(path, nt.Lexeme)
	}
	ud := &ast.UseDecl{Path: path}
	ud.StartPos = p.tokPos(tok)
	ud.Stop = p.tokPos(p.prev)
	return ud
}
