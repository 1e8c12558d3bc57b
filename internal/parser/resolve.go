package parser

import (
	"vela/internal/ast"
	"vela/internal/scope"
	"vela/internal/sym"
	"vela/internal/types"
)

// lookup resolves name through the scope stack first, falling back to the
// package-defs map, itself seeded from the builtin universe.
func (p *Parser) lookup(name string) (any, bool) {
	if v, ok := p.scopes.Lookup(p.internerIndex(name), scope.Unbounded); ok {
		return v, true
	}
	v, ok := p.pkgdefs[name]
	return v, ok
}

// internerIndex interns name so it can key the scope stack; the scope
// stack itself only ever sees symbols, never raw strings.
func (p *Parser) internerIndex(name string) sym.Symbol {
	return p.interner.InternString(name)
}

// define binds name to node in the current scope. It fails (reporting a
// diagnostic that references the prior definition) on a same-scope
// duplicate; top-level definitions are additionally checked against, and
// entered into, pkgdefs.
func (p *Parser) define(name string, node any) bool {
	key := p.internerIndex(name)
	if prev, exists := p.scopes.Lookup(key, 0); exists {
		p.errorAtWithNote(p.prev, asNode(prev), "previously defined here", "redefinition of %q", name)
		return false
	}
	if p.scopes.IsToplevel() {
		if prev, exists := p.pkgdefs[name]; exists {
			p.errorAtWithNote(p.prev, asNode(prev), "previously defined here", "redefinition of %q", name)
			return false
		}
		p.pkgdefs[name] = node
	}
	p.scopes.Define(key, node)
	return true
}

// defineReplace shadow-binds name to node without a duplicate check, used
// by conditional narrowing to rebind an identifier to a narrowed type in
// the if-expression's condition scope (which encloses both branches), and
// by parseTypeDecl to bind a type name.
func (p *Parser) defineReplace(name string, node any) {
	key := p.internerIndex(name)
	p.scopes.Define(key, node)
	if p.scopes.IsToplevel() {
		p.pkgdefs[name] = node
	}
}

func (p *Parser) pushTypectx(t *types.Type) { p.typectx = append(p.typectx, t) }
func (p *Parser) popTypectx()               { p.typectx = p.typectx[:len(p.typectx)-1] }
func (p *Parser) topTypectx() *types.Type {
	if len(p.typectx) == 0 {
		return p.universe.Void
	}
	return p.typectx[len(p.typectx)-1]
}

func (p *Parser) pushDotctx(recv *ast.FunctionParam) { p.dotctx = append(p.dotctx, recv) }
func (p *Parser) popDotctx()                         { p.dotctx = p.dotctx[:len(p.dotctx)-1] }
func (p *Parser) topDotctx() *ast.FunctionParam {
	if len(p.dotctx) == 0 {
		return nil
	}
	return p.dotctx[len(p.dotctx)-1]
}
