// Package parser implements the Pratt (precedence-climbing) parser that
// simultaneously builds the AST and resolves names and types: the
// coordination center of the front end.
package parser

import (
	"fmt"

	"vela/internal/ast"
	"vela/internal/diag"
	"vela/internal/scanner"
	"vela/internal/scope"
	"vela/internal/sym"
	"vela/internal/types"
)

// Precedence is the Pratt engine's binding-power ladder, weakest to
// strongest.
type Precedence int

const (
	PrecLowest Precedence = iota
	PrecComma
	PrecAssign
	PrecOr
	PrecAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEq
	PrecCmp
	PrecShift
	PrecAdd
	PrecMul
	PrecUnaryPrefix
	PrecUnaryPostfix
	PrecMember
)

// Config carries the target-dependent sizing this front end assigns to the
// compiler object; the parser only needs pointer/native-int width to size
// compound types and to select native int/i64/u64 for un-contexted integer
// literals.
type Config struct {
	PointerSize uint32
	IntSize     uint32
}

// Parser drives the scanner, builds the AST, resolves names, canonicalizes
// types, and records method tables. It is not safe for concurrent use.
type Parser struct {
	file string
	scan *scanner.Scanner
	cur  scanner.Token
	prev scanner.Token

	interner *sym.Interner
	universe *types.Universe
	store    *types.Store
	diags    *diag.Channel
	scopes   *scope.Stack
	cfg      Config

	pkgdefs map[string]any

	methods map[*types.Type]map[string]*ast.Function
	fields  map[*types.Type]map[string]*ast.StructField

	typectx []*types.Type
	dotctx  []*ast.FunctionParam

	// structctx, when non-nil, is the placeholder a `type Name { ... }`
	// declaration registered under Name before parsing its body, so the
	// very next LEFT_BRACE parseTypeExpr sees extends it in place instead
	// of allocating a fresh, unbound one. Consumed on first use.
	structctx *types.Type

	panicMode bool
}

// New constructs a Parser over source. interner, universe, and store are
// typically shared across every compilation in a process; diags receives
// every report.
func New(file string, source []byte, interner *sym.Interner, universe *types.Universe, store *types.Store, diags *diag.Channel, cfg Config) *Parser {
	p := &Parser{
		file:     file,
		scan:     scanner.New(source, interner),
		interner: interner,
		universe: universe,
		store:    store,
		diags:    diags,
		scopes:   scope.New(),
		cfg:      cfg,
		pkgdefs:  make(map[string]any),
		methods:  make(map[*types.Type]map[string]*ast.Function),
		fields:   make(map[*types.Type]map[string]*ast.StructField),
	}
	for name, t := range universe.Named() {
		p.pkgdefs[name] = t
	}
	p.pkgdefs["true"] = true
	p.pkgdefs["false"] = false
	return p
}

// Parse runs the top-level loop: it opens the package scope, parses items
// until end-of-file, closes the scope, and returns the unit node. The scope
// stack is empty both before Parse is called and after it returns.
func (p *Parser) Parse() *ast.Unit {
	p.advance()
	u := &ast.Unit{}
	u.StartPos = p.tokPos(p.cur)

	p.scopes.Push()
	p.scopes.MarkPackageScope()

	for p.cur.Type != scanner.EOF {
		if p.cur.Type == scanner.SEMI {
			p.advance()
			continue
		}
		item := p.topLevelItem()
		if item != nil {
			u.Items = append(u.Items, item)
		}
		if p.cur.Type == scanner.SEMI {
			p.advance()
		}
	}

	p.scopes.Pop()
	u.Stop = p.tokPos(p.cur)

	for _, e := range p.scan.Errors() {
		p.diags.Errorf(rangeAt(scanner.ToDiagPosition(e.Position)), "%s", e.Message)
	}
	return u
}

func (p *Parser) topLevelItem() ast.Node {
	switch p.cur.Type {
	case scanner.FUN:
		return p.parseFunction(nil)
	case scanner.STRUCT:
		return p.parseStruct()
	case scanner.TYPE:
		return p.parseTypeDecl()
	case scanner.USE:
		return p.parseUse()
	default:
		return p.parseStmt()
	}
}

func rangeAt(pos diag.Position) diag.Range {
	return diag.Range{Start: pos, Focus: pos, End: pos}
}

func (p *Parser) tokPos(t scanner.Token) ast.Position {
	return ast.Position{Line: t.Position.Line, Column: t.Position.Column, Offset: t.Position.Offset}
}

func (p *Parser) rangeTok(t scanner.Token) ast.Range {
	pos := p.tokPos(t)
	return ast.Range{Start: pos, Focus: pos, End: pos}
}

func (p *Parser) errorAt(t scanner.Token, format string, args ...any) {
	p.diags.Errorf(p.rangeTok(t), format, args...)
}

func (p *Parser) warnAt(t scanner.Token, format string, args ...any) {
	p.diags.Warnf(p.rangeTok(t), format, args...)
}

// rangeFromNode builds a diag.Range spanning n, for use as a Note's
// location when pointing back at a prior definition.
func rangeFromNode(n ast.Node) diag.Range {
	return diag.Range{Start: n.Pos(), Focus: n.Pos(), End: n.EndPos()}
}

// errorAtWithNote reports an error at t carrying a secondary note, e.g.
// "previously defined here" pointing at prior. prior may be nil (no note
// attached) for bindings with no AST position of their own, such as a
// builtin type or a bool literal.
func (p *Parser) errorAtWithNote(t scanner.Token, prior ast.Node, noteMsg string, format string, args ...any) {
	d := diag.Diagnostic{
		Severity: diag.Error,
		Message:  fmt.Sprintf(format, args...),
		Range:    p.rangeTok(t),
	}
	if prior != nil {
		d.Notes = append(d.Notes, diag.Note{Message: noteMsg, Range: rangeFromNode(prior)})
	}
	p.diags.Report(d)
}

func (p *Parser) pushStructPlaceholder(t *types.Type) { p.structctx = t }

func (p *Parser) takeStructPlaceholder() *types.Type {
	t := p.structctx
	p.structctx = nil
	return t
}

// asNode reports v as an ast.Node when it is one, so a redefinition
// diagnostic can attach a note at its position; builtin types and the
// bool literals are not ast.Node and yield nil (no note).
func asNode(v any) ast.Node {
	n, _ := v.(ast.Node)
	return n
}
