package parser

import (
	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

// parseFunction parses a `fun` declaration. receiver is nil for a top-level
// function and the enclosing struct's (possibly not-yet-canonicalized) type
// for a method.
func (p *Parser) parseFunction(receiver *types.Type) *ast.Function {
	fnTok := p.cur
	p.advance() // 'fun'
	nameTok := p.cur
	name := nameTok.Lexeme
	p.consume(scanner.IDENTIFIER, "expected a function name")

	fn := &ast.Function{Name: name, MethodOf: receiver}
	fn.StartPos = p.tokPos(fnTok)

	if receiver == nil {
		p.define(name, fn)
	}

	p.scopes.Push()

	p.consume(scanner.LEFT_PAREN, "expected '(' after a function name")
	fn.Params = p.parseParams(receiver)
	p.consume(scanner.RIGHT_PAREN, "expected ')' after parameters")

	for p.match(scanner.READS) {
		fn.Reads = append(fn.Reads, p.parseTypeExpr())
		for p.match(scanner.COMMA) {
			fn.Reads = append(fn.Reads, p.parseTypeExpr())
		}
	}
	for p.match(scanner.WRITES) {
		fn.Writes = append(fn.Writes, p.parseTypeExpr())
		for p.match(scanner.COMMA) {
			fn.Writes = append(fn.Writes, p.parseTypeExpr())
		}
	}

	result := p.universe.Void
	if !p.check(scanner.LEFT_BRACE) {
		result = p.parseTypeExpr()
	}
	fn.Result = result

	paramTypes := make([]*types.Type, len(fn.Params))
	var recvParam *ast.FunctionParam
	for i, prm := range fn.Params {
		paramTypes[i] = prm.Type
		if prm.Name != "_" {
			p.define(prm.Name, prm)
		}
		if prm.IsThis {
			recvParam = prm
		}
	}
	fn.FuncType = p.store.FuncType(paramTypes, result)

	if recvParam != nil {
		p.pushDotctx(recvParam)
	}
	p.pushTypectx(result)
	fn.Body = p.parseBlock()
	p.popTypectx()
	if recvParam != nil {
		p.popDotctx()
	}

	p.scopes.Pop()
	fn.Stop = fn.Body.EndPos()
	return fn
}

// parseParams accepts the this/mut-this receiver form (only when receiver
// is non-nil) followed by a comma-separated parameter list. A parameter
// group has no colon: a name immediately followed by ',' or ')' has its
// type deferred (queued) until a name followed by an actual type is seen,
// at which point that type cascades backward onto every queued name in one
// motion (`x, y int`). If the list never produces a name-with-type, every
// queued name is reinterpreted as a positional, unnamed type (`T1, T2`).
func (p *Parser) parseParams(receiver *types.Type) []*ast.FunctionParam {
	var params []*ast.FunctionParam

	if receiver != nil && (p.check(scanner.THIS) || p.check(scanner.MUT)) {
		mut := false
		if p.match(scanner.MUT) {
			mut = true
			p.consume(scanner.THIS, "expected 'this' after 'mut'")
		} else {
			p.advance() // 'this'
		}
		this := &ast.FunctionParam{
			Name:   "this",
			Type:   p.thisParamType(receiver, mut),
			IsThis: true,
			Mut:    mut,
		}
		params = append(params, this)
		if !p.match(scanner.COMMA) {
			return params
		}
	}

	var queue []scanner.Token
	sawNameType := false

	for !p.check(scanner.RIGHT_PAREN) && p.cur.Type != scanner.EOF {
		nameTok := p.cur
		p.consume(scanner.IDENTIFIER, "expected a parameter name or type")

		if p.check(scanner.COMMA) || p.check(scanner.RIGHT_PAREN) {
			queue = append(queue, nameTok)
		} else {
			mut := p.match(scanner.MUT)
			t := p.parseTypeExpr()
			sawNameType = true
			for _, qt := range queue {
				params = append(params, &ast.FunctionParam{Name: qt.Lexeme, Type: t, Mut: mut})
			}
			queue = nil
			params = append(params, &ast.FunctionParam{Name: nameTok.Lexeme, Type: t, Mut: mut})
		}
		if !p.match(scanner.COMMA) {
			break
		}
	}

	if sawNameType {
		if len(queue) > 0 {
			p.errorAt(queue[len(queue)-1], "expected a type for parameter %q", queue[len(queue)-1].Lexeme)
		}
		return params
	}

	for _, qt := range queue {
		params = append(params, &ast.FunctionParam{Name: "_", Type: p.resolveNamedType(qt)})
	}
	return params
}

// thisParamType implements the small-receiver ABI: an immutable receiver
// that is primitive, or a struct with align <= pointer-size and
// size <= 2x pointer-size, is passed by value; every other receiver, and
// every mutable receiver, is passed by reference.
func (p *Parser) thisParamType(receiver *types.Type, mut bool) *types.Type {
	if !mut {
		if receiver.IsPrimitive() {
			return receiver
		}
		if receiver.Kind == types.Struct {
			ptrSize := p.cfg.PointerSize
			if receiver.Align <= ptrSize && receiver.Size <= ptrSize*2 {
				return receiver
			}
		}
	}
	return p.store.RefType(receiver, mut, p.cfg.PointerSize)
}
