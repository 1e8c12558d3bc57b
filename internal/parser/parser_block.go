package parser

import (
	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

// parseBlockExprPrefix is LEFT_BRACE's expression-table prefix parselet: a
// block used directly as a primary expression (e.g. the body of a bare
// `{ ... }` statement, distinct from a function or if/else body which call
// parseBlock directly).
func parseBlockExprPrefix(p *Parser) exprNode {
	return p.parseBlock()
}

// parseBlock opens a fresh scope, parses a brace-delimited item sequence,
// and closes the scope.
func (p *Parser) parseBlock() *ast.Block {
	p.scopes.Push()
	b := p.parseBlockBody()
	p.scopes.Pop()
	return b
}

// parseBlockBody parses the item sequence without touching the scope
// stack, so callers that already opened a scope (if-expression narrowing)
// can share it with the block body.
func (p *Parser) parseBlockBody() *ast.Block {
	open := p.cur
	p.consume(scanner.LEFT_BRACE, "expected '{' to open a block")

	b := &ast.Block{}
	b.StartPos = p.tokPos(open)

	for !p.check(scanner.RIGHT_BRACE) && p.cur.Type != scanner.EOF {
		if p.cur.Type == scanner.SEMI {
			p.advance()
			continue
		}
		item := p.parseBlockItem()
		b.Items = append(b.Items, item)
		if p.cur.Type == scanner.SEMI {
			p.advance()
		}
	}
	p.consume(scanner.RIGHT_BRACE, "expected '}' to close a block")
	b.Stop = p.tokPos(p.prev)

	// Only the tail expression keeps its r-value; every earlier item is
	// evaluated for effect only. This is the resolution SPEC_FULL.md gives
	// the l-value/r-value clearing open question.
	for i, it := range b.Items {
		if i != len(b.Items)-1 {
			it.SetRValue(false)
			if isTerminal(it) {
				warnUnreachableAfter(p, b.Items[i+1:])
			}
		}
	}
	if n := len(b.Items); n > 0 {
		b.Type = b.Items[n-1].ExprType()
	} else {
		b.Type = p.universe.Void
	}
	b.SetRValue(true)
	return b
}

func isTerminal(e ast.Expr) bool {
	_, ok := e.(*ast.ReturnStmt)
	return ok
}

func warnUnreachableAfter(p *Parser, rest []ast.Expr) {
	if len(rest) == 0 {
		return
	}
	pos := rest[0].Pos()
	p.diags.Warnf(ast.Range{Start: pos, Focus: pos, End: pos}, "unreachable code after return")
}

func (p *Parser) parseBlockItem() ast.Expr {
	switch p.cur.Type {
	case scanner.LET:
		return p.parseLetStmt()
	case scanner.VAR:
		return p.parseVarStmt()
	case scanner.RETURN:
		return p.parseReturnStmt()
	case scanner.ASSERT:
		return p.parseAssertStmt()
	default:
		return p.parseExpr(PrecLowest)
	}
}

// parseIfExpr implements the conditional-narrowing state machine: when the
// condition is a bare identifier of optional type, a shadow binding of the
// unwrapped type is defined in one outer "cond" scope that encloses both
// the then-block and the else-block, via defineReplace, mirroring
// expr_if's enter_scope(cond) / enter_scope(then) / enter_scope(else) /
// leave_scope(cond) nesting — the narrowed binding stays visible whichever
// branch is taken, not only in then.
func parseIfExpr(p *Parser) exprNode {
	tok := p.cur
	p.advance() // 'if'

	p.pushTypectx(p.universe.Bool)
	cond := p.parseExpr(PrecComma + 1)
	p.popTypectx()

	if ct := cond.ExprType(); ct != nil && ct.Kind != types.Bool && ct.Kind != types.Optional && ct.Kind != types.Void {
		p.errorAt(tok, "if condition must be bool or optional, got %s", ct.Kind)
	}

	p.scopes.Push() // outer "cond" scope
	var narrowed *ast.IdentExpr
	if id, ok := cond.(*ast.IdentExpr); ok && id.Type != nil && id.Type.Kind == types.Optional {
		shadow := &ast.IdentExpr{Name: id.Name, Ref: id.Ref}
		shadow.StartPos = id.StartPos
		shadow.Stop = id.Stop
		shadow.Type = id.Type.Elem
		shadow.SetRValue(true)
		shadow.Flags |= ast.FlagShadowsOptional | ast.FlagOptionalNarrowed
		p.defineReplace(id.Name, shadow)
		narrowed = shadow
	}

	p.scopes.Push() // "then" scope, nested inside cond
	thenBlock := p.parseBlockBody()
	p.scopes.Pop()

	ifx := &ast.IfExpr{Cond: cond, Then: thenBlock, NarrowedIdent: narrowed}
	ifx.StartPos = p.tokPos(tok)
	ifx.Stop = thenBlock.EndPos()
	ifx.SetRValue(true)

	if p.match(scanner.ELSE) {
		if p.check(scanner.IF) {
			p.scopes.Push() // "else" scope, nested inside cond
			elseIf := parseIfExpr(p)
			p.scopes.Pop()
			ifx.Else = elseIf.(*ast.IfExpr)
			ifx.Stop = elseIf.EndPos()
		} else {
			p.scopes.Push() // "else" scope, nested inside cond
			elseBlock := p.parseBlockBody()
			p.scopes.Pop()
			ifx.Else = elseBlock
			ifx.Stop = elseBlock.EndPos()
		}
		ifx.Type = thenBlock.ExprType()
	} else {
		ifx.Type = p.universe.Void
	}
	p.scopes.Pop() // leave "cond" scope
	return ifx
}
