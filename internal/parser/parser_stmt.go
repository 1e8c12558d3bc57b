package parser

import (
	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

func (p *Parser) parseStmt() ast.Node {
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

func (p *Parser) parseLetStmt() *ast.LetStmt {
	tok := p.cur
	p.advance() // 'let'
	nameTok := p.cur
	p.consume(scanner.IDENTIFIER, "expected a name after 'let'")

	declaredType := p.optionalTypeAnnotation()

	p.consume(scanner.EQUAL, "expected '=' in a let binding")
	ctx := declaredType
	if ctx == nil {
		ctx = p.universe.Void
	}
	p.pushTypectx(ctx)
	value := p.parseExpr(PrecAssign + 1)
	p.popTypectx()

	t := declaredType
	if t == nil {
		t = value.ExprType()
	}
	ls := &ast.LetStmt{Name: nameTok.Lexeme, Type: t, Value: value}
	ls.StartPos = p.tokPos(tok)
	ls.Stop = value.EndPos()
	ls.Type = t
	ls.SetRValue(true)
	p.define(nameTok.Lexeme, ls)
	return ls
}

func (p *Parser) parseVarStmt() *ast.VarStmt {
	tok := p.cur
	p.advance() // 'var'
	nameTok := p.cur
	p.consume(scanner.IDENTIFIER, "expected a name after 'var'")

	declaredType := p.optionalTypeAnnotation()

	p.consume(scanner.EQUAL, "expected '=' in a var binding")
	ctx := declaredType
	if ctx == nil {
		ctx = p.universe.Void
	}
	p.pushTypectx(ctx)
	value := p.parseExpr(PrecAssign + 1)
	p.popTypectx()

	t := declaredType
	if t == nil {
		t = value.ExprType()
	}
	vs := &ast.VarStmt{Name: nameTok.Lexeme, Type: t, Value: value}
	vs.StartPos = p.tokPos(tok)
	vs.Stop = value.EndPos()
	vs.Type = t
	vs.SetRValue(true)
	p.define(nameTok.Lexeme, vs)
	return vs
}

// optionalTypeAnnotation parses a binding's optional type, colon-free: a
// type is present iff the token right after the name isn't '=' (mirroring
// expr_var's rule that the value's type flows onto the binding otherwise).
func (p *Parser) optionalTypeAnnotation() *types.Type {
	if p.check(scanner.EQUAL) {
		return nil
	}
	return p.parseTypeExpr()
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.cur
	p.advance() // 'return'
	rs := &ast.ReturnStmt{}
	rs.StartPos = p.tokPos(tok)
	if p.cur.Type != scanner.SEMI && p.cur.Type != scanner.RIGHT_BRACE && p.cur.Type != scanner.EOF {
		rs.Value = p.parseExpr(PrecComma + 1)
		rs.Stop = rs.Value.EndPos()
	} else {
		rs.Stop = p.tokPos(tok)
	}
	rs.Type = p.universe.Void
	rs.SetRValue(false)
	rs.Flags |= ast.FlagExits
	return rs
}

func (p *Parser) parseAssertStmt() *ast.AssertStmt {
	tok := p.cur
	p.advance() // 'assert'
	p.consume(scanner.BANG, "expected '!' after 'assert'")
	p.consume(scanner.LEFT_PAREN, "expected '(' after 'assert!'")
	var args []ast.Expr
	for !p.check(scanner.RIGHT_PAREN) && p.cur.Type != scanner.EOF {
		args = append(args, p.parseExpr(PrecComma+1))
		if !p.match(scanner.COMMA) {
			break
		}
	}
	p.consume(scanner.RIGHT_PAREN, "expected ')' to close 'assert!'")
	as := &ast.AssertStmt{Args: args}
	as.StartPos = p.tokPos(tok)
	as.Stop = p.tokPos(p.prev)
	as.Type = p.universe.Void
	as.SetRValue(false)
	return as
}
