package parser

import (
	"strconv"

	"vela/internal/ast"
	"vela/internal/scanner"
	"vela/internal/types"
)

func parseIntLit(p *Parser) exprNode {
	tok := p.cur
	p.advance()
	return p.intLit(tok, false)
}

// intLit implements select_int_type's boundary table from
// original_source/src/parser.c: fixed-width context types are checked
// against their signed/unsigned range (widened by one when isNeg, so the
// minimum negative value of a width fits); an un-contexted literal defaults
// to native int if it fits, else i64, else u64 (a negative literal beyond
// i64's range stays i64 and is reported as overflowing it).
func (p *Parser) intLit(tok scanner.Token, isNeg bool) *ast.LiteralExpr {
	lit := &ast.LiteralExpr{LitKind: ast.LitInt, IntValue: tok.IntValue, IsNeg: isNeg}
	lit.StartPos = p.tokPos(tok)
	lit.Stop = p.tokPos(tok)
	lit.SetRValue(true)

	ctx := p.topTypectx()
	lit.Type = ctx
	if tok.Overflowed {
		lit.Overflowed = true
		p.errorAt(tok, "integer literal overflows u64")
		lit.Type = p.universe.U64
		return lit
	}
	if fits, unsigned := fitsFixedWidth(ctx, tok.IntValue, isNeg, p.universe); ctx.IsPrimitive() && ctx != p.universe.Void && ctx.Kind != types.Bool {
		if !fits {
			p.errorAt(tok, "integer literal overflows %s", ctx.Kind)
			lit.Overflowed = true
		}
		_ = unsigned
		return lit
	}

	// un-contexted: native int, else i64, else u64.
	maxInt := maxSignedForWidth(p.cfg.IntSize, isNeg)
	if tok.IntValue <= maxInt {
		lit.Type = p.universe.Int
		return lit
	}
	maxI64 := maxSignedForWidth(8, isNeg)
	if tok.IntValue <= maxI64 {
		lit.Type = p.universe.I64
		return lit
	}
	if isNeg {
		lit.Type = p.universe.I64
		lit.Overflowed = true
		p.errorAt(tok, "integer literal overflows %s", lit.Type.Kind)
		return lit
	}
	lit.Type = p.universe.U64
	return lit
}

func fitsFixedWidth(ctx *types.Type, v uint64, isNeg bool, u *types.Universe) (bool, bool) {
	var width uint32
	switch ctx.Kind {
	case types.Int:
		width = ctx.Size
	case types.I8:
		width = 1
	case types.I16:
		width = 2
	case types.I32:
		width = 4
	case types.I64:
		width = 8
	default:
		return true, ctx.IsUnsigned
	}
	if ctx.IsUnsigned {
		if isNeg {
			return v == 0, true
		}
		max := maxUnsignedForWidth(width)
		return v <= max, true
	}
	max := maxSignedForWidth(width, isNeg)
	return v <= max, false
}

func maxUnsignedForWidth(width uint32) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (width * 8)) - 1
}

// maxSignedForWidth returns the largest magnitude a signed literal of the
// given width may have; when isNeg is set, the magnitude may be one larger
// (2^(n-1) rather than 2^(n-1)-1) since the literal will be negated.
func maxSignedForWidth(width uint32, isNeg bool) uint64 {
	if width >= 8 {
		if isNeg {
			return uint64(1) << 63
		}
		return uint64(1)<<63 - 1
	}
	bits := width * 8
	if isNeg {
		return uint64(1) << (bits - 1)
	}
	return uint64(1)<<(bits-1) - 1
}

func parseFloatLit(p *Parser) exprNode {
	tok := p.cur
	p.advance()
	return p.floatLit(tok, false)
}

// floatLit parses via strconv, matching strtof/strtod's overflow-to-Inf
// behavior with a range check against f32's largest finite value
// (isInfFloat32) in place of HUGE_VALF.
func (p *Parser) floatLit(tok scanner.Token, isNeg bool) *ast.LiteralExpr {
	lit := &ast.LiteralExpr{LitKind: ast.LitFloat, FloatValue: tok.FloatValue, IsNeg: isNeg}
	lit.StartPos = p.tokPos(tok)
	lit.Stop = p.tokPos(tok)
	lit.SetRValue(true)

	ctx := p.topTypectx()
	if ctx == p.universe.F32 {
		lit.Type = p.universe.F32
		f32, err := strconv.ParseFloat(tok.Lexeme, 32)
		if err != nil || isInfFloat32(f32) {
			lit.Overflowed = true
			p.errorAt(tok, "float literal overflows f32")
		} else {
			lit.FloatValue = f32
		}
		return lit
	}
	lit.Type = p.universe.F64
	if tok.Overflowed {
		lit.Overflowed = true
		p.errorAt(tok, "float literal overflows f64")
	}
	return lit
}

func isInfFloat32(f float64) bool {
	return f > 3.4028235e38 || f < -3.4028235e38
}

func parseStringLit(p *Parser) exprNode {
	tok := p.cur
	p.advance()
	lit := &ast.LiteralExpr{LitKind: ast.LitString, StringValue: tok.Lexeme}
	lit.StartPos = p.tokPos(tok)
	lit.Stop = p.tokPos(tok)
	lit.SetRValue(true)
	lit.Type = p.universe.String
	return lit
}

func parseBoolLit(p *Parser) exprNode {
	tok := p.cur
	p.advance()
	lit := &ast.LiteralExpr{LitKind: ast.LitBool, BoolValue: tok.Type == scanner.TRUE}
	lit.StartPos = p.tokPos(tok)
	lit.Stop = p.tokPos(tok)
	lit.SetRValue(true)
	lit.Type = p.universe.Bool
	return lit
}

// parseIdentPrimary resolves an identifier use, per resolve_id: on miss it
// is an "undeclared identifier" error; if the resolved binding is an
// expression, its type flows onto this node; if it is a type, this
// identifier-expression itself denotes a type-reference (used inside
// argument type positions and struct-literal names); otherwise the name
// cannot be used as an expression at all.
func parseIdentPrimary(p *Parser) exprNode {
	tok := p.cur
	name := tok.Lexeme
	p.advance()

	if p.cur.Type == scanner.LEFT_BRACE {
		if isStructName(p, name) {
			return p.parseStructLiteral(tok, name)
		}
	}

	id := &ast.IdentExpr{Name: name}
	id.StartPos = p.tokPos(tok)
	id.Stop = p.tokPos(tok)
	id.SetRValue(true)

	ref, ok := p.lookup(name)
	if !ok {
		p.errorAt(tok, "undeclared identifier %q", name)
		id.Type = p.universe.Void
		id.Flags |= ast.FlagBad
		return id
	}
	id.Ref = ref
	switch v := ref.(type) {
	case *types.Type:
		id.Type = v
	case *ast.Function:
		id.Type = v.FuncType
		v.NRefs++
	case *ast.FunctionParam:
		id.Type = v.Type
		v.NRefs++
	case ast.Expr:
		id.Type = v.ExprType()
		bumpRefs(ref)
	case bool:
		id.Type = p.universe.Bool
	default:
		p.errorAt(tok, "%q cannot be used as an expression", name)
		id.Type = p.universe.Void
		id.Flags |= ast.FlagBad
	}
	return id
}

func isStructName(p *Parser, name string) bool {
	v, ok := p.pkgdefs[name]
	if !ok {
		return false
	}
	t, ok := v.(*types.Type)
	return ok && t.Kind == types.Struct
}

// bumpRefs increments the reference counter on whatever binding kind ref
// is; used both by ordinary identifier resolution and by the if-narrowing
// re-attribution pass.
func bumpRefs(ref any) {
	switch b := ref.(type) {
	case *ast.FunctionParam:
		b.NRefs++
	case *ast.LetStmt:
		b.NRefs++
	case *ast.VarStmt:
		b.NRefs++
	case *ast.Function:
		b.NRefs++
	case *ast.IdentExpr:
		// A narrowed if-condition's shadow binding: attribute the reference
		// to the original binding it shadows, not the shadow itself.
		bumpRefs(b.Ref)
	}
}

func parseParenExpr(p *Parser) exprNode {
	open := p.cur
	p.advance()
	inner := p.parseExpr(PrecComma)
	p.consume(scanner.RIGHT_PAREN, "expected ')' to close parenthesized expression")
	pe := &ast.ParenExpr{Inner: inner}
	pe.StartPos = p.tokPos(open)
	pe.Stop = p.tokPos(p.prev)
	pe.Type = inner.ExprType()
	pe.SetRValue(true)
	return pe
}

func parseUnaryPrefix(p *Parser) exprNode {
	op := p.cur
	p.advance()
	// Fold an immediately-following numeric literal so that e.g.
	// -9223372036854775808 does not first overflow as negate(9223372036854775808).
	if op.Type == scanner.MINUS && (p.cur.Type == scanner.INT_LIT || p.cur.Type == scanner.FLOAT_LIT) {
		lit := p.cur
		p.advance()
		var val ast.Expr
		if lit.Type == scanner.INT_LIT {
			val = p.intLit(lit, true)
		} else {
			val = p.floatLit(lit, true)
		}
		u := &ast.UnaryExpr{Op: ast.UnNeg, Operand: val}
		u.StartPos = p.tokPos(op)
		u.Stop = val.EndPos()
		u.Type = val.ExprType()
		u.SetRValue(true)
		return u
	}

	operand := p.parseExpr(PrecUnaryPrefix)
	uop := ast.UnaryOp(op.Lexeme)
	u := &ast.UnaryExpr{Op: uop, Operand: operand}
	u.StartPos = p.tokPos(op)
	u.Stop = operand.EndPos()
	u.SetRValue(true)
	if uop == ast.UnNot {
		u.Type = p.universe.Bool
	} else {
		u.Type = operand.ExprType()
	}
	return u
}

func parseBinary(p *Parser, left exprNode) exprNode {
	op := p.cur
	rule := exprTable[op.Type]
	p.advance()
	right := p.parseExpr(rule.prec + 1)
	b := &ast.BinaryExpr{Op: ast.BinaryOp(op.Lexeme), Left: left, Right: right}
	b.StartPos = left.Pos()
	b.Stop = right.EndPos()
	b.SetRValue(true)
	switch b.Op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpAnd, ast.OpOr:
		b.Type = p.universe.Bool
	default:
		b.Type = left.ExprType()
	}
	return b
}

// parseAssign builds an assignment; left must be assignable (identifier,
// field access, or a leading dereference) though this is not currently
// enforced with a hard error — a later semantic pass is expected to tighten
// it once whole-program analysis exists.
func parseAssign(p *Parser, left exprNode) exprNode {
	op := p.cur
	p.advance()
	right := p.parseExpr(PrecAssign)
	a := &ast.AssignStmt{Target: left, Op: ast.AssignOp(op.Lexeme), Value: right}
	a.StartPos = left.Pos()
	a.Stop = right.EndPos()
	a.Type = p.universe.Void
	a.SetRValue(false)
	return a
}

func parseCallExpr(p *Parser, callee exprNode) exprNode {
	p.advance() // '('
	var args []ast.Expr
	p.pushTypectx(p.universe.Void)
	for !p.check(scanner.RIGHT_PAREN) && p.cur.Type != scanner.EOF {
		args = append(args, p.parseExpr(PrecComma+1))
		if !p.match(scanner.COMMA) {
			break
		}
	}
	p.popTypectx()
	p.consume(scanner.RIGHT_PAREN, "expected ')' to close call arguments")
	c := &ast.CallExpr{Callee: callee, Args: args, NamedArgs: make([]string, len(args))}
	c.StartPos = callee.Pos()
	c.Stop = p.tokPos(p.prev)
	c.SetRValue(true)
	if id, ok := callee.(*ast.IdentExpr); ok {
		if fn, ok := id.Ref.(*ast.Function); ok {
			c.Type = fn.Result
			return c
		}
	}
	c.Type = p.universe.Void
	return c
}

func parseDotShorthand(p *Parser) exprNode {
	dot := p.cur
	p.advance()
	name := p.cur.Lexeme
	p.consume(scanner.IDENTIFIER, "expected a field name after '.'")
	recv := p.topDotctx()
	f := &ast.FieldAccessExpr{Name: name, DotShorthand: true}
	f.StartPos = p.tokPos(dot)
	f.Stop = p.tokPos(p.prev)
	f.SetRValue(true)
	if recv == nil {
		p.errorAt(dot, "leading '.' shorthand used outside a method body")
		f.Type = p.universe.Void
		f.Flags |= ast.FlagBad
		return f
	}
	f.Type = fieldTypeOn(p, recv.Type, name, dot)
	return f
}

func parseFieldAccess(p *Parser, target exprNode) exprNode {
	dot := p.cur
	p.advance()
	name := p.cur.Lexeme
	p.consume(scanner.IDENTIFIER, "expected a field name after '.'")
	f := &ast.FieldAccessExpr{Target: target, Name: name}
	f.StartPos = target.Pos()
	f.Stop = p.tokPos(p.prev)
	f.SetRValue(true)
	f.Type = fieldTypeOn(p, target.ExprType(), name, dot)
	return f
}

func fieldTypeOn(p *Parser, recv *types.Type, name string, at scanner.Token) *types.Type {
	base := recv
	for base != nil && (base.Kind == types.Ref || base.Kind == types.Ptr) {
		base = base.Elem
	}
	if base == nil {
		return p.universe.Void
	}
	if base.Kind == types.Struct {
		for _, f := range base.Fields {
			if p.interner.String(f.Name) == name {
				return f.Type
			}
		}
		if fn, ok := p.methods[base][name]; ok {
			return fn.Result
		}
	}
	p.errorAt(at, "no field or method %q on this type", name)
	return p.universe.Void
}

// parseSubscript resolves the open question in SPEC_FULL.md: subscript
// expressions are rejected with a diagnostic rather than defined, since the
// type system this front end implements has no slice/array indexing rule
// specified yet.
func parseSubscript(p *Parser, target exprNode) exprNode {
	open := p.cur
	p.advance()
	idx := p.parseExpr(PrecLowest)
	p.consume(scanner.RIGHT_BRACKET, "expected ']' to close subscript")
	p.errorAt(open, "subscript expressions are not supported")
	bad := p.mkBadExpr()
	bad.StartPos = target.Pos()
	_ = idx
	return bad
}

func parseRefExpr(p *Parser) exprNode {
	amp := p.cur
	p.advance()
	return p.finishRef(amp, false)
}

func parseMutRefExpr(p *Parser) exprNode {
	mut := p.cur
	p.advance()
	if !p.check(scanner.AMPERSAND) {
		p.errorAt(p.cur, "expected '&' after 'mut'")
		return p.mkBadExpr()
	}
	p.advance()
	return p.finishRef(mut, true)
}

// finishRef implements expr_ref1: taking a reference to a reference is an
// error; taking any reference of a non-storage-form operand is an error
// ("referencing ephemeral value"); a mutable reference additionally
// requires the operand to be mutable.
func (p *Parser) finishRef(at scanner.Token, mut bool) exprNode {
	operand := p.parseExpr(PrecUnaryPrefix)
	r := &ast.RefExpr{Operand: operand, Mut: mut}
	r.StartPos = p.tokPos(at)
	r.Stop = operand.EndPos()
	r.SetRValue(true)

	if operand.ExprType() != nil && operand.ExprType().Kind == types.Ref {
		p.errorAt(at, "referencing reference type")
	} else if !exprIsStorage(operand) {
		p.errorAt(at, "referencing ephemeral value")
	} else if mut && !exprIsMut(operand) {
		p.errorAt(at, "mutable reference to immutable value")
	}

	r.Type = p.store.RefType(operand.ExprType(), mut, p.cfg.PointerSize)
	return r
}

// derefPrefix is STAR's prefix parselet ("*p"); STAR's infix parselet is the
// generic parseBinary, which handles multiplication via the "*" lexeme.
func derefPrefix(p *Parser) exprNode {
	star := p.cur
	p.advance()
	operand := p.parseExpr(PrecUnaryPrefix)
	d := &ast.DerefExpr{Operand: operand}
	d.StartPos = p.tokPos(star)
	d.Stop = operand.EndPos()
	d.SetRValue(true)
	if operand.ExprType() == nil || operand.ExprType().Kind != types.Ref {
		p.errorAt(star, "dereferencing non-reference value")
		d.Type = p.universe.Void
	} else {
		d.Type = operand.ExprType().Elem
	}
	return d
}

// exprIsStorage mirrors expr_isstorage: an identifier bound to a parameter,
// let, var, or function, a field access, or a dereference, is storage-form
// and may have its address taken.
func exprIsStorage(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.IdentExpr:
		switch v.Ref.(type) {
		case *ast.FunctionParam, *ast.LetStmt, *ast.VarStmt, *ast.Function:
			return true
		}
		return false
	case *ast.FieldAccessExpr:
		return true
	case *ast.DerefExpr:
		return true
	case *ast.ParenExpr:
		return exprIsStorage(v.Inner)
	default:
		return false
	}
}

// exprIsMut mirrors expr_ismut: a let binding is storage but never
// mutable; a var or a mutable parameter is.
func exprIsMut(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.IdentExpr:
		switch b := v.Ref.(type) {
		case *ast.VarStmt:
			return true
		case *ast.FunctionParam:
			return b.Mut
		default:
			return false
		}
	case *ast.FieldAccessExpr:
		if v.Target != nil {
			return exprIsMut(v.Target)
		}
		return true
	case *ast.ParenExpr:
		return exprIsMut(v.Inner)
	default:
		return false
	}
}
