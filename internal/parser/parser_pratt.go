package parser

import "vela/internal/scanner"

// exprRule is one entry of the expression parselet table: an optional
// prefix parser, an optional infix parser, and this token's infix
// precedence.
type exprRule struct {
	prefix func(p *Parser) exprNode
	infix  func(p *Parser, left exprNode) exprNode
	prec   Precedence
}

var exprTable map[scanner.TokenType]exprRule

func init() {
	exprTable = map[scanner.TokenType]exprRule{
		scanner.IDENTIFIER:  {prefix: parseIdentPrimary},
		scanner.THIS:        {prefix: parseIdentPrimary},
		scanner.INT_LIT:     {prefix: parseIntLit},
		scanner.FLOAT_LIT:   {prefix: parseFloatLit},
		scanner.STRING_LIT:  {prefix: parseStringLit},
		scanner.TRUE:        {prefix: parseBoolLit},
		scanner.FALSE:       {prefix: parseBoolLit},
		scanner.LEFT_PAREN:  {prefix: parseParenExpr, infix: parseCallExpr, prec: PrecUnaryPostfix},
		scanner.LEFT_BRACE:  {prefix: parseBlockExprPrefix},
		scanner.IF:          {prefix: parseIfExpr},
		scanner.MINUS:       {prefix: parseUnaryPrefix, infix: parseBinary, prec: PrecAdd},
		scanner.BANG:        {prefix: parseUnaryPrefix},
		scanner.AMPERSAND:   {prefix: parseRefExpr, infix: parseBinary, prec: PrecBitAnd},
		scanner.MUT:         {prefix: parseMutRefExpr},
		scanner.STAR:        {prefix: derefPrefix, infix: parseBinary, prec: PrecMul},
		scanner.DOT:         {prefix: parseDotShorthand, infix: parseFieldAccess, prec: PrecMember},
		scanner.LEFT_BRACKET: {infix: parseSubscript, prec: PrecUnaryPostfix},

		scanner.PLUS:            {infix: parseBinary, prec: PrecAdd},
		scanner.SLASH:           {infix: parseBinary, prec: PrecMul},
		scanner.PERCENT:         {infix: parseBinary, prec: PrecMul},
		scanner.EQUAL_EQUAL:     {infix: parseBinary, prec: PrecEq},
		scanner.BANG_EQUAL:      {infix: parseBinary, prec: PrecEq},
		scanner.LESS:            {infix: parseBinary, prec: PrecCmp},
		scanner.LESS_EQUAL:      {infix: parseBinary, prec: PrecCmp},
		scanner.GREATER:         {infix: parseBinary, prec: PrecCmp},
		scanner.GREATER_EQUAL:   {infix: parseBinary, prec: PrecCmp},
		scanner.LESS_LESS:       {infix: parseBinary, prec: PrecShift},
		scanner.GREATER_GREATER: {infix: parseBinary, prec: PrecShift},
		scanner.AND:             {infix: parseBinary, prec: PrecAnd},
		scanner.OR:              {infix: parseBinary, prec: PrecOr},
		scanner.PIPE:            {infix: parseBinary, prec: PrecBitOr},
		scanner.CARET:           {infix: parseBinary, prec: PrecBitXor},

		scanner.EQUAL:         {infix: parseAssign, prec: PrecAssign},
		scanner.PLUS_EQUAL:    {infix: parseAssign, prec: PrecAssign},
		scanner.MINUS_EQUAL:   {infix: parseAssign, prec: PrecAssign},
		scanner.STAR_EQUAL:    {infix: parseAssign, prec: PrecAssign},
		scanner.SLASH_EQUAL:   {infix: parseAssign, prec: PrecAssign},
	}
}

// parseExpr is the Pratt engine's outer loop for expressions (statements
// and types have their own parse functions): look up the prefix parselet for the current
// token, invoke it, then repeatedly invoke the current token's infix
// parselet while its precedence is at least minPrec.
func (p *Parser) parseExpr(minPrec Precedence) exprNode {
	rule, ok := exprTable[p.cur.Type]
	if !ok || rule.prefix == nil {
		p.errorAt(p.cur, "unexpected token where an expression is expected")
		bad := p.mkBadExpr()
		p.synchronize()
		return bad
	}
	left := rule.prefix(p)

	for {
		rule, ok := exprTable[p.cur.Type]
		if !ok || rule.infix == nil || rule.prec < minPrec {
			break
		}
		left = rule.infix(p, left)
	}
	return left
}
