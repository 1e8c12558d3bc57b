package parser

import "vela/internal/ast"

// exprNode aliases ast.Expr so the parselet tables read a little closer to
// the parser's own vocabulary without every file in this package needing
// its own ast import for the alias.
type exprNode = ast.Expr
