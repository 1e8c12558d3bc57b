// Package ast defines the polymorphic AST produced by the parser: tagged
// variants sharing a common (kind, position, flags) prefix via embedding,
// not virtual dispatch. The three parselet tables in internal/parser
// replace class-hierarchy dispatch with function-pointer tables indexed by
// token tag; this package only needs a discriminant, not an interface
// hierarchy per node kind.
package ast

import (
	"vela/internal/diag"
	"vela/internal/types"
)

// Position and Range are the AST's source-location vocabulary, shared with
// the diagnostics channel so a node's location can be reported directly.
type Position = diag.Position
type Range = diag.Range

// NodeType tags the underlying storage shape of a Node.
type NodeType int

const (
	NUnit NodeType = iota
	NFunction
	NFunctionParam
	NBlock
	NLetStmt
	NVarStmt
	NReturnStmt
	NAssertStmt
	NExprStmt
	NAssignStmt
	NBinaryExpr
	NUnaryExpr
	NCallExpr
	NFieldAccessExpr
	NIndexExpr
	NStructLiteralExpr
	NStructLiteralField
	NLiteralExpr
	NIdentExpr
	NIfExpr
	NRefExpr
	NDerefExpr
	NParenExpr
	NStructDecl
	NStructField
	NTypeDecl
	NUseDecl
	NBadNode
)

var nodeTypeNames = [...]string{
	"Unit", "Function", "FunctionParam", "Block", "LetStmt",
	"VarStmt", "ReturnStmt", "AssertStmt", "ExprStmt", "AssignStmt",
	"BinaryExpr", "UnaryExpr", "CallExpr", "FieldAccessExpr", "IndexExpr",
	"StructLiteralExpr", "StructLiteralField", "LiteralExpr", "IdentExpr",
	"IfExpr", "RefExpr", "DerefExpr", "ParenExpr", "StructDecl",
	"StructField", "TypeDecl", "UseDecl", "BadNode",
}

func (n NodeType) String() string {
	if int(n) < len(nodeTypeNames) {
		return nodeTypeNames[n]
	}
	return "Invalid"
}

// Node is implemented by every AST variant.
type Node interface {
	Pos() Position
	EndPos() Position
	Kind() NodeType
}

// base is embedded by every node to supply Pos/EndPos; Kind is still
// implemented per-type since it must return a distinct constant.
type base struct {
	StartPos Position
	Stop     Position
}

func (b base) Pos() Position    { return b.StartPos }
func (b base) EndPos() Position { return b.Stop }

// Flags recorded on expression and block nodes.
type Flags uint16

const (
	FlagRValue Flags = 1 << iota
	FlagExits
	FlagUnreachable
	FlagShadowsOptional
	FlagOptionalNarrowed
	FlagBad
)

// ExprBase is embedded by every expression node. It carries the resolved
// type (never nil after construction; unresolved expressions point at
// types.Void as a placeholder) and the flag/reference-count bookkeeping the
// parser threads through construction.
type ExprBase struct {
	base
	Type  *types.Type
	Flags Flags
	NRefs int
}

func (e *ExprBase) ExprType() *types.Type     { return e.Type }
func (e *ExprBase) SetExprType(t *types.Type) { e.Type = t }
func (e *ExprBase) IsRValue() bool            { return e.Flags&FlagRValue != 0 }
func (e *ExprBase) SetRValue(v bool) {
	if v {
		e.Flags |= FlagRValue
	} else {
		e.Flags &^= FlagRValue
	}
}
func (e *ExprBase) IsBad() bool { return e.Flags&FlagBad != 0 }

// Expr is implemented by every expression node.
type Expr interface {
	Node
	ExprType() *types.Type
	SetExprType(*types.Type)
	IsRValue() bool
	SetRValue(bool)
	isExpr()
}
