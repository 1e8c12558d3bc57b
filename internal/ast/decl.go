package ast

import "vela/internal/types"

// Unit is the root node returned by one Parse call: its children are the
// top-level statements/declarations of a single input.
type Unit struct {
	base
	Items []Node
}

func (*Unit) Kind() NodeType { return NUnit }

// FunctionParam is one parameter of a Function, after the three accepted
// declaration forms (name-and-type groups, type-only, leading this/mut
// this) have been normalized to a uniform (Name, Type, IsThis, Mut) shape.
type FunctionParam struct {
	base
	Name    string
	Type    *types.Type
	IsThis  bool
	Mut     bool // `mut this` or a `var`-like mutable parameter
	NRefs   int
}

func (*FunctionParam) Kind() NodeType { return NFunctionParam }

// Function is a top-level `fun` declaration, or a struct-nested method
// (MethodOf != nil).
type Function struct {
	base
	Name      string
	Params    []*FunctionParam
	Result    *types.Type
	Reads     []*types.Type
	Writes    []*types.Type
	Body      *Block
	FuncType  *types.Type // canonical Func type from types.Store.FuncType
	MethodOf  *types.Type // non-nil when this is a method
	NRefs     int
}

func (*Function) Kind() NodeType { return NFunction }

// StructField is one field of a StructDecl.
type StructField struct {
	base
	Name  string
	Type  *types.Type
	Init  Expr // optional per-field initializer
}

func (*StructField) Kind() NodeType { return NStructField }

// StructDecl is `struct Name { fields...; fun methods()... }`.
type StructDecl struct {
	base
	Name    string
	Fields  []*StructField
	Methods []*Function
	Type    *types.Type // the canonicalized struct type
}

func (*StructDecl) Kind() NodeType { return NStructDecl }

// TypeDecl is `type Name TypeExpr`. Per stmt_typedef's behavior, the parser
// both defines Name as this typedef node (so redefinition detection works
// like any other top-level name) and separately rebinds Name in scope
// directly to Resolved, bypassing the typedef indirection for later
// lookups.
type TypeDecl struct {
	base
	Name     string
	Resolved *types.Type
}

func (*TypeDecl) Kind() NodeType { return NTypeDecl }

// UseDecl is `use path::to::module;`.
type UseDecl struct {
	base
	Path []string
}

func (*UseDecl) Kind() NodeType { return NUseDecl }

// LetStmt is an immutable binding: `let name [Type] = expr;`. Per
// expr_isstorage/expr_ismut, a let binding is storage but never mutable.
type LetStmt struct {
	ExprBase
	Name  string
	Type  *types.Type
	Value Expr
	NRefs int
}

func (*LetStmt) Kind() NodeType { return NLetStmt }
func (*LetStmt) isExpr()        {}

// VarStmt is a mutable binding: `var name [Type] = expr;`.
type VarStmt struct {
	ExprBase
	Name  string
	Type  *types.Type
	Value Expr
	NRefs int
}

func (*VarStmt) Kind() NodeType { return NVarStmt }
func (*VarStmt) isExpr()        {}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	ExprBase
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) Kind() NodeType { return NReturnStmt }
func (*ReturnStmt) isExpr()        {}

// AssertStmt is `assert!(args...);`.
type AssertStmt struct {
	ExprBase
	Args []Expr
}

func (*AssertStmt) Kind() NodeType { return NAssertStmt }
func (*AssertStmt) isExpr()        {}

// AssignOp enumerates plain and compound assignment operators.
type AssignOp string

const (
	AssignPlain AssignOp = "="
	AssignAdd   AssignOp = "+="
	AssignSub   AssignOp = "-="
	AssignMul   AssignOp = "*="
	AssignDiv   AssignOp = "/="
)

// AssignStmt is `target op= value;` where target is an assignable
// expression (identifier, field access, or a leading dereference).
type AssignStmt struct {
	ExprBase
	Target Expr
	Op     AssignOp
	Value  Expr
}

func (*AssignStmt) Kind() NodeType { return NAssignStmt }
func (*AssignStmt) isExpr()        {}

// ExprStmt is a wrapper node for an expression in statement position. The
// parser does not build it: a block's items hold the expressions
// themselves, with the r-value flag cleared on every item except the tail.
type ExprStmt struct {
	ExprBase
	X Expr
}

func (*ExprStmt) Kind() NodeType { return NExprStmt }
func (*ExprStmt) isExpr()        {}
