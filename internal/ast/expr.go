package ast

// BinaryOp and UnaryOp enumerate the operator lexemes recognized by the
// expression parselet tables.
type BinaryOp string

const (
	OpAdd    BinaryOp = "+"
	OpSub    BinaryOp = "-"
	OpMul    BinaryOp = "*"
	OpDiv    BinaryOp = "/"
	OpMod    BinaryOp = "%"
	OpEq     BinaryOp = "=="
	OpNe     BinaryOp = "!="
	OpLt     BinaryOp = "<"
	OpLe     BinaryOp = "<="
	OpGt     BinaryOp = ">"
	OpGe     BinaryOp = ">="
	OpAnd    BinaryOp = "&&"
	OpOr     BinaryOp = "||"
	OpBitOr  BinaryOp = "|"
	OpBitXor BinaryOp = "^"
	OpBitAnd BinaryOp = "&"
	OpShl    BinaryOp = "<<"
	OpShr    BinaryOp = ">>"
)

type UnaryOp string

const (
	UnNeg  UnaryOp = "-"
	UnNot  UnaryOp = "!"
	UnPlus UnaryOp = "+"
)

// BinaryExpr is a left op right expression.
type BinaryExpr struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) Kind() NodeType { return NBinaryExpr }
func (*BinaryExpr) isExpr()        {}

// UnaryExpr is a prefix op operand expression (not ref/deref, which get
// their own node kinds because they carry extra validation state).
type UnaryExpr struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) Kind() NodeType { return NUnaryExpr }
func (*UnaryExpr) isExpr()        {}

// CallExpr is callee(args...).
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
	// NamedArgs has one entry per Args element; empty string means
	// positional. The parser accepts positional arguments only, so every
	// entry it stores is empty.
	NamedArgs []string
}

func (*CallExpr) Kind() NodeType { return NCallExpr }
func (*CallExpr) isExpr()        {}

// FieldAccessExpr is target.Name (member access or leading-dot shorthand
// when Target is nil and DotShorthand is set).
type FieldAccessExpr struct {
	ExprBase
	Target       Expr
	Name         string
	DotShorthand bool
}

func (*FieldAccessExpr) Kind() NodeType { return NFieldAccessExpr }
func (*FieldAccessExpr) isExpr()        {}

// IndexExpr represents a subscript expression. Per the resolved open
// question in SPEC_FULL.md, the parser never produces a well-formed one: it
// always reports a diagnostic and yields a bad node instead. The type is
// retained only so a partially-built AST can still be walked uniformly.
type IndexExpr struct {
	ExprBase
	Target, Index Expr
}

func (*IndexExpr) Kind() NodeType { return NIndexExpr }
func (*IndexExpr) isExpr()        {}

// StructLiteralField is one `name: expr` or `name` (shorthand) entry of a
// struct literal.
type StructLiteralField struct {
	base
	Name  string
	Value Expr // nil for shorthand `name` meaning `name: name`
}

func (*StructLiteralField) Kind() NodeType { return NStructLiteralField }

// StructLiteralExpr is `Name { field: value, ... }`.
type StructLiteralExpr struct {
	ExprBase
	Name   string
	Fields []*StructLiteralField
}

func (*StructLiteralExpr) Kind() NodeType { return NStructLiteralExpr }
func (*StructLiteralExpr) isExpr()        {}

// LiteralKind discriminates LiteralExpr's payload.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
)

// LiteralExpr is an integer, float, string, or boolean literal. IntValue is
// the accumulated unsigned magnitude before sign application; FloatValue is
// the parsed float64 (or float32-rounded value when the type context was
// f32); IsNeg records whether a unary minus was folded into a numeric
// literal by the parser's lookahead in expr_prefix_op.
type LiteralExpr struct {
	ExprBase
	LitKind    LiteralKind
	IntValue   uint64
	FloatValue float64
	StringValue string
	BoolValue  bool
	IsNeg      bool
	Overflowed bool
}

func (*LiteralExpr) Kind() NodeType { return NLiteralExpr }
func (*LiteralExpr) isExpr()        {}

// IdentExpr is a use-site reference to a name resolved through the scope
// stack or the package-defs map. Ref points at whatever binding lookup
// found: *ast.FunctionParam, *ast.LetStmt, *ast.VarStmt, *ast.Function,
// *ast.StructField, or a *types.Type when the identifier names a type.
type IdentExpr struct {
	ExprBase
	Name string
	Ref  any
}

func (*IdentExpr) Kind() NodeType { return NIdentExpr }
func (*IdentExpr) isExpr()        {}

// RefExpr is `&x` or `mut &x`.
type RefExpr struct {
	ExprBase
	Operand Expr
	Mut     bool
}

func (*RefExpr) Kind() NodeType { return NRefExpr }
func (*RefExpr) isExpr()        {}

// DerefExpr is `*p`.
type DerefExpr struct {
	ExprBase
	Operand Expr
}

func (*DerefExpr) Kind() NodeType { return NDerefExpr }
func (*DerefExpr) isExpr()        {}

// ParenExpr is `(expr)`, kept as its own node so source ranges round-trip;
// its Type mirrors Inner's.
type ParenExpr struct {
	ExprBase
	Inner Expr
}

func (*ParenExpr) Kind() NodeType { return NParenExpr }
func (*ParenExpr) isExpr()        {}

// IfExpr is `if cond thenBlock [else elseBlock]`. NarrowedIdent is set when
// Cond is a bare optional-typed identifier; it is the shadow binding, of the
// non-optional element type, visible inside both Then and Else. Let/var
// conditions are not narrowed.
type IfExpr struct {
	ExprBase
	Cond           Expr
	Then           *Block
	Else           Node // *Block or *IfExpr (else-if chain) or nil
	NarrowedIdent  *IdentExpr
}

func (*IfExpr) Kind() NodeType { return NIfExpr }
func (*IfExpr) isExpr()        {}

// Block is a brace-delimited sequence of statement-expressions. Only the
// final expression may carry the block's r-value when the block itself
// appears in r-value context; every other expression has its r-value flag
// cleared (SPEC_FULL.md's resolution of the l-value/r-value open question).
type Block struct {
	ExprBase
	Items []Expr
}

func (*Block) Kind() NodeType { return NBlock }
func (*Block) isExpr()        {}

// BadExpr is the sentinel returned by a parselet that could not construct a
// well-formed node; its Type is types.Void, the placeholder every
// unresolved expression carries until (if ever) something more specific
// is known.
type BadExpr struct {
	ExprBase
}

func (*BadExpr) Kind() NodeType { return NBadNode }
func (*BadExpr) isExpr()        {}
