package parser

import (
	"testing"

	"vela/internal/ast"
	"vela/internal/diag"
	"vela/internal/scanner"
	"vela/internal/sym"
	"vela/internal/types"
)

func newTestParser(src string) (*Parser, *diag.Channel) {
	in := sym.NewInterner(scanner.Keywords())
	u := types.NewUniverse(in, 8)
	store := types.NewStore(in)
	ch := diag.New(nil)
	return New("test.vl", []byte(src), in, u, store, ch, Config{PointerSize: 8, IntSize: 8}), ch
}

func TestParseLetStmtWithLiteral(t *testing.T) {
	p, ch := newTestParser("let x = 42;")
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	if len(unit.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(unit.Items))
	}
	let, ok := unit.Items[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", unit.Items[0])
	}
	if let.Name != "x" {
		t.Errorf("expected name x, got %q", let.Name)
	}
}

func TestParseFunctionRoundTrip(t *testing.T) {
	p, ch := newTestParser(`
fun add(a, b i32) i32 {
	return a + b;
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	fn, ok := unit.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", unit.Items[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("expected add/2 params, got %s/%d", fn.Name, len(fn.Params))
	}
}

func TestParseStructWithSelfReferentialField(t *testing.T) {
	p, ch := newTestParser(`
struct Node {
	value i32;
	next &Node;
}
`)
	p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
}

func TestIntLiteralDefaultsToNativeInt(t *testing.T) {
	p, ch := newTestParser("let x = 5;")
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	let := unit.Items[0].(*ast.LetStmt)
	lit := let.Value.(*ast.LiteralExpr)
	if lit.ExprType() != p.universe.Int {
		t.Errorf("expected un-contexted literal to default to native int")
	}
}

func TestIntLiteralOverflowsFixedWidthContext(t *testing.T) {
	p, ch := newTestParser("let x u8 = 300;")
	p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected an overflow diagnostic for 300 in a u8 context")
	}
}

func TestDereferenceOfNonReferenceRejected(t *testing.T) {
	p, ch := newTestParser("let x = 5; let y = *x;")
	p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected an error dereferencing a non-reference value")
	}
}

func TestSubscriptAlwaysRejected(t *testing.T) {
	p, ch := newTestParser("let xs = 5; let y = xs[0];")
	p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected subscripting to be rejected")
	}
}

func TestIfExprNarrowsOptionalInThenBranch(t *testing.T) {
	p, ch := newTestParser(`
fun f(x ?i32) i32 {
	if x {
		return x;
	}
	return 0;
}
`)
	p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors narrowing an optional condition: %v", ch.All())
	}
}

func TestRedefinitionInSameScopeRejected(t *testing.T) {
	p, ch := newTestParser("let x = 1; let x = 2;")
	p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected redefinition of x in the same scope to be rejected")
	}
	all := ch.All()
	last := all[len(all)-1]
	if len(last.Notes) == 0 {
		t.Fatal("expected the redefinition diagnostic to carry a note pointing at the prior definition")
	}
}

func TestGroupedParametersShareOneTrailingType(t *testing.T) {
	p, ch := newTestParser(`
fun add(x, y int) int {
	return x + y;
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	fn := unit.Items[0].(*ast.Function)
	if len(fn.Params) != 2 || fn.Params[0].Name != "x" || fn.Params[1].Name != "y" {
		t.Fatalf("expected params x, y, got %+v", fn.Params)
	}
	if fn.Params[0].Type != fn.Params[1].Type {
		t.Errorf("expected x and y to share the cascaded type")
	}
}

func TestTypeOnlyParametersArePositional(t *testing.T) {
	p, ch := newTestParser(`
fun f(int, int) int {
	return 0;
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	fn := unit.Items[0].(*ast.Function)
	if len(fn.Params) != 2 || fn.Params[0].Name != "_" || fn.Params[1].Name != "_" {
		t.Fatalf("expected two unnamed positional params, got %+v", fn.Params)
	}
}

func TestTypeDeclStructLiteralParses(t *testing.T) {
	p, ch := newTestParser(`
type Point {
	x, y int;
	fun len(this) int {
		return this.x;
	}
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	td, ok := unit.Items[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", unit.Items[0])
	}
	if td.Resolved.Kind != types.Struct || len(td.Resolved.Fields) != 2 {
		t.Fatalf("expected a 2-field struct type, got %+v", td.Resolved)
	}
}

func TestSmallImmutableReceiverPassedByValue(t *testing.T) {
	p, ch := newTestParser(`
type Point {
	x, y int;
	fun len(this) int {
		return this.x;
	}
}
`)
	p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	pointType, ok := p.pkgdefs["Point"].(*types.Type)
	if !ok {
		t.Fatalf("expected Point to resolve to a type")
	}
	fn := p.methods[pointType]["len"]
	if fn == nil || len(fn.Params) == 0 {
		t.Fatalf("expected len to have a this param")
	}
	if fn.Params[0].Type.Kind != types.Struct {
		t.Errorf("expected a small immutable struct receiver to pass this by value, got %s", fn.Params[0].Type.Kind)
	}
}

func TestMutableReceiverAlwaysByReference(t *testing.T) {
	p, ch := newTestParser(`
type Point {
	x, y int;
	fun bump(mut this) {
		this.x = 1;
	}
}
`)
	p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	pointType, ok := p.pkgdefs["Point"].(*types.Type)
	if !ok {
		t.Fatalf("expected Point to resolve to a type")
	}
	fn := p.methods[pointType]["bump"]
	if fn == nil || len(fn.Params) == 0 {
		t.Fatalf("expected bump to have a this param")
	}
	if fn.Params[0].Type.Kind != types.Ref {
		t.Errorf("expected a mutable receiver to pass this by reference, got %s", fn.Params[0].Type.Kind)
	}
}

func TestIfConditionMustBeBoolOrOptional(t *testing.T) {
	p, ch := newTestParser(`
fun f() int {
	if 5 {
		return 1;
	}
	return 0;
}
`)
	p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected a non-bool, non-optional if condition to be rejected")
	}
}

func TestNegativeLiteralOverflowingI64StaysI64(t *testing.T) {
	p, ch := newTestParser("let x = -10000000000000000000;")
	unit := p.Parse()
	if !ch.HasErrors() {
		t.Fatal("expected an overflow diagnostic for a negative literal beyond i64's range")
	}
	let := unit.Items[0].(*ast.LetStmt)
	if let.Value.ExprType() != p.universe.I64 {
		t.Errorf("expected the overflowed negative literal to stay typed i64, got %s", let.Value.ExprType().Kind)
	}
}

func TestNarrowedOptionalBumpsOriginalBindingRefs(t *testing.T) {
	p, ch := newTestParser(`
fun f(x ?i32) i32 {
	if x {
		return x;
	}
	return 0;
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	fn := unit.Items[0].(*ast.Function)
	if fn.Params[0].NRefs == 0 {
		t.Errorf("expected the narrowed use of x inside the then-branch to bump the original param's NRefs")
	}
}

func TestIfNarrowingVisibleInElseBranch(t *testing.T) {
	p, ch := newTestParser(`
fun f(x ?i32) i32 {
	if x {
		return 0;
	} else {
		return x;
	}
}
`)
	unit := p.Parse()
	if ch.HasErrors() {
		t.Fatalf("unexpected errors: %v", ch.All())
	}
	fn := unit.Items[0].(*ast.Function)
	ifx, ok := fn.Body.Items[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected *ast.IfExpr, got %T", fn.Body.Items[0])
	}
	elseBlock, ok := ifx.Else.(*ast.Block)
	if !ok {
		t.Fatalf("expected an else block, got %T", ifx.Else)
	}
	ret := elseBlock.Items[0].(*ast.ReturnStmt)
	id, ok := ret.Value.(*ast.IdentExpr)
	if !ok {
		t.Fatalf("expected an identifier expression, got %T", ret.Value)
	}
	if id.Type == nil || id.Type.Kind != types.I32 {
		t.Fatalf("expected x in the else-branch to resolve narrowed to i32, got %v", id.Type)
	}
	if fn.Params[0].NRefs == 0 {
		t.Errorf("expected the narrowed use of x inside the else-branch to bump the original param's NRefs")
	}
}
