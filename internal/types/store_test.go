package types

import (
	"testing"

	"vela/internal/sym"
)

func TestFuncTypeIdentity(t *testing.T) {
	in := sym.NewInterner(nil)
	u := NewUniverse(in, 8)
	store := NewStore(in)

	f1 := store.FuncType([]*Type{u.Int, u.Int}, u.Int)
	f2 := store.FuncType([]*Type{u.Int, u.Int}, u.Int)
	if f1 != f2 {
		t.Fatal("expected structurally identical function types to canonicalize to one pointer")
	}

	f3 := store.FuncType([]*Type{u.Int, u.Bool}, u.Int)
	if f1 == f3 {
		t.Fatal("expected structurally different function types to remain distinct")
	}
}

func TestStructuralTidEquality(t *testing.T) {
	in := sym.NewInterner(nil)
	u := NewUniverse(in, 8)
	store := NewStore(in)

	a := store.PtrType(u.Int, 8)
	b := store.PtrType(u.Int, 8)
	if store.TypeID(a) != store.TypeID(b) {
		t.Fatal("expected byte-equal encodings to share a tid")
	}

	c := store.PtrType(u.Bool, 8)
	if store.TypeID(a) == store.TypeID(c) {
		t.Fatal("expected structurally different encodings to have distinct tids")
	}
}

func TestPrimitiveSignednessDistinctTid(t *testing.T) {
	in := sym.NewInterner(nil)
	u := NewUniverse(in, 8)
	if u.Int.Tid == u.Uint.Tid {
		t.Fatal("expected int and uint to carry distinct tids")
	}
	if u.I8.Tid == u.U8.Tid {
		t.Fatal("expected i8 and u8 to carry distinct tids")
	}
}

func TestArrayTypeIDDependsOnLength(t *testing.T) {
	in := sym.NewInterner(nil)
	u := NewUniverse(in, 8)
	store := NewStore(in)

	a3 := store.ArrayType(u.Int, 3)
	a4 := store.ArrayType(u.Int, 4)
	if store.TypeID(a3) == store.TypeID(a4) {
		t.Fatal("expected arrays of different length to have different tids")
	}
}
