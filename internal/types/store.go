package types

import (
	"fmt"

	"vela/internal/sym"
)

// Store is the compiler-wide typeid→type map that canonicalizes structural
// types. Its lifetime matches a compilation; it is exclusively owned by the
// front.Compiler that created it.
type Store struct {
	interner *sym.Interner
	byTid    map[sym.Symbol]*Type
}

// NewStore returns an empty type store bound to interner for tid encoding.
func NewStore(interner *sym.Interner) *Store {
	return &Store{interner: interner, byTid: make(map[sym.Symbol]*Type)}
}

// TypeID returns t's tid, computing and caching it on t if unset. Recursion
// into child types short-circuits on any child that already has a tid: an
// already-canonical child's tid string is spliced directly into the parent's
// buffer rather than re-encoded.
func (s *Store) TypeID(t *Type) sym.Symbol {
	if t.Tid != sym.Zero {
		return t.Tid
	}
	buf := make([]byte, 0, 32)
	buf = s.append(buf, t)
	tid := s.interner.Intern(buf)
	t.Tid = tid
	return tid
}

func (s *Store) append(buf []byte, t *Type) []byte {
	if t.Tid != sym.Zero {
		return append(buf, s.interner.String(t.Tid)...)
	}
	buf = append(buf, prefixByte(t.Kind, t.IsUnsigned, t.IsMut))
	switch t.Kind {
	case Array:
		buf = writeHex(buf, uint64(t.Len))
		buf = s.append(buf, t.Elem)
	case Func:
		buf = writeHex(buf, uint64(len(t.Params)))
		for _, p := range t.Params {
			buf = s.append(buf, p)
		}
		buf = s.append(buf, t.Result)
	case Struct:
		buf = writeHex(buf, uint64(len(t.Fields)))
		for _, f := range t.Fields {
			buf = s.append(buf, f.Type)
		}
	case Alias:
		buf = writeHex(buf, uint64(len(t.Name)))
		buf = append(buf, t.Name...)
	case Ptr, Ref, Slice, Optional:
		buf = s.append(buf, t.Elem)
	default:
		// primitive: prefix byte alone identifies it, but primitives
		// always carry a pre-set Tid and never reach this branch.
	}
	return buf
}

func writeHex(buf []byte, n uint64) []byte {
	buf = append(buf, fmt.Sprintf("%x;", n)...)
	return buf
}

// Canonicalize computes t's tid and returns the store's representative for
// that tid, registering t as the representative if none existed yet. The
// caller must discard t in favor of the returned pointer when it differs.
func (s *Store) Canonicalize(t *Type) *Type {
	tid := s.TypeID(t)
	if existing, ok := s.byTid[tid]; ok {
		return existing
	}
	s.byTid[tid] = t
	return t
}

// FuncType builds (or reuses) the canonical function type for params/result.
// Because construction always routes through Canonicalize, two calls with
// structurally identical parameter/result tids return the identical
// pointer, so function-type identity can be tested with ==.
func (s *Store) FuncType(params []*Type, result *Type) *Type {
	t := &Type{Kind: Func, Params: params, Result: result}
	return s.Canonicalize(t)
}

// PtrType, RefType, SliceType, OptionalType, ArrayType build (and
// canonicalize) the corresponding compound type.
func (s *Store) PtrType(elem *Type, ptrSize uint32) *Type {
	return s.Canonicalize(&Type{Kind: Ptr, Elem: elem, Size: ptrSize, Align: ptrSize})
}

func (s *Store) RefType(elem *Type, mut bool, ptrSize uint32) *Type {
	return s.Canonicalize(&Type{Kind: Ref, Elem: elem, IsMut: mut, Size: ptrSize, Align: ptrSize})
}

func (s *Store) SliceType(elem *Type, mut bool, ptrSize uint32) *Type {
	return s.Canonicalize(&Type{Kind: Slice, Elem: elem, IsMut: mut, Size: 2 * ptrSize, Align: ptrSize})
}

func (s *Store) OptionalType(elem *Type) *Type {
	return s.Canonicalize(&Type{Kind: Optional, Elem: elem, Size: elem.Size, Align: elem.Align})
}

func (s *Store) ArrayType(elem *Type, length uint32) *Type {
	return s.Canonicalize(&Type{Kind: Array, Elem: elem, Len: length, Size: elem.Size * length, Align: elem.Align})
}

// AliasType registers name as an alias for target. The parser does not call
// it: per stmt_typedef it binds a type declaration's name directly to
// target, so no alias node is built for a declaration.
func (s *Store) AliasType(name string, target *Type) *Type {
	return s.Canonicalize(&Type{Kind: Alias, Name: name, Elem: target, Size: target.Size, Align: target.Align})
}

// StructType builds a fresh, not-yet-canonicalized struct type; struct
// identity is nominal in practice (each declaration is distinct even if two
// structs share a field layout), so the parser calls this directly rather
// than through Canonicalize and leaves its tid unset; a fingerprint of an
// enclosing type then encodes the struct's field types inline.
func (s *Store) StructType(fields []Field) *Type {
	var align, size uint32
	for _, f := range fields {
		if f.Type.Align > align {
			align = f.Type.Align
		}
		size += f.Type.Size
	}
	if align > 0 {
		size = alignUp(size, align)
	}
	return &Type{Kind: Struct, Fields: fields, Align: align, Size: size}
}

func alignUp(n, align uint32) uint32 {
	return (n + align - 1) / align * align
}
