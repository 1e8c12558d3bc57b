package types

import "vela/internal/sym"

// Universe holds the process-wide primitive singletons, initialized once by
// NewUniverse and never mutated thereafter. It is the parent of every
// package scope: primitive type names are seeded from it into pkgdefs at
// parser start (the boolean constants are added there by parser.New).
type Universe struct {
	Void, Unknown, Bool     *Type
	Int, Uint               *Type
	I8, I16, I32, I64       *Type
	U8, U16, U32, U64       *Type
	F32, F64                *Type
	String                  *Type
}

// NewUniverse constructs the primitive singletons for a target with the
// given native int width (in bytes). Native
// int/uint map directly to intWidth, so a build's `int` tracks whatever
// register size its target chose.
func NewUniverse(in *sym.Interner, intWidth uint32) *Universe {
	def := func(k Kind, unsigned bool, size uint32) *Type {
		t := &Type{Kind: k, Size: size, Align: size, IsUnsigned: unsigned}
		t.Tid = in.Intern([]byte{prefixByte(k, unsigned, false)})
		return t
	}
	return &Universe{
		Void:    def(Void, false, 0),
		Unknown: def(Unknown, false, 0),
		Bool:    def(Bool, true, 1),
		Int:     def(Int, false, intWidth),
		Uint:    def(Int, true, intWidth),
		I8:      def(I8, false, 1),
		U8:      def(I8, true, 1),
		I16:     def(I16, false, 2),
		U16:     def(I16, true, 2),
		I32:     def(I32, false, 4),
		U32:     def(I32, true, 4),
		I64:     def(I64, false, 8),
		U64:     def(I64, true, 8),
		F32:     def(F32, false, 4),
		F64:     def(F64, false, 8),
		String:  def(String, false, intWidth*2),
	}
}

// Named maps every builtin type name to its singleton, for seeding pkgdefs.
func (u *Universe) Named() map[string]*Type {
	return map[string]*Type{
		"void": u.Void,
		"bool": u.Bool,
		"int":  u.Int,
		"uint": u.Uint,
		"i8":   u.I8,
		"i16":  u.I16,
		"i32":  u.I32,
		"i64":  u.I64,
		"u8":   u.U8,
		"u16":  u.U16,
		"u32":  u.U32,
		"u64":  u.U64,
		"f32":    u.F32,
		"f64":    u.F64,
		"string": u.String,
	}
}
