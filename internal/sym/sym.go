// Package sym implements the front end's symbol interner: a bidirectional
// map between byte strings and stable opaque handles.
package sym

import "sync"

// Symbol is an opaque handle to an interned byte sequence. Two symbols
// compare equal iff their underlying bytes are equal.
type Symbol uint32

// Zero is never returned by Intern; it marks an unset symbol (e.g. a type's
// not-yet-computed tid).
const Zero Symbol = 0

// Blank is the reserved handle for the "_" identifier.
var Blank Symbol

// Interner is safe for concurrent readers once construction (NewInterner
// plus any Intern calls needed to seed keywords) has completed. Concurrent
// writers must hold their own lock discipline if they share an Interner
// across compilations; the internal RWMutex only serializes Intern itself.
type Interner struct {
	mu      sync.RWMutex
	byBytes map[string]Symbol
	strs    []string // index 0 unused, so Symbol(0) stays invalid
}

// NewInterner returns an interner with the blank symbol "_" and every entry
// of keywords pre-interned, so their handles are stable sentinels callers
// can compare against without a lookup.
func NewInterner(keywords []string) *Interner {
	in := &Interner{
		byBytes: make(map[string]Symbol, len(keywords)+64),
		strs:    make([]string, 1, len(keywords)+64),
	}
	Blank = in.InternString("_")
	for _, kw := range keywords {
		in.InternString(kw)
	}
	return in
}

// Intern returns the stable handle for bytes, allocating a new one if bytes
// has not been seen before. Interning is idempotent.
func (in *Interner) Intern(b []byte) Symbol {
	return in.InternString(string(b))
}

// InternString is Intern for a string, avoiding a redundant copy when the
// caller already has one.
func (in *Interner) InternString(s string) Symbol {
	in.mu.RLock()
	if sy, ok := in.byBytes[s]; ok {
		in.mu.RUnlock()
		return sy
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if sy, ok := in.byBytes[s]; ok {
		return sy
	}
	sy := Symbol(len(in.strs))
	in.strs = append(in.strs, s)
	in.byBytes[s] = sy
	return sy
}

// InternCString mirrors InternString for a NUL-terminated byte slice,
// trimming the trailing NUL if present.
func (in *Interner) InternCString(b []byte) Symbol {
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return in.Intern(b)
}

// String returns the bytes behind sy. The zero symbol yields the empty
// string; a handle this interner never produced panics with an index error.
func (in *Interner) String(sy Symbol) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.strs[sy]
}

// Lookup returns the symbol for s without interning it, reporting whether it
// was already present.
func (in *Interner) Lookup(s string) (Symbol, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	sy, ok := in.byBytes[s]
	return sy, ok
}
