// Package scope implements the parser's lexical scope stack: a single
// contiguous stack of words encoding nested scopes as interleaved
// (value, key) pairs, with a saved parent base stored at each push.
package scope

import "vela/internal/sym"

// Unbounded is passed to Lookup to search every enclosing scope.
const Unbounded = -1

// Stack is not safe for concurrent mutation; a compilation owns exactly one.
type Stack struct {
	words []any // saved-base ints at scope boundaries, (value, key) pairs elsewhere
	base  int
	pkgBase int
	pkgBaseSet bool
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Push saves the current base and opens a fresh scope. Every Push must be
// matched by exactly one Pop before the enclosing parselet returns.
func (s *Stack) Push() {
	s.words = append(s.words, s.base)
	s.base = len(s.words) - 1
}

// Pop restores the base saved by the matching Push and truncates the stack,
// discarding every binding defined since.
func (s *Stack) Pop() {
	saved := s.words[s.base].(int)
	s.words = s.words[:s.base]
	s.base = saved
}

// MarkPackageScope records the base of the currently open scope as the
// outermost user (package) scope, for IsToplevel.
func (s *Stack) MarkPackageScope() {
	s.pkgBase = s.base
	s.pkgBaseSet = true
}

// IsToplevel reports whether the current scope is the package scope marked
// by MarkPackageScope.
func (s *Stack) IsToplevel() bool {
	return s.pkgBaseSet && s.base == s.pkgBase
}

// Define appends a (value, key) binding to the current scope.
func (s *Stack) Define(key sym.Symbol, value any) {
	s.words = append(s.words, value, key)
}

// Lookup scans from the top of the stack toward the root, stepping across
// saved-base slots, for up to maxDepth enclosing scopes (Unbounded for no
// limit). maxDepth == 0 restricts the search to the innermost frame, which
// is how the parser detects same-scope duplicate definitions.
func (s *Stack) Lookup(key sym.Symbol, maxDepth int) (any, bool) {
	i := len(s.words) - 1
	base := s.base
	depth := maxDepth
	for i >= 0 {
		if i == base {
			if depth == 0 {
				break
			}
			if depth > 0 {
				depth--
			}
			base = s.words[i].(int)
			i--
			continue
		}
		if k, ok := s.words[i].(sym.Symbol); ok && k == key {
			return s.words[i-1], true
		}
		i -= 2
	}
	return nil, false
}

// Len reports the number of words on the stack; used by tests asserting the
// stack returns to empty after matching pushes and pops.
func (s *Stack) Len() int {
	return len(s.words)
}
