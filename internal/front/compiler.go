// Package front implements the compilation-wide configuration object: the
// Go counterpart of original_source's compiler_t. It owns the pieces every
// parser instance in a build shares — the symbol interner, the universe,
// the type store, target sizing, and directory layout — and guards the
// mutable ones with the same reader/writer split the C original uses for
// its diag buffer and package index.
package front

import (
	"sync"

	"github.com/segmentio/ksuid"

	"vela/internal/diag"
	"vela/internal/scanner"
	"vela/internal/sym"
	"vela/internal/types"
)

// Target mirrors compiler_config_t's target fields: the sizing facts that
// determine native int/pointer width and hence which primitive singletons
// the universe assigns to `int`/`uint`.
type Target struct {
	PointerSize uint32
	IntSize     uint32
}

// Compiler is the top-level, process-shared compilation context. Multiple
// files parsed in the same build reuse the same interner/universe/store so
// their type identities are directly comparable.
type Compiler struct {
	ID       string // per-compilation correlation id, a ksuid
	RootDir  string
	CacheDir string
	Verbose  bool
	Cflags   []string
	Sysroot  string

	Target   Target
	Interner *sym.Interner
	Universe *types.Universe
	Store    *types.Store

	diagMu sync.RWMutex
	units  map[string]*diag.Channel

	pkgMu sync.RWMutex
	pkgs  map[string]bool
}

// New constructs a Compiler for target, with a fresh interner/universe/
// store scoped to this compilation.
func New(rootDir, cacheDir string, target Target, verbose bool) *Compiler {
	in := sym.NewInterner(scanner.Keywords())
	return &Compiler{
		ID:       ksuid.New().String(),
		RootDir:  rootDir,
		CacheDir: cacheDir,
		Verbose:  verbose,
		Target:   target,
		Interner: in,
		Universe: types.NewUniverse(in, target.IntSize),
		Store:    types.NewStore(in),
		units:    make(map[string]*diag.Channel),
		pkgs:     make(map[string]bool),
	}
}

// DiagChannel returns (creating if necessary) the diagnostics channel for
// file, guarded so a background LSP publisher can read c.Units() while the
// parser for a different file is still appending to its own channel.
func (c *Compiler) DiagChannel(file string) *diag.Channel {
	c.diagMu.Lock()
	defer c.diagMu.Unlock()
	ch, ok := c.units[file]
	if !ok {
		ch = diag.New(nil)
		c.units[file] = ch
	}
	return ch
}

// Units returns a snapshot of every file compiled so far with at least one
// diagnostic channel opened for it.
func (c *Compiler) Units() map[string]*diag.Channel {
	c.diagMu.RLock()
	defer c.diagMu.RUnlock()
	out := make(map[string]*diag.Channel, len(c.units))
	for k, v := range c.units {
		out[k] = v
	}
	return out
}

// MarkCompiled records file as having completed a compilation pass, for
// the incremental-rebuild bookkeeping a package index would otherwise do.
func (c *Compiler) MarkCompiled(file string) {
	c.pkgMu.Lock()
	defer c.pkgMu.Unlock()
	c.pkgs[file] = true
}

// IsCompiled reports whether file has completed at least one pass.
func (c *Compiler) IsCompiled(file string) bool {
	c.pkgMu.RLock()
	defer c.pkgMu.RUnlock()
	return c.pkgs[file]
}
