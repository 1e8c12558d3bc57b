package front

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of a vela.yaml project file: everything
// that's fixed per-project rather than passed on the command line.
type FileConfig struct {
	Target  string   `yaml:"target"`
	Cflags  []string `yaml:"cflags"`
	Sysroot string   `yaml:"sysroot"`
}

// targetsByName maps a vela.yaml `target:` string to the sizing facts New
// needs. LoadConfig rejects a non-empty name that is not listed here.
var targetsByName = map[string]Target{
	"x86_64":  {PointerSize: 8, IntSize: 8},
	"aarch64": {PointerSize: 8, IntSize: 8},
	"wasm32":  {PointerSize: 4, IntSize: 4},
	"riscv32": {PointerSize: 4, IntSize: 4},
}

// LoadConfig reads vela.yaml from dir, if present, and returns the Compiler
// it describes. A missing file is not an error: it yields a Compiler for
// a target with 8-byte pointers and ints and no extra cflags.
func LoadConfig(dir string) (*Compiler, error) {
	path := filepath.Join(dir, "vela.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(dir, defaultCacheDir(dir), Target{PointerSize: 8, IntSize: 8}, false), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	target, ok := targetsByName[fc.Target]
	if fc.Target != "" && !ok {
		return nil, fmt.Errorf("%s: unknown target %q", path, fc.Target)
	}
	if !ok {
		target = Target{PointerSize: 8, IntSize: 8}
	}

	c := New(dir, defaultCacheDir(dir), target, false)
	c.Cflags = fc.Cflags
	c.Sysroot = fc.Sysroot
	return c, nil
}

// defaultCacheDir derives a per-project cache directory name from dir, the
// way a build system keys its cache off a normalized project slug rather
// than the raw (possibly space- or dash-containing) path.
func defaultCacheDir(dir string) string {
	slug := strcase.ToSnake(filepath.Base(filepath.Clean(dir)))
	return filepath.Join(os.TempDir(), "vela-cache", slug)
}
