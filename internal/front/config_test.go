package front

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesNativeDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Target.PointerSize != 8 || c.Target.IntSize != 8 {
		t.Errorf("Target = %+v, want 8/8 native default", c.Target)
	}
	if c.Interner == nil || c.Universe == nil || c.Store == nil {
		t.Errorf("New did not populate interner/universe/store")
	}
}

func TestLoadConfigResolvesNamedTarget(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "target: wasm32\ncflags: [\"-O2\"]\n")

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Target.PointerSize != 4 || c.Target.IntSize != 4 {
		t.Errorf("Target = %+v, want 4/4 for wasm32", c.Target)
	}
	if len(c.Cflags) != 1 || c.Cflags[0] != "-O2" {
		t.Errorf("Cflags = %v, want [-O2]", c.Cflags)
	}
}

func TestLoadConfigUnknownTargetIsError(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "target: sparc64\n")

	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("expected an error for an unknown target name")
	}
}

func TestLoadConfigMalformedYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "target: [not, a, string\n")

	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("expected a parse error for malformed yaml")
	}
}

func writeYAML(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "vela.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing vela.yaml: %v", err)
	}
}
