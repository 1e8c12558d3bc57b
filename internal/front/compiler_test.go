package front

import "testing"

func TestDiagChannelCreatesAndReusesPerFile(t *testing.T) {
	c := New("/tmp/proj", "/tmp/proj-cache", Target{PointerSize: 8, IntSize: 8}, false)

	ch1 := c.DiagChannel("a.vl")
	ch2 := c.DiagChannel("a.vl")
	if ch1 != ch2 {
		t.Errorf("DiagChannel returned distinct channels for the same file")
	}

	ch3 := c.DiagChannel("b.vl")
	if ch3 == ch1 {
		t.Errorf("DiagChannel returned the same channel for different files")
	}

	units := c.Units()
	if len(units) != 2 {
		t.Errorf("Units() len = %d, want 2", len(units))
	}
}

func TestMarkCompiledTracksPerFile(t *testing.T) {
	c := New("/tmp/proj", "/tmp/proj-cache", Target{PointerSize: 8, IntSize: 8}, false)

	if c.IsCompiled("a.vl") {
		t.Errorf("IsCompiled true before MarkCompiled was ever called")
	}
	c.MarkCompiled("a.vl")
	if !c.IsCompiled("a.vl") {
		t.Errorf("IsCompiled false after MarkCompiled")
	}
	if c.IsCompiled("b.vl") {
		t.Errorf("IsCompiled true for a file never marked")
	}
}

func TestNewSizesNativeIntFromTarget(t *testing.T) {
	c := New("/tmp/proj", "/tmp/proj-cache", Target{PointerSize: 8, IntSize: 4}, false)
	if c.Universe.Int == nil {
		t.Fatalf("Universe.Int not populated")
	}
	if c.Universe.Int.Size != 4 {
		t.Errorf("Universe.Int.Size = %d, want 4 to match Target.IntSize", c.Universe.Int.Size)
	}
}
