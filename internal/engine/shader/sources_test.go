package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLitSourceDeclaresUniforms(t *testing.T) {
	for _, name := range LitUniforms {
		if !strings.Contains(LitVertexSource, "uniform ") || !strings.Contains(LitVertexSource, " "+name+";") {
			t.Errorf("LitVertexSource does not declare %q", name)
		}
	}
}

func TestSourcesFallback(t *testing.T) {
	vs, fs, err := Sources("", "")
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	if vs != LitVertexSource || fs != LitFragmentSource {
		t.Error("empty paths should select the built-in sources")
	}
}

func TestSourcesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.vert")
	if err := os.WriteFile(path, []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	vs, fs, err := Sources(path, "")
	if err != nil {
		t.Fatalf("Sources() error = %v", err)
	}
	if vs != "custom" {
		t.Errorf("vertex source = %q, want %q", vs, "custom")
	}
	if fs != LitFragmentSource {
		t.Error("fragment source should fall back to the built-in")
	}

	if _, _, err := Sources(filepath.Join(dir, "missing"), ""); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Stage: "vertex", Log: "0:1: syntax error\n"}
	if got, want := err.Error(), "vertex shader: 0:1: syntax error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
