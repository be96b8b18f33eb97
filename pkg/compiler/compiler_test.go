package compiler

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, entrySrc string) string {
	t.Helper()
	dir := t.TempDir()
	manifest := "[package]\nname = \"testapp\"\nentry = \"main.paw\"\n"
	if err := os.WriteFile(filepath.Join(dir, "Paw.toml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.paw"), []byte(entrySrc), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCompileReportsCheckErrorsWithoutObject(t *testing.T) {
	dir := writeProject(t, `
fn main() -> Int { ghost }
`)
	result, err := Compile(dir, Options{})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if result.Object != nil {
		t.Error("Compile() should return no object bytes when type-checking fails")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("Compile() should report a diagnostic for the unknown identifier")
	}
}

func TestCompileRejectsMissingProject(t *testing.T) {
	_, err := Compile(filepath.Join(t.TempDir(), "does-not-exist"), Options{})
	if err == nil {
		t.Fatal("Compile() on a project with an unreadable entry file should error")
	}
}

func TestCompileExpandsImportsAcrossFiles(t *testing.T) {
	dir := writeProject(t, `
import math;
fn main() -> Int { square(3) }
`)
	if err := os.WriteFile(filepath.Join(dir, "math.paw"), []byte("fn square(x: Int) -> Int { x * x }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := Compile(dir, Options{})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestCompileProducesObjectBytes(t *testing.T) {
	if _, err := exec.LookPath("llc"); err != nil {
		t.Skip("llc not installed in this environment")
	}
	dir := writeProject(t, `
fn main() -> Int { 42 }
`)
	result, err := Compile(dir, Options{ScratchDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(result.Object) == 0 {
		t.Fatal("Compile() should produce non-empty object bytes for a well-typed program")
	}
}
