package imports

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandFlattensTransitiveImports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "math.paw"), "fn square(x: Int) -> Int { x * x }\n")
	writeFile(t, filepath.Join(root, "main.paw"), "import math;\nfn main() -> Int { square(2) }\n")

	prog, err := Expand(filepath.Join(root, "main.paw"), []string{root})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if len(prog.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 (square then main)", len(prog.Items))
	}
}

func TestExpandIsIdempotentAcrossDiamondImports(t *testing.T) {
	// main imports both a and b; a and b both import shared. shared must
	// only appear once in the flattened output (spec.md §8.2).
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shared.paw"), "fn helper() -> Int { 1 }\n")
	writeFile(t, filepath.Join(root, "a.paw"), "import shared;\nfn fromA() -> Int { helper() }\n")
	writeFile(t, filepath.Join(root, "b.paw"), "import shared;\nfn fromB() -> Int { helper() }\n")
	writeFile(t, filepath.Join(root, "main.paw"), "import a;\nimport b;\nfn main() -> Int { fromA() + fromB() }\n")

	prog, err := Expand(filepath.Join(root, "main.paw"), []string{root})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if len(prog.Items) != 4 {
		t.Fatalf("len(Items) = %d, want 4 (helper once, fromA, fromB, main)", len(prog.Items))
	}
}

func TestExpandNestedSegmentPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "strings.paw"), "fn greet() -> Int { 0 }\n")
	writeFile(t, filepath.Join(root, "main.paw"), "import lib::strings;\nfn main() -> Int { greet() }\n")

	prog, err := Expand(filepath.Join(root, "main.paw"), []string{root})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if len(prog.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(prog.Items))
	}
}

func TestExpandDetectsCycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.paw"), "import b;\nfn fromA() -> Int { 1 }\n")
	writeFile(t, filepath.Join(root, "b.paw"), "import a;\nfn fromB() -> Int { 1 }\n")

	_, err := Expand(filepath.Join(root, "a.paw"), []string{root})
	if err == nil {
		t.Fatal("Expand() on a cyclic import graph should error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Errorf("error = %T (%v), want *CycleError", err, err)
	}
}

func TestExpandNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.paw"), "import nowhere;\nfn main() -> Int { 0 }\n")

	_, err := Expand(filepath.Join(root, "main.paw"), []string{root})
	if err == nil {
		t.Fatal("Expand() on a missing import should error")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("error = %T (%v), want *NotFoundError", err, err)
	}
}

func TestResolveRejectsMalformedPaths(t *testing.T) {
	root := t.TempDir()
	ex := NewExpander([]string{root})
	for _, path := range []string{"", "a::", "::a", "a::.::b", "a/b", "a\\b", "a..b", "1abc"} {
		if _, err := ex.resolve(path); err == nil {
			t.Errorf("resolve(%q) should error", path)
		} else if _, ok := err.(*SyntaxError); !ok {
			t.Errorf("resolve(%q) error = %T (%v), want *SyntaxError", path, err, err)
		}
	}
}

func TestExpandSearchesRootsInOrder(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	// The same import path exists under both roots; rootA is listed
	// first, so its copy must win.
	writeFile(t, filepath.Join(rootA, "lib.paw"), "fn which() -> Int { 1 }\n")
	writeFile(t, filepath.Join(rootB, "lib.paw"), "fn which() -> Int { 2 }\n")
	writeFile(t, filepath.Join(rootA, "main.paw"), "import lib;\nfn main() -> Int { which() }\n")

	prog, err := Expand(filepath.Join(rootA, "main.paw"), []string{rootA, rootB})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if len(prog.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(prog.Items))
	}
}
