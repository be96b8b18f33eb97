package implower

import (
	"testing"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/parser"
)

func itemNames(items []ast.Item) []string {
	var out []string
	for _, it := range items {
		switch it := it.(type) {
		case *ast.Fun:
			out = append(out, it.Name)
		case *ast.Impl:
			out = append(out, "impl:"+it.TraitName)
		}
	}
	return out
}

func TestLowerRewritesConcreteImplMethodsToFreeFunctions(t *testing.T) {
	prog, err := parser.Parse("t.paw", `
impl Show<Int> {
    fn show(x: Int) -> Int { x }
}
`)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	Lower(prog)

	names := itemNames(prog.Items)
	wantFn := "__impl_Show$Int__show"
	found := false
	for _, n := range names {
		if n == wantFn {
			found = true
		}
	}
	if !found {
		t.Fatalf("Lower() items = %v, want one named %s", names, wantFn)
	}
}

func TestLowerKeepsTheConcreteImplItemAlongsideItsLoweredMethods(t *testing.T) {
	// internal/traits still needs the ast.Impl at shape-check time, so
	// Lower must not delete it, only add the lowered Fun beside it.
	prog, err := parser.Parse("t.paw", `
impl Show<Int> {
    fn show(x: Int) -> Int { x }
}
`)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	Lower(prog)

	var sawImpl, sawFun bool
	for _, it := range prog.Items {
		switch it.(type) {
		case *ast.Impl:
			sawImpl = true
		case *ast.Fun:
			sawFun = true
		}
	}
	if !sawImpl {
		t.Error("Lower() should keep the original *ast.Impl item")
	}
	if !sawFun {
		t.Error("Lower() should add a lowered *ast.Fun item")
	}
}

func TestLowerLeavesGenericImplsUntouched(t *testing.T) {
	// Generic impls are monomorphized on demand by internal/mono instead;
	// Lower must leave them out of the free-function rewrite entirely.
	prog, err := parser.Parse("t.paw", `
trait Show<T> { fn show(x: T) -> Int; }
impl<T> Show<T> {
    fn show(x: T) -> Int { 0 }
}
`)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	before := len(prog.Items)
	Lower(prog)
	if len(prog.Items) != before {
		t.Fatalf("Lower() changed item count for a generic-only program: got %d, want %d", len(prog.Items), before)
	}
	for _, it := range prog.Items {
		if fn, ok := it.(*ast.Fun); ok {
			t.Fatalf("Lower() should not have produced a lowered Fun %q from a generic impl", fn.Name)
		}
	}
}

func TestLowerPreservesOrdinaryFreeFunctions(t *testing.T) {
	prog, err := parser.Parse("t.paw", `
fn add(x: Int, y: Int) -> Int { x + y }
`)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	Lower(prog)
	if len(prog.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(prog.Items))
	}
	fn, ok := prog.Items[0].(*ast.Fun)
	if !ok || fn.Name != "add" {
		t.Fatalf("Items[0] = %v, want the original add function unchanged", prog.Items[0])
	}
}

func TestLowerHandlesMultipleMethodsOnOneImpl(t *testing.T) {
	prog, err := parser.Parse("t.paw", `
trait Eq<T> {
    fn eq(a: T, b: T) -> Bool;
    fn ne(a: T, b: T) -> Bool;
}
impl Eq<Int> {
    fn eq(a: Int, b: Int) -> Bool { a == b }
    fn ne(a: Int, b: Int) -> Bool { a != b }
}
`)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	Lower(prog)

	var lowered []string
	for _, it := range prog.Items {
		if fn, ok := it.(*ast.Fun); ok {
			lowered = append(lowered, fn.Name)
		}
	}
	want := map[string]bool{"__impl_Eq$Int__eq": true, "__impl_Eq$Int__ne": true}
	if len(lowered) != 2 {
		t.Fatalf("lowered fns = %v, want 2 entries", lowered)
	}
	for _, n := range lowered {
		if !want[n] {
			t.Errorf("unexpected lowered name %s", n)
		}
	}
}
