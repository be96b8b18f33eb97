package traits

import (
	"testing"

	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/parser"
	"github.com/pawlang-project/paw/internal/types"
)

func TestBuildAcceptsMatchingImpl(t *testing.T) {
	src := `
trait Show<T> {
    fn show(x: T) -> Int;
}
impl<T> Show<T> {
    fn show(x: T) -> Int { 0 }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	env := Build(prog, sink)
	if sink.HasErrors() {
		t.Fatalf("Build() reported errors for a matching impl: %v", sink.Diagnostics())
	}
	if _, ok := env.Traits["Show"]; !ok {
		t.Fatal("env.Traits should contain Show")
	}
	if !env.HasAny("Show") {
		t.Fatal("env.HasAny(Show) should be true")
	}
}

func TestBuildRejectsDuplicateTrait(t *testing.T) {
	src := `
trait Show<T> { fn show(x: T) -> Int; }
trait Show<T> { fn show(x: T) -> Int; }
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a duplicate trait declaration")
	}
}

func TestBuildRejectsImplOfUnknownTrait(t *testing.T) {
	src := `
impl<T> Ghost<T> {
    fn spook(x: T) -> Int { 0 }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag an impl of an unknown trait")
	}
}

func TestBuildRejectsArityMismatch(t *testing.T) {
	src := `
trait Pair<A, B> { fn first(x: A) -> A; }
impl<T> Pair<T> {
    fn first(x: T) -> T { x }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a trait-arg-count mismatch")
	}
}

func TestBuildRejectsMissingMethod(t *testing.T) {
	src := `
trait Eq<T> {
    fn eq(a: T, b: T) -> Bool;
    fn ne(a: T, b: T) -> Bool;
}
impl<T> Eq<T> {
    fn eq(a: T, b: T) -> Bool { true }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a missing trait method in the impl")
	}
}

func TestBuildRejectsParamCountMismatch(t *testing.T) {
	src := `
trait Eq<T> { fn eq(a: T, b: T) -> Bool; }
impl<T> Eq<T> {
    fn eq(a: T) -> Bool { true }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a parameter-count mismatch between trait and impl")
	}
}

func TestLookupExactAndGeneric(t *testing.T) {
	src := `
trait Show<T> { fn show(x: T) -> Int; }
impl Show<Int> {
    fn show(x: Int) -> Int { 1 }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	env := Build(prog, sink)
	if sink.HasErrors() {
		t.Fatalf("Build() reported errors: %v", sink.Diagnostics())
	}
	if _, ok := env.Lookup("Show", []types.Type{types.TInt}); !ok {
		t.Fatal("Lookup(Show, [Int]) should find the concrete impl")
	}
	if _, ok := env.Lookup("Show", []types.Type{types.TBool}); ok {
		t.Fatal("Lookup(Show, [Bool]) should find nothing — impl is Int-only")
	}
	if _, ok := env.Lookup("Ghost", nil); ok {
		t.Fatal("Lookup on an unregistered trait should find nothing")
	}
}

func TestBuildRejectsSignatureMismatch(t *testing.T) {
	src := `
trait Eq<T> { fn eq(a: T, b: T) -> Bool; }
impl Eq<Int> {
    fn eq(a: Int, b: Int) -> Int { 0 }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag an impl method return type that doesn't match the trait's (after substitution)")
	}
}

func TestBuildRejectsDuplicateImplKey(t *testing.T) {
	src := `
trait Show<T> { fn show(x: T) -> Int; }
impl Show<Int> { fn show(x: Int) -> Int { 1 } }
impl Show<Int> { fn show(x: Int) -> Int { 2 } }
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a duplicate (trait, trait_args) impl key")
	}
}

func TestBuildRejectsUndeclaredTypeVarInTraitArgs(t *testing.T) {
	src := `
trait Show<T> { fn show(x: T) -> Int; }
impl Show<U> { fn show(x: U) -> Int { 0 } }
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag a trait-arg variable the impl never declared as a type parameter")
	}
}

func TestBuildChecksAssocTypeBounds(t *testing.T) {
	src := `
trait Eq<T> { fn eq(a: T, b: T) -> Bool; }
impl Eq<Int> { fn eq(a: Int, b: Int) -> Bool { true } }

trait Container {
    type Item: Eq<Item>;
    fn len(x: Int) -> Int;
}
impl Container {
    type Item = Int;
    fn len(x: Int) -> Int { x }
}
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if sink.HasErrors() {
		t.Fatalf("Build() reported errors for a satisfied associated-type bound: %v", sink.Diagnostics())
	}
}

func TestBuildRejectsUnsatisfiedAssocTypeBound(t *testing.T) {
	src := `
trait Container {
    type Item: Eq<Item>;
    fn len(x: Int) -> Int;
}
impl Container {
    type Item = Bool;
    fn len(x: Int) -> Int { x }
}
trait Eq<T> { fn eq(a: T, b: T) -> Bool; }
`
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	sink := diagnostics.NewSink()
	Build(prog, sink)
	if !sink.HasErrors() {
		t.Fatal("Build() should flag an associated-type bound with no satisfying impl (Eq<Bool> is never implemented)")
	}
}
