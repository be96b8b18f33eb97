package mono

import (
	"testing"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/types"
)

func identityFun() *ast.Fun {
	return &ast.Fun{
		Name:       "identity",
		TypeParams: []string{"T"},
		Params:     []ast.Param{{Name: "x", Type: types.Var{Name: "T"}}},
		ReturnType: types.Var{Name: "T"},
		Body: &ast.Block{
			Tail: &ast.Ident{Name: "x"},
		},
	}
}

func TestEnsureFunSpecializesOnce(t *testing.T) {
	e := NewEngine()
	fn := identityFun()
	sigma := types.Subst{"T": types.TInt}

	name1 := e.EnsureFun(fn, sigma)
	if want := "identity$Int"; name1 != want {
		t.Fatalf("EnsureFun name = %s, want %s", name1, want)
	}

	pending := e.Drain()
	if len(pending) != 1 {
		t.Fatalf("len(Drain()) = %d, want 1", len(pending))
	}
	spec := pending[0]
	if !types.Equal(spec.ReturnType, types.TInt) {
		t.Errorf("spec.ReturnType = %s, want Int", spec.ReturnType)
	}
	if !types.Equal(spec.Params[0].Type, types.TInt) {
		t.Errorf("spec.Params[0].Type = %s, want Int", spec.Params[0].Type)
	}

	// requesting the same instantiation again must not re-specialize or
	// re-enqueue (spec.md §8.1's mono idempotence property).
	name2 := e.EnsureFun(fn, sigma)
	if name2 != name1 {
		t.Errorf("EnsureFun name on repeat = %s, want %s", name2, name1)
	}
	if pending := e.Drain(); len(pending) != 0 {
		t.Fatalf("Drain() after a repeat request = %v, want empty", pending)
	}
}

func TestEnsureFunDistinctInstantiations(t *testing.T) {
	e := NewEngine()
	fn := identityFun()

	nameInt := e.EnsureFun(fn, types.Subst{"T": types.TInt})
	nameBool := e.EnsureFun(fn, types.Subst{"T": types.TBool})
	if nameInt == nameBool {
		t.Fatalf("distinct instantiations produced the same symbol %s", nameInt)
	}

	pending := e.Drain()
	if len(pending) != 2 {
		t.Fatalf("len(Drain()) = %d, want 2", len(pending))
	}
}

func TestEnsureImplMethod(t *testing.T) {
	e := NewEngine()
	m := &ast.ImplMethod{
		Name:       "show",
		Params:     []ast.Param{{Name: "x", Type: types.Var{Name: "T"}}},
		ReturnType: types.TInt,
		Body:       &ast.Block{Tail: &ast.IntLit{Value: 0}},
	}
	name := e.EnsureImplMethod("Show", []types.Type{types.TInt}, m, types.Subst{"T": types.TInt})
	if want := "__impl_Show$Int__show"; name != want {
		t.Fatalf("EnsureImplMethod name = %s, want %s", name, want)
	}
	pending := e.Drain()
	if len(pending) != 1 {
		t.Fatalf("len(Drain()) = %d, want 1", len(pending))
	}

	// a second request for the same trait/args/method must not re-enqueue.
	e.EnsureImplMethod("Show", []types.Type{types.TInt}, m, types.Subst{"T": types.TInt})
	if pending := e.Drain(); len(pending) != 0 {
		t.Fatalf("Drain() after a repeat EnsureImplMethod = %v, want empty", pending)
	}
}

func TestDrainIsConsumingAndResets(t *testing.T) {
	e := NewEngine()
	fn := identityFun()
	e.EnsureFun(fn, types.Subst{"T": types.TInt})

	first := e.Drain()
	if len(first) != 1 {
		t.Fatalf("first Drain() = %d entries, want 1", len(first))
	}
	second := e.Drain()
	if len(second) != 0 {
		t.Fatalf("second Drain() = %d entries, want 0 (worklist already emptied)", len(second))
	}
}
