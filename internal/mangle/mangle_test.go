package mangle

import (
	"testing"

	"github.com/pawlang-project/paw/internal/types"
)

func TestTy(t *testing.T) {
	tests := []struct {
		name string
		in   types.Type
		want string
	}{
		{"primitive", types.TInt, "Int"},
		{"var", types.Var{Name: "T"}, "Var(T)"},
		{"bare app", types.App{Name: "Point"}, "Point"},
		{"app one arg", types.App{Name: "Box", Args: []types.Type{types.TInt}}, "Box<Int>"},
		{
			"app two args",
			types.App{Name: "Pair", Args: []types.Type{types.TInt, types.TString}},
			"Pair<Int,String>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ty(tt.in); got != tt.want {
				t.Errorf("Ty(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if got, want := Name("identity", nil), "identity"; got != want {
		t.Errorf("Name(identity, nil) = %s, want %s", got, want)
	}
	got := Name("identity", []types.Type{types.TInt})
	if want := "identity$Int"; got != want {
		t.Errorf("Name(identity, [Int]) = %s, want %s", got, want)
	}
	got = Name("pair", []types.Type{types.TInt, types.TString})
	if want := "pair$Int,String"; got != want {
		t.Errorf("Name(pair, [Int,String]) = %s, want %s", got, want)
	}
}

func TestImpl(t *testing.T) {
	got := Impl("Show", nil, "show")
	if want := "__impl_Show__show"; got != want {
		t.Errorf("Impl(Show, nil, show) = %s, want %s", got, want)
	}
	got = Impl("Show", []types.Type{types.TInt}, "show")
	if want := "__impl_Show$Int__show"; got != want {
		t.Errorf("Impl(Show, [Int], show) = %s, want %s", got, want)
	}
}

func TestOverload(t *testing.T) {
	got := Overload("add", []types.Type{types.TInt, types.TInt}, types.TInt)
	if want := "add__ol__Pi32_i32__Ri32"; got != want {
		t.Errorf("Overload(add, [Int,Int], Int) = %s, want %s", got, want)
	}

	// Two same-named functions with different parameter types must
	// produce different symbols.
	got2 := Overload("add", []types.Type{types.TDouble, types.TDouble}, types.TDouble)
	if got == got2 {
		t.Errorf("Overload collision: %s == %s", got, got2)
	}
}

func TestOverloadBoxRcArcPrefixes(t *testing.T) {
	box := types.App{Name: "Box", Args: []types.Type{types.TInt}}
	rc := types.App{Name: "Rc", Args: []types.Type{types.TInt}}
	arc := types.App{Name: "Arc", Args: []types.Type{types.TInt}}
	custom := types.App{Name: "Node", Args: []types.Type{types.TInt}}

	got := Overload("take", []types.Type{box}, types.TVoid)
	if want := "take__ol__Pbox_i32__Rvoid"; got != want {
		t.Errorf("Overload with Box param = %s, want %s", got, want)
	}
	got = Overload("take", []types.Type{rc}, types.TVoid)
	if want := "take__ol__Prc_i32__Rvoid"; got != want {
		t.Errorf("Overload with Rc param = %s, want %s", got, want)
	}
	got = Overload("take", []types.Type{arc}, types.TVoid)
	if want := "take__ol__Parc_i32__Rvoid"; got != want {
		t.Errorf("Overload with Arc param = %s, want %s", got, want)
	}
	got = Overload("take", []types.Type{custom}, types.TVoid)
	if want := "take__ol__PappNode_i32__Rvoid"; got != want {
		t.Errorf("Overload with custom struct param = %s, want %s", got, want)
	}
}

func TestNameDeterministic(t *testing.T) {
	args := []types.Type{types.App{Name: "Pair", Args: []types.Type{types.TInt, types.TBool}}}
	a := Name("wrap", args)
	b := Name("wrap", args)
	if a != b {
		t.Errorf("Name is not deterministic: %s != %s", a, b)
	}
}
