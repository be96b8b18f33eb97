// Package types is the shared type model described in spec.md §3.1 and
// §3.5: primitive scalars, type variables, type applications, and the
// substitution/unification algebra every later phase (trait/impl
// checking, type checking, monomorphization, backend lowering) builds on.
//
// Grounded on _examples/funvibe-funxy/internal/typesystem/types.go (one
// sum-type-shaped Go interface, a handful of concrete struct tags) and
// cross-checked against the Rust original's Ty enum (original_source
// src/ast.rs, src/frontend/ast.rs): Int/Long/Byte/Bool/String/Double/
// Float/Char/Void/Var/App is an exact match.
package types

import "strings"

// Prim is a primitive scalar kind.
type Prim int

const (
	Byte Prim = iota
	Bool
	Int
	Long
	Char
	Float
	Double
	String
	Void
)

var primNames = map[Prim]string{
	Byte: "Byte", Bool: "Bool", Int: "Int", Long: "Long", Char: "Char",
	Float: "Float", Double: "Double", String: "String", Void: "Void",
}

func (p Prim) String() string { return primNames[p] }

// Type is one of Primitive / Var / App per spec.md §3.1.
type Type interface {
	isType()
	String() string
}

// Primitive is a scalar type.
type Primitive struct{ Kind Prim }

// Var names a universally-quantified parameter of the enclosing
// function/trait/impl.
type Var struct{ Name string }

// App is a nominal constructor applied to a fixed-length argument list.
// Args == nil (or empty) denotes the nominal type Name on its own.
type App struct {
	Name string
	Args []Type
}

func (Primitive) isType() {}
func (Var) isType()       {}
func (App) isType()       {}

func (p Primitive) String() string { return p.Kind.String() }
func (v Var) String() string       { return "Var(" + v.Name + ")" }
func (a App) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return a.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Well-known primitive type values, used throughout the checker/backend.
var (
	TByte   = Primitive{Byte}
	TBool   = Primitive{Bool}
	TInt    = Primitive{Int}
	TLong   = Primitive{Long}
	TChar   = Primitive{Char}
	TFloat  = Primitive{Float}
	TDouble = Primitive{Double}
	TString = Primitive{String}
	TVoid   = Primitive{Void}
)

// Equal reports structural equality — the only notion of "assignable"
// before the literal-coercion rule in spec.md §4.3.2 is applied.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Primitive:
		b, ok := b.(Primitive)
		return ok && a.Kind == b.Kind
	case Var:
		b, ok := b.(Var)
		return ok && a.Name == b.Name
	case App:
		b, ok := b.(App)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsIntegerFamily reports whether t is one of the `as`-castable integer
// types (spec.md §4.3.3).
func IsIntegerFamily(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	switch p.Kind {
	case Byte, Int, Long, Char:
		return true
	}
	return false
}

// IsFloatFamily reports whether t is one of the `as`-castable float types.
func IsFloatFamily(t Type) bool {
	p, ok := t.(Primitive)
	if !ok {
		return false
	}
	return p.Kind == Float || p.Kind == Double
}

// IsNumeric reports whether t is legal for arithmetic/ordering operators.
func IsNumeric(t Type) bool {
	return IsIntegerFamily(t) || IsFloatFamily(t)
}

// HasFreeVar reports whether t contains any Var anywhere in its structure.
func HasFreeVar(t Type) bool {
	switch t := t.(type) {
	case Var:
		return true
	case App:
		for _, a := range t.Args {
			if HasFreeVar(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsConcrete is the negation of HasFreeVar, named for readability at call
// sites that check the ABI-concreteness invariant (spec.md §3.1).
func IsConcrete(t Type) bool { return !HasFreeVar(t) }

// CollectFreeVars appends the distinct variable names occurring in t, in
// first-occurrence order, to out.
func CollectFreeVars(t Type, seen map[string]bool, out *[]string) {
	switch t := t.(type) {
	case Var:
		if !seen[t.Name] {
			seen[t.Name] = true
			*out = append(*out, t.Name)
		}
	case App:
		for _, a := range t.Args {
			CollectFreeVars(a, seen, out)
		}
	}
}
