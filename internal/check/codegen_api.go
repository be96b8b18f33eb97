package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/traits"
	"github.com/pawlang-project/paw/internal/types"
)

// The type checker already runs the full overload/generic resolution
// and trait-bound algorithms once per call site (resolve.go). Rather
// than thread a separate resolved-call side table through
// monomorphization's AST copies (which would go stale the moment a
// generic body is specialized into a fresh tree), codegen re-derives
// the same deterministic resolution during lowering by calling back
// into the same Checker, now exported read-only for that purpose.

// TraitEnv exposes the trait/impl environment this Checker was built
// with, so codegen can look up concrete impls the same way checking did.
func (c *Checker) TraitEnv() *traits.Env { return c.traitEnv }

// LookupFunSet returns every overload candidate registered under name
// (free functions and lowered non-generic impl methods alike).
func (c *Checker) LookupFunSet(name string) []*ast.Fun { return c.funs[name] }

// LookupStruct returns the struct declaration for name, if any.
func (c *Checker) LookupStruct(name string) (*ast.Struct, bool) {
	s, ok := c.structs[name]
	return s, ok
}

// InferType infers e's Paw type given a flat local-variable type
// environment (codegen's lowering walk keeps one per function, updated
// as `let` bindings are lowered) — the same rules exprType applies
// during checking, since by lowering time the program is already known
// to type-check.
func (c *Checker) InferType(e ast.Expr, locals map[string]types.Type) types.Type {
	sc := newScope(nil)
	for name, t := range locals {
		sc.define(name, t, false)
	}
	return c.exprType(e, sc)
}

// ResolveCall reruns the overload-resolution algorithm for a Call node
// given its already-inferred argument types, returning the chosen
// candidate and its instantiation substitution.
func (c *Checker) ResolveCall(name string, generics []types.Type, args []ast.Expr, argTypes []types.Type) (*ast.Fun, types.Subst, bool) {
	fn, sigma, kind := c.resolveCall(name, generics, args, argTypes)
	return fn, sigma, kind == errNone
}

// ResolveQualifiedCall recomputes the concrete (trait, traitArgs)
// pair a QualifiedCall targets, given its already-inferred argument
// types — mirroring checkQualifiedCall's own instantiation step.
func (c *Checker) ResolveQualifiedCall(e *ast.QualifiedCall, argTypes []types.Type) (traitName string, traitArgs []types.Type, ok bool) {
	trait, exists := c.traitEnv.Traits[e.Trait]
	if !exists {
		return "", nil, false
	}
	var sig *ast.TraitMethodSig
	for i := range trait.Methods {
		if trait.Methods[i].Name == e.Method {
			sig = &trait.Methods[i]
			break
		}
	}
	if sig == nil || len(sig.Params) != len(argTypes) {
		return "", nil, false
	}
	sigma := types.Subst{}
	if len(e.Generics) > 0 {
		sigma = types.NewSubst(trait.TypeParams, e.Generics)
	}
	for i, p := range sig.Params {
		pt := types.Apply(p.Type, sigma)
		if err := types.Unify(pt, argTypes[i], sigma); err != nil {
			return "", nil, false
		}
	}
	args := make([]types.Type, len(trait.TypeParams))
	for i, tp := range trait.TypeParams {
		if t, ok := sigma[tp]; ok {
			args[i] = types.Apply(t, sigma)
		} else {
			args[i] = types.Var{Name: tp}
		}
	}
	return e.Trait, args, true
}
