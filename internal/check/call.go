package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/mangle"
	"github.com/pawlang-project/paw/internal/types"
)

func (c *Checker) checkCall(e *ast.Call, sc *scope) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.exprType(a, sc)
	}
	fn, sigma, errKind := c.resolveCall(e.Name, e.Generics, e.Args, argTypes)
	switch errKind {
	case errNoMatch:
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "unknown function %q for argument types given", e.Name)
		return types.TVoid
	case errAmbiguous:
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "ambiguous call to %q", e.Name)
		return types.TVoid
	}
	return types.Apply(fn.ReturnType, sigma)
}

// checkQualifiedCall type-checks `Trait::method<Generics>(Args)`
// (spec.md §4.3.7). The trait's declared method signature fixes arity
// and parameter/return shape; Generics instantiate the trait's own type
// parameters, and the concrete instantiation must resolve to a
// registered impl (monomorphized later by internal/mono).
func (c *Checker) checkQualifiedCall(e *ast.QualifiedCall, sc *scope) types.Type {
	argTypes := make([]types.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.exprType(a, sc)
	}
	trait, ok := c.traitEnv.Traits[e.Trait]
	if !ok {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "unknown trait %q", e.Trait)
		return types.TVoid
	}
	var sig *ast.TraitMethodSig
	for i := range trait.Methods {
		if trait.Methods[i].Name == e.Method {
			sig = &trait.Methods[i]
			break
		}
	}
	if sig == nil {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "trait %q has no method %q", e.Trait, e.Method)
		return types.TVoid
	}
	if len(sig.Params) != len(e.Args) {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file,
			"%s::%s expects %d argument(s), found %d", e.Trait, e.Method, len(sig.Params), len(e.Args))
		return types.TVoid
	}
	sigma := types.Subst{}
	if len(e.Generics) > 0 {
		sigma = types.NewSubst(trait.TypeParams, e.Generics)
	}
	for i, p := range sig.Params {
		pt := types.Apply(p.Type, sigma)
		if err := types.Unify(pt, argTypes[i], sigma); err != nil {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Args[i].Span()), c.file,
				"argument %d to %s::%s: cannot unify %s with %s", i, e.Trait, e.Method, argTypes[i], pt)
		}
	}
	traitArgs := make([]types.Type, len(trait.TypeParams))
	for i, tp := range trait.TypeParams {
		if t, ok := sigma[tp]; ok {
			traitArgs[i] = t
		} else {
			traitArgs[i] = types.Var{Name: tp}
		}
	}
	if !types.HasFreeVar(typesSliceAsOne(traitArgs)) {
		if _, ok := c.traitEnv.Lookup(e.Trait, traitArgs); !ok {
			c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file,
				"no impl of %s for %s", e.Trait, mangle.Name("", traitArgs))
		}
	} else if !c.callerCoversBound(e.Trait, traitArgs) {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file,
			"trait bound %s not covered by enclosing function's where-clause", e.Trait)
	}
	return types.Apply(sig.ReturnType, sigma)
}

// typesSliceAsOne reports a free variable across a slice of types by
// folding them into a single synthetic App the existing HasFreeVar walk
// can inspect in one call.
func typesSliceAsOne(ts []types.Type) types.Type {
	return types.App{Name: "", Args: ts}
}
