// Package traits builds the program-level trait/impl environment and
// checks impl shape against trait declarations (spec.md §4.4). The type
// checker (internal/check) consults Env when resolving Trait::method
// calls and verifying where-bounds.
package traits

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/types"
)

// Impl is one registered trait implementation.
type Impl struct {
	TypeParams []string
	TraitArgs  []types.Type
	Node       *ast.Impl
}

// Env is the full set of trait declarations and their impls for one
// compiled program (post import-expansion, so it spans every file).
type Env struct {
	Traits map[string]*ast.Trait
	Impls  map[string][]*Impl // keyed by trait name
}

func NewEnv() *Env {
	return &Env{Traits: map[string]*ast.Trait{}, Impls: map[string][]*Impl{}}
}

// Build scans prog.Items and populates Env, reporting duplicate trait
// declarations and any impl whose shape does not match its trait.
func Build(prog *ast.Program, sink *diagnostics.Sink) *Env {
	env := NewEnv()
	for _, it := range prog.Items {
		if t, ok := it.(*ast.Trait); ok {
			if _, dup := env.Traits[t.Name]; dup {
				sink.Error(diagnostics.DuplicateDecl, spanPtr(t.Span()), prog.File, "duplicate trait declaration %q", t.Name)
				continue
			}
			env.Traits[t.Name] = t
		}
	}
	seenKeys := map[string][]*Impl{} // trait name -> impls already registered, for duplicate-key detection
	for _, it := range prog.Items {
		im, ok := it.(*ast.Impl)
		if !ok {
			continue
		}
		if dup := findDupKey(seenKeys[im.TraitName], im.TraitArgs); dup != nil {
			sink.Error(diagnostics.DuplicateDecl, spanPtr(im.Span()), prog.File,
				"duplicate impl of %s<%s>", im.TraitName, argsString(im.TraitArgs))
		}
		entry := &Impl{
			TypeParams: im.TypeParams,
			TraitArgs:  im.TraitArgs,
			Node:       im,
		}
		env.Impls[im.TraitName] = append(env.Impls[im.TraitName], entry)
		seenKeys[im.TraitName] = append(seenKeys[im.TraitName], entry)
		checkShape(env, im, prog.File, sink)
	}
	return env
}

func findDupKey(existing []*Impl, args []types.Type) *Impl {
	for _, im := range existing {
		if len(im.TraitArgs) != len(args) {
			continue
		}
		same := true
		for i := range args {
			if !types.Equal(im.TraitArgs[i], args[i]) {
				same = false
				break
			}
		}
		if same {
			return im
		}
	}
	return nil
}

func argsString(args []types.Type) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s
}

func checkShape(env *Env, im *ast.Impl, file string, sink *diagnostics.Sink) {
	trait, ok := env.Traits[im.TraitName]
	if !ok {
		sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file, "impl of unknown trait %q", im.TraitName)
		return
	}
	if len(im.TraitArgs) != len(trait.TypeParams) {
		sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
			"impl of %q supplies %d type argument(s), trait declares %d", im.TraitName, len(im.TraitArgs), len(trait.TypeParams))
		return
	}
	// Every variable reachable from the impl's trait-args must be one of
	// the impl's own declared type parameters — spec.md §4.4's "impl
	// trait-args must all be concrete" taken at the impl's own scope
	// (impl<T> Show<T> is the well-scoped case every generic impl uses;
	// a stray, undeclared variable is the only thing actually rejected).
	declared := map[string]bool{}
	for _, tp := range im.TypeParams {
		declared[tp] = true
	}
	for _, a := range im.TraitArgs {
		var vars []string
		types.CollectFreeVars(a, map[string]bool{}, &vars)
		for _, v := range vars {
			if !declared[v] {
				sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
					"impl of %q uses undeclared type variable %q in its trait arguments", im.TraitName, v)
			}
		}
	}

	sigma := types.NewSubst(trait.TypeParams, im.TraitArgs)
	sig := map[string]ast.TraitMethodSig{}
	for _, m := range trait.Methods {
		sig[m.Name] = m
	}
	seen := map[string]bool{}
	for _, m := range im.Methods {
		seen[m.Name] = true
		want, ok := sig[m.Name]
		if !ok {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl method %q is not a member of trait %q", m.Name, im.TraitName)
			continue
		}
		if len(want.Params) != len(m.Params) {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl method %q has %d parameter(s), trait declares %d", m.Name, len(m.Params), len(want.Params))
			continue
		}
		for i, p := range want.Params {
			wantTy := types.Apply(p.Type, sigma)
			if !types.Equal(wantTy, m.Params[i].Type) {
				sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
					"impl method %q parameter %d: expected %s (from trait), found %s", m.Name, i, wantTy, m.Params[i].Type)
			}
		}
		wantRet := types.Apply(want.ReturnType, sigma)
		if !types.Equal(wantRet, m.ReturnType) {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl method %q return type: expected %s (from trait), found %s", m.Name, wantRet, m.ReturnType)
		}
	}
	for name := range sig {
		if !seen[name] {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl of %q is missing method %q", im.TraitName, name)
		}
	}

	assocSeen := map[string]bool{}
	for _, at := range im.AssocTypes {
		assocSeen[at.Name] = true
		if types.HasFreeVar(at.Type) {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl of %q: associated type %q must be concrete, found %s", im.TraitName, at.Name, at.Type)
			continue
		}
		var decl *ast.TraitAssocType
		for i := range trait.AssocTypes {
			if trait.AssocTypes[i].Name == at.Name {
				decl = &trait.AssocTypes[i]
				break
			}
		}
		if decl == nil {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl associated type %q is not a member of trait %q", at.Name, im.TraitName)
			continue
		}
		for _, b := range decl.Bounds {
			args := make([]types.Type, len(b.Args))
			for i, a := range b.Args {
				args[i] = substAssocSelf(a, at.Name, at.Type)
			}
			if _, ok := env.Lookup(b.Trait, args); !ok {
				sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
					"impl of %q: associated type %q's bound %s<%s> is not satisfied by any registered impl",
					im.TraitName, at.Name, b.Trait, argsString(args))
			}
		}
	}
	for i := range trait.AssocTypes {
		name := trait.AssocTypes[i].Name
		if !assocSeen[name] {
			sink.Error(diagnostics.TraitShape, spanPtr(im.Span()), file,
				"impl of %q is missing associated type %q", im.TraitName, name)
		}
	}
}

// substAssocSelf replaces every occurrence of the associated type's own
// name (parsed as a bare nominal App, since it is not one of the
// trait's declared type parameters) with its concrete definition in the
// impl, so a bound like `type Item: Eq<Item>;` can be checked against
// the impl's actual `Item = Concrete` definition.
func substAssocSelf(t types.Type, name string, def types.Type) types.Type {
	switch t := t.(type) {
	case types.App:
		if t.Name == name && len(t.Args) == 0 {
			return def
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = substAssocSelf(a, name, def)
		}
		return types.App{Name: t.Name, Args: args}
	default:
		return t
	}
}

// Lookup returns the impl registered for trait/args, matching either an
// exact concrete-argument impl or a generic impl whose shape unifies
// with args (used by internal/check's where-bound verification, spec.md
// §4.3.6 step 4).
func (e *Env) Lookup(trait string, args []types.Type) (*Impl, bool) {
	for _, im := range e.Impls[trait] {
		if matches(im, args) {
			return im, true
		}
	}
	return nil, false
}

func matches(im *Impl, args []types.Type) bool {
	if len(im.TraitArgs) != len(args) {
		return false
	}
	s := types.Subst{}
	for i := range args {
		if err := types.Unify(im.TraitArgs[i], args[i], s); err != nil {
			return false
		}
	}
	return true
}

// HasAny reports whether any impl of trait is registered, regardless of
// its type arguments — used when a where-bound's type is a free
// variable and only the trait's existence (for some instantiation)
// needs checking against the caller's own where-clause coverage.
func (e *Env) HasAny(trait string) bool {
	return len(e.Impls[trait]) > 0
}

func spanPtr(s ast.Span) *ast.Span { return &s }
