// Package check implements Paw's type checker: scope-based variable
// typing, structural unification, operator typing, control-flow
// checking, and the overload/generic call-resolution algorithm of
// spec.md §4.3.6 (see resolve.go). Grounded on orig:src/middle/typecheck
// for the overall shape (one Checker struct walking the whole program
// after import expansion and impl lowering) and on spec.md §4 for every
// concrete rule.
package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/traits"
	"github.com/pawlang-project/paw/internal/types"
)

// Checker holds the whole-program symbol tables consulted while
// checking every function body.
type Checker struct {
	file     string
	sink     *diagnostics.Sink
	traitEnv *traits.Env
	funs     map[string][]*ast.Fun
	structs  map[string]*ast.Struct
	globals  map[string]*ast.Global

	curWhere  []ast.WhereBound
	curReturn types.Type
	curTParam map[string]bool
	loopDepth int
}

// NewChecker builds the symbol tables from prog (post import-expansion
// and impl-lowering, so every callable — free function or lowered impl
// method — appears as an *ast.Fun) and returns a Checker ready to check
// every Fun body.
func NewChecker(prog *ast.Program, traitEnv *traits.Env, sink *diagnostics.Sink) *Checker {
	c := &Checker{
		file:     prog.File,
		sink:     sink,
		traitEnv: traitEnv,
		funs:     map[string][]*ast.Fun{},
		structs:  map[string]*ast.Struct{},
		globals:  map[string]*ast.Global{},
	}
	for _, it := range prog.Items {
		switch it := it.(type) {
		case *ast.Fun:
			c.funs[it.Name] = append(c.funs[it.Name], it)
		case *ast.Struct:
			if _, dup := c.structs[it.Name]; dup {
				sink.Error(diagnostics.DuplicateDecl, spanPtr(it.Span()), prog.File, "duplicate struct declaration %q", it.Name)
				continue
			}
			c.structs[it.Name] = it
			if len(it.TypeParams) == 0 {
				if _, err := types.ComputeLayout(it.Fields, types.Subst{}); err != nil {
					sink.Error(diagnostics.AbiViolation, spanPtr(it.Span()), prog.File, "struct %q: %v", it.Name, err)
				}
			}
		case *ast.Global:
			if _, dup := c.globals[it.Name]; dup {
				sink.Error(diagnostics.DuplicateDecl, spanPtr(it.Span()), prog.File, "duplicate global declaration %q", it.Name)
				continue
			}
			c.globals[it.Name] = it
		}
	}
	return c
}

// Check type-checks every function body and every global initializer in
// the program the Checker was built from.
func (c *Checker) Check(prog *ast.Program) {
	for _, items := range c.funs {
		for _, fn := range items {
			c.checkFun(fn)
		}
	}
	for _, g := range c.globals {
		c.checkGlobal(g)
	}
}

// checkGlobal enforces spec.md §4.4's global rules: the declared type
// and the initializer's type must both be concrete, the initializer
// must be assignable to the declared type (literal coercion included,
// spec.md §4.3.2), and a `const` global's initializer must itself be a
// literal expression (spec.md §3.2).
func (c *Checker) checkGlobal(g *ast.Global) {
	if g.Initializer == nil {
		if types.HasFreeVar(g.Type) {
			c.sink.Error(diagnostics.AbiViolation, spanPtr(g.Span()), c.file, "global %q has a non-concrete type %s", g.Name, g.Type)
		}
		return
	}
	sc := newScope(nil)
	initTy := c.exprType(g.Initializer, sc)
	if g.Type == nil {
		// No explicit annotation (`let x = 1;` at top level): the
		// initializer's own type is the global's type, same as a
		// local `let` with no declared type (internal/check/stmt.go).
		g.Type = initTy
	}
	if types.HasFreeVar(g.Type) {
		c.sink.Error(diagnostics.AbiViolation, spanPtr(g.Span()), c.file, "global %q has a non-concrete type %s", g.Name, g.Type)
	}
	if !c.assignable(g.Initializer, initTy, g.Type) {
		c.sink.Error(diagnostics.TyMismatch, spanPtr(g.Span()), c.file,
			"cannot assign %s to global %q of type %s", initTy, g.Name, g.Type)
	}
	if g.IsConst && !isLiteralExpr(g.Initializer) {
		c.sink.Error(diagnostics.TyMismatch, spanPtr(g.Span()), c.file,
			"const global %q must be initialized with a literal expression", g.Name)
	}
}

// isLiteralExpr reports whether e is one of the scalar literal forms
// spec.md §3.2 requires for a const global's initializer (a unary minus
// applied to a numeric literal still counts, since `-1` is how a
// negative literal is written).
func isLiteralExpr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IntLit, *ast.LongLit, *ast.FloatLit, *ast.DoubleLit, *ast.BoolLit, *ast.CharLit, *ast.StringLit:
		return true
	case *ast.Unary:
		return e.Op == ast.OpNeg && isLiteralExpr(e.Operand)
	default:
		return false
	}
}

func (c *Checker) checkFun(fn *ast.Fun) {
	if fn.Body == nil { // extern
		return
	}
	c.curWhere = fn.WhereBounds
	c.curReturn = fn.ReturnType
	c.curTParam = tparamSet(fn.TypeParams)
	sc := newScope(nil)
	for _, p := range fn.Params {
		sc.define(p.Name, p.Type, false)
	}
	c.checkBlock(fn.Body, sc)
}

func tparamSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func spanPtr(s ast.Span) *ast.Span { return &s }
