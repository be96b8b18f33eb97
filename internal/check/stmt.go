package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/types"
)

// checkBlock type-checks every statement in b, then (if present) its
// tail expression, under a fresh child scope.
func (c *Checker) checkBlock(b *ast.Block, parent *scope) types.Type {
	if b == nil {
		return types.TVoid
	}
	sc := newScope(parent)
	for _, s := range b.Stmts {
		c.checkStmt(s, sc)
	}
	if b.Tail != nil {
		return c.exprType(b.Tail, sc)
	}
	return types.TVoid
}

func (c *Checker) checkStmt(s ast.Stmt, sc *scope) {
	switch s := s.(type) {
	case *ast.Let:
		initTy := c.exprType(s.Init, sc)
		declTy := s.Type
		if declTy == nil {
			declTy = initTy
		} else if !c.assignable(s.Init, initTy, declTy) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file,
				"cannot assign %s to %s in let binding for %q", initTy, declTy, s.Name)
		}
		sc.define(s.Name, declTy, s.IsConst)
	case *ast.Assign:
		target, ok := sc.lookup(s.Name)
		if !ok {
			c.sink.Error(diagnostics.ResolutionFail, spanPtr(s.Span()), c.file, "assignment to unknown variable %q", s.Name)
			c.exprType(s.Expr, sc)
			return
		}
		if sc.isConst(s.Name) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file, "cannot assign to const binding %q", s.Name)
		}
		valTy := c.exprType(s.Expr, sc)
		if !c.assignable(s.Expr, valTy, target) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file,
				"cannot assign %s to %q of type %s", valTy, s.Name, target)
		}
	case *ast.ExprStmt:
		c.exprType(s.Expr, sc)
	case *ast.Return:
		var got types.Type = types.TVoid
		if s.Value != nil {
			got = c.exprType(s.Value, sc)
		}
		want := c.curReturn
		if want == nil {
			want = types.TVoid
		}
		if !c.assignable(s.Value, got, want) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file,
				"return type %s does not match declared return type %s", got, want)
		}
	case *ast.While:
		condTy := c.exprType(s.Cond, sc)
		c.requireBool(condTy, s.Span())
		c.loopDepth++
		c.checkBlock(s.Body, sc)
		c.loopDepth--
	case *ast.For:
		loopScope := newScope(sc)
		if s.Init != nil {
			c.checkStmt(s.Init.(ast.Stmt), loopScope)
		}
		if s.Cond != nil {
			c.requireBool(c.exprType(s.Cond, loopScope), s.Span())
		}
		c.loopDepth++
		c.checkBlock(s.Body, loopScope)
		if s.Step != nil {
			c.checkStmt(s.Step, loopScope)
		}
		c.loopDepth--
	case *ast.IfStmt:
		c.requireBool(c.exprType(s.Cond, sc), s.Span())
		c.checkBlock(s.Then, sc)
		if s.Else != nil {
			c.checkBlock(s.Else, sc)
		}
	case *ast.Break:
		if c.loopDepth == 0 {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file, "break outside of a loop")
		}
	case *ast.Continue:
		if c.loopDepth == 0 {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(s.Span()), c.file, "continue outside of a loop")
		}
	}
}

func (c *Checker) requireBool(t types.Type, sp ast.Span) {
	if !types.Equal(t, types.TBool) {
		c.sink.Error(diagnostics.TyMismatch, spanPtr(sp), c.file, "condition must be Bool, found %s", t)
	}
}

// assignable reports whether a value of type got (produced by expr, so
// literal coercions apply) may be used where want is expected.
func (c *Checker) assignable(expr ast.Expr, got, want types.Type) bool {
	if types.Equal(got, want) {
		return true
	}
	if expr != nil && literalCoerces(expr, want) {
		return true
	}
	return false
}
