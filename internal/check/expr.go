package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/types"
)

// exprType infers e's type, recording diagnostics for any mistyped
// subexpression and returning a best-effort type so checking can
// continue (spec.md §4.8: stop at item boundary, not expression
// boundary).
func (c *Checker) exprType(e ast.Expr, sc *scope) types.Type {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.TInt
	case *ast.LongLit:
		return types.TLong
	case *ast.FloatLit:
		return types.TFloat
	case *ast.DoubleLit:
		return types.TDouble
	case *ast.BoolLit:
		return types.TBool
	case *ast.CharLit:
		return types.TChar
	case *ast.StringLit:
		return types.TString
	case *ast.Ident:
		if t, ok := sc.lookup(e.Name); ok {
			return t
		}
		if g, ok := c.globals[e.Name]; ok {
			return g.Type
		}
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "unknown identifier %q", e.Name)
		return types.TVoid
	case *ast.Binary:
		return c.checkBinary(e, sc)
	case *ast.Unary:
		return c.checkUnary(e, sc)
	case *ast.Call:
		return c.checkCall(e, sc)
	case *ast.QualifiedCall:
		return c.checkQualifiedCall(e, sc)
	case *ast.Cast:
		return c.checkCast(e, sc)
	case *ast.If:
		condTy := c.exprType(e.Cond, sc)
		c.requireBool(condTy, e.Span())
		thenTy := c.checkBlock(e.Then, sc)
		elseTy := c.checkBlock(e.Else, sc)
		if !types.Equal(thenTy, elseTy) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file,
				"if branches have different types: %s vs %s", thenTy, elseTy)
		}
		return thenTy
	case *ast.Block:
		return c.checkBlock(e, sc)
	case *ast.Match:
		return c.checkMatch(e, sc)
	case *ast.FieldAccess:
		return c.checkFieldAccess(e, sc)
	case *ast.StructLit:
		return c.checkStructLit(e, sc)
	default:
		return types.TVoid
	}
}

func (c *Checker) checkBinary(e *ast.Binary, sc *scope) types.Type {
	lt := c.exprType(e.Left, sc)
	rt := c.exprType(e.Right, sc)
	switch e.Op {
	case ast.OpAnd, ast.OpOr:
		c.requireBool(lt, e.Left.Span())
		c.requireBool(rt, e.Right.Span())
		return types.TBool
	case ast.OpEq, ast.OpNe:
		if !types.Equal(lt, rt) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file,
				"cannot compare %s and %s, use `as` to convert one side first", lt, rt)
		}
		return types.TBool
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) || !types.Equal(lt, rt) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file,
				"ordering operator needs matching numeric operands, found %s and %s, use `as` to convert one side first", lt, rt)
		}
		return types.TBool
	default: // arithmetic
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) || !types.Equal(lt, rt) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file,
				"arithmetic needs matching numeric operands, found %s and %s, use `as` to convert one side first", lt, rt)
			return lt
		}
		return lt
	}
}

func (c *Checker) checkUnary(e *ast.Unary, sc *scope) types.Type {
	t := c.exprType(e.Operand, sc)
	switch e.Op {
	case ast.OpNot:
		c.requireBool(t, e.Span())
		return types.TBool
	default: // OpNeg
		if !types.IsNumeric(t) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file, "unary - needs a numeric operand, found %s", t)
		}
		return t
	}
}

func (c *Checker) checkCast(e *ast.Cast, sc *scope) types.Type {
	from := c.exprType(e.Value, sc)
	to := e.To
	if types.IsNumeric(from) && types.IsNumeric(to) {
		return to
	}
	if types.Equal(from, to) {
		return to
	}
	c.sink.Error(diagnostics.CastIllegal, spanPtr(e.Span()), c.file, "illegal cast from %s to %s", from, to)
	return to
}

func (c *Checker) checkFieldAccess(e *ast.FieldAccess, sc *scope) types.Type {
	vt := c.exprType(e.Value, sc)
	app, ok := vt.(types.App)
	if !ok {
		c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file, "%s has no fields", vt)
		return types.TVoid
	}
	s, ok := c.structs[app.Name]
	if !ok {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "unknown struct %q", app.Name)
		return types.TVoid
	}
	sigma := types.NewSubst(s.TypeParams, app.Args)
	for _, f := range s.Fields {
		if f.Name == e.Field {
			return types.Apply(f.Type, sigma)
		}
	}
	c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "struct %q has no field %q", app.Name, e.Field)
	return types.TVoid
}

func (c *Checker) checkStructLit(e *ast.StructLit, sc *scope) types.Type {
	s, ok := c.structs[e.Name]
	if !ok {
		c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "unknown struct %q", e.Name)
		for _, f := range e.Fields {
			c.exprType(f.Value, sc)
		}
		return types.TVoid
	}
	sigma := types.Subst{}
	if len(e.Generics) > 0 {
		sigma = types.NewSubst(s.TypeParams, e.Generics)
	}
	byName := map[string]types.Type{}
	for _, f := range s.Fields {
		byName[f.Name] = f.Type
	}
	seen := map[string]bool{}
	for _, init := range e.Fields {
		valTy := c.exprType(init.Value, sc)
		seen[init.Name] = true
		declTy, ok := byName[init.Name]
		if !ok {
			c.sink.Error(diagnostics.ResolutionFail, spanPtr(e.Span()), c.file, "struct %q has no field %q", e.Name, init.Name)
			continue
		}
		want := types.Apply(declTy, sigma)
		if len(e.Generics) == 0 {
			// Infer type arguments from field initializers when the
			// literal omits explicit generics (spec.md §4.3.1).
			_ = types.Unify(declTy, valTy, sigma)
			want = types.Apply(declTy, sigma)
		}
		if !c.assignable(init.Value, valTy, want) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file,
				"field %q: cannot assign %s to %s", init.Name, valTy, want)
		}
	}
	for _, f := range s.Fields {
		if !seen[f.Name] {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(e.Span()), c.file, "missing field %q in literal for %q", f.Name, e.Name)
		}
	}
	args := e.Generics
	if len(args) == 0 {
		args = make([]types.Type, len(s.TypeParams))
		for i, tp := range s.TypeParams {
			if t, ok := sigma[tp]; ok {
				args[i] = t
			} else {
				args[i] = types.Var{Name: tp}
			}
		}
	}
	return types.App{Name: e.Name, Args: args}
}

func (c *Checker) checkMatch(e *ast.Match, sc *scope) types.Type {
	scrutTy := c.exprType(e.Scrutinee, sc)
	var result types.Type
	first := true
	checkArmTy := func(sp ast.Span, t types.Type) {
		if first {
			result = t
			first = false
			return
		}
		if !types.Equal(result, t) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(sp), c.file, "match arms have different types: %s vs %s", result, t)
		}
	}
	for _, arm := range e.Arms {
		patTy := patternType(arm.Pattern)
		if patTy != nil && !types.Equal(patTy, scrutTy) {
			c.sink.Error(diagnostics.TyMismatch, spanPtr(arm.Body.Span()), c.file,
				"pattern type %s does not match scrutinee type %s", patTy, scrutTy)
		}
		t := c.checkBlock(arm.Body, sc)
		checkArmTy(arm.Body.Span(), t)
	}
	if e.Default != nil {
		t := c.checkBlock(e.Default, sc)
		checkArmTy(e.Default.Span(), t)
	}
	if result == nil {
		return types.TVoid
	}
	return result
}

func patternType(p ast.Pattern) types.Type {
	switch p.(type) {
	case ast.PatInt:
		return types.TInt
	case ast.PatLong:
		return types.TLong
	case ast.PatBool:
		return types.TBool
	case ast.PatChar:
		return types.TChar
	default:
		return nil
	}
}
