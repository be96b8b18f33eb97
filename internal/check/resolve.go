package check

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/types"
)

// candidate is one overload member under consideration for a call site.
type candidate struct {
	fn    *ast.Fun
	sigma types.Subst
	score int
}

// resolveErrKind distinguishes the two resolution failure shapes spec.md
// §4.3.6 calls out by name.
type resolveErrKind int

const (
	errNone resolveErrKind = iota
	errNoMatch
	errAmbiguous
)

// resolveCall runs the full overload/generic resolution algorithm of
// spec.md §4.3.6 (ported from orig:src/middle/typecheck/resolve.rs's
// resolve_fun_call): arity filter, per-candidate instantiation,
// where-bound check, per-parameter scoring, generic penalty, then
// lowest-unique-score wins.
func (c *Checker) resolveCall(name string, explicitGenerics []types.Type, args []ast.Expr, argTypes []types.Type) (*ast.Fun, types.Subst, resolveErrKind) {
	pool := c.funs[name]
	var cands []candidate
	for _, fn := range pool {
		if len(fn.Params) != len(args) {
			continue
		}
		sigma := types.Subst{}
		ok := true
		if len(explicitGenerics) > 0 {
			if len(explicitGenerics) != len(fn.TypeParams) {
				continue
			}
			for i, tp := range fn.TypeParams {
				sigma[tp] = explicitGenerics[i]
			}
		} else if len(fn.TypeParams) > 0 {
			for i, param := range fn.Params {
				pt := types.Apply(param.Type, sigma)
				if err := types.Unify(pt, argTypes[i], sigma); err != nil {
					ok = false
					break
				}
			}
		}
		if !ok {
			continue
		}
		if !c.whereBoundsSatisfied(fn.WhereBounds, sigma) {
			continue
		}
		score := 0
		for i, param := range fn.Params {
			pt := types.Apply(param.Type, sigma)
			s, ok := scoreParam(args[i], argTypes[i], pt)
			if !ok {
				score = -1
				break
			}
			score += s
		}
		if score < 0 {
			continue
		}
		if len(fn.TypeParams) > 0 {
			score++
		}
		cands = append(cands, candidate{fn: fn, sigma: sigma, score: score})
	}
	if len(cands) == 0 {
		return nil, nil, errNoMatch
	}
	best := cands[0]
	tie := false
	for _, cd := range cands[1:] {
		if cd.score < best.score {
			best = cd
			tie = false
		} else if cd.score == best.score {
			tie = true
		}
	}
	if tie {
		return nil, nil, errAmbiguous
	}
	return best.fn, best.sigma, errNone
}

// scoreParam scores one argument against a (already-substituted)
// parameter type: 0 for an exact structural match or a literal that
// coerces into it (spec.md §4.3.2), ok=false otherwise.
func scoreParam(argExpr ast.Expr, argType, paramType types.Type) (int, bool) {
	if types.Equal(argType, paramType) {
		return 0, true
	}
	if literalCoerces(argExpr, paramType) {
		return 0, true
	}
	return 0, false
}

// literalCoerces implements spec.md §4.3.2's literal coercion rule: an
// int literal in [0,255] may stand in for Byte; a Double literal may
// stand in for Float when it round-trips exactly through float32; any
// Float or Double literal may stand in for Double. Never applies to a
// non-literal expression.
func literalCoerces(e ast.Expr, target types.Type) bool {
	prim, ok := target.(types.Primitive)
	if !ok {
		return false
	}
	switch lit := e.(type) {
	case *ast.IntLit:
		return prim.Kind == types.Byte && lit.Value >= 0 && lit.Value <= 255
	case *ast.DoubleLit:
		if prim.Kind == types.Double {
			return true
		}
		if prim.Kind == types.Float {
			return float64(float32(lit.Value)) == lit.Value
		}
		return false
	case *ast.FloatLit:
		return prim.Kind == types.Float || prim.Kind == types.Double
	default:
		return false
	}
}

// whereBoundsSatisfied checks spec.md §4.3.6 step 4: once a candidate's
// type variables are instantiated by sigma, every where-bound's
// argument must either name a concrete type with a registered impl, or
// (if still free) be covered by the *caller's* own where-clause.
func (c *Checker) whereBoundsSatisfied(bounds []ast.WhereBound, sigma types.Subst) bool {
	for _, wb := range bounds {
		args := make([]types.Type, len(wb.Args))
		for i, a := range wb.Args {
			args[i] = types.Apply(a, sigma)
		}
		allConcrete := true
		for _, a := range args {
			if types.HasFreeVar(a) {
				allConcrete = false
				break
			}
		}
		if allConcrete {
			if _, ok := c.traitEnv.Lookup(wb.Trait, args); !ok {
				return false
			}
			continue
		}
		if !c.callerCoversBound(wb.Trait, args) {
			return false
		}
	}
	return true
}

// callerCoversBound reports whether the enclosing function being
// checked has declared a where-bound for the same trait over
// compatible (still-free) type arguments, letting it pass the
// obligation on to its own callers.
func (c *Checker) callerCoversBound(trait string, args []types.Type) bool {
	for _, wb := range c.curWhere {
		if wb.Trait != trait || len(wb.Args) != len(args) {
			continue
		}
		s := types.Subst{}
		match := true
		for i := range args {
			if err := types.Unify(wb.Args[i], args[i], s); err != nil {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
