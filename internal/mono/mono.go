// Package mono implements on-demand monomorphization: every generic
// function or generic impl method is only ever turned into concrete,
// ABI-lowerable code the first time a call site needs a particular
// instantiation (spec.md §4.9/§4.10, C9). The backend's lower phase
// (internal/codegen) asks Engine for a specialization whenever it meets
// a Call/QualifiedCall whose target has type parameters still to bind;
// Engine returns the mangled name to call and queues the specialized
// body for its own declare+lower pass, so the worklist drains until no
// new instantiation is discovered.
package mono

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/mangle"
	"github.com/pawlang-project/paw/internal/types"
)

// Engine tracks every distinct (generic function or impl method, type
// argument tuple) pair requested so far.
type Engine struct {
	specialized map[string]*ast.Fun // mangled name -> specialized, ABI-concrete Fun
	pending     []*ast.Fun          // specialized Funs not yet declared+lowered
}

func NewEngine() *Engine {
	return &Engine{specialized: map[string]*ast.Fun{}}
}

// orderedArgs reads sigma back out in tparams' declared order, the
// mangling convention spec.md §4.10 and orig:src/backend/codegen/mono.rs
// both rely on for deterministic, collision-free symbol names.
func orderedArgs(tparams []string, sigma types.Subst) []types.Type {
	out := make([]types.Type, len(tparams))
	for i, tp := range tparams {
		if t, ok := sigma[tp]; ok {
			out[i] = types.Apply(t, sigma)
		} else {
			out[i] = types.Var{Name: tp}
		}
	}
	return out
}

// EnsureFun returns the mangled symbol name for fn instantiated at
// sigma, specializing and enqueueing it the first time it is requested.
func (e *Engine) EnsureFun(fn *ast.Fun, sigma types.Subst) string {
	args := orderedArgs(fn.TypeParams, sigma)
	name := mangle.Name(fn.Name, args)
	if _, ok := e.specialized[name]; ok {
		return name
	}
	spec := specializeFun(fn, name, sigma)
	e.specialized[name] = spec
	e.pending = append(e.pending, spec)
	return name
}

// EnsureImplMethod mirrors EnsureFun for a non-free-function impl
// method belonging to a generic impl (spec.md §4.4/§4.10): traitArgs
// are the impl's own type arguments (already substituted to concrete
// types by the caller), and sigma binds the impl's type parameters in
// the method's signature and body.
func (e *Engine) EnsureImplMethod(trait string, traitArgs []types.Type, m *ast.ImplMethod, sigma types.Subst) string {
	name := mangle.Impl(trait, traitArgs, m.Name)
	if _, ok := e.specialized[name]; ok {
		return name
	}
	fn := &ast.Fun{
		BaseItem:   ast.BaseItem{},
		Visibility: ast.Private,
		Name:       name,
		Params:     m.Params,
		ReturnType: m.ReturnType,
		Body:       m.Body,
		IsExtern:   m.IsExtern,
	}
	spec := specializeFun(fn, name, sigma)
	e.specialized[name] = spec
	e.pending = append(e.pending, spec)
	return name
}

// specializeFun deep-copies fn's signature and body, applying sigma to
// every type annotation reachable from it (parameter/return types,
// `let` annotations, casts, and any nested call/struct-literal generic
// argument lists), and renames it to mangledName. The body's own
// control-flow and expression structure is otherwise untouched — Calls
// inside the body that are themselves still generic get resolved to
// their own concrete instantiation the next time codegen's lower phase
// walks into them, recursively growing this same worklist.
func specializeFun(fn *ast.Fun, mangledName string, sigma types.Subst) *ast.Fun {
	spec := &ast.Fun{
		BaseItem:   fn.BaseItem,
		Visibility: fn.Visibility,
		Name:       mangledName,
		Params:     make([]ast.Param, len(fn.Params)),
		ReturnType: types.Apply(fn.ReturnType, sigma),
		IsExtern:   fn.IsExtern,
	}
	for i, p := range fn.Params {
		spec.Params[i] = ast.Param{Name: p.Name, Type: types.Apply(p.Type, sigma)}
	}
	if fn.Body != nil {
		spec.Body = substBlock(fn.Body, sigma)
	}
	return spec
}

func substBlock(b *ast.Block, sigma types.Subst) *ast.Block {
	if b == nil {
		return nil
	}
	out := &ast.Block{BaseExpr: b.BaseExpr}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, substStmt(s, sigma))
	}
	if b.Tail != nil {
		out.Tail = substExpr(b.Tail, sigma)
	}
	return out
}

func substStmt(s ast.Stmt, sigma types.Subst) ast.Stmt {
	switch s := s.(type) {
	case *ast.Let:
		var ty types.Type
		if s.Type != nil {
			ty = types.Apply(s.Type, sigma)
		}
		return &ast.Let{BaseStmt: s.BaseStmt, Name: s.Name, Mut: s.Mut, Type: ty, Init: substExpr(s.Init, sigma), IsConst: s.IsConst}
	case *ast.Assign:
		return &ast.Assign{BaseStmt: s.BaseStmt, Name: s.Name, Expr: substExpr(s.Expr, sigma)}
	case *ast.ExprStmt:
		return &ast.ExprStmt{BaseStmt: s.BaseStmt, Expr: substExpr(s.Expr, sigma)}
	case *ast.Return:
		var v ast.Expr
		if s.Value != nil {
			v = substExpr(s.Value, sigma)
		}
		return &ast.Return{BaseStmt: s.BaseStmt, Value: v}
	case *ast.While:
		return &ast.While{BaseStmt: s.BaseStmt, Cond: substExpr(s.Cond, sigma), Body: substBlock(s.Body, sigma)}
	case *ast.For:
		var init ast.ForInit
		if s.Init != nil {
			init = substStmt(s.Init.(ast.Stmt), sigma).(ast.ForInit)
		}
		var cond ast.Expr
		if s.Cond != nil {
			cond = substExpr(s.Cond, sigma)
		}
		var step ast.Stmt
		if s.Step != nil {
			step = substStmt(s.Step, sigma)
		}
		return &ast.For{BaseStmt: s.BaseStmt, Init: init, Cond: cond, Step: step, Body: substBlock(s.Body, sigma)}
	case *ast.IfStmt:
		var elseB *ast.Block
		if s.Else != nil {
			elseB = substBlock(s.Else, sigma)
		}
		return &ast.IfStmt{BaseStmt: s.BaseStmt, Cond: substExpr(s.Cond, sigma), Then: substBlock(s.Then, sigma), Else: elseB}
	default:
		return s
	}
}

func substExpr(e ast.Expr, sigma types.Subst) ast.Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Binary:
		return &ast.Binary{BaseExpr: e.BaseExpr, Op: e.Op, Left: substExpr(e.Left, sigma), Right: substExpr(e.Right, sigma)}
	case *ast.Unary:
		return &ast.Unary{BaseExpr: e.BaseExpr, Op: e.Op, Operand: substExpr(e.Operand, sigma)}
	case *ast.Call:
		return &ast.Call{BaseExpr: e.BaseExpr, Name: e.Name, Generics: types.ApplyAll(e.Generics, sigma), Args: substExprs(e.Args, sigma)}
	case *ast.QualifiedCall:
		return &ast.QualifiedCall{BaseExpr: e.BaseExpr, Trait: e.Trait, Method: e.Method, Generics: types.ApplyAll(e.Generics, sigma), Args: substExprs(e.Args, sigma)}
	case *ast.Cast:
		return &ast.Cast{BaseExpr: e.BaseExpr, Value: substExpr(e.Value, sigma), To: types.Apply(e.To, sigma)}
	case *ast.If:
		return &ast.If{BaseExpr: e.BaseExpr, Cond: substExpr(e.Cond, sigma), Then: substBlock(e.Then, sigma), Else: substBlock(e.Else, sigma)}
	case *ast.Block:
		return substBlock(e, sigma)
	case *ast.Match:
		m := &ast.Match{BaseExpr: e.BaseExpr, Scrutinee: substExpr(e.Scrutinee, sigma), Default: substBlock(e.Default, sigma)}
		for _, arm := range e.Arms {
			m.Arms = append(m.Arms, ast.MatchArm{Pattern: arm.Pattern, Body: substBlock(arm.Body, sigma)})
		}
		return m
	case *ast.FieldAccess:
		return &ast.FieldAccess{BaseExpr: e.BaseExpr, Value: substExpr(e.Value, sigma), Field: e.Field}
	case *ast.StructLit:
		s := &ast.StructLit{BaseExpr: e.BaseExpr, Name: e.Name, Generics: types.ApplyAll(e.Generics, sigma)}
		for _, f := range e.Fields {
			s.Fields = append(s.Fields, ast.StructFieldInit{Name: f.Name, Value: substExpr(f.Value, sigma)})
		}
		return s
	default:
		return e
	}
}

func substExprs(es []ast.Expr, sigma types.Subst) []ast.Expr {
	out := make([]ast.Expr, len(es))
	for i, e := range es {
		out[i] = substExpr(e, sigma)
	}
	return out
}

// Drain returns every specialization queued since the last Drain call,
// letting the backend's declare+lower loop keep processing newly
// discovered instantiations until the worklist is empty.
func (e *Engine) Drain() []*ast.Fun {
	out := e.pending
	e.pending = nil
	return out
}
