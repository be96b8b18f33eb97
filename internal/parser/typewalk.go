package parser

import "github.com/pawlang-project/paw/internal/ast"

// rewriteFunTypeVars resolves every App{Name,nil} naming one of f's own
// type parameters (params, return type, where-bounds, and everywhere a
// type annotation appears in the body) into a Var, per spec.md §3.1.
func rewriteFunTypeVars(f *ast.Fun) {
	tp := tparamSet(f.TypeParams)
	for i := range f.Params {
		f.Params[i].Type = resolveTypeParams(f.Params[i].Type, tp)
	}
	f.ReturnType = resolveTypeParams(f.ReturnType, tp)
	for i := range f.WhereBounds {
		for j := range f.WhereBounds[i].Args {
			f.WhereBounds[i].Args[j] = resolveTypeParams(f.WhereBounds[i].Args[j], tp)
		}
	}
	if f.Body != nil {
		rewriteBlock(f.Body, tp)
	}
}

func rewriteImplTypeVars(im *ast.Impl) {
	tp := tparamSet(im.TypeParams)
	for i := range im.TraitArgs {
		im.TraitArgs[i] = resolveTypeParams(im.TraitArgs[i], tp)
	}
	for i := range im.WhereBounds {
		for j := range im.WhereBounds[i].Args {
			im.WhereBounds[i].Args[j] = resolveTypeParams(im.WhereBounds[i].Args[j], tp)
		}
	}
	for mi := range im.Methods {
		m := &im.Methods[mi]
		for pi := range m.Params {
			m.Params[pi].Type = resolveTypeParams(m.Params[pi].Type, tp)
		}
		m.ReturnType = resolveTypeParams(m.ReturnType, tp)
		if m.Body != nil {
			rewriteBlock(m.Body, tp)
		}
	}
	for ai := range im.AssocTypes {
		im.AssocTypes[ai].Type = resolveTypeParams(im.AssocTypes[ai].Type, tp)
	}
}

func rewriteTraitTypeVars(t *ast.Trait) {
	tp := tparamSet(t.TypeParams)
	for mi := range t.Methods {
		m := &t.Methods[mi]
		for pi := range m.Params {
			m.Params[pi].Type = resolveTypeParams(m.Params[pi].Type, tp)
		}
		m.ReturnType = resolveTypeParams(m.ReturnType, tp)
	}
	for ai := range t.AssocTypes {
		for bi := range t.AssocTypes[ai].Bounds {
			for j := range t.AssocTypes[ai].Bounds[bi].Args {
				t.AssocTypes[ai].Bounds[bi].Args[j] = resolveTypeParams(t.AssocTypes[ai].Bounds[bi].Args[j], tp)
			}
		}
	}
}

func rewriteStructTypeVars(s *ast.Struct) {
	tp := tparamSet(s.TypeParams)
	for i := range s.Fields {
		s.Fields[i].Type = resolveTypeParams(s.Fields[i].Type, tp)
	}
}

func rewriteBlock(b *ast.Block, tp map[string]bool) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		rewriteStmt(s, tp)
	}
	if b.Tail != nil {
		rewriteExpr(b.Tail, tp)
	}
}

func rewriteStmt(s ast.Stmt, tp map[string]bool) {
	switch s := s.(type) {
	case *ast.Let:
		if s.Type != nil {
			s.Type = resolveTypeParams(s.Type, tp)
		}
		rewriteExpr(s.Init, tp)
	case *ast.Assign:
		rewriteExpr(s.Expr, tp)
	case *ast.ExprStmt:
		rewriteExpr(s.Expr, tp)
	case *ast.Return:
		if s.Value != nil {
			rewriteExpr(s.Value, tp)
		}
	case *ast.While:
		rewriteExpr(s.Cond, tp)
		rewriteBlock(s.Body, tp)
	case *ast.For:
		switch init := s.Init.(type) {
		case *ast.Let:
			rewriteStmt(init, tp)
		case *ast.Assign:
			rewriteStmt(init, tp)
		case *ast.ExprStmt:
			rewriteStmt(init, tp)
		}
		if s.Cond != nil {
			rewriteExpr(s.Cond, tp)
		}
		if s.Step != nil {
			rewriteStmt(s.Step, tp)
		}
		rewriteBlock(s.Body, tp)
	case *ast.IfStmt:
		rewriteExpr(s.Cond, tp)
		rewriteBlock(s.Then, tp)
		rewriteBlock(s.Else, tp)
	}
}

func rewriteExpr(e ast.Expr, tp map[string]bool) {
	switch e := e.(type) {
	case nil:
		return
	case *ast.Binary:
		rewriteExpr(e.Left, tp)
		rewriteExpr(e.Right, tp)
	case *ast.Unary:
		rewriteExpr(e.Operand, tp)
	case *ast.Call:
		for i := range e.Generics {
			e.Generics[i] = resolveTypeParams(e.Generics[i], tp)
		}
		for _, a := range e.Args {
			rewriteExpr(a, tp)
		}
	case *ast.QualifiedCall:
		for i := range e.Generics {
			e.Generics[i] = resolveTypeParams(e.Generics[i], tp)
		}
		for _, a := range e.Args {
			rewriteExpr(a, tp)
		}
	case *ast.Cast:
		e.To = resolveTypeParams(e.To, tp)
		rewriteExpr(e.Value, tp)
	case *ast.If:
		rewriteExpr(e.Cond, tp)
		rewriteBlock(e.Then, tp)
		rewriteBlock(e.Else, tp)
	case *ast.Block:
		rewriteBlock(e, tp)
	case *ast.Match:
		rewriteExpr(e.Scrutinee, tp)
		for i := range e.Arms {
			rewriteBlock(e.Arms[i].Body, tp)
		}
		rewriteBlock(e.Default, tp)
	case *ast.FieldAccess:
		rewriteExpr(e.Value, tp)
	case *ast.StructLit:
		for i := range e.Generics {
			e.Generics[i] = resolveTypeParams(e.Generics[i], tp)
		}
		for _, f := range e.Fields {
			rewriteExpr(f.Value, tp)
		}
	}
}
