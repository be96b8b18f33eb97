package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/check"
	"github.com/pawlang-project/paw/internal/mangle"
	"github.com/pawlang-project/paw/internal/mono"
	pawtypes "github.com/pawlang-project/paw/internal/types"
)

// Lowerer emits one function body at a time into a declared *ir.Func,
// consulting Checker for re-derived call resolution (see
// internal/check/codegen_api.go) and Engine to obtain mangled names for
// any still-generic callee, specializing it on first use (spec.md C9).
type Lowerer struct {
	backend *Backend
	module  *Module
	checker *check.Checker
	engine  *mono.Engine

	fn         *ast.Fun
	f          *ir.Func
	block      *ir.Block
	locals     map[string]value.Value
	localTypes map[string]pawtypes.Type
	loopExit   []*ir.Block // break targets, innermost last
	loopHead   []*ir.Block // continue targets (for's step-then-cond block)
}

func NewLowerer(b *Backend, m *Module, checker *check.Checker, engine *mono.Engine) *Lowerer {
	return &Lowerer{backend: b, module: m, checker: checker, engine: engine}
}

// LowerFun lowers fn's body into the previously Declare'd function
// named mangledName.
func (lw *Lowerer) LowerFun(fn *ast.Fun, mangledName string) {
	f, ok := lw.module.Lookup(mangledName)
	if !ok || fn.Body == nil {
		return
	}
	lw.fn = fn
	lw.f = f
	lw.locals = map[string]value.Value{}
	lw.localTypes = map[string]pawtypes.Type{}
	entry := f.NewBlock("entry")
	lw.block = entry

	for i, p := range fn.Params {
		alloca := lw.block.NewAlloca(f.Params[i].Type())
		lw.block.NewStore(f.Params[i], alloca)
		lw.locals[p.Name] = alloca
		lw.localTypes[p.Name] = p.Type
	}

	tail := lw.lowerBlock(fn.Body)
	if lw.block.Term == nil {
		retPrim, isPrim := fn.ReturnType.(pawtypes.Primitive)
		switch {
		case isPrim && retPrim.Kind == pawtypes.Void:
			lw.block.NewRet(nil)
		case tail != nil:
			lw.block.NewRet(lw.coerceTo(tail, lw.exprPawType(fn.Body.Tail), fn.ReturnType))
		default:
			lw.block.NewRet(nil)
		}
	}
}

// lowerBlock lowers every statement then the tail expression (if any),
// returning the tail's lowered value (nil if the block has none or
// control already left the block via return/break/continue).
func (lw *Lowerer) lowerBlock(b *ast.Block) value.Value {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		lw.lowerStmt(s)
		if lw.block.Term != nil {
			return nil
		}
	}
	if b.Tail != nil {
		return lw.lowerExpr(b.Tail)
	}
	return nil
}

func (lw *Lowerer) lowerStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Let:
		val := lw.lowerExpr(s.Init)
		ty := s.Type
		if ty == nil {
			ty = lw.exprPawType(s.Init)
		}
		val = lw.coerceTo(val, lw.exprPawType(s.Init), ty)
		alloca := lw.block.NewAlloca(lw.backend.MapType(ty))
		lw.block.NewStore(val, alloca)
		lw.locals[s.Name] = alloca
		lw.localTypes[s.Name] = ty
	case *ast.Assign:
		val := lw.lowerExpr(s.Expr)
		target := lw.localTypes[s.Name]
		val = lw.coerceTo(val, lw.exprPawType(s.Expr), target)
		lw.block.NewStore(val, lw.locals[s.Name])
	case *ast.ExprStmt:
		lw.lowerExpr(s.Expr)
	case *ast.Return:
		if s.Value == nil {
			lw.block.NewRet(nil)
			return
		}
		val := lw.lowerExpr(s.Value)
		val = lw.coerceTo(val, lw.exprPawType(s.Value), lw.fn.ReturnType)
		lw.block.NewRet(val)
	case *ast.While:
		lw.lowerWhile(s.Cond, s.Body)
	case *ast.For:
		lw.lowerFor(s)
	case *ast.IfStmt:
		lw.lowerIfStmt(s.Cond, s.Then, s.Else)
	case *ast.Break:
		if len(lw.loopExit) > 0 {
			lw.block.NewBr(lw.loopExit[len(lw.loopExit)-1])
		}
	case *ast.Continue:
		if len(lw.loopHead) > 0 {
			lw.block.NewBr(lw.loopHead[len(lw.loopHead)-1])
		}
	}
}

// lowerWhile emits the classic header/body/exit block triangle; `for`
// (lowerFor) uses the same shape plus a separate step block that serves
// as its continue target, per spec.md's for-as-while desugaring.
func (lw *Lowerer) lowerWhile(cond ast.Expr, body *ast.Block) {
	head := lw.f.NewBlock("")
	bodyBlk := lw.f.NewBlock("")
	exit := lw.f.NewBlock("")
	lw.block.NewBr(head)

	lw.block = head
	c := lw.lowerExpr(cond)
	head.NewCondBr(lw.toCond1(c), bodyBlk, exit)

	lw.loopExit = append(lw.loopExit, exit)
	lw.loopHead = append(lw.loopHead, head)
	lw.block = bodyBlk
	lw.lowerBlock(body)
	if lw.block.Term == nil {
		lw.block.NewBr(head)
	}
	lw.loopExit = lw.loopExit[:len(lw.loopExit)-1]
	lw.loopHead = lw.loopHead[:len(lw.loopHead)-1]

	lw.block = exit
}

// lowerFor replays Step immediately before every `continue` and after
// normal body fall-through, matching a `while` whose continue-target is
// the step rather than the condition (spec.md's adopted for-desugaring,
// orig:src/desugar.rs).
func (lw *Lowerer) lowerFor(s *ast.For) {
	if s.Init != nil {
		lw.lowerStmt(s.Init.(ast.Stmt))
	}
	head := lw.f.NewBlock("")
	bodyBlk := lw.f.NewBlock("")
	stepBlk := lw.f.NewBlock("")
	exit := lw.f.NewBlock("")
	lw.block.NewBr(head)

	lw.block = head
	if s.Cond != nil {
		c := lw.lowerExpr(s.Cond)
		head.NewCondBr(lw.toCond1(c), bodyBlk, exit)
	} else {
		head.NewBr(bodyBlk)
	}

	lw.loopExit = append(lw.loopExit, exit)
	lw.loopHead = append(lw.loopHead, stepBlk)
	lw.block = bodyBlk
	lw.lowerBlock(s.Body)
	if lw.block.Term == nil {
		lw.block.NewBr(stepBlk)
	}
	lw.loopExit = lw.loopExit[:len(lw.loopExit)-1]
	lw.loopHead = lw.loopHead[:len(lw.loopHead)-1]

	lw.block = stepBlk
	if s.Step != nil {
		lw.lowerStmt(s.Step)
	}
	if lw.block.Term == nil {
		lw.block.NewBr(head)
	}

	lw.block = exit
}

func (lw *Lowerer) lowerIfStmt(cond ast.Expr, then, els *ast.Block) {
	c := lw.toCond1(lw.lowerExpr(cond))
	thenBlk := lw.f.NewBlock("")
	var elseBlk, join *ir.Block
	if els != nil {
		elseBlk = lw.f.NewBlock("")
	}
	join = lw.f.NewBlock("")
	if els != nil {
		lw.block.NewCondBr(c, thenBlk, elseBlk)
	} else {
		lw.block.NewCondBr(c, thenBlk, join)
	}

	lw.block = thenBlk
	lw.lowerBlock(then)
	if lw.block.Term == nil {
		lw.block.NewBr(join)
	}

	if els != nil {
		lw.block = elseBlk
		lw.lowerBlock(els)
		if lw.block.Term == nil {
			lw.block.NewBr(join)
		}
	}

	lw.block = join
}

func (lw *Lowerer) exprPawType(e ast.Expr) pawtypes.Type {
	return lw.checker.InferType(e, lw.localTypes)
}

// coerceTo inserts the numeric conversion spec.md §4.9 requires when a
// value's static type differs from the type it's being stored/returned
// as (widening int literals into Byte/Long/Float/Double and so on); a
// nil val or already-matching types pass through untouched.
func (lw *Lowerer) coerceTo(val value.Value, from, to pawtypes.Type) value.Value {
	if val == nil || from == nil || to == nil || pawtypes.Equal(from, to) {
		return val
	}
	fp, fok := from.(pawtypes.Primitive)
	tp, tok := to.(pawtypes.Primitive)
	if !fok || !tok {
		return val
	}
	fromInt := pawtypes.IsIntegerFamily(fp)
	toInt := pawtypes.IsIntegerFamily(tp)
	fromFloat := pawtypes.IsFloatFamily(fp)
	toFloat := pawtypes.IsFloatFamily(tp)
	want := lw.backend.MapType(to)
	switch {
	case fromInt && toInt:
		if bitWidth(tp.Kind) > bitWidth(fp.Kind) {
			return lw.block.NewSExt(val, want)
		}
		if bitWidth(tp.Kind) < bitWidth(fp.Kind) {
			return lw.block.NewTrunc(val, want)
		}
		return val
	case fromFloat && toFloat:
		if tp.Kind == pawtypes.Double && fp.Kind == pawtypes.Float {
			return lw.block.NewFPExt(val, want)
		}
		if tp.Kind == pawtypes.Float && fp.Kind == pawtypes.Double {
			return lw.block.NewFPTrunc(val, want)
		}
		return val
	case fromInt && toFloat:
		return lw.block.NewSIToFP(val, want)
	case fromFloat && toInt:
		return lw.block.NewFPToSI(val, want)
	default:
		return val
	}
}

// boolConst builds a Bool value in its ABI representation (spec.md
// §4.5.1: Bool is an i8 0/1 slot, not a bare i1).
func boolConst(v bool) value.Value {
	if v {
		return constant.NewInt(irtypes.I8, 1)
	}
	return constant.NewInt(irtypes.I8, 0)
}

// toCond1 narrows a Bool value (i8) to the i1 LLVM branch conditions
// require. Every Bool-typed expression is produced as i8 by lowerExpr,
// so every branch site funnels its condition through this first.
func (lw *Lowerer) toCond1(v value.Value) value.Value {
	return lw.block.NewTrunc(v, irtypes.I1)
}

func bitWidth(k pawtypes.Prim) int {
	switch k {
	case pawtypes.Byte:
		return 8
	case pawtypes.Int, pawtypes.Char:
		return 32
	case pawtypes.Long:
		return 64
	}
	return 0
}

func (lw *Lowerer) lowerExpr(e ast.Expr) value.Value {
	switch e := e.(type) {
	case *ast.IntLit:
		return constant.NewInt(irtypes.I32, e.Value)
	case *ast.LongLit:
		return constant.NewInt(irtypes.I64, e.Value)
	case *ast.FloatLit:
		return constant.NewFloat(irtypes.Float, float64(e.Value))
	case *ast.DoubleLit:
		return constant.NewFloat(irtypes.Double, e.Value)
	case *ast.BoolLit:
		return boolConst(e.Value)
	case *ast.CharLit:
		return constant.NewInt(irtypes.I32, int64(e.Value))
	case *ast.StringLit:
		return lw.lowerStringLit(e.Value)
	case *ast.Ident:
		return lw.lowerIdent(e)
	case *ast.Binary:
		return lw.lowerBinary(e)
	case *ast.Unary:
		return lw.lowerUnary(e)
	case *ast.Call:
		return lw.lowerCall(e)
	case *ast.QualifiedCall:
		return lw.lowerQualifiedCall(e)
	case *ast.Cast:
		return lw.lowerCast(e)
	case *ast.If:
		return lw.lowerIfExpr(e)
	case *ast.Block:
		return lw.lowerBlock(e)
	case *ast.Match:
		return lw.lowerMatch(e)
	case *ast.FieldAccess:
		return lw.lowerFieldAccess(e)
	case *ast.StructLit:
		return lw.lowerStructLit(e)
	default:
		return nil
	}
}

func (lw *Lowerer) lowerStringLit(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	g := lw.module.M.NewGlobalDef("", data)
	g.Immutable = true
	zero := constant.NewInt(irtypes.I32, 0)
	return constant.NewGetElementPtr(data.Typ, g, zero, zero)
}

func (lw *Lowerer) lowerIdent(e *ast.Ident) value.Value {
	if alloca, ok := lw.locals[e.Name]; ok {
		return lw.block.NewLoad(lw.backend.MapType(lw.localTypes[e.Name]), alloca)
	}
	return nil
}

func (lw *Lowerer) lowerUnary(e *ast.Unary) value.Value {
	v := lw.lowerExpr(e.Operand)
	t := lw.exprPawType(e.Operand)
	switch e.Op {
	case ast.OpNot:
		return lw.block.NewXor(v, boolConst(true))
	default: // OpNeg
		if pawtypes.IsFloatFamily(t) {
			return lw.block.NewFNeg(v)
		}
		return lw.block.NewSub(constant.NewInt(v.Type().(*irtypes.IntType), 0), v)
	}
}

func (lw *Lowerer) lowerBinary(e *ast.Binary) value.Value {
	// && and || short-circuit via branching, per spec.md §4.3.4, instead
	// of eagerly evaluating both sides.
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		return lw.lowerShortCircuit(e)
	}
	// spec.md §4.3.4: no mixed-type promotion for binary operators, so
	// the checker has already required lt and rt to match exactly.
	lt := lw.exprPawType(e.Left)
	l := lw.lowerExpr(e.Left)
	r := lw.lowerExpr(e.Right)
	isFloat := pawtypes.IsFloatFamily(lt)
	switch e.Op {
	case ast.OpAdd:
		if isFloat {
			return lw.block.NewFAdd(l, r)
		}
		return lw.block.NewAdd(l, r)
	case ast.OpSub:
		if isFloat {
			return lw.block.NewFSub(l, r)
		}
		return lw.block.NewSub(l, r)
	case ast.OpMul:
		if isFloat {
			return lw.block.NewFMul(l, r)
		}
		return lw.block.NewMul(l, r)
	case ast.OpDiv:
		if isFloat {
			return lw.block.NewFDiv(l, r)
		}
		return lw.block.NewSDiv(l, r)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe:
		var cmp value.Value
		if isFloat {
			cmp = lw.block.NewFCmp(fpred(e.Op), l, r)
		} else {
			cmp = lw.block.NewICmp(ipred(e.Op), l, r)
		}
		return lw.block.NewZExt(cmp, irtypes.I8)
	default:
		return nil
	}
}

func ipred(op ast.BinOp) enum.IPred {
	switch op {
	case ast.OpLt:
		return enum.IPredSLT
	case ast.OpLe:
		return enum.IPredSLE
	case ast.OpGt:
		return enum.IPredSGT
	case ast.OpGe:
		return enum.IPredSGE
	case ast.OpEq:
		return enum.IPredEQ
	default:
		return enum.IPredNE
	}
}

func fpred(op ast.BinOp) enum.FPred {
	switch op {
	case ast.OpLt:
		return enum.FPredOLT
	case ast.OpLe:
		return enum.FPredOLE
	case ast.OpGt:
		return enum.FPredOGT
	case ast.OpGe:
		return enum.FPredOGE
	case ast.OpEq:
		return enum.FPredOEQ
	default:
		return enum.FPredONE
	}
}

func (lw *Lowerer) lowerShortCircuit(e *ast.Binary) value.Value {
	l := lw.toCond1(lw.lowerExpr(e.Left))
	lhsBlk := lw.block
	rhsBlk := lw.f.NewBlock("")
	join := lw.f.NewBlock("")
	if e.Op == ast.OpAnd {
		lhsBlk.NewCondBr(l, rhsBlk, join)
	} else {
		lhsBlk.NewCondBr(l, join, rhsBlk)
	}
	lw.block = rhsBlk
	r := lw.lowerExpr(e.Right)
	rhsBlk.NewBr(join)
	lw.block = join
	phi := join.NewPhi(
		ir.NewIncoming(boolConst(e.Op == ast.OpOr), lhsBlk),
		ir.NewIncoming(r, rhsBlk),
	)
	return phi
}

func (lw *Lowerer) lowerIfExpr(e *ast.If) value.Value {
	c := lw.toCond1(lw.lowerExpr(e.Cond))
	thenBlk := lw.f.NewBlock("")
	elseBlk := lw.f.NewBlock("")
	join := lw.f.NewBlock("")
	lw.block.NewCondBr(c, thenBlk, elseBlk)

	lw.block = thenBlk
	thenVal := lw.lowerBlock(e.Then)
	thenEnd := lw.block
	if thenEnd.Term == nil {
		thenEnd.NewBr(join)
	}

	lw.block = elseBlk
	elseVal := lw.lowerBlock(e.Else)
	elseEnd := lw.block
	if elseEnd.Term == nil {
		elseEnd.NewBr(join)
	}

	lw.block = join
	if thenVal == nil || elseVal == nil {
		return nil
	}
	return join.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}

// lowerMatch implements spec.md's adopted match-desugaring: a chained
// if/== ladder against the scrutinee, wildcard becoming `true`
// (orig:src/desugar.rs), built directly as LLVM basic blocks rather
// than as an intermediate ast.If tree.
func (lw *Lowerer) lowerMatch(e *ast.Match) value.Value {
	scrutVal := lw.lowerExpr(e.Scrutinee)
	scrutTy := lw.exprPawType(e.Scrutinee)
	join := lw.f.NewBlock("")
	var incomings []*ir.Incoming

	for _, arm := range e.Arms {
		patVal := patternConst(arm.Pattern)
		var cond value.Value
		if pawtypes.IsFloatFamily(scrutTy) {
			cond = lw.block.NewFCmp(enum.FPredOEQ, scrutVal, patVal)
		} else {
			cond = lw.block.NewICmp(enum.IPredEQ, scrutVal, patVal)
		}
		armBlk := lw.f.NewBlock("")
		nextBlk := lw.f.NewBlock("")
		lw.block.NewCondBr(cond, armBlk, nextBlk)

		lw.block = armBlk
		v := lw.lowerBlock(arm.Body)
		armEnd := lw.block
		if armEnd.Term == nil {
			armEnd.NewBr(join)
		}
		if v != nil {
			incomings = append(incomings, ir.NewIncoming(v, armEnd))
		}

		lw.block = nextBlk
	}

	if e.Default != nil {
		v := lw.lowerBlock(e.Default)
		defEnd := lw.block
		if defEnd.Term == nil {
			defEnd.NewBr(join)
		}
		if v != nil {
			incomings = append(incomings, ir.NewIncoming(v, defEnd))
		}
	} else if lw.block.Term == nil {
		lw.block.NewBr(join)
	}

	lw.block = join
	if len(incomings) == 0 {
		return nil
	}
	return join.NewPhi(incomings...)
}

func patternConst(p ast.Pattern) value.Value {
	switch p := p.(type) {
	case ast.PatInt:
		return constant.NewInt(irtypes.I32, p.Value)
	case ast.PatLong:
		return constant.NewInt(irtypes.I64, p.Value)
	case ast.PatBool:
		return boolConst(p.Value)
	case ast.PatChar:
		return constant.NewInt(irtypes.I32, int64(p.Value))
	default:
		return boolConst(true)
	}
}

func (lw *Lowerer) lowerCast(e *ast.Cast) value.Value {
	v := lw.lowerExpr(e.Value)
	from := lw.exprPawType(e.Value)
	return lw.coerceTo(v, from, e.To)
}

func (lw *Lowerer) lowerFieldAccess(e *ast.FieldAccess) value.Value {
	base := lw.lowerExpr(e.Value)
	vt := lw.exprPawType(e.Value)
	app, ok := vt.(pawtypes.App)
	if !ok {
		return nil
	}
	s, ok := lw.checker.LookupStruct(app.Name)
	if !ok {
		return nil
	}
	idx := -1
	var fieldTy pawtypes.Type
	sigma := pawtypes.NewSubst(s.TypeParams, app.Args)
	for i, f := range s.Fields {
		if f.Name == e.Field {
			idx = i
			fieldTy = pawtypes.Apply(f.Type, sigma)
			break
		}
	}
	if idx < 0 {
		return nil
	}
	lw.backend.DeclareStruct(app, s)
	st := lw.backend.structType(app)
	ptr := lw.block.NewGetElementPtr(st, base,
		constant.NewInt(irtypes.I32, 0), constant.NewInt(irtypes.I32, int64(idx)))
	return lw.block.NewLoad(lw.backend.MapType(fieldTy), ptr)
}

func (lw *Lowerer) lowerStructLit(e *ast.StructLit) value.Value {
	s, ok := lw.checker.LookupStruct(e.Name)
	if !ok {
		return nil
	}
	app := pawtypes.App{Name: e.Name, Args: e.Generics}
	lw.backend.DeclareStruct(app, s)
	st := lw.backend.structType(app)
	alloca := lw.block.NewAlloca(st)
	sigma := pawtypes.NewSubst(s.TypeParams, e.Generics)
	for _, init := range e.Fields {
		idx := -1
		var fieldTy pawtypes.Type
		for i, f := range s.Fields {
			if f.Name == init.Name {
				idx = i
				fieldTy = pawtypes.Apply(f.Type, sigma)
				break
			}
		}
		if idx < 0 {
			continue
		}
		v := lw.lowerExpr(init.Value)
		v = lw.coerceTo(v, lw.exprPawType(init.Value), fieldTy)
		ptr := lw.block.NewGetElementPtr(st, alloca,
			constant.NewInt(irtypes.I32, 0), constant.NewInt(irtypes.I32, int64(idx)))
		lw.block.NewStore(v, ptr)
	}
	return alloca
}

func (lw *Lowerer) lowerCall(e *ast.Call) value.Value {
	argVals := make([]value.Value, len(e.Args))
	argTypes := make([]pawtypes.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = lw.exprPawType(a)
		argVals[i] = lw.lowerExpr(a)
	}
	fn, sigma, ok := lw.checker.ResolveCall(e.Name, e.Generics, e.Args, argTypes)
	if !ok {
		return nil
	}
	name := DeclSymbol(fn)
	if len(fn.TypeParams) > 0 {
		name = lw.engine.EnsureFun(fn, sigma)
		// Declare the specialization's signature now so this call can
		// target it before the worklist lowers its body.
		sig := &ast.Fun{Visibility: fn.Visibility, ReturnType: pawtypes.Apply(fn.ReturnType, sigma)}
		for _, p := range fn.Params {
			sig.Params = append(sig.Params, ast.Param{Name: p.Name, Type: pawtypes.Apply(p.Type, sigma)})
		}
		lw.backend.Declare(lw.module, sig, name)
	}
	callee, ok := lw.module.Lookup(name)
	if !ok {
		return nil
	}
	for i, p := range fn.Params {
		want := pawtypes.Apply(p.Type, sigma)
		argVals[i] = lw.coerceTo(argVals[i], argTypes[i], want)
	}
	return lw.block.NewCall(callee, argVals...)
}

func (lw *Lowerer) lowerQualifiedCall(e *ast.QualifiedCall) value.Value {
	argVals := make([]value.Value, len(e.Args))
	argTypes := make([]pawtypes.Type, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = lw.exprPawType(a)
		argVals[i] = lw.lowerExpr(a)
	}
	trait, traitArgs, ok := lw.checker.ResolveQualifiedCall(e, argTypes)
	if !ok {
		return nil
	}
	impl, found := lw.checker.TraitEnv().Lookup(trait, traitArgs)
	if !found {
		return nil
	}
	var implMethod *ast.ImplMethod
	for i := range impl.Node.Methods {
		if impl.Node.Methods[i].Name == e.Method {
			implMethod = &impl.Node.Methods[i]
			break
		}
	}
	if implMethod == nil {
		return nil
	}
	var name string
	if len(impl.TypeParams) == 0 {
		name = mangle.Impl(trait, traitArgs, e.Method)
	} else {
		sigma := pawtypes.Subst{}
		for i := range impl.TraitArgs {
			_ = pawtypes.Unify(impl.TraitArgs[i], traitArgs[i], sigma)
		}
		name = lw.engine.EnsureImplMethod(trait, traitArgs, implMethod, sigma)
		sig := &ast.Fun{Visibility: ast.Private, ReturnType: pawtypes.Apply(implMethod.ReturnType, sigma)}
		for _, p := range implMethod.Params {
			sig.Params = append(sig.Params, ast.Param{Name: p.Name, Type: pawtypes.Apply(p.Type, sigma)})
		}
		lw.backend.Declare(lw.module, sig, name)
	}
	callee, ok := lw.module.Lookup(name)
	if !ok {
		return nil
	}
	return lw.block.NewCall(callee, argVals...)
}
