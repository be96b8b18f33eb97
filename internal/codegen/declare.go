package codegen

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/mangle"
	"github.com/pawlang-project/paw/internal/types"
)

// Module wraps the llir/llvm module under construction plus the
// function symbol table Declare populates and Lower consults.
type Module struct {
	M     *ir.Module
	funcs map[string]*ir.Func
}

func NewModule() *Module {
	return &Module{M: ir.NewModule(), funcs: map[string]*ir.Func{}}
}

// Declare computes fn's ABI-lowered LLVM signature and registers it in
// m, without touching its body. Calling Declare for every function
// before Lower for any of them means a call to a function declared
// later in source order (or only discovered by the monomorphization
// worklist) still resolves correctly (spec.md C7).
func (b *Backend) Declare(m *Module, fn *ast.Fun, mangledName string) *ir.Func {
	if existing, ok := m.funcs[mangledName]; ok {
		return existing
	}
	params := make([]*ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = ir.NewParam(p.Name, b.MapType(p.Type))
	}
	var ret irtypes.Type = b.MapType(fn.ReturnType)
	f := m.M.NewFunc(mangledName, ret, params...)
	if fn.Visibility == ast.Public || mangledName == "main" {
		f.Linkage = enum.LinkageExternal
	} else {
		f.Linkage = enum.LinkageInternal
	}
	m.funcs[mangledName] = f
	return f
}

// DeclSymbol computes the object-file symbol a non-template free
// function declares under, per spec.md §4.5.2: `main` keeps the bare
// symbol `main`; a name already shaped as a lowered impl method
// (internal/implower's `__impl_...` convention, spec.md §4.10) keeps
// its name unchanged; an `extern` function keeps its bare source name,
// since it names a fixed runtime ABI symbol (spec.md §6.4) the caller
// must match exactly; every other name is overload-mangled
// (internal/mangle.Overload) so two functions sharing a source name
// never collide at the symbol level, even when only one declaration
// uses that name (spec.md's "symbol disjointness" testable property,
// §8.1, holds unconditionally, not just when an overload is present).
func DeclSymbol(fn *ast.Fun) string {
	if fn.Name == "main" || fn.IsExtern || strings.HasPrefix(fn.Name, "__impl_") {
		return fn.Name
	}
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type
	}
	return mangle.Overload(fn.Name, params, fn.ReturnType)
}

func (m *Module) Lookup(mangledName string) (*ir.Func, bool) {
	f, ok := m.funcs[mangledName]
	return f, ok
}
