// Package codegen lowers ABI-concrete Paw functions (spec.md §3.1: no
// Var, no unknown App head) into LLVM IR via github.com/llir/llvm,
// following a declare-then-lower split (spec.md C7/C8): Declare computes
// every function's ABI-lowered signature first, so mutually recursive
// and forward-referenced calls resolve before any body is lowered; Lower
// then emits instructions per spec.md §4.3/§4.9 (short-circuit booleans,
// numeric coercion, struct field access by offset).
//
// Grounded on sentra-language-sentra's manifest dependency on
// github.com/llir/llvm (the pack's only native-codegen IR builder) and
// orig:src/backend/codegen/{declare,lower}.rs for the two-phase split and
// per-construct lowering rules this package ports from Cranelift IR
// construction to LLVM IR construction.
package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/pawlang-project/paw/internal/ast"
	pawtypes "github.com/pawlang-project/paw/internal/types"
)

// Backend owns the module being built plus the struct-layout cache so
// every App type maps to the same llir/llvm struct definition.
type Backend struct {
	structs map[string]*types.StructType
}

func NewBackend() *Backend {
	return &Backend{structs: map[string]*types.StructType{}}
}

// MapType lowers a Paw type to its LLVM representation per spec.md §3.6:
// Byte->i8, Bool->i8 (spec.md §4.5.1/§6.4: the runtime ABI's print_bool
// and box/rc/arc cells all carry Bool as an i8 0/1 slot, not a bare i1),
// Int->i32, Char->i32 (Paw chars are Unicode scalar values, not bytes),
// Long->i64, Float->float, Double->double,
// String->i8* (a NUL-terminated byte buffer), Void->void, and any App
// (struct) as a pointer to its lowered struct type — App is always
// passed by reference (spec.md §3.6's App size/align-8 "by-reference"
// rule).
func (b *Backend) MapType(t pawtypes.Type) types.Type {
	switch t := t.(type) {
	case pawtypes.Primitive:
		switch t.Kind {
		case pawtypes.Byte:
			return types.I8
		case pawtypes.Bool:
			return types.I8
		case pawtypes.Int:
			return types.I32
		case pawtypes.Long:
			return types.I64
		case pawtypes.Char:
			return types.I32
		case pawtypes.Float:
			return types.Float
		case pawtypes.Double:
			return types.Double
		case pawtypes.String:
			return types.NewPointer(types.I8)
		case pawtypes.Void:
			return types.Void
		}
		return types.Void
	case pawtypes.App:
		return types.NewPointer(b.structType(t))
	default:
		// A bare Var reaching the backend violates the ABI-concrete
		// invariant; the type checker/mono engine must have fully
		// instantiated every type parameter before this point.
		panic("codegen: non-concrete type reached the backend: " + t.String())
	}
}

// structType returns (creating and memoizing on first use) the LLVM
// struct type for a Paw struct application.
func (b *Backend) structType(app pawtypes.App) *types.StructType {
	key := mangleKey(app)
	if st, ok := b.structs[key]; ok {
		return st
	}
	st := &types.StructType{}
	b.structs[key] = st // placeholder so a self-referential field sees itself as opaque-by-pointer
	return st
}

// DeclareStruct computes and records app's field list from struct
// declaration s (applying app's type arguments against s's type
// parameters), skipping the work if already done — called lazily by
// codegen's lower phase the first time a given instantiation is
// constructed or accessed, since a generic struct's concrete field
// layout is only known once its type arguments are known (spec.md §3.6).
func (b *Backend) DeclareStruct(app pawtypes.App, s *ast.Struct) {
	key := mangleKey(app)
	if st, ok := b.structs[key]; ok && len(st.Fields) > 0 {
		return
	}
	st := b.structType(app)
	sigma := pawtypes.NewSubst(s.TypeParams, app.Args)
	fields := make([]types.Type, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = b.MapType(pawtypes.Apply(f.Type, sigma))
	}
	st.Fields = fields
}

func mangleKey(app pawtypes.App) string {
	s := app.Name
	for _, a := range app.Args {
		s += "," + a.String()
	}
	return s
}
