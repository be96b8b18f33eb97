// Package implower lowers non-generic impl blocks into ordinary free
// functions, so the rest of the pipeline (type checking, mangling,
// codegen) only ever has to deal with Fun items. Generic impls are left
// in place for internal/mono to monomorphize on demand at call sites.
package implower

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/mangle"
)

// Lower rewrites prog.Items in place: every non-generic impl's methods
// become top-level Fun items named via mangle.Impl, placed just before
// the impl item, which itself stays in the item list so internal/traits
// can still shape-check it. Generic impls are kept unchanged.
func Lower(prog *ast.Program) {
	var out []ast.Item
	for _, it := range prog.Items {
		im, ok := it.(*ast.Impl)
		if !ok || len(im.TypeParams) > 0 {
			out = append(out, it)
			continue
		}
		for _, m := range im.Methods {
			fn := &ast.Fun{
				BaseItem:   ast.BaseItem{Sp: im.Span()},
				Visibility: ast.Private,
				Name:       mangle.Impl(im.TraitName, im.TraitArgs, m.Name),
				Params:     m.Params,
				ReturnType: m.ReturnType,
				Body:       m.Body,
				IsExtern:   m.IsExtern,
			}
			out = append(out, fn)
		}
		// Keep the impl itself too: internal/traits needs it at
		// shape-check time to verify method signatures and where-bounds
		// against the trait declaration. Dropping it here would lose
		// that information with nothing gained, since the lowered Fun
		// has already absorbed its bodies.
		out = append(out, im)
	}
	prog.Items = out
}
