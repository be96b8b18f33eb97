// Package mangle computes the deterministic symbol names the backend
// emits for functions, impl methods, and monomorphized instances.
// Grounded directly on orig:src/backend/mangle.rs and
// orig:src/backend/codegen/mono.rs — the alphabet and joining rules below
// are a line-for-line port of that module's behavior, not a redesign.
package mangle

import (
	"fmt"
	"strings"

	"github.com/pawlang-project/paw/internal/types"
)

// Ty renders a type for use inside a mangled name: primitive keywords
// as-is, a Var as `Var(name)`, and App as `Name<a,b,...>` (or just
// `Name` with no args).
func Ty(t types.Type) string {
	switch t := t.(type) {
	case types.Primitive:
		return t.Kind.String()
	case types.Var:
		return fmt.Sprintf("Var(%s)", t.Name)
	case types.App:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = Ty(a)
		}
		return t.Name + "<" + strings.Join(parts, ",") + ">"
	default:
		return "?"
	}
}

// Name mangles a base symbol with its monomorphization type arguments:
// `base` when args is empty, else `base$t1,t2,...`.
func Name(base string, args []types.Type) string {
	if len(args) == 0 {
		return base
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Ty(a)
	}
	return base + "$" + strings.Join(parts, ",")
}

// Impl mangles a trait-impl method symbol: `__impl_<trait>__<method>`
// when the impl takes no type arguments, else
// `__impl_<trait>$t1,t2__<method>`.
func Impl(trait string, args []types.Type, method string) string {
	if len(args) == 0 {
		return fmt.Sprintf("__impl_%s__%s", trait, method)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Ty(a)
	}
	return fmt.Sprintf("__impl_%s$%s__%s", trait, strings.Join(parts, ","), method)
}

// encTy renders a type using the overload-mangling alphabet: short
// primitive codes, and `app<name>_X` for a nominal application, with
// box/rc/arc given their own short prefixes per orig:src/backend/mangle.rs.
func encTy(t types.Type) string {
	switch t := t.(type) {
	case types.Primitive:
		switch t.Kind {
		case types.Byte:
			return "u8"
		case types.Bool:
			return "bool"
		case types.Int:
			return "i32"
		case types.Long:
			return "i64"
		case types.Char:
			return "char"
		case types.Float:
			return "f32"
		case types.Double:
			return "f64"
		case types.String:
			return "str"
		case types.Void:
			return "void"
		}
		return "?"
	case types.Var:
		return t.Name
	case types.App:
		switch t.Name {
		case "Box":
			return "box_" + encArgs(t.Args)
		case "Rc":
			return "rc_" + encArgs(t.Args)
		case "Arc":
			return "arc_" + encArgs(t.Args)
		default:
			return "app" + t.Name + "_" + encArgs(t.Args)
		}
	default:
		return "?"
	}
}

func encArgs(args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = encTy(a)
	}
	return strings.Join(parts, "_")
}

// Overload mangles an overload-resolved call site's chosen candidate,
// so two same-named functions with different parameter types never
// collide at the object-file symbol level:
// `{base}__ol__P{p1_p2_...}__R{ret}`.
func Overload(base string, params []types.Type, ret types.Type) string {
	pparts := make([]string, len(params))
	for i, p := range params {
		pparts[i] = encTy(p)
	}
	return fmt.Sprintf("%s__ol__P%s__R%s", base, strings.Join(pparts, "_"), encTy(ret))
}
