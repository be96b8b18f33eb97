package check_test

import (
	"testing"

	"github.com/pawlang-project/paw/internal/check"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/implower"
	"github.com/pawlang-project/paw/internal/parser"
	"github.com/pawlang-project/paw/internal/traits"
)

// runCheck parses src, lowers impls, builds the trait environment, and
// type-checks the resulting program, returning every diagnostic emitted.
func runCheck(t *testing.T, src string) []diagnostics.Diagnostic {
	t.Helper()
	prog, err := parser.Parse("t.paw", src)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	implower.Lower(prog)
	sink := diagnostics.NewSink()
	traitEnv := traits.Build(prog, sink)
	checker := check.NewChecker(prog, traitEnv, sink)
	checker.Check(prog)
	return sink.Diagnostics()
}

func TestCheckAcceptsWellTypedProgram(t *testing.T) {
	src := `
fn add(x: Int, y: Int) -> Int { x + y }
fn main() -> Int { add(1, 2) }
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckRejectsMixedTypesInArithmetic(t *testing.T) {
	// spec.md §4.3.4: no mixed-type promotion for binary operators, so a
	// Long plus an Int literal must be rejected with an `as` hint; literal
	// coercion never widens an Int literal to Long.
	src := `
fn bump(x: Long) -> Long { x + 1 }
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a type-mismatch diagnostic for Long + Int")
	}
}

func TestCheckAllowsLiteralCoercionInArgumentPosition(t *testing.T) {
	// spec.md §4.3.2's literal coercion rule still applies at call sites,
	// just not across a binary operator (see
	// TestCheckRejectsMixedTypesInArithmetic).
	src := `
fn take(x: Byte) -> Byte { x }
fn main() -> Byte { take(1) }
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckRejectsMismatchedIfBranches(t *testing.T) {
	src := `
fn choose(flag: Bool) -> Int {
    if flag { 1 } else { true }
}
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a type-mismatch diagnostic for differently-typed if branches")
	}
}

func TestCheckOptionalElseTypesAsVoidInStatementPosition(t *testing.T) {
	// A statement if with no else is legal (spec.md §4.3.5): its branch
	// types are discarded, so an unbalanced else is fine here.
	src := `
fn run(flag: Bool) -> Int {
    if flag {
        return 1;
    }
    0
}
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for optional-else statement if: %v", diags)
	}
}

func TestCheckRejectsUnknownIdentifier(t *testing.T) {
	src := `
fn broken() -> Int { ghost }
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a resolution-failure diagnostic for an unknown identifier")
	}
	if diags[0].Code != diagnostics.ResolutionFail {
		t.Errorf("diags[0].Code = %s, want %s", diags[0].Code, diagnostics.ResolutionFail)
	}
}

func TestCheckRejectsIllegalCast(t *testing.T) {
	src := `
fn bad(s: String) -> Int { s as Int }
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a cast-illegal diagnostic for String as Int")
	}
}

func TestCheckAllowsNumericCast(t *testing.T) {
	src := `
fn widen(x: Int) -> Long { x as Long }
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckStructFieldAccess(t *testing.T) {
	src := `
struct Point { x: Int, y: Int }
fn sum(p: Point) -> Int { p.x + p.y }
fn main() -> Int { sum(Point { x: 1, y: 2 }) }
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestCheckRejectsMissingStructField(t *testing.T) {
	src := `
struct Point { x: Int, y: Int }
fn main() -> Int {
    let p = Point { x: 1 };
    p.x
}
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a struct literal missing a field")
	}
}

func TestCheckGlobalInitializerMismatch(t *testing.T) {
	src := `
let counter: Int = true;
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a type-mismatch diagnostic for a global initialized with the wrong type")
	}
}

func TestCheckConstGlobalRequiresLiteralInitializer(t *testing.T) {
	src := `
fn one() -> Int { 1 }
const total: Int = one();
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a const global initialized with a non-literal expression")
	}
}

func TestCheckGlobalInfersTypeFromInitializer(t *testing.T) {
	src := `
let count = 42;
fn main() -> Int { count }
`
	if diags := runCheck(t, src); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for a global with an inferred type: %v", diags)
	}
}

func TestCheckDuplicateStructDeclaration(t *testing.T) {
	src := `
struct Point { x: Int }
struct Point { x: Int }
`
	diags := runCheck(t, src)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a duplicate struct declaration")
	}
	if diags[0].Code != diagnostics.DuplicateDecl {
		t.Errorf("diags[0].Code = %s, want %s", diags[0].Code, diagnostics.DuplicateDecl)
	}
}
