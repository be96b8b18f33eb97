// Package compiler orchestrates every phase of spec.md's pipeline (C1
// through C10) into one Compile entry point: parse+expand imports,
// lower impls, build the trait environment, type-check, declare and
// lower every reachable function (draining internal/mono's worklist as
// generic instantiations are discovered), and finally emit object bytes.
// Grounded on _examples/funvibe-funxy/cmd/funxy/main.go's
// compileToBundle, which plays the same "wire one phase's output into
// the next, bail at the first phase with errors" role for funxy's own
// pipeline.
package compiler

import (
	"fmt"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/check"
	"github.com/pawlang-project/paw/internal/codegen"
	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/implower"
	"github.com/pawlang-project/paw/internal/imports"
	"github.com/pawlang-project/paw/internal/mono"
	"github.com/pawlang-project/paw/internal/objemit"
	"github.com/pawlang-project/paw/internal/project"
	"github.com/pawlang-project/paw/internal/traits"
)

// Options configures one Compile invocation.
type Options struct {
	// Target is the triple to emit object bytes for (spec.md §6.1);
	// HostTarget() is used when left zero.
	Target objemit.Target
	// ScratchDir is where objemit writes its scratch .ll/.o files;
	// os.TempDir() is used when empty.
	ScratchDir string
}

// Result is one compilation's outcome: the produced object bytes (nil
// if any diagnostic error was recorded) plus every diagnostic emitted.
type Result struct {
	Object      []byte
	Diagnostics []diagnostics.Diagnostic
}

// Compile loads the Paw.toml project at projectRoot, compiles its entry
// file and every transitive import, and emits one object file's worth
// of bytes (spec.md §6.5: one object per invocation; linking is
// external).
func Compile(projectRoot string, opts Options) (*Result, error) {
	if opts.Target == "" {
		opts.Target = objemit.HostTarget()
	}

	proj, err := project.Load(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("compiler: loading project: %w", err)
	}

	prog, err := imports.Expand(proj.EntryPath(), proj.SearchRoots())
	if err != nil {
		return nil, fmt.Errorf("compiler: expanding imports: %w", err)
	}

	implower.Lower(prog)

	sink := diagnostics.NewSink()
	traitEnv := traits.Build(prog, sink)
	checker := check.NewChecker(prog, traitEnv, sink)
	checker.Check(prog)
	if sink.HasErrors() {
		return &Result{Diagnostics: sink.Diagnostics()}, nil
	}

	backend := codegen.NewBackend()
	mod := codegen.NewModule()
	engine := mono.NewEngine()
	lowerer := codegen.NewLowerer(backend, mod, checker, engine)

	// Declare every non-generic function up front (C7) so a call to a
	// function defined later in source order, or only reached through
	// another function's body, still finds its symbol; generic
	// instantiations are declared as internal/mono discovers them below.
	type declared struct {
		fn   *ast.Fun
		name string
	}
	var pending []declared
	for _, it := range prog.Items {
		fn, ok := it.(*ast.Fun)
		if !ok || len(fn.TypeParams) > 0 {
			continue
		}
		name := codegen.DeclSymbol(fn)
		backend.Declare(mod, fn, name)
		if !fn.IsExtern {
			pending = append(pending, declared{fn, name})
		}
	}

	for len(pending) > 0 {
		batch := pending
		pending = nil
		for _, d := range batch {
			lowerer.LowerFun(d.fn, d.name)
		}
		for _, spec := range engine.Drain() {
			backend.Declare(mod, spec, spec.Name)
			pending = append(pending, declared{spec, spec.Name})
		}
	}

	if sink.HasErrors() {
		return &Result{Diagnostics: sink.Diagnostics()}, nil
	}

	obj, err := objemit.Emit(mod.M, opts.Target, opts.ScratchDir)
	if err != nil {
		return nil, fmt.Errorf("compiler: emitting object: %w", err)
	}
	return &Result{Object: obj, Diagnostics: sink.Diagnostics()}, nil
}
