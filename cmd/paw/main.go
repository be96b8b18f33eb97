// Command paw is the PawLang compiler CLI: `build <dev|release>
// [--target T] [--quiet] [file]`, `--list-targets`, and `--help`/`-h`,
// hand-parsed over os.Args in the style of the teacher's
// cmd/funxy/main.go (no flag-parsing library, since the grammar is
// small and original_source/src/cli/args.rs does the same).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/pawlang-project/paw/internal/diagnostics"
	"github.com/pawlang-project/paw/internal/objemit"
	"github.com/pawlang-project/paw/pkg/compiler"
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage()
		return
	}

	if args[0] == "--list-targets" {
		for _, t := range objemit.Targets {
			fmt.Println(t)
		}
		return
	}

	if args[0] != "build" {
		fmt.Fprintf(os.Stderr, "paw: unknown command %q\n", args[0])
		printUsage()
		os.Exit(1)
	}

	os.Exit(runBuild(args[1:]))
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  paw build <dev|release> [--target <triple>] [--quiet] [<input>]")
	fmt.Println("  paw --list-targets")
	fmt.Println("  paw --help")
}

// runBuild parses `build`'s own arguments and runs one compilation,
// returning the process exit code.
func runBuild(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "paw build: missing <dev|release>")
		return 1
	}
	profile := args[0]
	if profile != "dev" && profile != "release" {
		fmt.Fprintf(os.Stderr, "paw build: profile must be \"dev\" or \"release\", got %q\n", profile)
		return 1
	}

	var target objemit.Target
	quiet := false
	input := "."
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--target":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "paw build: --target requires a triple")
				return 1
			}
			target = objemit.Target(args[i+1])
			i++
		case "--quiet":
			quiet = true
		default:
			input = args[i]
		}
	}

	if target != "" && !target.Valid() {
		fmt.Fprintf(os.Stderr, "paw build: unsupported target %q (see --list-targets)\n", target)
		return 1
	}

	root := input
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		root = filepath.Dir(input)
	}

	progress := !quiet && isatty.IsTerminal(os.Stdout.Fd())
	if progress {
		fmt.Printf("compiling %s (%s)...\n", root, profile)
	}

	result, err := compiler.Compile(root, compiler.Options{Target: target})
	if err != nil {
		fmt.Fprintf(os.Stderr, "paw build: %s\n", err)
		return 1
	}

	for _, d := range result.Diagnostics {
		reportDiagnostic(d)
	}
	if len(result.Object) == 0 {
		return 1
	}

	outPath := "out.o"
	if err := os.WriteFile(outPath, result.Object, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "paw build: writing %s: %s\n", outPath, err)
		return 1
	}
	if progress {
		fmt.Printf("wrote %s (%d bytes)\n", outPath, len(result.Object))
	}
	return 0
}

func reportDiagnostic(d diagnostics.Diagnostic) {
	if d.Span != nil {
		fmt.Fprintf(os.Stderr, "%s: %s:%d:%d: [%s] %s\n", d.Severity, d.File, d.Span.Line, d.Span.Col, d.Code, d.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s: [%s] %s\n", d.Severity, d.File, d.Code, d.Message)
}
