// Package imports expands `import a::b::c;` declarations into a single
// flattened ast.Program, resolving each segment path against a set of
// search roots and rejecting import cycles. Grounded on
// _examples/funvibe-funxy/internal/modules/loader.go's cycle-guard
// convention (a "processing" set walked depth-first, sorted results for
// determinism) adapted from directory-of-files loading to spec.md's
// single-file-per-import-path model, and orig:src/parse.rs for the
// exact `a::b::c` -> `a/b/c.paw` segment-to-path rule.
package imports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/parser"
)

// CycleError reports an import cycle through the given file chain.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "import cycle: " + strings.Join(e.Chain, " -> ")
}

// NotFoundError reports an import path that resolved under no search root.
type NotFoundError struct {
	Path  string
	Roots []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("import %q not found under any of %v", e.Path, e.Roots)
}

// SyntaxError reports an import spec that is malformed before any
// search root is even probed (spec.md §4.1's ImportSyntax case).
type SyntaxError struct {
	Path   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("import %q: %s", e.Path, e.Reason)
}

// validatePath enforces spec.md §4.1's spec-syntax rule ahead of path
// resolution: no `/`, `\`, or `.`, not empty, no empty segment, and
// every segment a valid identifier. Letting a raw `a::b::c` spec reach
// filepath.Join unchecked would let a segment like `..` escape the
// search roots entirely instead of failing with ImportSyntax.
func validatePath(path string) error {
	if path == "" {
		return &SyntaxError{Path: path, Reason: "import path is empty"}
	}
	if strings.ContainsAny(path, `/\.`) {
		return &SyntaxError{Path: path, Reason: "import path must not contain '/', '\\', or '.'"}
	}
	segments := strings.Split(path, "::")
	for _, seg := range segments {
		if seg == "" {
			return &SyntaxError{Path: path, Reason: "import path has an empty segment"}
		}
		if !isIdentifier(seg) {
			return &SyntaxError{Path: path, Reason: fmt.Sprintf("segment %q is not a valid identifier", seg)}
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Expander resolves import paths and caches parsed files so a module
// imported from more than one place is only parsed once.
type Expander struct {
	roots      []string
	parsed     map[string]*ast.Program // absolute path -> parsed program
	processing map[string]bool
	order      []string // absolute paths in first-seen (splice) order
}

func NewExpander(roots []string) *Expander {
	return &Expander{
		roots:      roots,
		parsed:     map[string]*ast.Program{},
		processing: map[string]bool{},
	}
}

// resolve turns `a::b::c` into an absolute path by trying `<root>/a/b/c.paw`
// for each root in order.
func (ex *Expander) resolve(path string) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}
	rel := strings.ReplaceAll(path, "::", string(filepath.Separator)) + ".paw"
	for _, root := range ex.roots {
		candidate := filepath.Join(root, rel)
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return abs, nil
		}
	}
	return "", &NotFoundError{Path: path, Roots: ex.roots}
}

// load parses file (if not already parsed), recursively expanding its
// own imports first, and records it in splice order.
func (ex *Expander) load(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if _, done := ex.parsed[abs]; done {
		return nil
	}
	if ex.processing[abs] {
		return &CycleError{Chain: append(ex.chainTo(abs), abs)}
	}
	ex.processing[abs] = true
	defer delete(ex.processing, abs)

	src, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	prog, err := parser.Parse(abs, string(src))
	if err != nil {
		return err
	}
	for _, it := range prog.Items {
		im, ok := it.(*ast.Import)
		if !ok {
			continue
		}
		target, err := ex.resolve(im.Path)
		if err != nil {
			return err
		}
		if err := ex.load(target); err != nil {
			return err
		}
	}
	ex.parsed[abs] = prog
	ex.order = append(ex.order, abs)
	return nil
}

func (ex *Expander) chainTo(target string) []string {
	// processing is unordered; report a stable, sorted approximation of
	// the in-flight chain rather than tracking exact DFS order, which
	// is enough to diagnose the cycle without extra bookkeeping.
	var chain []string
	for f := range ex.processing {
		chain = append(chain, f)
	}
	sort.Strings(chain)
	return chain
}

// Expand parses entryFile and every file it transitively imports,
// returning one ast.Program whose Items is the concatenation of every
// file's non-Import items, in dependency-then-dependent (splice) order.
func Expand(entryFile string, roots []string) (*ast.Program, error) {
	ex := NewExpander(roots)
	if err := ex.load(entryFile); err != nil {
		return nil, err
	}
	out := &ast.Program{File: entryFile}
	for _, abs := range ex.order {
		for _, it := range ex.parsed[abs].Items {
			if _, ok := it.(*ast.Import); ok {
				continue
			}
			out.Items = append(out.Items, it)
		}
	}
	return out, nil
}
