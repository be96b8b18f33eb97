// Package diagnostics is the sink every phase of the compiler reports
// through. Rendering (colored source snippets) is explicitly someone
// else's problem per spec.md §4.8 — this package only accumulates
// structured records and decides the exit code.
//
// Grounded on the call convention visible at every call site in
// _examples/funvibe-funxy/internal/analyzer/declarations_instances.go
// (`diagnostics.NewError(code, token, message)`); the error-code
// taxonomy and phase grouping follow spec.md §4.8/§7 and
// original_source/src/diag.rs (stable per-phase code prefixes, one
// primary diagnostic per failure, "stop at item boundary" propagation).
package diagnostics

import (
	"fmt"

	"github.com/pawlang-project/paw/internal/ast"
)

// Severity distinguishes a fatal error from an advisory note.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code groups: P#### parse, E2### semantic, CG0### codegen (spec.md §4.8).
const (
	ImportSyntax     = "P0001"
	ImportNotFound   = "P0002"
	ParseError       = "P0100"
	DuplicateDecl    = "E2001"
	TraitShape       = "E2100"
	TyMismatch       = "E2200"
	ResolutionFail   = "E2300"
	CastIllegal      = "E2400"
	AbiViolation     = "CG0001"
	BackendInternal  = "CG0002"
)

// Diagnostic is one reported finding.
type Diagnostic struct {
	Code     string
	Severity Severity
	File     string
	Span     *ast.Span // nil when no span is available (e.g. a whole-file error)
	Message  string
}

// Sink accumulates diagnostics for an entire compilation. It is owned
// exclusively by whichever phase is running (spec.md §5).
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink { return &Sink{} }

// Error records a fatal diagnostic with an optional span.
func (s *Sink) Error(code string, span *ast.Span, file, format string, args ...any) {
	s.add(SeverityError, code, span, file, format, args...)
}

// Warning records an advisory diagnostic.
func (s *Sink) Warning(code string, span *ast.Span, file, format string, args ...any) {
	s.add(SeverityWarning, code, span, file, format, args...)
}

func (s *Sink) add(sev Severity, code string, span *ast.Span, file, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.diags = append(s.diags, Diagnostic{Code: code, Severity: sev, File: file, Span: span, Message: msg})
}

// Diagnostics returns every recorded diagnostic, in report order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diags }

// HasErrors reports whether any SeverityError diagnostic was recorded —
// the basis for the non-zero exit decision (spec.md §4.8).
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

