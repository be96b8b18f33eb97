package diagnostics

import (
	"testing"

	"github.com/pawlang-project/paw/internal/ast"
)

func TestSinkAccumulatesInOrder(t *testing.T) {
	s := NewSink()
	s.Warning(ImportSyntax, nil, "a.paw", "warn %d", 1)
	s.Error(TyMismatch, nil, "a.paw", "mismatch: %s vs %s", "Int", "Bool")

	diags := s.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("len(Diagnostics()) = %d, want 2", len(diags))
	}
	if diags[0].Severity != SeverityWarning || diags[0].Message != "warn 1" {
		t.Errorf("diags[0] = %+v, want warning %q", diags[0], "warn 1")
	}
	if diags[1].Severity != SeverityError || diags[1].Message != "mismatch: Int vs Bool" {
		t.Errorf("diags[1] = %+v, want error %q", diags[1], "mismatch: Int vs Bool")
	}
}

func TestSinkHasErrors(t *testing.T) {
	s := NewSink()
	if s.HasErrors() {
		t.Fatal("empty sink should report no errors")
	}
	s.Warning(ImportSyntax, nil, "a.paw", "just a warning")
	if s.HasErrors() {
		t.Fatal("sink with only warnings should report no errors")
	}
	s.Error(ParseError, nil, "a.paw", "boom")
	if !s.HasErrors() {
		t.Fatal("sink with an error diagnostic should report HasErrors")
	}
}

func TestSinkRecordsSpanAndFile(t *testing.T) {
	s := NewSink()
	sp := ast.Span{Line: 3, Col: 5}
	s.Error(ResolutionFail, &sp, "lib/math.paw", "no matching overload")
	d := s.Diagnostics()[0]
	if d.File != "lib/math.paw" {
		t.Errorf("File = %q, want lib/math.paw", d.File)
	}
	if d.Span == nil || *d.Span != sp {
		t.Errorf("Span = %v, want %v", d.Span, sp)
	}
	if d.Code != ResolutionFail {
		t.Errorf("Code = %s, want %s", d.Code, ResolutionFail)
	}
}

func TestSeverityString(t *testing.T) {
	if got := SeverityError.String(); got != "error" {
		t.Errorf("SeverityError.String() = %s, want error", got)
	}
	if got := SeverityWarning.String(); got != "warning" {
		t.Errorf("SeverityWarning.String() = %s, want warning", got)
	}
}
