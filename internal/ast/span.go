// Package ast defines the tagged AST node set PawLang's middle-end
// consumes: types, expressions, statements and items, each carrying a
// source Span.
package ast

import "fmt"

// Span locates a node in a single source file. Line/Col are 1-based.
type Span struct {
	File string
	Line int
	Col  int
}

func (s Span) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// Spanned is implemented by every AST node.
type Spanned interface {
	Span() Span
}
