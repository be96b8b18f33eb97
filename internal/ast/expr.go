package ast

import "github.com/pawlang-project/paw/internal/types"

// Expr is any expression node. Grounded on
// _examples/funvibe-funxy/internal/ast/ast_expressions.go's one-interface-
// many-tags shape; concrete node set follows spec.md §3.2/§4.3 and
// original_source/src/ast.rs's Expr enum.
type Expr interface {
	Spanned
	exprNode()
}

type BaseExpr struct{ Sp Span }

func (b BaseExpr) Span() Span { return b.Sp }

// IntLit is a plain integer literal; default type Int unless contextually
// coerced (spec.md §4.9).
type IntLit struct {
	BaseExpr
	Value int64
}

// LongLit is an integer literal written/parsed as Long (e.g. out of Int
// range, spec.md §8.3: 2147483648 parses as Long).
type LongLit struct {
	BaseExpr
	Value int64
}

// FloatLit is a literal suffixed `f` (e.g. 1.5f) — a Float literal.
type FloatLit struct {
	BaseExpr
	Value float32
}

// DoubleLit is an unsuffixed float literal — a Double literal.
type DoubleLit struct {
	BaseExpr
	Value float64
}

type BoolLit struct {
	BaseExpr
	Value bool
}

type CharLit struct {
	BaseExpr
	Value rune
}

type StringLit struct {
	BaseExpr
	Value string
}

type Ident struct {
	BaseExpr
	Name string
}

type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

type Binary struct {
	BaseExpr
	Op          BinOp
	Left, Right Expr
}

type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

type Unary struct {
	BaseExpr
	Op      UnOp
	Operand Expr
}

// Call is `name<Generics?>(Args)`, or `name(Args)` with Generics nil.
type Call struct {
	BaseExpr
	Name     string
	Generics []types.Type
	Args     []Expr
}

// QualifiedCall is `Trait::method<Generics>(Args)` (spec.md §4.3.7). Per
// §4.3.8 the trait/method path is never a standalone value; the parser
// only ever produces this node with an immediate call suffix.
type QualifiedCall struct {
	BaseExpr
	Trait    string
	Method   string
	Generics []types.Type
	Args     []Expr
}

// Cast is `expr as Ty` (spec.md §4.3.3).
type Cast struct {
	BaseExpr
	Value Expr
	To    types.Type
}

// If is the expression form (spec.md §4.3.5); Else is nil when no `else`
// branch is written.
type If struct {
	BaseExpr
	Cond       Expr
	Then, Else *Block
}

// Block is `{ stmts...; tail? }`; Tail is nil for a block with no trailing
// expression.
type Block struct {
	BaseExpr
	Stmts []Stmt
	Tail  Expr
}

func (b *Block) exprNode() {}
func (b *Block) Span() Span {
	return b.Sp
}

// MatchArm is one `pattern => block` arm. Pattern is nil for the `_`
// wildcard arm.
type MatchArm struct {
	Pattern Pattern
	Body    *Block
}

// Pattern is the primitive pattern set of spec.md §4.3.5: integer/long/
// bool/char literal patterns, or wildcard.
type Pattern interface {
	patternNode()
}

type PatInt struct{ Value int64 }
type PatLong struct{ Value int64 }
type PatBool struct{ Value bool }
type PatChar struct{ Value rune }
type PatWildcard struct{}

func (PatInt) patternNode()      {}
func (PatLong) patternNode()     {}
func (PatBool) patternNode()     {}
func (PatChar) patternNode()     {}
func (PatWildcard) patternNode() {}

// Match is the match expression; Default is nil when no `_` arm is given.
type Match struct {
	BaseExpr
	Scrutinee Expr
	Arms      []MatchArm
	Default   *Block
}

// FieldAccess is `expr.field`.
type FieldAccess struct {
	BaseExpr
	Value Expr
	Field string
}

// StructLit is `Name<Args?> { field: expr, ... }`.
type StructLit struct {
	BaseExpr
	Name     string
	Generics []types.Type
	Fields   []StructFieldInit
}

type StructFieldInit struct {
	Name  string
	Value Expr
}

func (*IntLit) exprNode()        {}
func (*LongLit) exprNode()       {}
func (*FloatLit) exprNode()      {}
func (*DoubleLit) exprNode()     {}
func (*BoolLit) exprNode()       {}
func (*CharLit) exprNode()       {}
func (*StringLit) exprNode()     {}
func (*Ident) exprNode()         {}
func (*Binary) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Call) exprNode()          {}
func (*QualifiedCall) exprNode() {}
func (*Cast) exprNode()          {}
func (*If) exprNode()            {}
func (*Match) exprNode()         {}
func (*FieldAccess) exprNode()   {}
func (*StructLit) exprNode()     {}

// NewSpan is a tiny helper so parser code reads a little less noisily.
func NewSpan(file string, line, col int) Span { return Span{File: file, Line: line, Col: col} }
