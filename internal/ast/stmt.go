package ast

import "github.com/pawlang-project/paw/internal/types"

// Stmt is any statement node.
type Stmt interface {
	Spanned
	stmtNode()
}

type BaseStmt struct{ Sp Span }

func (b BaseStmt) Span() Span { return b.Sp }

// Let is `let [mut] name[: Ty] = init;` (is_const distinguishes `const`
// globals/locals from spec.md §3.2/§4.3.1).
type Let struct {
	BaseStmt
	Name    string
	Mut     bool
	Type    types.Type // nil if elided and inferred from Init
	Init    Expr
	IsConst bool
}

// Assign is `name = expr;`.
type Assign struct {
	BaseStmt
	Name string
	Expr Expr
}

type ExprStmt struct {
	BaseStmt
	Expr Expr
}

// Return is `return [expr];`.
type Return struct {
	BaseStmt
	Value Expr // nil for a value-less return
}

// While is `while cond { body }`.
type While struct {
	BaseStmt
	Cond Expr
	Body *Block
}

// ForInit is the init clause of a C-style for: a let, an assignment, or a
// bare expression.
type ForInit interface{ forInitNode() }

func (*Let) forInitNode()    {}
func (*Assign) forInitNode() {}
func (*ExprStmt) forInitNode() {}

// For is `for (init; cond; step) { body }`; Init/Cond/Step may each be
// nil.
type For struct {
	BaseStmt
	Init ForInit
	Cond Expr
	Step Stmt // Assign or ExprStmt
	Body *Block
}

// IfStmt is the statement form of `if` (else optional, both branch types
// discarded per spec.md §4.3.5).
type IfStmt struct {
	BaseStmt
	Cond       Expr
	Then, Else *Block // Else nil when absent
}

type Break struct{ BaseStmt }
type Continue struct{ BaseStmt }

func (*Let) stmtNode()      {}
func (*Assign) stmtNode()   {}
func (*ExprStmt) stmtNode() {}
func (*Return) stmtNode()   {}
func (*While) stmtNode()    {}
func (*For) stmtNode()      {}
func (*IfStmt) stmtNode()   {}
func (*Break) stmtNode()    {}
func (*Continue) stmtNode() {}
