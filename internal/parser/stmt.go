package parser

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/lexer"
	"github.com/pawlang-project/paw/internal/types"
)

// parseBlock parses `{ stmt* tailExpr? }`. A block's last element is a
// tail expression (no trailing semicolon) when the statement parser sees
// an expression not followed by `;` directly before `}` — mirrors Paw's
// expression-oriented blocks (spec.md §3.3).
func (p *Parser) parseBlock() (*ast.Block, error) {
	sp := p.span()
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}
	b := &ast.Block{BaseExpr: ast.BaseExpr{Sp: sp}}
	for !p.at(lexer.RBrace) {
		stmt, tail, err := p.parseBlockElem()
		if err != nil {
			return nil, err
		}
		if tail != nil {
			b.Tail = tail
			break
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	return b, nil
}

// parseBlockElem parses one block element, returning either a Stmt or
// (if it's a bare trailing expression with no semicolon) a tail Expr.
func (p *Parser) parseBlockElem() (ast.Stmt, ast.Expr, error) {
	switch {
	case p.at(lexer.KwLet):
		s, err := p.parseLet()
		return s, nil, err
	case p.at(lexer.KwReturn):
		s, err := p.parseReturn()
		return s, nil, err
	case p.at(lexer.KwWhile):
		s, err := p.parseWhile()
		return s, nil, err
	case p.at(lexer.KwFor):
		s, err := p.parseFor()
		return s, nil, err
	case p.at(lexer.KwBreak):
		sp := p.span()
		p.advance()
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, nil, err
		}
		return &ast.Break{BaseStmt: ast.BaseStmt{Sp: sp}}, nil, nil
	case p.at(lexer.KwContinue):
		sp := p.span()
		p.advance()
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, nil, err
		}
		return &ast.Continue{BaseStmt: ast.BaseStmt{Sp: sp}}, nil, nil
	case p.at(lexer.KwIf):
		sp := p.span()
		p.advance() // if
		ifx, err := p.parseIfRest(sp)
		if err != nil {
			return nil, nil, err
		}
		// `if` with no trailing semicolon and at block end is a tail
		// expression; followed by `;` it's a statement.
		if p.at(lexer.Semi) {
			p.advance()
			return &ast.IfStmt{BaseStmt: ast.BaseStmt{Sp: sp}, Cond: ifx.Cond, Then: ifx.Then, Else: ifx.Else}, nil, nil
		}
		if p.at(lexer.RBrace) {
			return nil, ifx, nil
		}
		return &ast.IfStmt{BaseStmt: ast.BaseStmt{Sp: sp}, Cond: ifx.Cond, Then: ifx.Then, Else: ifx.Else}, nil, nil
	default:
		return p.parseExprStmtOrTail()
	}
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // let
	isConst := false
	mut := false
	if p.at(lexer.KwMut) {
		mut = true
		p.advance()
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	typ, err := p.maybeParseTypeAnnotation()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "="); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}
	return &ast.Let{BaseStmt: ast.BaseStmt{Sp: sp}, Name: name, Mut: mut, Type: typ, Init: init, IsConst: isConst}, nil
}

// maybeParseTypeAnnotation parses an optional `: Ty` suffix, as seen
// after a `let` binding's name.
func (p *Parser) maybeParseTypeAnnotation() (types.Type, error) {
	if !p.at(lexer.Colon) {
		return nil, nil
	}
	p.advance()
	return p.parseType()
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // return
	var val ast.Expr
	if !p.at(lexer.Semi) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		val = v
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}
	return &ast.Return{BaseStmt: ast.BaseStmt{Sp: sp}, Value: val}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // while
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{BaseStmt: ast.BaseStmt{Sp: sp}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // for
	if _, err := p.expect(lexer.LParen, "("); err != nil {
		return nil, err
	}
	var init ast.ForInit
	if !p.at(lexer.Semi) {
		s, err := p.parseSimpleStmtNoSemi()
		if err != nil {
			return nil, err
		}
		init = s.(ast.ForInit)
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}
	var cond ast.Expr
	if !p.at(lexer.Semi) {
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cond = c
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}
	var step ast.Stmt
	if !p.at(lexer.RParen) {
		s, err := p.parseSimpleStmtNoSemi()
		if err != nil {
			return nil, err
		}
		step = s
	}
	if _, err := p.expect(lexer.RParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{BaseStmt: ast.BaseStmt{Sp: sp}, Init: init, Cond: cond, Step: step, Body: body}, nil
}

// parseSimpleStmtNoSemi parses a let/assign/expr statement without
// consuming a trailing semicolon (used inside `for (...)` headers).
func (p *Parser) parseSimpleStmtNoSemi() (ast.Stmt, error) {
	sp := p.span()
	if p.at(lexer.KwLet) {
		p.advance()
		mut := false
		if p.at(lexer.KwMut) {
			mut = true
			p.advance()
		}
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		typ, err := p.maybeParseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign, "="); err != nil {
			return nil, err
		}
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Let{BaseStmt: ast.BaseStmt{Sp: sp}, Name: name, Mut: mut, Type: typ, Init: init}, nil
	}
	if p.at(lexer.Ident) && p.peekAt(1).Kind == lexer.Assign {
		name, _ := p.expectIdent()
		p.advance() // =
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{BaseStmt: ast.BaseStmt{Sp: sp}, Name: name, Expr: val}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{BaseStmt: ast.BaseStmt{Sp: sp}, Expr: e}, nil
}

// parseExprStmtOrTail parses an assignment, or an expression which is
// either an expression-statement (semicolon follows) or the block's
// tail expression (immediately followed by `}`).
func (p *Parser) parseExprStmtOrTail() (ast.Stmt, ast.Expr, error) {
	sp := p.span()
	if p.at(lexer.Ident) && p.peekAt(1).Kind == lexer.Assign {
		name, _ := p.expectIdent()
		p.advance() // =
		val, err := p.parseExpr()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, nil, err
		}
		return &ast.Assign{BaseStmt: ast.BaseStmt{Sp: sp}, Name: name, Expr: val}, nil, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if p.at(lexer.Semi) {
		p.advance()
		return &ast.ExprStmt{BaseStmt: ast.BaseStmt{Sp: sp}, Expr: e}, nil, nil
	}
	if p.at(lexer.RBrace) {
		return nil, e, nil
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, nil, err
	}
	return &ast.ExprStmt{BaseStmt: ast.BaseStmt{Sp: sp}, Expr: e}, nil, nil
}
