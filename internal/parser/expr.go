package parser

import (
	"strconv"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/lexer"
	"github.com/pawlang-project/paw/internal/types"
)

// parseExpr parses a full expression (the entry point used by statements,
// globals, and call arguments). Precedence climbs: ||  then &&  then
// equality (==, !=)  then relational (<, <=, >, >=)  then additive (+, -)
// then multiplicative (*, /)  then unary (-, !)  then postfix (call,
// field access, `as`)  then primary.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.OrOr) {
		sp := p.span()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.AndAnd) {
		sp := p.span()
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Eq) || p.at(lexer.Ne) {
		sp := p.span()
		op := ast.OpEq
		if p.at(lexer.Ne) {
			op = ast.OpNe
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.LAngle) || p.at(lexer.Le) || p.at(lexer.RAngle) || p.at(lexer.Ge) {
		sp := p.span()
		var op ast.BinOp
		switch p.cur().Kind {
		case lexer.LAngle:
			op = ast.OpLt
		case lexer.Le:
			op = ast.OpLe
		case lexer.RAngle:
			op = ast.OpGt
		case lexer.Ge:
			op = ast.OpGe
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		sp := p.span()
		op := ast.OpAdd
		if p.at(lexer.Minus) {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Star) || p.at(lexer.Slash) {
		sp := p.span()
		op := ast.OpMul
		if p.at(lexer.Slash) {
			op = ast.OpDiv
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(lexer.Minus) || p.at(lexer.Bang) {
		sp := p.span()
		op := ast.OpNeg
		if p.at(lexer.Bang) {
			op = ast.OpNot
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{BaseExpr: ast.BaseExpr{Sp: sp}, Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(lexer.Dot):
			sp := p.span()
			p.advance()
			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			e = &ast.FieldAccess{BaseExpr: ast.BaseExpr{Sp: sp}, Value: e, Field: field}
		case p.at(lexer.KwAs):
			sp := p.span()
			p.advance()
			to, err := p.parseType()
			if err != nil {
				return nil, err
			}
			e = &ast.Cast{BaseExpr: ast.BaseExpr{Sp: sp}, Value: e, To: to}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	if _, err := p.expect(lexer.LParen, "("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.at(lexer.RParen) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

// looksLikeGenericCallArgs reports whether the tokens starting at the
// current `<` plausibly close with `>(`, disambiguating `name<T>(...)`
// generic calls from `name < x` comparisons. A simple bounded lookahead
// is enough since Paw's type-argument lists never nest relational
// operators.
func (p *Parser) looksLikeGenericCallArgs() bool {
	depth := 0
	for i := 0; ; i++ {
		t := p.peekAt(i)
		switch t.Kind {
		case lexer.LAngle:
			depth++
		case lexer.RAngle:
			depth--
			if depth == 0 {
				return p.peekAt(i + 1).Kind == lexer.LParen
			}
		case lexer.Ident, lexer.Comma:
			// part of a type-arg list, keep scanning
		case lexer.EOF, lexer.Semi, lexer.LBrace, lexer.RBrace:
			return false
		default:
			return false
		}
		if i > 32 {
			return false
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	sp := p.span()
	switch {
	case p.at(lexer.IntLit):
		t := p.advance()
		v, _ := strconv.ParseInt(t.Text, 10, 64)
		return &ast.IntLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: v}, nil
	case p.at(lexer.LongLit):
		t := p.advance()
		v, _ := strconv.ParseInt(t.Text, 10, 64)
		return &ast.LongLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: v}, nil
	case p.at(lexer.FloatLit):
		t := p.advance()
		v, _ := strconv.ParseFloat(t.Text, 32)
		return &ast.FloatLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: float32(v)}, nil
	case p.at(lexer.DoubleLit):
		t := p.advance()
		v, _ := strconv.ParseFloat(t.Text, 64)
		return &ast.DoubleLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: v}, nil
	case p.at(lexer.KwTrue):
		p.advance()
		return &ast.BoolLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: true}, nil
	case p.at(lexer.KwFalse):
		p.advance()
		return &ast.BoolLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: false}, nil
	case p.at(lexer.CharLit):
		t := p.advance()
		r := []rune(t.Text)[0]
		return &ast.CharLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: r}, nil
	case p.at(lexer.StringLit):
		t := p.advance()
		return &ast.StringLit{BaseExpr: ast.BaseExpr{Sp: sp}, Value: t.Text}, nil
	case p.at(lexer.LParen):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case p.at(lexer.KwIf):
		p.advance()
		return p.parseIfRest(sp)
	case p.at(lexer.KwMatch):
		p.advance()
		return p.parseMatchRest(sp)
	case p.at(lexer.LBrace):
		return p.parseBlock()
	case p.at(lexer.Ident):
		return p.parseIdentLed(sp)
	default:
		t := p.cur()
		return nil, &ParseError{Line: t.Line, Col: t.Col, Msg: "expected expression, found " + t.Text}
	}
}

// parseIdentLed parses anything that starts with an identifier: a bare
// variable reference, a call (`name(args)` / `name<T>(args)`), a
// qualified trait-method call (`Trait::method<T>(args)`), or a struct
// literal (`Name { field: expr, ... }`). Explicit type arguments before a
// struct literal's `{` are not parsed; its Generics are always nil.
func (p *Parser) parseIdentLed(sp ast.Span) (ast.Expr, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.ColonColon) {
		p.advance()
		method, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		gens, err := p.maybeParseGenericArgs()
		if err != nil {
			return nil, err
		}
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.QualifiedCall{BaseExpr: ast.BaseExpr{Sp: sp}, Trait: name, Method: method, Generics: gens, Args: args}, nil
	}
	if p.at(lexer.LAngle) && p.looksLikeGenericCallArgs() {
		gens, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{BaseExpr: ast.BaseExpr{Sp: sp}, Name: name, Generics: gens, Args: args}, nil
	}
	if p.at(lexer.LParen) {
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{BaseExpr: ast.BaseExpr{Sp: sp}, Name: name, Args: args}, nil
	}
	if !p.noStructLit && p.at(lexer.LBrace) {
		return p.parseStructLitRest(sp, name, nil)
	}
	return &ast.Ident{BaseExpr: ast.BaseExpr{Sp: sp}, Name: name}, nil
}

func (p *Parser) maybeParseGenericArgs() ([]types.Type, error) {
	if !p.at(lexer.LAngle) {
		return nil, nil
	}
	return p.parseTypeArgs()
}

func (p *Parser) parseStructLitRest(sp ast.Span, name string, generics []types.Type) (ast.Expr, error) {
	p.advance() // {
	var fields []ast.StructFieldInit
	for !p.at(lexer.RBrace) {
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructFieldInit{Name: fname, Value: val})
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	return &ast.StructLit{BaseExpr: ast.BaseExpr{Sp: sp}, Name: name, Generics: generics, Fields: fields}, nil
}

// parseIfRest parses the remainder of an if-expression after `if` has
// been consumed; used both by parsePrimary (expression position) and
// parseBlockElem (statement position). The else branch is optional in
// both.
func (p *Parser) parseIfRest(sp ast.Span) (*ast.If, error) {
	prevNoStruct := p.noStructLit
	p.noStructLit = true
	cond, err := p.parseExpr()
	p.noStructLit = prevNoStruct
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	// `else` is optional in statement position (spec.md §4.3.5: a
	// statement `if` discards its branch types, so there is nothing
	// requiring the second branch); an expression `if` used as a block's
	// tail value with no `else` simply types as Void, and the checker's
	// ordinary branch-type-agreement rule rejects it if that Void result
	// is then used where a non-Void value is expected.
	var elseBlock *ast.Block
	if p.at(lexer.KwElse) {
		p.advance()
		if p.at(lexer.KwIf) {
			elseSp := p.span()
			p.advance()
			nested, err := p.parseIfRest(elseSp)
			if err != nil {
				return nil, err
			}
			elseBlock = &ast.Block{BaseExpr: ast.BaseExpr{Sp: elseSp}, Tail: nested}
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.If{BaseExpr: ast.BaseExpr{Sp: sp}, Cond: cond, Then: then, Else: elseBlock}, nil
}

func (p *Parser) parseMatchRest(sp ast.Span) (ast.Expr, error) {
	prevNoStruct := p.noStructLit
	p.noStructLit = true
	scrutinee, err := p.parseExpr()
	p.noStructLit = prevNoStruct
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}
	m := &ast.Match{BaseExpr: ast.BaseExpr{Sp: sp}, Scrutinee: scrutinee}
	for !p.at(lexer.RBrace) {
		if p.at(lexer.Underscore) {
			p.advance()
			if _, err := p.expect(lexer.FatArrow, "=>"); err != nil {
				return nil, err
			}
			body, err := p.parseMatchArmBody()
			if err != nil {
				return nil, err
			}
			m.Default = body
		} else {
			pat, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.FatArrow, "=>"); err != nil {
				return nil, err
			}
			body, err := p.parseMatchArmBody()
			if err != nil {
				return nil, err
			}
			m.Arms = append(m.Arms, ast.MatchArm{Pattern: pat, Body: body})
		}
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	return m, nil
}

// parseMatchArmBody accepts either a `{ ... }` block or a bare
// expression arm (sugar for a single-tail-expression block).
func (p *Parser) parseMatchArmBody() (*ast.Block, error) {
	if p.at(lexer.LBrace) {
		return p.parseBlock()
	}
	sp := p.span()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Block{BaseExpr: ast.BaseExpr{Sp: sp}, Tail: e}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	switch {
	case p.at(lexer.IntLit):
		t := p.advance()
		v, _ := strconv.ParseInt(t.Text, 10, 64)
		return ast.PatInt{Value: v}, nil
	case p.at(lexer.LongLit):
		t := p.advance()
		v, _ := strconv.ParseInt(t.Text, 10, 64)
		return ast.PatLong{Value: v}, nil
	case p.at(lexer.KwTrue):
		p.advance()
		return ast.PatBool{Value: true}, nil
	case p.at(lexer.KwFalse):
		p.advance()
		return ast.PatBool{Value: false}, nil
	case p.at(lexer.CharLit):
		t := p.advance()
		return ast.PatChar{Value: []rune(t.Text)[0]}, nil
	case p.at(lexer.Underscore):
		p.advance()
		return ast.PatWildcard{}, nil
	default:
		t := p.cur()
		return nil, &ParseError{Line: t.Line, Col: t.Col, Msg: "expected pattern, found " + t.Text}
	}
}
