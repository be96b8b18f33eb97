package parser

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/lexer"
	"github.com/pawlang-project/paw/internal/types"
)

func (p *Parser) parseFun(vis ast.Visibility, _ bool) (ast.Item, error) {
	sp := p.span()
	p.advance() // fn
	return p.parseFunRest(vis, false, sp)
}

func (p *Parser) parseFunRest(vis ast.Visibility, isExtern bool, sp ast.Span) (ast.Item, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	tparams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	retTy, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhereClause()
	if err != nil {
		return nil, err
	}
	var body *ast.Block
	if isExtern {
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, err
		}
	} else {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	f := &ast.Fun{
		BaseItem:    ast.BaseItem{Sp: sp},
		Visibility:  vis,
		Name:        name,
		TypeParams:  tparams,
		Params:      params,
		ReturnType:  retTy,
		WhereBounds: where,
		Body:        body,
		IsExtern:    isExtern,
	}
	rewriteFunTypeVars(f)
	return f, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LParen, "("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(lexer.RParen) {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name, Type: ty})
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseReturnType parses an optional `-> Ty`, defaulting to Void.
func (p *Parser) parseReturnType() (types.Type, error) {
	if !p.at(lexer.Arrow) {
		return types.TVoid, nil
	}
	p.advance()
	return p.parseType()
}

// parseWhereClause parses an optional `where T: Trait<Args>, ...` clause.
func (p *Parser) parseWhereClause() ([]ast.WhereBound, error) {
	if !p.at(lexer.KwWhere) {
		return nil, nil
	}
	p.advance()
	var out []ast.WhereBound
	for {
		tv, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		trait, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		args, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		out = append(out, ast.WhereBound{TypeParam: tv, Trait: trait, Args: args})
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out, nil
}

func (p *Parser) parseStruct() (ast.Item, error) {
	sp := p.span()
	p.advance() // struct
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	tparams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}
	var fields []types.FieldDecl
	for !p.at(lexer.RBrace) {
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		fty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, types.FieldDecl{Name: fname, Type: fty})
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	s := &ast.Struct{BaseItem: ast.BaseItem{Sp: sp}, Name: name, TypeParams: tparams, Fields: fields}
	rewriteStructTypeVars(s)
	return s, nil
}

func (p *Parser) parseGlobal() (ast.Item, error) {
	sp := p.span()
	isConst := p.at(lexer.KwConst)
	p.advance() // let|const
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	var ty types.Type
	if p.at(lexer.Colon) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ty = t
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
	g := &ast.Global{BaseItem: ast.BaseItem{Sp: sp}, Name: name, Type: ty, Initializer: init, IsConst: isConst}
	return g, nil
}
