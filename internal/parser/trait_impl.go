package parser

import (
	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/lexer"
)

func (p *Parser) parseTrait() (ast.Item, error) {
	sp := p.span()
	p.advance() // trait
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
	t := &ast.Trait{BaseItem: ast.BaseItem{Sp: sp}, Name: name, TypeParams: tparams}
	for !p.at(lexer.RBrace) {
		if p.at(lexer.KwFn) {
			p.advance()
			mname, err := p.expectIdent()
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
			if _, err := p.expect(lexer.Semi, ";"); err != nil {
				return nil, err
			}
			t.Methods = append(t.Methods, ast.TraitMethodSig{Name: mname, Params: params, ReturnType: retTy})
			continue
		}
		// associated type: `type Name;` or `type Name: Bound<Args>, ...;`
		if p.at(lexer.Ident) && p.cur().Text == "type" {
			p.advance()
			aname, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			var bounds []ast.WhereBound
			if p.at(lexer.Colon) {
				p.advance()
				for {
					trait, err := p.expectIdent()
					if err != nil {
						return nil, err
					}
					args, err := p.parseTypeArgs()
					if err != nil {
						return nil, err
					}
					bounds = append(bounds, ast.WhereBound{TypeParam: aname, Trait: trait, Args: args})
					if p.at(lexer.Comma) {
						p.advance()
						continue
					}
					break
				}
			}
			if _, err := p.expect(lexer.Semi, ";"); err != nil {
				return nil, err
			}
			t.AssocTypes = append(t.AssocTypes, ast.TraitAssocType{Name: aname, Bounds: bounds})
			continue
		}
		tok := p.cur()
		return nil, &ParseError{Line: tok.Line, Col: tok.Col, Msg: "expected method or associated type in trait body"}
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	rewriteTraitTypeVars(t)
	return t, nil
}

func (p *Parser) parseImpl() (ast.Item, error) {
	sp := p.span()
	p.advance() // impl
	tparams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	traitName, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	traitArgs, err := p.parseTypeArgs()
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhereClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}
	im := &ast.Impl{
		BaseItem:    ast.BaseItem{Sp: sp},
		TypeParams:  tparams,
		TraitName:   traitName,
		TraitArgs:   traitArgs,
		WhereBounds: where,
	}
	for !p.at(lexer.RBrace) {
		if p.at(lexer.Ident) && p.cur().Text == "type" {
			p.advance()
			aname, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Assign, "="); err != nil {
				return nil, err
			}
			aty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Semi, ";"); err != nil {
				return nil, err
			}
			im.AssocTypes = append(im.AssocTypes, ast.ImplAssocType{Name: aname, Type: aty})
			continue
		}
		isExtern := false
		if p.at(lexer.KwExtern) {
			isExtern = true
			p.advance()
		}
		if _, err := p.expect(lexer.KwFn, "fn"); err != nil {
			return nil, err
		}
		mname, err := p.expectIdent()
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
		im.Methods = append(im.Methods, ast.ImplMethod{Name: mname, Params: params, ReturnType: retTy, Body: body, IsExtern: isExtern})
	}
	if _, err := p.expect(lexer.RBrace, "}"); err != nil {
		return nil, err
	}
	rewriteImplTypeVars(im)
	return im, nil
}
