package parser

import (
	"github.com/pawlang-project/paw/internal/lexer"
	"github.com/pawlang-project/paw/internal/types"
)

var primByName = map[string]types.Prim{
	"Byte": types.Byte, "Bool": types.Bool, "Int": types.Int, "Long": types.Long,
	"Char": types.Char, "Float": types.Float, "Double": types.Double,
	"String": types.String, "Void": types.Void,
}

// parseType parses a Paw type expression. A bare identifier that is not a
// known primitive parses as App{Name, nil} — whether it denotes a nominal
// type or a reference to an enclosing type parameter is not decidable
// until the enclosing item's TypeParams list is known, so callers run
// resolveTypeParams over every type they collect once that list is
// parsed (spec.md §3.1: Var names a parameter of the *enclosing*
// function/trait/impl).
func (p *Parser) parseType() (types.Type, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if prim, ok := primByName[name]; ok {
		return types.Primitive{Kind: prim}, nil
	}
	var args []types.Type
	if p.at(lexer.LAngle) {
		p.advance()
		for !p.at(lexer.RAngle) {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.at(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RAngle, ">"); err != nil {
			return nil, err
		}
	}
	return types.App{Name: name, Args: args}, nil
}

// resolveTypeParams rewrites every bare App{Name, nil} in t whose Name is
// in tparams into Var{Name}.
func resolveTypeParams(t types.Type, tparams map[string]bool) types.Type {
	switch t := t.(type) {
	case types.App:
		if len(t.Args) == 0 && tparams[t.Name] {
			return types.Var{Name: t.Name}
		}
		if len(t.Args) == 0 {
			return t
		}
		newArgs := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = resolveTypeParams(a, tparams)
		}
		return types.App{Name: t.Name, Args: newArgs}
	default:
		return t
	}
}

func tparamSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func (p *Parser) parseTypeParams() ([]string, error) {
	var names []string
	if !p.at(lexer.LAngle) {
		return nil, nil
	}
	p.advance()
	for !p.at(lexer.RAngle) {
		n, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RAngle, ">"); err != nil {
		return nil, err
	}
	return names, nil
}

// parseTypeArgs parses `<T1, T2, ...>` as a list of concrete/partial type
// arguments (used for explicit call-site generics and trait args).
func (p *Parser) parseTypeArgs() ([]types.Type, error) {
	var out []types.Type
	if !p.at(lexer.LAngle) {
		return nil, nil
	}
	p.advance()
	for !p.at(lexer.RAngle) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RAngle, ">"); err != nil {
		return nil, err
	}
	return out, nil
}
