// Package parser turns a lexer.Token stream into an *ast.Program.
// Grounded on the teacher's parser file-splitting convention
// (_examples/funvibe-funxy/internal/parser: expressions_*.go,
// statements_*.go, types.go) and the Rust original's own split
// (original_source/src/frontend/parser/{expr,item,pattern,stmt,types}.rs)
// — Paw's grammar is simple enough that this Go port collapses the split
// to parser.go (items/program), item_decls.go and trait_impl.go (item
// declarations), expr.go (Pratt expressions), stmt.go (statements),
// types.go (type syntax) and typewalk.go (type-parameter resolution).
package parser

import (
	"fmt"

	"github.com/pawlang-project/paw/internal/ast"
	"github.com/pawlang-project/paw/internal/lexer"
)

// ParseError is a malformed-program error (diagnostics.ParseError class).
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type Parser struct {
	file        string
	toks        []lexer.Token
	pos         int
	noStructLit bool
}

// Parse lexes and parses src, attributing spans to file.
func Parse(file, src string) (*ast.Program, error) {
	lx := lexer.New(src)
	toks, err := lx.Tokenize()
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, &ParseError{Line: le.Line, Col: le.Col, Msg: le.Msg}
		}
		return nil, err
	}
	p := &Parser{file: file, toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) span() ast.Span {
	t := p.cur()
	return ast.Span{File: p.file, Line: t.Line, Col: t.Col}
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if !p.at(k) {
		t := p.cur()
		return t, &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf("expected %s, found %q", what, t.Text)}
	}
	return p.advance(), nil
}

func (p *Parser) expectIdent() (string, error) {
	t, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{File: p.file}
	for !p.at(lexer.EOF) {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
	}
	return prog, nil
}

func (p *Parser) parseItem() (ast.Item, error) {
	vis := ast.Private
	if p.at(lexer.KwPub) {
		p.advance()
		vis = ast.Public
	}
	switch {
	case p.at(lexer.KwFn):
		return p.parseFun(vis, false)
	case p.at(lexer.KwExtern):
		p.advance()
		if _, err := p.expect(lexer.KwFn, "fn"); err != nil {
			return nil, err
		}
		return p.parseFunRest(vis, true, p.span())
	case p.at(lexer.KwStruct):
		return p.parseStruct()
	case p.at(lexer.KwTrait):
		return p.parseTrait()
	case p.at(lexer.KwImpl):
		return p.parseImpl()
	case p.at(lexer.KwImport):
		return p.parseImport()
	case p.at(lexer.KwLet) || p.at(lexer.KwConst):
		return p.parseGlobal()
	default:
		t := p.cur()
		return nil, &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf("unexpected token %q at top level", t.Text)}
	}
}

func (p *Parser) parseImport() (ast.Item, error) {
	sp := p.span()
	p.advance() // import
	var sb []string
	for {
		seg, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		sb = append(sb, seg)
		if p.at(lexer.ColonColon) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}
	path := sb[0]
	for _, s := range sb[1:] {
		path += "::" + s
	}
	return &ast.Import{BaseItem: ast.BaseItem{Sp: sp}, Path: path}, nil
}
