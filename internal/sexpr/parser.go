package sexpr

import (
	"io"
	"strings"
)

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]Node, error) {
	p := &parser{lex: newLexer(r)}
	var out []Node
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tokenEOF {
			return out, nil
		}
		n, err := p.expr(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

// ParseString parses s.
func ParseString(s string) ([]Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseList reads input that must hold exactly one list, such as a saved
// layout.
func ParseList(r io.Reader) (List, error) {
	nodes, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, &SyntaxError{Line: 1, Msg: "expected a single top-level list"}
	}
	l, ok := nodes[0].(List)
	if !ok {
		return nil, &SyntaxError{Line: 1, Msg: "top-level expression is an atom"}
	}
	return l, nil
}

type parser struct {
	lex *lexer
}

func (p *parser) expr(tok token) (Node, error) {
	switch tok.typ {
	case tokenOpen:
		return p.list(tok.line)
	case tokenSymbol:
		return Atom{Value: tok.value}, nil
	case tokenString:
		return Atom{Value: tok.value, Quoted: true}, nil
	default:
		return nil, &SyntaxError{Line: tok.line, Msg: "unexpected " + tok.typ.String()}
	}
}

func (p *parser) list(start int) (List, error) {
	l := List{}
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.typ {
		case tokenClose:
			return l, nil
		case tokenEOF:
			return nil, &SyntaxError{Line: start, Msg: "unclosed list"}
		}
		n, err := p.expr(tok)
		if err != nil {
			return nil, err
		}
		l = append(l, n)
	}
}
