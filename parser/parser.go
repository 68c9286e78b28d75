// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package parser reads stack-effect signatures into type terms.
//
// A signature is a parenthesized relation: consumed elements, an arrow, and
// produced elements, e.g. dup : ('a -> 'a 'a). Elements are listed top of
// stack first. Quoted lower-case names are scalar variables; quoted
// upper-case names are row variables standing for everything beneath, valid
// only in last position, as in apply : (('A -> 'B) 'A -> 'B). Bare
// identifiers are ground types, and a nested signature is a quotation's
// type. The effectful arrow is ~>. Commas and whitespace both separate
// elements.
package parser

import (
	"fmt"

	"github.com/catena-lang/catena/types"
)

// Parse reads one signature.
func Parse(src string) (*types.Relation, error) {
	p := &parser{lex: lexer{src: src}}
	p.advance()
	rel, err := p.relation()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokEOF {
		return nil, p.errf("unexpected %s after signature", p.describe())
	}
	return rel, nil
}

// MustSignature parses a signature known at compile time, panicking on
// error. Intended for declaring builtin words.
func MustSignature(src string) *types.Relation {
	rel, err := Parse(src)
	if err != nil {
		panic("parser: " + err.Error())
	}
	return rel
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() { p.tok = p.lex.next() }

func (p *parser) errf(format string, args ...interface{}) error {
	return fmt.Errorf("signature offset %d: %s", p.tok.pos, fmt.Sprintf(format, args...))
}

// describe names the current token for error messages.
func (p *parser) describe() string {
	if p.tok.lit == "" || p.tok.typ == tokEOF {
		return p.tok.typ.String()
	}
	return fmt.Sprintf("%q", p.tok.lit)
}

func (p *parser) relation() (*types.Relation, error) {
	if p.tok.typ != tokLParen {
		return nil, p.errf("expected (, found %s", p.describe())
	}
	p.advance()

	consumes, err := p.vector()
	if err != nil {
		return nil, err
	}
	effectful := false
	switch p.tok.typ {
	case tokArrow:
	case tokEffArrow:
		effectful = true
	default:
		return nil, p.errf("expected -> or ~>, found %s", p.describe())
	}
	p.advance()

	produces, err := p.vector()
	if err != nil {
		return nil, err
	}
	if p.tok.typ != tokRParen {
		return nil, p.errf("expected ), found %s", p.describe())
	}
	p.advance()

	return &types.Relation{Consumes: consumes, Produces: produces, Effectful: effectful}, nil
}

// vector parses elements up to an arrow or closing paren, enforcing that a
// row variable only closes the vector.
func (p *parser) vector() (*types.Vector, error) {
	var terms []types.Term
	for {
		switch p.tok.typ {
		case tokArrow, tokEffArrow, tokRParen:
			return types.NewVector(terms...), nil
		case tokVar:
			tv := types.NewVar(p.tok.lit)
			terms = append(terms, tv)
			p.advance()
			if tv.IsRow() {
				switch p.tok.typ {
				case tokArrow, tokEffArrow, tokRParen:
				default:
					return nil, p.errf("row variable %s must be the last element", tv.Name())
				}
			}
		case tokIdent:
			terms = append(terms, &types.Const{Name: p.tok.lit})
			p.advance()
		case tokLParen:
			rel, err := p.relation()
			if err != nil {
				return nil, err
			}
			terms = append(terms, rel)
		case tokEOF:
			return nil, p.errf("unexpected end of signature")
		default:
			return nil, p.errf("unexpected %s", p.describe())
		}
	}
}
