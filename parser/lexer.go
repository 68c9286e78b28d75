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

package parser

type tokenType int

const (
	tokEOF tokenType = iota
	tokLParen   // "("
	tokRParen   // ")"
	tokArrow    // "->"
	tokEffArrow // "~>"
	tokVar      // 'a, 'A
	tokIdent    // int, bool
	tokIllegal
)

func (t tokenType) String() string {
	switch t {
	case tokEOF:
		return "end of signature"
	case tokLParen:
		return "("
	case tokRParen:
		return ")"
	case tokArrow:
		return "->"
	case tokEffArrow:
		return "~>"
	case tokVar:
		return "variable"
	case tokIdent:
		return "identifier"
	}
	return "illegal token"
}

type token struct {
	typ tokenType
	lit string
	pos int
}

type lexer struct {
	src string
	pos int
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// next returns the next token. Whitespace and commas both separate elements,
// so the lexer accepts rendered types back as input.
func (l *lexer) next() token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			l.pos++
			continue
		}
		break
	}
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, pos: l.pos}
	}
	start := l.pos
	switch c := l.src[l.pos]; {
	case c == '(':
		l.pos++
		return token{tokLParen, "(", start}
	case c == ')':
		l.pos++
		return token{tokRParen, ")", start}
	case c == '-' || c == '~':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '>' {
			l.pos += 2
			if c == '~' {
				return token{tokEffArrow, "~>", start}
			}
			return token{tokArrow, "->", start}
		}
		l.pos++
		return token{tokIllegal, string(c), start}
	case c == '\'':
		l.pos++
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.pos++
		}
		if l.pos == start+1 {
			return token{tokIllegal, "'", start}
		}
		return token{tokVar, l.src[start:l.pos], start}
	case isIdentByte(c):
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.pos++
		}
		return token{tokIdent, l.src[start:l.pos], start}
	default:
		l.pos++
		return token{tokIllegal, string(c), start}
	}
}
