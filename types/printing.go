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

package types

import (
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &termPrinter{} },
}

type termPrinter struct {
	sb strings.Builder
}

func (p *termPrinter) release() {
	p.sb.Reset()
	printerPool.Put(p)
}

// TermString returns the canonical rendering of a term: vectors as
// `(e1,e2,...)` (the empty vector as `()`), relations as `left->right`
// (`left~>right` when effectful), variables and constants by name.
func TermString(t Term) string {
	p := printerPool.Get().(*termPrinter)
	p.term(t)
	s := p.sb.String()
	p.release()
	return s
}

func (p *termPrinter) term(t Term) {
	switch t := t.(type) {
	case *Var:
		p.sb.WriteString(t.Name())
	case *Const:
		p.sb.WriteString(t.Name)
	case *Vector:
		p.sb.WriteByte('(')
		for i, el := range t.Terms {
			if i > 0 {
				p.sb.WriteByte(',')
			}
			p.term(el)
		}
		p.sb.WriteByte(')')
	case *Relation:
		p.term(t.Consumes)
		if t.Effectful {
			p.sb.WriteString("~>")
		} else {
			p.sb.WriteString("->")
		}
		p.term(t.Produces)
	case Recursive:
		p.sb.WriteString("self")
	default:
		p.sb.WriteString("<unknown term>")
	}
}
