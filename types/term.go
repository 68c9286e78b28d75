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
	"strconv"
	"strings"
	"sync/atomic"
)

// Term is the base interface for all stack-effect terms.
type Term interface {
	TermName() string
}

func (t *Var) TermName() string      { return "Var" }
func (t *Const) TermName() string    { return "Const" }
func (t *Vector) TermName() string   { return "Vector" }
func (t *Relation) TermName() string { return "Relation" }
func (t Recursive) TermName() string { return "Recursive" }

// VarKind distinguishes variables standing for a single stack element from
// variables standing for the remainder of a stack.
type VarKind int

const (
	// ScalarKind variables match exactly one stack element.
	ScalarKind VarKind = iota
	// RowKind variables match an arbitrary-length (possibly empty) remainder
	// of a stack, and may only appear as the last element of a vector.
	RowKind
)

func (k VarKind) String() string {
	if k == RowKind {
		return "row"
	}
	return "scalar"
}

// Var is a stack-effect type variable. A variable's identity is its name:
// within one inference engine two variables with the same name are the same
// object.
type Var struct {
	name string
	kind VarKind
}

func NewVar(name string) *Var { return &Var{name: name, kind: KindOf(name)} }

func (tv *Var) Name() string  { return tv.name }
func (tv *Var) Kind() VarKind { return tv.kind }
func (tv *Var) IsRow() bool   { return tv.kind == RowKind }

// KindOf reports the kind implied by a variable name: an upper-case first
// letter (after any leading quote) names a row variable, anything else a
// scalar variable.
func KindOf(name string) VarKind {
	s := strings.TrimPrefix(name, "'")
	if s != "" && s[0] >= 'A' && s[0] <= 'Z' {
		return RowKind
	}
	return ScalarKind
}

// Const is an opaque ground type: `int` or `bool`.
// Two constants are equal iff their names are equal.
type Const struct {
	Name string
}

var freshCounter uint64

// FreshVar returns a variable with a globally-unique generated name of the
// given kind. Names from separate calls never collide, even across unrelated
// engines.
func FreshVar(kind VarKind) *Var {
	n := atomic.AddUint64(&freshCounter, 1)
	if kind == RowKind {
		return &Var{name: "T" + strconv.FormatUint(n, 10), kind: RowKind}
	}
	return &Var{name: "t" + strconv.FormatUint(n, 10), kind: ScalarKind}
}
