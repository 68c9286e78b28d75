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

// Vector is an ordered, possibly-empty sequence of terms representing a
// stack shape. A row variable may occur only as the last element.
type Vector struct {
	Terms []Term
}

func NewVector(terms ...Term) *Vector { return &Vector{Terms: terms} }

func (v *Vector) Len() int { return len(v.Terms) }

// Head returns the first element, or nil when the vector is empty.
func (v *Vector) Head() Term {
	if len(v.Terms) == 0 {
		return nil
	}
	return v.Terms[0]
}

// Rest returns a vector of all elements but the first. The backing slice is
// shared; vectors are never mutated after construction.
func (v *Vector) Rest() *Vector { return &Vector{Terms: v.Terms[1:]} }

// Walk visits t and all of its sub-terms depth-first: vectors expand their
// elements, relations expand their consumption vector then their production
// vector. If visit returns false, the walk stops and Walk returns false.
func Walk(t Term, visit func(Term) bool) bool {
	if !visit(t) {
		return false
	}
	switch t := t.(type) {
	case *Vector:
		for _, el := range t.Terms {
			if !Walk(el, visit) {
				return false
			}
		}
	case *Relation:
		if !Walk(t.Consumes, visit) {
			return false
		}
		return Walk(t.Produces, visit)
	}
	return true
}

// Count returns the number of terms reachable from t, including t itself.
// Used to prefer the more fully-resolved of two equal-length vectors.
func Count(t Term) int {
	n := 0
	Walk(t, func(Term) bool {
		n++
		return true
	})
	return n
}

// Vars collects every variable reachable from t, in visit order, without
// duplicates.
func Vars(t Term) []*Var {
	var vars []*Var
	seen := make(map[string]bool)
	Walk(t, func(t Term) bool {
		if tv, ok := t.(*Var); ok && !seen[tv.Name()] {
			seen[tv.Name()] = true
			vars = append(vars, tv)
		}
		return true
	})
	return vars
}
