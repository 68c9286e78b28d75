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
	"github.com/benbjohnson/immutable"
)

var emptySet = immutable.NewSortedMap(nil)

// EmptyVarSet is the immutable set containing no variables.
var EmptyVarSet = VarSet{emptySet}

// VarSet is an immutable set of variables keyed by name. Extending a set
// returns a new set; the resolver threads extended copies through nested
// relations without disturbing enclosing scopes.
type VarSet struct {
	m *immutable.SortedMap
}

func NewVarSet(vars ...*Var) VarSet { return EmptyVarSet.With(vars...) }

// Len returns the number of variables in the set.
func (s VarSet) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Has reports whether a variable with the given name is in the set.
func (s VarSet) Has(name string) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m.Get(name)
	return ok
}

// Get returns the member variable with the given name.
func (s VarSet) Get(name string) (*Var, bool) {
	if s.m == nil {
		return nil, false
	}
	v, ok := s.m.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Var), true
}

// With returns a set extended with the given variables.
func (s VarSet) With(vars ...*Var) VarSet {
	m := s.m
	if m == nil {
		m = emptySet
	}
	for _, tv := range vars {
		m = m.Set(tv.Name(), tv)
	}
	return VarSet{m}
}

// Union returns a set containing the members of both sets.
func (s VarSet) Union(other VarSet) VarSet {
	if other.m == nil {
		return s
	}
	m := s.m
	if m == nil {
		m = emptySet
	}
	iter := other.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		m = m.Set(k, v)
	}
	return VarSet{m}
}

// Range iterates over member variables in name order.
// If f returns false, iteration will be stopped.
func (s VarSet) Range(f func(*Var) bool) {
	if s.m == nil {
		return
	}
	iter := s.m.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		if !f(v.(*Var)) {
			return
		}
	}
}
