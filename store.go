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

package catena

import (
	"fmt"

	"github.com/catena-lang/catena/types"
)

// eqClass is a set of terms proven equal under unification, with one
// canonical unifier computed after constraint processing.
type eqClass struct {
	terms   []types.Term
	unifier types.Term
}

func (c *eqClass) contains(t types.Term) bool {
	for _, m := range c.terms {
		if m == t {
			return true
		}
	}
	return false
}

// classStore is the equivalence store: a union-find over interned variable
// indices. Every variable belongs to exactly one class at a time; merging
// leaves one surviving class that every formerly-separate member reaches.
type classStore struct {
	vars     []*types.Var
	index    map[string]int
	parent   []int
	classes  map[int]*eqClass
	computed bool
}

func newClassStore() *classStore {
	return &classStore{
		index:   make(map[string]int),
		classes: make(map[int]*eqClass),
	}
}

func (s *classStore) reset() {
	s.vars = s.vars[:0]
	s.parent = s.parent[:0]
	s.index = make(map[string]int)
	s.classes = make(map[int]*eqClass)
	s.computed = false
}

// intern returns the store's variable for name, creating it together with a
// singleton class when the name is unseen. Two variables with the same name
// are the same object for the lifetime of one store.
func (s *classStore) intern(name string) *types.Var {
	if i, ok := s.index[name]; ok {
		return s.vars[i]
	}
	tv := types.NewVar(name)
	i := len(s.vars)
	s.vars = append(s.vars, tv)
	s.index[name] = i
	s.parent = append(s.parent, i)
	s.classes[i] = &eqClass{terms: []types.Term{tv}}
	return tv
}

func (s *classStore) find(i int) int {
	for s.parent[i] != i {
		s.parent[i] = s.parent[s.parent[i]]
		i = s.parent[i]
	}
	return i
}

// classOf returns the equivalence class containing the named variable,
// interning the variable first when unseen.
func (s *classStore) classOf(name string) *eqClass {
	s.intern(name)
	return s.classes[s.find(s.index[name])]
}

// union merges the class of b into the class of a, returning the absorbed
// members so the caller can re-insert them (queueing any cross obligations).
// Fails when an absorbed root has no recorded class: that means a variable's
// class pointer went stale, which is an engine bug.
func (s *classStore) union(a, b *types.Var) ([]types.Term, error) {
	s.intern(a.Name())
	s.intern(b.Name())
	ra, rb := s.find(s.index[a.Name()]), s.find(s.index[b.Name()])
	if ra == rb {
		return nil, nil
	}
	ca, cb := s.classes[ra], s.classes[rb]
	if ca == nil || cb == nil {
		return nil, fmt.Errorf("%w: no class recorded while merging %s with %s", ErrInternal, a.Name(), b.Name())
	}
	s.parent[rb] = ra
	delete(s.classes, rb)
	return cb.terms, nil
}

// computeUnifiers folds every class through chooseBetter to obtain its one
// canonical unifier. A class containing a term that transitively reaches one
// of the class's own variables, directly or through other classes' members,
// unifies to the Recursive sentinel. Must run before any resolution.
func (s *classStore) computeUnifiers() {
	for root, c := range s.classes {
		if s.selfReferential(root) {
			c.unifier = types.Recursive{}
			continue
		}
		u := c.terms[0]
		for _, m := range c.terms[1:] {
			u = chooseBetter(u, m)
		}
		c.unifier = u
	}
	s.computed = true
}

// unifierOf returns the canonical unifier for the named variable's class, or
// nil for a variable the store has never seen (it stays free). Calling this
// before computeUnifiers is an internal consistency error.
func (s *classStore) unifierOf(name string) (types.Term, error) {
	if !s.computed {
		return nil, fmt.Errorf("%w: unifier of %s requested before unifiers were computed", ErrInternal, name)
	}
	i, ok := s.index[name]
	if !ok {
		return nil, nil
	}
	return s.classes[s.find(i)].unifier, nil
}

// selfReferential reports whether the class with the given root can reach
// one of its own variables through a non-variable member. Variables reached
// along the way are followed into their classes' members, so a cycle
// threaded through another class counts the same as a direct one.
func (s *classStore) selfReferential(start int) bool {
	seen := map[int]bool{start: true}
	var reaches func(root int) bool
	reaches = func(root int) bool {
		c := s.classes[root]
		if c == nil {
			return false
		}
		for _, m := range c.terms {
			if _, ok := m.(*types.Var); ok {
				continue
			}
			cyclic := false
			types.Walk(m, func(t types.Term) bool {
				tv, ok := t.(*types.Var)
				if !ok {
					return true
				}
				i, ok := s.index[tv.Name()]
				if !ok {
					return true
				}
				r := s.find(i)
				if r == start {
					cyclic = true
					return false
				}
				if !seen[r] {
					seen[r] = true
					if reaches(r) {
						cyclic = true
						return false
					}
				}
				return true
			})
			if cyclic {
				return true
			}
		}
		return false
	}
	return reaches(start)
}

// chooseBetter picks the more informative of two members of one class:
// the Recursive sentinel dominates, variables lose to any non-variable,
// constants win over vectors, the longer of two vectors wins (ties broken by
// transitive sub-term count), and otherwise the first is kept. Two distinct
// constants never reach this point; the engine rejects them on insertion.
func chooseBetter(c1, c2 types.Term) types.Term {
	if _, ok := c1.(types.Recursive); ok {
		return c1
	}
	if _, ok := c2.(types.Recursive); ok {
		return c2
	}
	if _, ok := c1.(*types.Var); ok {
		if _, ok := c2.(*types.Var); ok {
			return c1
		}
		return c2
	}
	if _, ok := c2.(*types.Var); ok {
		return c1
	}
	if _, ok := c1.(*types.Const); ok {
		return c1
	}
	if _, ok := c2.(*types.Const); ok {
		if _, ok := c1.(*types.Vector); ok {
			return c2
		}
		return c1
	}
	if v1, ok := c1.(*types.Vector); ok {
		if v2, ok := c2.(*types.Vector); ok {
			if v2.Len() > v1.Len() {
				return v2
			}
			if v2.Len() == v1.Len() && types.Count(v2) > types.Count(v1) {
				return v2
			}
			return v1
		}
	}
	return c1
}
