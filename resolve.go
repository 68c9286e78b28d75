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
	"github.com/catena-lang/catena/types"
)

// Resolve substitutes every variable in t by its class unifier, recursively.
// ComputeUnifiers must have run.
func (e *Engine) Resolve(t types.Term) (types.Term, error) {
	return e.resolve(t, types.EmptyVarSet, types.EmptyVarSet)
}

// resolve carries the set of variables currently being resolved (the cycle
// guard: re-entering a variable returns it unresolved) and the set of
// non-generic variables fixed by an enclosing context, which must not be
// freshly renamed during generalization.
func (e *Engine) resolve(t types.Term, visited, nonGeneric types.VarSet) (types.Term, error) {
	switch t := t.(type) {
	case *types.Var:
		return e.resolveVar(t, visited, nonGeneric)

	case *types.Vector:
		terms := make([]types.Term, 0, t.Len())
		for _, el := range t.Terms {
			r, err := e.resolve(el, visited, nonGeneric)
			if err != nil {
				return nil, err
			}
			// A row variable resolved to a vector splices its elements in:
			// the variable stood for the rest of the stack.
			if tv, ok := el.(*types.Var); ok && tv.IsRow() {
				if rv, ok := r.(*types.Vector); ok {
					terms = append(terms, rv.Terms...)
					continue
				}
			}
			terms = append(terms, r)
		}
		return types.NewVector(terms...), nil

	case *types.Relation:
		bound, err := e.boundVars(t)
		if err != nil {
			return nil, err
		}
		ng := nonGeneric.Union(bound)
		cons, err := e.resolve(t.Consumes, visited, ng)
		if err != nil {
			return nil, err
		}
		prod, err := e.resolve(t.Produces, visited, ng)
		if err != nil {
			return nil, err
		}
		return &types.Relation{
			Consumes:  cons.(*types.Vector),
			Produces:  prod.(*types.Vector),
			Effectful: t.Effectful,
		}, nil

	default:
		return t, nil
	}
}

func (e *Engine) resolveVar(tv *types.Var, visited, nonGeneric types.VarSet) (types.Term, error) {
	if visited.Has(tv.Name()) {
		return tv, nil
	}
	u, err := e.store.unifierOf(tv.Name())
	if err != nil {
		return nil, err
	}
	if u == nil {
		// never constrained, stays free
		return tv, nil
	}
	if uv, ok := u.(*types.Var); ok && uv.Name() == tv.Name() {
		return uv, nil
	}
	visited = visited.With(tv)

	switch u := u.(type) {
	case *types.Var:
		return e.resolveVar(u, visited, nonGeneric)
	case *types.Vector:
		return e.resolve(u, visited, nonGeneric)
	case *types.Relation:
		// A relation-valued unifier is a polymorphic function type: resolve
		// it, then instantiate fresh names for everything not fixed by the
		// enclosing context, so separate use sites never alias.
		resolved, err := e.resolve(u, visited, nonGeneric)
		if err != nil {
			return nil, err
		}
		return instantiate(resolved, nonGeneric), nil
	default:
		// *Const, Recursive
		return u, nil
	}
}

// boundVars collects the variables a relation fixes: every variable
// reachable from it plus, one level down, the variables inside each such
// variable's own unifier when that unifier is a variable or vector. Seeds
// the non-generic set while resolving a nested relation.
func (e *Engine) boundVars(t types.Term) (types.VarSet, error) {
	set := types.EmptyVarSet
	for _, tv := range types.Vars(t) {
		set = set.With(tv)
		u, err := e.store.unifierOf(tv.Name())
		if err != nil {
			return set, err
		}
		switch u := u.(type) {
		case *types.Var:
			set = set.With(u)
		case *types.Vector:
			set = set.With(types.Vars(u)...)
		}
	}
	return set, nil
}

// instantiate replaces every generic variable in t with a fresh variable of
// the same kind, consistently within one call. Variables in nonGeneric are
// kept as-is.
func instantiate(t types.Term, nonGeneric types.VarSet) types.Term {
	seen := make(map[string]*types.Var)
	return mapVars(t, func(tv *types.Var) *types.Var {
		if nonGeneric.Has(tv.Name()) {
			return tv
		}
		fresh, ok := seen[tv.Name()]
		if !ok {
			fresh = types.FreshVar(tv.Kind())
			seen[tv.Name()] = fresh
		}
		return fresh
	})
}

// mapVars rebuilds t with every variable replaced through f. Constants and
// the Recursive sentinel pass through unchanged.
func mapVars(t types.Term, f func(*types.Var) *types.Var) types.Term {
	switch t := t.(type) {
	case *types.Var:
		return f(t)
	case *types.Vector:
		terms := make([]types.Term, len(t.Terms))
		for i, el := range t.Terms {
			terms[i] = mapVars(el, f)
		}
		return types.NewVector(terms...)
	case *types.Relation:
		return &types.Relation{
			Consumes:  mapVars(t.Consumes, f).(*types.Vector),
			Produces:  mapVars(t.Produces, f).(*types.Vector),
			Effectful: t.Effectful,
		}
	default:
		return t
	}
}
