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

// Function describes a named function with a declared stack effect.
// Parsers and registries provide implementations; the composer only reads
// the declared type and the display name.
type Function interface {
	// Name returns the function's display name for diagnostics.
	Name() string
	// FxnType returns the function's declared stack effect.
	FxnType() *types.Relation
}

// Declared adapts a bare relation into a Function.
func Declared(name string, t *types.Relation) Function { return &declared{name, t} }

type declared struct {
	name string
	typ  *types.Relation
}

func (d *declared) Name() string             { return d.name }
func (d *declared) FxnType() *types.Relation { return d.typ }

// Compose infers the composite stack effect of applying fns left to right.
// The empty sequence composes to the identity effect ( -> ); a single
// function keeps its declared type. The first pair that fails aborts the
// whole sequence.
func (e *Engine) Compose(fns ...Function) (*types.Relation, error) {
	if len(fns) == 0 {
		return types.Identity(), nil
	}
	t := fns[0].FxnType()
	if len(fns) == 1 {
		return t, nil
	}
	prefix := fns[0].Name()
	for _, f := range fns[1:] {
		composed, err := e.composePair(t, f.FxnType())
		if err != nil {
			return nil, fmt.Errorf("composing %s with %s: %w", prefix, f.Name(), err)
		}
		t = composed
		prefix += " " + f.Name()
	}
	return t, nil
}

// Compose infers with a one-shot engine.
func Compose(fns ...Function) (*types.Relation, error) {
	return NewEngine().Compose(fns...)
}

// composePair infers the type of left followed by right: what left leaves on
// the stack must be what right consumes. Engine state is cleared first, and
// the operands are renamed apart so per-pair variables never alias.
func (e *Engine) composePair(left, right *types.Relation) (*types.Relation, error) {
	e.Reset()
	l := e.renameApart(left)
	r := e.renameApart(right)
	e.trace("compose", l, r)

	if err := e.Constrain(l.Produces, r.Consumes); err != nil {
		e.DumpState()
		return nil, err
	}
	e.ComputeUnifiers()

	cons, err := e.Resolve(l.Consumes)
	if err != nil {
		return nil, err
	}
	prod, err := e.Resolve(r.Produces)
	if err != nil {
		return nil, err
	}
	result := &types.Relation{
		Consumes:  cons.(*types.Vector),
		Produces:  prod.(*types.Vector),
		Effectful: l.Effectful || r.Effectful,
	}
	return freshRename(result), nil
}

// renameApart copies rel with every variable replaced by a fresh interned
// variable, so two operands never share a variable even when they are
// literally the same declared type.
func (e *Engine) renameApart(rel *types.Relation) *types.Relation {
	seen := make(map[string]*types.Var)
	return mapVars(rel, func(tv *types.Var) *types.Var {
		fresh, ok := seen[tv.Name()]
		if !ok {
			fresh = e.freshVar(tv.Kind())
			seen[tv.Name()] = fresh
		}
		return fresh
	}).(*types.Relation)
}

// freshRename gives a finished type one final pass of fresh names, in order
// of first appearance, so results from unrelated compositions never collide.
func freshRename(rel *types.Relation) *types.Relation {
	seen := make(map[string]*types.Var)
	return mapVars(rel, func(tv *types.Var) *types.Var {
		fresh, ok := seen[tv.Name()]
		if !ok {
			fresh = types.FreshVar(tv.Kind())
			seen[tv.Name()] = fresh
		}
		return fresh
	}).(*types.Relation)
}

// CheckWellTyped verifies the row-variable placement invariant over a
// finished type: a row variable may only close a vector. The composer does
// not enforce this itself; callers decide how to surface a failure.
func CheckWellTyped(rel *types.Relation) error {
	var err error
	types.Walk(rel, func(t types.Term) bool {
		v, ok := t.(*types.Vector)
		if !ok {
			return true
		}
		for i, el := range v.Terms {
			if tv, ok := el.(*types.Var); ok && tv.IsRow() && i != v.Len()-1 {
				err = fmt.Errorf("%w: %s in %s", ErrMalformedVector, tv.Name(), types.TermString(v))
				return false
			}
		}
		return true
	})
	return err
}
