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
	"log/slog"

	"github.com/catena-lang/catena/types"
	"github.com/davecgh/go-spew/spew"
)

// Engine unifies stack-effect terms. It owns the variable pool, the
// equivalence store, and the queue of pending vector obligations.
//
// An engine cannot be used concurrently, and its state is scoped to one
// composition: Compose resets it before each pair.
type Engine struct {
	store  *classStore
	queue  []vecPair
	queued map[vecPair]bool
	log    *slog.Logger
}

// vecPair is a deferred element-wise equality obligation between two
// vectors. Pairs are deduplicated by reference.
type vecPair struct {
	a, b *types.Vector
}

func NewEngine() *Engine {
	return &Engine{
		store:  newClassStore(),
		queued: make(map[vecPair]bool),
	}
}

// SetLogger installs a trace sink. Traces are purely observational and never
// affect inference; a nil logger disables them.
func (e *Engine) SetLogger(l *slog.Logger) { e.log = l }

// Reset clears the variable pool, the equivalence store, and the pending
// queue. Reusing an engine across unrelated inferences without resetting
// would leak equivalence merges between them.
func (e *Engine) Reset() {
	e.store.reset()
	e.queue = e.queue[:0]
	e.queued = make(map[vecPair]bool)
}

// Var returns the engine's interned variable for name.
func (e *Engine) Var(name string) *types.Var { return e.store.intern(name) }

// freshVar interns a variable with a globally-unique generated name.
func (e *Engine) freshVar(kind types.VarKind) *types.Var {
	return e.store.intern(types.FreshVar(kind).Name())
}

// Constrain records that two terms must be equal, processing all queued
// obligations the constraint gives rise to.
func (e *Engine) Constrain(a, b types.Term) error {
	if err := e.constrain(a, b); err != nil {
		return err
	}
	return e.drain()
}

// ComputeUnifiers folds every equivalence class to its canonical unifier.
// Must run after the final Constrain and before any Resolve.
func (e *Engine) ComputeUnifiers() {
	e.store.computeUnifiers()
	if e.log != nil {
		e.log.Debug("unifiers computed", "classes", len(e.store.classes))
		for root, c := range e.store.classes {
			e.log.Debug("class",
				"var", e.store.vars[root].Name(),
				"unifier", types.TermString(c.unifier),
				"members", len(c.terms))
		}
	}
}

// constrain dispatches on the runtime shapes of the two terms. It never
// drains the queue itself; obligations accumulate until drain runs.
func (e *Engine) constrain(a, b types.Term) error {
	if a == b {
		return nil
	}
	e.trace("constraint", a, b)

	av, aIsVar := a.(*types.Var)
	bv, bIsVar := b.(*types.Var)
	switch {
	case aIsVar && bIsVar:
		return e.constrainVars(av, bv)
	case aIsVar:
		return e.insert(av, b)
	case bIsVar:
		return e.insert(bv, a)
	}

	switch a := a.(type) {
	case *types.Vector:
		if b, ok := b.(*types.Vector); ok {
			return e.constrainVectors(a, b)
		}
	case *types.Relation:
		if b, ok := b.(*types.Relation); ok {
			if err := e.constrainVectors(a.Consumes, b.Consumes); err != nil {
				return err
			}
			return e.constrainVectors(a.Produces, b.Produces)
		}
	}

	// No structural merge applies. Distinct ground types are a hard error;
	// a constant against any other shape is recorded as a deduction only.
	if ac, ok := a.(*types.Const); ok {
		if bc, ok := b.(*types.Const); ok {
			if ac.Name != bc.Name {
				return fmt.Errorf("%w: %s with %s", ErrConstMismatch, ac.Name, bc.Name)
			}
			return nil
		}
		e.trace("deduction", a, b)
		return nil
	}
	if _, ok := b.(*types.Const); ok {
		e.trace("deduction", a, b)
		return nil
	}
	e.trace("no merge", a, b)
	return nil
}

// constrainVars merges the equivalence classes of two variables. Every
// member of the absorbed class is re-inserted into the survivor so that
// cross sub-term obligations get queued.
func (e *Engine) constrainVars(a, b *types.Var) error {
	if a.Name() == b.Name() {
		return nil
	}
	if a.Kind() != b.Kind() {
		return fmt.Errorf("%w: %s is a %s variable, %s is a %s variable",
			ErrKindMismatch, a.Name(), a.Kind(), b.Name(), b.Kind())
	}
	absorbed, err := e.store.union(a, b)
	if err != nil {
		return err
	}
	for _, t := range absorbed {
		if err := e.insert(a, t); err != nil {
			return err
		}
	}
	return nil
}

// insert adds a term into the class of v. Re-inserting a present term is a
// no-op. A vector joining a class is re-checked against every vector already
// in the class, not just the term it was constrained with.
func (e *Engine) insert(v *types.Var, t types.Term) error {
	c := e.store.classOf(v.Name())
	if c.contains(t) {
		return nil
	}
	if tc, ok := t.(*types.Const); ok {
		for _, m := range c.terms {
			if mc, ok := m.(*types.Const); ok && mc.Name != tc.Name {
				return fmt.Errorf("%w: %s with %s (via %s)", ErrConstMismatch, mc.Name, tc.Name, v.Name())
			}
		}
	}
	if tv, ok := t.(*types.Vector); ok {
		for _, m := range c.terms {
			if mv, ok := m.(*types.Vector); ok {
				e.enqueue(mv, tv)
			}
		}
	}
	c.terms = append(c.terms, t)
	return nil
}

// constrainVectors unifies two stack shapes. A sole row-variable head binds
// to the entire opposite vector; otherwise heads are constrained directly
// and the tail pair is queued rather than recursed, bounding stack depth.
func (e *Engine) constrainVectors(a, b *types.Vector) error {
	if a == b {
		return nil
	}

	// Row-variable cases come first: a sole row variable absorbs any
	// remaining suffix of the other vector, the empty suffix included.
	if av, ok := a.Head().(*types.Var); ok && av.IsRow() {
		if a.Len() != 1 {
			return fmt.Errorf("%w: %s in %s", ErrMalformedVector, av.Name(), types.TermString(a))
		}
		if bv, ok := b.Head().(*types.Var); ok && bv.IsRow() && b.Len() == 1 {
			return e.constrainVars(av, bv)
		}
		// av stands for the rest of the stack: the whole of b.
		return e.insert(e.store.intern(av.Name()), b)
	}
	if bv, ok := b.Head().(*types.Var); ok && bv.IsRow() {
		if b.Len() != 1 {
			return fmt.Errorf("%w: %s in %s", ErrMalformedVector, bv.Name(), types.TermString(b))
		}
		return e.insert(e.store.intern(bv.Name()), a)
	}

	if a.Len() == 0 && b.Len() == 0 {
		return nil
	}
	if a.Len() == 0 || b.Len() == 0 {
		return fmt.Errorf("%w: %s with %s", ErrArityMismatch, types.TermString(a), types.TermString(b))
	}

	if err := e.constrain(a.Head(), b.Head()); err != nil {
		return err
	}
	e.enqueue(a.Rest(), b.Rest())
	return nil
}

// enqueue defers a vector pair for element-wise unification, skipping pairs
// already seen during this composition.
func (e *Engine) enqueue(a, b *types.Vector) {
	if e.queued[vecPair{a, b}] || e.queued[vecPair{b, a}] {
		return
	}
	e.queued[vecPair{a, b}] = true
	e.queue = append(e.queue, vecPair{a, b})
}

// drain processes queued vector pairs until none remain. Processing a pair
// may enqueue further pairs; vectors strictly shrink, so this terminates.
func (e *Engine) drain() error {
	for len(e.queue) > 0 {
		p := e.queue[0]
		e.queue = e.queue[1:]
		if err := e.constrainVectors(p.a, p.b); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) trace(msg string, a, b types.Term) {
	if e.log == nil {
		return
	}
	e.log.Debug(msg, "left", types.TermString(a), "right", types.TermString(b))
}

// DumpState writes a full dump of the engine's equivalence classes to the
// trace sink. Useful when a composition resolves to something surprising.
func (e *Engine) DumpState() {
	if e.log == nil {
		return
	}
	e.log.Debug("engine state", "store", spew.Sdump(e.store.classes))
}
