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
	"errors"
	"testing"

	"github.com/catena-lang/catena/parser"
	"github.com/catena-lang/catena/types"
)

func word(t *testing.T, name, sig string) Function {
	t.Helper()
	rel, err := parser.Parse(sig)
	if err != nil {
		t.Fatalf("parse %s: %v", sig, err)
	}
	return Declared(name, rel)
}

func TestComposeEmpty(t *testing.T) {
	result, err := Compose()
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TermString(result); s != "()->()" {
		t.Fatalf("type: %s", s)
	}
}

func TestComposeSingle(t *testing.T) {
	dup := word(t, "dup", "('a -> 'a 'a)")
	result, err := Compose(dup)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TermString(result); s != "('a)->('a,'a)" {
		t.Fatalf("type: %s", s)
	}
}

func TestComposeGroundTransitivity(t *testing.T) {
	f := word(t, "f", "(int -> bool)")
	g := word(t, "g", "(bool -> str)")
	result, err := Compose(f, g)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TermString(result); s != "(int)->(str)" {
		t.Fatalf("type: %s", s)
	}
}

func TestComposeVarTransitivity(t *testing.T) {
	f := word(t, "f", "('a -> 'b)")
	g := word(t, "g", "('b -> 'c)")
	result, err := Compose(f, g)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("type: %s", types.TermString(result))

	if result.Consumes.Len() != 1 || result.Produces.Len() != 1 {
		t.Fatalf("type: %s", types.TermString(result))
	}
	cons, ok := result.Consumes.Terms[0].(*types.Var)
	if !ok {
		t.Fatalf("consumed a non-variable: %s", types.TermString(result))
	}
	prod, ok := result.Produces.Terms[0].(*types.Var)
	if !ok {
		t.Fatalf("produced a non-variable: %s", types.TermString(result))
	}
	// f's 'b was never tied to 'a or 'c, so the ends stay independent:
	if cons.Name() == prod.Name() {
		t.Fatalf("expected independent variables, got %s", types.TermString(result))
	}
}

func TestDupThenPop2(t *testing.T) {
	dup := word(t, "dup", "('a -> 'a 'a)")
	pop2 := word(t, "pop2", "('x 'y -> 'x)")
	result, err := Compose(dup, pop2)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("type: %s", types.TermString(result))

	// Both copies of dup's output merge with pop2's two consumed variables,
	// leaving a single variable on both sides.
	if result.Consumes.Len() != 1 || result.Produces.Len() != 1 {
		t.Fatalf("type: %s", types.TermString(result))
	}
	cons, ok := result.Consumes.Terms[0].(*types.Var)
	if !ok {
		t.Fatalf("consumed a non-variable: %s", types.TermString(result))
	}
	prod, ok := result.Produces.Terms[0].(*types.Var)
	if !ok {
		t.Fatalf("produced a non-variable: %s", types.TermString(result))
	}
	if cons.Name() != prod.Name() {
		t.Fatalf("expected one merged variable, got %s", types.TermString(result))
	}
}

func TestNoCrossUseAliasing(t *testing.T) {
	dup := word(t, "dup", "('a -> 'a 'a)")

	// Two unrelated compositions of the same declared word must never share
	// a variable name in their results.
	first, err := Compose(dup, dup)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compose(dup, dup)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("first: %s second: %s", types.TermString(first), types.TermString(second))

	names := make(map[string]bool)
	for _, tv := range types.Vars(first) {
		names[tv.Name()] = true
	}
	for _, tv := range types.Vars(second) {
		if names[tv.Name()] {
			t.Fatalf("variable %s aliased across unrelated compositions", tv.Name())
		}
	}
}

func TestComposeTwiceSameEngine(t *testing.T) {
	dup := word(t, "dup", "('a -> 'a 'a)")
	pop2 := word(t, "pop2", "('x 'y -> 'x)")
	eng := NewEngine()

	// Compose twice to ensure state is properly reset between calls:
	for i := 0; i < 2; i++ {
		result, err := eng.Compose(dup, pop2)
		if err != nil {
			t.Fatal(err)
		}
		if result.Consumes.Len() != 1 || result.Produces.Len() != 1 {
			t.Fatalf("type: %s", types.TermString(result))
		}
	}
}

func TestArityMismatch(t *testing.T) {
	f := word(t, "f", "('a -> 'a 'a)")
	g := word(t, "g", "('x 'y 'z -> 'x)")
	_, err := Compose(f, g)
	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("error: %v", err)
	}
}

func TestSequenceStopsAtFailure(t *testing.T) {
	f := word(t, "f", "('a -> 'a 'a)")
	g := word(t, "g", "('x 'y 'z -> 'x)")
	h := word(t, "h", "('a -> 'a)")
	_, err := Compose(f, g, h)
	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("error: %v", err)
	}
}

func TestConstMismatch(t *testing.T) {
	f := word(t, "f", "( -> int)")
	g := word(t, "g", "(bool -> )")
	_, err := Compose(f, g)
	if !errors.Is(err, ErrConstMismatch) {
		t.Fatalf("error: %v", err)
	}
}

func TestKindMismatch(t *testing.T) {
	eng := NewEngine()
	err := eng.Constrain(eng.Var("'x"), eng.Var("'X"))
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("error: %v", err)
	}
}

func TestMalformedVector(t *testing.T) {
	eng := NewEngine()
	v1 := types.NewVector(eng.Var("'X"), eng.Var("'a"))
	v2 := types.NewVector(&types.Const{Name: "int"}, &types.Const{Name: "bool"})
	err := eng.Constrain(v1, v2)
	if !errors.Is(err, ErrMalformedVector) {
		t.Fatalf("error: %v", err)
	}
}

func TestRowAbsorption(t *testing.T) {
	eng := NewEngine()
	row := types.NewVector(eng.Var("'X"))
	full := types.NewVector(&types.Const{Name: "int"}, &types.Const{Name: "bool"}, &types.Const{Name: "str"})
	if err := eng.Constrain(row, full); err != nil {
		t.Fatal(err)
	}
	eng.ComputeUnifiers()
	resolved, err := eng.Resolve(row)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TermString(resolved); s != "(int,bool,str)" {
		t.Fatalf("type: %s", s)
	}
}

func TestRowComposition(t *testing.T) {
	// dip runs a quotation under the top element; the row variable threads
	// the untouched remainder of the stack through both sides.
	push := word(t, "push2", "( -> int bool)")
	dip := word(t, "dip", "(('A -> 'C) 'b 'A -> 'b 'C)")
	result, err := Compose(push, dip)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("type: %s", types.TermString(result))
	if err := CheckWellTyped(result); err != nil {
		t.Fatal(err)
	}
}

func TestRecursionGuard(t *testing.T) {
	eng := NewEngine()
	a := eng.Var("'a")
	self := types.NewRelation(types.NewVector(), types.NewVector(a))
	if err := eng.Constrain(a, self); err != nil {
		t.Fatal(err)
	}
	eng.ComputeUnifiers()
	resolved, err := eng.Resolve(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := resolved.(types.Recursive); !ok {
		t.Fatalf("type: %s", types.TermString(resolved))
	}
}

// Self-application threads the cycle through two classes: the duplicated
// quotation is the function applied, so its type reaches its own row through
// the row's binding back to the quotation.
func TestTransitiveRecursionGuard(t *testing.T) {
	dup := word(t, "dup", "('a -> 'a 'a)")
	apply := word(t, "apply", "(('A -> 'B) 'A -> 'B)")
	result, err := Compose(dup, apply)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	types.Walk(result, func(tm types.Term) bool {
		if _, ok := tm.(types.Recursive); ok {
			found = true
			return false
		}
		return true
	})
	if !found {
		t.Fatalf("type: %s", types.TermString(result))
	}
}

func TestQuoteApply(t *testing.T) {
	quote := word(t, "quote", "('a -> ('B -> 'a 'B))")
	apply := word(t, "apply", "(('A -> 'B) 'A -> 'B)")
	result, err := Compose(quote, apply)
	if err != nil {
		t.Fatal(err)
	}
	if result.Consumes.Len() != 1 || result.Produces.Len() != 1 {
		t.Fatalf("type: %s", types.TermString(result))
	}
	in, ok := result.Consumes.Head().(*types.Var)
	if !ok || in.IsRow() {
		t.Fatalf("type: %s", types.TermString(result))
	}
	out, ok := result.Produces.Head().(*types.Var)
	if !ok || out.Name() != in.Name() {
		t.Fatalf("type: %s", types.TermString(result))
	}
}

// A variable unified with a quotation type resolves to a fresh instance per
// use: each instance keeps its internal linkage, and two instances never
// share a variable.
func TestQuotationUnifierFreshPerResolve(t *testing.T) {
	eng := NewEngine()
	x := eng.Var("'x")
	if err := eng.Constrain(x, parser.MustSignature("('a -> 'a)")); err != nil {
		t.Fatal(err)
	}
	eng.ComputeUnifiers()

	use := func() *types.Var {
		t.Helper()
		resolved, err := eng.Resolve(x)
		if err != nil {
			t.Fatal(err)
		}
		rel, ok := resolved.(*types.Relation)
		if !ok {
			t.Fatalf("type: %s", types.TermString(resolved))
		}
		in := rel.Consumes.Head().(*types.Var)
		out := rel.Produces.Head().(*types.Var)
		if in.Name() != out.Name() {
			t.Fatalf("type: %s", types.TermString(rel))
		}
		return in
	}
	first := use()
	second := use()
	if first.Name() == second.Name() {
		t.Fatalf("both uses resolved to %s", first.Name())
	}
}

func TestEffectPropagation(t *testing.T) {
	push := word(t, "true", "( -> bool)")
	write := word(t, "write", "('a ~> )")
	result, err := Compose(push, write)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Effectful {
		t.Fatalf("expected an effectful composition")
	}
	if s := types.TermString(result); s != "()~>()" {
		t.Fatalf("type: %s", s)
	}
}

func TestResolveBeforeComputeUnifiers(t *testing.T) {
	eng := NewEngine()
	a := eng.Var("'a")
	if err := eng.Constrain(a, &types.Const{Name: "int"}); err != nil {
		t.Fatal(err)
	}
	_, err := eng.Resolve(a)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("error: %v", err)
	}
}

func TestCheckWellTyped(t *testing.T) {
	good := parser.MustSignature("('a 'A -> 'a 'a 'A)")
	if err := CheckWellTyped(good); err != nil {
		t.Fatal(err)
	}
	bad := types.NewRelation(
		types.NewVector(types.NewVar("'A"), types.NewVar("'a")),
		types.NewVector(),
	)
	if err := CheckWellTyped(bad); !errors.Is(err, ErrMalformedVector) {
		t.Fatalf("error: %v", err)
	}
}

func BenchmarkComposePair(b *testing.B) {
	dup, err := parser.Parse("('a -> 'a 'a)")
	if err != nil {
		b.Fatal(err)
	}
	pop2, err := parser.Parse("('x 'y -> 'x)")
	if err != nil {
		b.Fatal(err)
	}
	eng := NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eng.composePair(dup, pop2); err != nil {
			b.Fatal(err)
		}
	}
}
