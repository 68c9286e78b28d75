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

var _ Term = (*Relation)(nil)
var _ Term = Recursive{}

// Relation is a function type: the pair of a consumption vector and a
// production vector, representing a stack effect. Effectful marks functions
// with observable side effects; composition ORs the flag.
type Relation struct {
	Consumes  *Vector
	Produces  *Vector
	Effectful bool
}

func NewRelation(consumes, produces *Vector) *Relation {
	return &Relation{Consumes: consumes, Produces: produces}
}

// Identity returns the no-op stack effect ( -> ).
func Identity() *Relation {
	return &Relation{Consumes: NewVector(), Produces: NewVector()}
}

// Recursive marks a term proven equal to one of its own sub-terms during
// unification. It dominates any other choice of unifier for its class, so
// resolution terminates instead of chasing the cycle.
type Recursive struct{}
