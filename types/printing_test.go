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

import "testing"

func TestTermString(t *testing.T) {
	cases := []struct {
		term Term
		want string
	}{
		{NewVar("'a"), "'a"},
		{&Const{Name: "int"}, "int"},
		{NewVector(), "()"},
		{NewVector(NewVar("'a"), &Const{Name: "int"}, NewVar("'B")), "('a,int,'B)"},
		{NewRelation(NewVector(NewVar("'a")), NewVector(NewVar("'a"), NewVar("'a"))), "('a)->('a,'a)"},
		{Identity(), "()->()"},
		{Recursive{}, "self"},
		{
			&Relation{
				Consumes:  NewVector(NewVar("'a")),
				Produces:  NewVector(),
				Effectful: true,
			},
			"('a)~>()",
		},
		{
			NewVector(NewRelation(NewVector(NewVar("'A")), NewVector(NewVar("'B"))), NewVar("'A")),
			"(('A)->('B),'A)",
		},
	}
	for _, c := range cases {
		if got := TermString(c.term); got != c.want {
			t.Errorf("TermString = %s, want %s", got, c.want)
		}
	}
}
