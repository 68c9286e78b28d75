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
	"sort"

	"github.com/catena-lang/catena/parser"
	"github.com/catena-lang/catena/types"
)

// FuncEnv maps word names to declared stack-effect types. An environment
// inherits bindings from its parent, if the parent is not nil.
//
// A FuncEnv cannot be used concurrently with modification; to share one
// across threads, create a child environment per thread.
type FuncEnv struct {
	Parent *FuncEnv
	Words  map[string]*Word
}

// Word is a named function with a declared stack effect.
type Word struct {
	name string
	typ  *types.Relation
}

func (w *Word) Name() string             { return w.name }
func (w *Word) FxnType() *types.Relation { return w.typ }

var _ Function = (*Word)(nil)

func NewFuncEnv(parent *FuncEnv) *FuncEnv {
	return &FuncEnv{Parent: parent, Words: make(map[string]*Word)}
}

// Add declares a word in the current environment, shadowing any parent
// binding with the same name.
func (e *FuncEnv) Add(name string, t *types.Relation) *Word {
	w := &Word{name: name, typ: t}
	e.Words[name] = w
	return w
}

// Lookup finds a word in the environment or its parents.
func (e *FuncEnv) Lookup(name string) (*Word, bool) {
	for env := e; env != nil; env = env.Parent {
		if w, ok := env.Words[name]; ok {
			return w, true
		}
	}
	return nil, false
}

// Names returns every visible word name, sorted. Parent bindings shadowed by
// the current environment appear once.
func (e *FuncEnv) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.Parent {
		for name := range env.Words {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// ComposeWords resolves names through the environment and infers the
// composite type of the sequence.
func (e *FuncEnv) ComposeWords(eng *Engine, names ...string) (*types.Relation, error) {
	fns := make([]Function, len(names))
	for i, name := range names {
		w, ok := e.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown word %s", name)
		}
		fns[i] = w
	}
	return eng.Compose(fns...)
}

// CoreEnv returns an environment preloaded with the builtin words. The
// builtins are declared by signature, not discovered by reflection.
func CoreEnv() *FuncEnv {
	env := NewFuncEnv(nil)
	for name, sig := range coreWords {
		env.Add(name, parser.MustSignature(sig))
	}
	return env
}

var coreWords = map[string]string{
	"id":      "( -> )",
	"dup":     "('a -> 'a 'a)",
	"pop":     "('a -> )",
	"pop2":    "('a 'b -> 'a)",
	"swap":    "('a 'b -> 'b 'a)",
	"over":    "('a 'b -> 'b 'a 'b)",
	"apply":   "(('A -> 'B) 'A -> 'B)",
	"dip":     "(('A -> 'C) 'b 'A -> 'b 'C)",
	"quote":   "('a -> ('B -> 'a 'B))",
	"compose": "(('B -> 'C) ('A -> 'B) -> ('A -> 'C))",
	"true":    "( -> bool)",
	"false":   "( -> bool)",
	"not":     "(bool -> bool)",
	"and":     "(bool bool -> bool)",
	"or":      "(bool bool -> bool)",
	"add":     "(int int -> int)",
	"sub":     "(int int -> int)",
	"mul":     "(int int -> int)",
	"div":     "(int int -> int)",
	"eq":      "('a 'a -> bool)",
	"lt":      "(int int -> bool)",
	"write":   "('a ~> )",
	"read":    "( ~> str)",
}
