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

// catena infers composite stack-effect types for sequences of functions in a
// concatenative language.
//
// Every function declares a stack effect: the shape of the stack it consumes
// and the shape it produces, e.g. dup : ('a -> 'a 'a). Composing a pipeline
// unifies what each function leaves on the stack with what the next one
// consumes, Hindley-Milner style, over variable-length stack rows: a row
// variable (upper-case, e.g. 'A) stands for the untouched remainder of the
// stack, which is what lets dip : (('A -> 'C) 'b 'A -> 'b 'C) thread an
// arbitrary stack below its working elements.
//
// The engine is constraint based: constraints collect terms into equivalence
// classes, each class folds to a canonical unifier, and resolution
// substitutes unifiers back into the requested type, generalizing nested
// function types so a polymorphic word used at two call sites never aliases
// between them. Self-referential types collapse to a recursion sentinel
// instead of looping.
//
// Inference either produces a resolved stack effect or fails for the whole
// sequence; there is no partial recovery.
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// The concatenative composition rule is a restricted row-polymorphism
// system; see Extensible Records with Scoped Labels (Leijen, 2005) for the
// general treatment of rows:
// https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
package catena
