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

import "errors"

// Error kinds raised during unification and resolution. Errors returned from
// this package wrap one of these sentinels; discriminate with errors.Is.
var (
	// ErrArityMismatch: two vectors of different length were unified with no
	// row variable available to absorb the difference.
	ErrArityMismatch = errors.New("incompatible length vectors")

	// ErrKindMismatch: a scalar variable was unified against a row variable.
	ErrKindMismatch = errors.New("mismatched variable kinds")

	// ErrMalformedVector: a row variable occurred outside the last position
	// of a vector.
	ErrMalformedVector = errors.New("row variable not in last position")

	// ErrConstMismatch: two distinct ground types were proven equal.
	ErrConstMismatch = errors.New("mismatched type constants")

	// ErrInternal: an equivalence-store invariant was violated. Always a bug
	// in the engine, never a property of the input.
	ErrInternal = errors.New("internal inference error")
)
