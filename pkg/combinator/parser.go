/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"fmt"
	"sync"

	"github.com/dburkart/parsnip/pkg/common/parse"
	"github.com/dburkart/parsnip/pkg/fp"
)

// Parser attempts to match something at a Location
type Parser[A any] func(loc parse.Location) Result[A]

// Run invokes the parser at the given location
func (p Parser[A]) Run(loc parse.Location) Result[A] {
	return p(loc)
}

// Parse runs the parser from the start of input. Trailing input is allowed;
// see ParseAll.
func (p Parser[A]) Parse(input string) Result[A] {
	return p(parse.NewLocation(input))
}

// MapError rewrites the error of a failed parse. Successes are untouched.
func (p Parser[A]) MapError(f func(*parse.Error) *parse.Error) Parser[A] {
	return func(loc parse.Location) Result[A] {
		r := p(loc)
		if r.Ok() {
			return r
		}
		return Failure[A](f(r.err))
	}
}

// Desc replaces the error of a failed parse with an expectation naming the
// rule, quoting the input found at the point of failure.
func (p Parser[A]) Desc(name string) Parser[A] {
	return p.MapError(func(e *parse.Error) *parse.Error {
		return parse.NewError(e.Location, fmt.Sprintf("Expected '%s' at %d near '%s'",
			name, e.Location.Offset, e.Location.Context(parse.ContextWidth)))
	})
}

// Map transforms the value of a successful parse
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(loc parse.Location) Result[B] {
		return MapResult(p(loc), f)
	}
}

// Pure always succeeds with a, consuming nothing
func Pure[A any](a A) Parser[A] {
	return func(loc parse.Location) Result[A] {
		return Success(a, loc)
	}
}

// Map2 runs pa, then pb from where pa stopped, and combines both values with
// f. The first failure is returned as is.
func Map2[A, B, C any](pa Parser[A], pb Parser[B], f func(A, B) C) Parser[C] {
	return func(loc parse.Location) Result[C] {
		ra := pa(loc)
		if !ra.Ok() {
			return propagate[C](ra)
		}

		rb := pb(ra.location)
		if !rb.Ok() {
			return propagate[C](rb)
		}

		return Success(f(ra.value, rb.value), rb.location)
	}
}

func Product[A, B any](pa Parser[A], pb Parser[B]) Parser[fp.Pair[A, B]] {
	return Map2(pa, pb, fp.MakePair[A, B])
}

// KeepLeft sequences pa and pb, keeping only the value of pa
func KeepLeft[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Map2(pa, pb, func(a A, _ B) A { return a })
}

// KeepRight sequences pa and pb, keeping only the value of pb
func KeepRight[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Map2(pa, pb, func(_ A, b B) B { return b })
}

func Between[O, A, C any](open Parser[O], p Parser[A], end Parser[C]) Parser[A] {
	return KeepLeft(KeepRight(open, p), end)
}

// FlatMap runs p and then the parser chosen from its value
func FlatMap[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(loc parse.Location) Result[B] {
		r := p(loc)
		if !r.Ok() {
			return propagate[B](r)
		}
		return f(r.value)(r.location)
	}
}

// Lazy defers construction of a parser until it is first run. Grammars that
// refer to themselves inside a sequence use it to break the cycle.
func Lazy[A any](f func() Parser[A]) Parser[A] {
	resolve := sync.OnceValue(f)
	return func(loc parse.Location) Result[A] {
		return resolve()(loc)
	}
}

// Slice runs p and returns the input it consumed instead of its value
func Slice[A any](p Parser[A]) Parser[string] {
	return func(loc parse.Location) Result[string] {
		r := p(loc)
		if !r.Ok() {
			return propagate[string](r)
		}
		return Success(loc.Input[loc.Offset:r.location.Offset], r.location)
	}
}
