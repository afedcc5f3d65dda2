/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"math"

	"github.com/dburkart/parsnip/pkg/common/parse"
	"github.com/dburkart/parsnip/pkg/fp"
)

// Unbounded is the upper bound used by ZeroOrMore and OneOrMore
const Unbounded = math.MaxInt

// All quantifiers below thread the location through a loop rather than
// composing Map2 and Or, so the stack stays flat however many matches occur.

// Repeat matches p exactly n times. If any attempt fails, that attempt's
// error is the result.
func Repeat[A any](p Parser[A], n int) Parser[[]A] {
	return func(loc parse.Location) Result[[]A] {
		return repeat(p, n, loc)
	}
}

// AtMost matches p up to n times and never fails. It stops at the first
// failing attempt, at the location just before it.
func AtMost[A any](p Parser[A], n int) Parser[[]A] {
	return func(loc parse.Location) Result[[]A] {
		return atMost(p, n, loc, make([]A, 0, initialCap(n)))
	}
}

// Times matches p at least min and at most max times
func Times[A any](p Parser[A], min, max int) Parser[[]A] {
	if max < min {
		max = min
	}

	return func(loc parse.Location) Result[[]A] {
		r := repeat(p, min, loc)
		if !r.Ok() {
			return r
		}
		return atMost(p, remaining(min, max), r.location, r.value)
	}
}

func ZeroOrMore[A any](p Parser[A]) Parser[[]A] {
	return Times(p, 0, Unbounded)
}

func OneOrMore[A any](p Parser[A]) Parser[[]A] {
	return Times(p, 1, Unbounded)
}

// Optional never fails: it yields Some of p's value, or None without
// consuming input.
func Optional[A any](p Parser[A]) Parser[fp.Option[A]] {
	return Or(Map(p, fp.Some[A]), func() Parser[fp.Option[A]] {
		return Pure(fp.None[A]())
	})
}

// SepBy1 matches one p, followed by any number of delimiter and p pairs. The
// delimiter values are discarded. A trailing delimiter is left unconsumed.
func SepBy1[A, D any](p Parser[A], delimiter Parser[D]) Parser[[]A] {
	next := KeepRight(delimiter, p)

	return func(loc parse.Location) Result[[]A] {
		first := p(loc)
		if !first.Ok() {
			return propagate[[]A](first)
		}
		return atMost(next, Unbounded, first.location, append(make([]A, 0, initialCap(Unbounded)), first.value))
	}
}

// SepBy is SepBy1, or the empty list
func SepBy[A, D any](p Parser[A], delimiter Parser[D]) Parser[[]A] {
	return Or(SepBy1(p, delimiter), func() Parser[[]A] {
		return func(loc parse.Location) Result[[]A] {
			return Success([]A{}, loc)
		}
	})
}

func repeat[A any](p Parser[A], n int, loc parse.Location) Result[[]A] {
	acc := make([]A, 0, initialCap(n))

	for i := 0; i < n; i++ {
		r := p(loc)
		if !r.Ok() {
			return propagate[[]A](r)
		}
		acc = append(acc, r.value)
		loc = r.location
	}

	return Success(acc, loc)
}

// atMost appends up to n further matches of p to acc. When n is Unbounded the
// loop also ends after a match that consumed nothing, since every following
// attempt would match the same way.
func atMost[A any](p Parser[A], n int, loc parse.Location, acc []A) Result[[]A] {
	for i := 0; i < n; i++ {
		r := p(loc)
		if !r.Ok() {
			break
		}
		acc = append(acc, r.value)

		if n == Unbounded && r.location.Offset == loc.Offset {
			break
		}
		loc = r.location
	}

	return Success(acc, loc)
}

func remaining(min, max int) int {
	if max == Unbounded {
		return Unbounded
	}
	return max - min
}

func initialCap(n int) int {
	if n < 0 {
		return 0
	}
	if n > 16 {
		return 16
	}
	return n
}
