/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"github.com/dburkart/parsnip/pkg/common/parse"
	"github.com/dburkart/parsnip/pkg/fp"
)

// Result is the outcome of a single parse attempt: either a Success holding a
// value and the location after it, or a Failure holding an error. A Result is
// a Failure exactly when its error is non-nil.
type Result[A any] struct {
	value    A
	location parse.Location
	err      *parse.Error
}

func Success[A any](value A, location parse.Location) Result[A] {
	return Result[A]{value: value, location: location}
}

func Failure[A any](err *parse.Error) Result[A] {
	if err == nil {
		panic("combinator: Failure requires an error")
	}
	return Result[A]{err: err, location: err.Location}
}

func (r Result[A]) Ok() bool {
	return r.err == nil
}

// Value returns the parsed value, or the zero value for a Failure
func (r Result[A]) Value() A {
	return r.value
}

// Location returns the location after a Success, or the location of the
// mismatch for a Failure.
func (r Result[A]) Location() parse.Location {
	return r.location
}

func (r Result[A]) Err() *parse.Error {
	return r.err
}

// Get unpacks the Result into a value, location and error triple
func (r Result[A]) Get() (A, parse.Location, error) {
	if r.err != nil {
		var zero A
		return zero, r.location, r.err
	}
	return r.value, r.location, nil
}

// ToEither converts a Success into Right((value, location)) and a Failure
// into Left(error).
func (r Result[A]) ToEither() fp.Either[*parse.Error, fp.Pair[A, parse.Location]] {
	if r.err != nil {
		return fp.Left[*parse.Error, fp.Pair[A, parse.Location]](r.err)
	}
	return fp.Right[*parse.Error](fp.MakePair(r.value, r.location))
}

// MapResult transforms the value of a Success. A Failure passes through with
// its error and location untouched.
func MapResult[A, B any](r Result[A], f func(A) B) Result[B] {
	if r.err != nil {
		return propagate[B](r)
	}
	return Success(f(r.value), r.location)
}

// propagate re-types a Failure
func propagate[B, A any](r Result[A]) Result[B] {
	return Result[B]{err: r.err, location: r.location}
}
