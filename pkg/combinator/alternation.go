/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"sync"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

// Or runs pa, and if it fails runs the parser returned by pb from the same
// location pa started at. pb is only called on that failure path, and at most
// once, so a rule may name itself on the right hand side.
func Or[A any](pa Parser[A], pb func() Parser[A]) Parser[A] {
	resolve := sync.OnceValue(pb)
	return func(loc parse.Location) Result[A] {
		if r := pa(loc); r.Ok() {
			return r
		}
		return resolve()(loc)
	}
}

// Or is the method form of Or
func (p Parser[A]) Or(pb func() Parser[A]) Parser[A] {
	return Or(p, pb)
}

// Choice tries each parser in order from the same location, returning the
// first success or, if all fail, the failure of the last.
func Choice[A any](ps ...Parser[A]) Parser[A] {
	if len(ps) == 0 {
		return Fail[A]("no alternatives")
	}

	return func(loc parse.Location) Result[A] {
		var r Result[A]
		for _, p := range ps {
			if r = p(loc); r.Ok() {
				return r
			}
		}
		return r
	}
}
