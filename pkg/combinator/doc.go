/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package combinator implements a backtracking parser-combinator engine.
//
// A Parser is a pure function from a parse.Location to a Result. Grammars are
// assembled once from primitives (Str, Regex) and combinators (Map2, Or, the
// quantifiers) and may then be run any number of times, from any number of
// goroutines:
//
//	digit := MustRegex(`[0-9]`)
//	pair  := Map2(digit, KeepRight(Str(","), digit), func(a, b string) string {
//		return a + b
//	})
//
//	v, err := ParseAll(pair, "1,2")
//
// Alternation backtracks to the location it started from. Sequencing does
// not: once Map2 has consumed input for its left operand, a failure on the
// right is the result of the whole sequence.
//
// Repetition is always evaluated with an explicit loop, so repeating a parser
// many times does not grow the call stack.
package combinator
