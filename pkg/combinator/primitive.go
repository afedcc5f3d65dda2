/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

// Str matches the literal string expected at the current offset
func Str(expected string) Parser[string] {
	return func(loc parse.Location) Result[string] {
		if strings.HasPrefix(loc.Remaining(), expected) {
			return Success(expected, loc.Advance(len(expected)))
		}

		found := loc.Context(utf8.RuneCountInString(expected))

		return Failure[string](parse.NewError(loc,
			fmt.Sprintf("Expected '%s' at %d, found '%s'", expected, loc.Offset, found)))
	}
}

// Regex matches pattern against the input starting exactly at the current
// offset. The match is anchored: input further ahead is never searched.
//
// Patterns are compiled in RE2-compatible mode where possible, falling back
// to the full regexp2 syntax (lookaround, backreferences) otherwise.
func Regex(pattern string) (Parser[string], error) {
	anchored := `\G(?:` + pattern + `)`

	re, err := regexp2.Compile(anchored, regexp2.RE2)
	if err != nil {
		re, err = regexp2.Compile(anchored, regexp2.None)
		if err != nil {
			return nil, errors.Wrapf(err, "compiling pattern '%s'", pattern)
		}
	}

	return func(loc parse.Location) Result[string] {
		ri := indexRunes(loc.Input)
		start := ri.runeAt(loc.Offset)

		var m *regexp2.Match
		var err error
		if start >= 0 {
			m, err = re.FindRunesMatchStartingAt(ri.runes, start)
		}

		if err != nil || m == nil {
			return Failure[string](parse.NewError(loc, fmt.Sprintf("Expected pattern '%s' at %d near '%s'",
				pattern, loc.Offset, loc.Context(parse.ContextWidth))))
		}

		// Matches are counted in runes; map the end back to a byte offset in
		// the original input so invalid UTF-8 is never re-encoded.
		end := ri.offsets[start+m.Length]
		return Success(loc.Input[loc.Offset:end], loc.Advance(end-loc.Offset))
	}, nil
}

// runeIndex is an input decoded the way regexp2 decodes it, with the byte
// offset of every rune followed by the length of the input.
type runeIndex struct {
	input   string
	runes   []rune
	offsets []int
}

// lastIndex holds the most recently decoded input. A grammar runs many
// regex attempts over the same input, so one decode serves the whole run.
var lastIndex atomic.Pointer[runeIndex]

func indexRunes(input string) *runeIndex {
	if ri := lastIndex.Load(); ri != nil && ri.input == input {
		return ri
	}

	ri := &runeIndex{
		input:   input,
		runes:   make([]rune, 0, len(input)),
		offsets: make([]int, 0, len(input)+1),
	}
	for i, r := range input {
		ri.runes = append(ri.runes, r)
		ri.offsets = append(ri.offsets, i)
	}
	ri.offsets = append(ri.offsets, len(input))

	lastIndex.Store(ri)
	return ri
}

// runeAt returns the index of the rune starting at byte offset, or -1 when
// offset is out of range or inside a rune.
func (ri *runeIndex) runeAt(offset int) int {
	i := sort.SearchInts(ri.offsets, offset)
	if i == len(ri.offsets) || ri.offsets[i] != offset {
		return -1
	}
	return i
}

// MustRegex is like Regex but panics if the pattern does not compile
func MustRegex(pattern string) Parser[string] {
	p, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// EOF succeeds, consuming nothing, only at the end of input
func EOF() Parser[struct{}] {
	return func(loc parse.Location) Result[struct{}] {
		if loc.AtEOF() {
			return Success(struct{}{}, loc)
		}
		return Failure[struct{}](parse.NewError(loc,
			fmt.Sprintf("Expected end of input at %d near '%s'", loc.Offset, loc.Context(parse.ContextWidth))))
	}
}

// Fail always fails with message at the current location
func Fail[A any](message string) Parser[A] {
	return func(loc parse.Location) Result[A] {
		return Failure[A](parse.NewError(loc, message))
	}
}

// ParseAll runs p over the whole of input, requiring that all of it is
// consumed. The returned error is a *parse.Error.
func ParseAll[A any](p Parser[A], input string) (A, error) {
	r := KeepLeft(p, EOF()).Parse(input)
	if !r.Ok() {
		var zero A
		return zero, r.err
	}
	return r.value, nil
}
