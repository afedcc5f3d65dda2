/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location is a cursor into an immutable input string. Offsets are byte
// offsets into Input.
type Location struct {
	Input  string
	Offset int
}

func NewLocation(input string) Location {
	return Location{Input: input}
}

// Advance returns a new Location moved forward by the given number of bytes.
// No clamping is performed; primitives only advance over input they matched.
func (l Location) Advance(by int) Location {
	return Location{Input: l.Input, Offset: l.Offset + by}
}

// Line returns the 1-indexed line of the offset
func (l Location) Line() int {
	return 1 + strings.Count(l.Input[:l.Offset], "\n")
}

// Column returns the 1-indexed column of the offset
func (l Location) Column() int {
	idx := strings.LastIndexByte(l.Input[:l.Offset], '\n')
	if idx == -1 {
		return l.Offset + 1
	}
	return l.Offset - idx
}

// Remaining returns the unconsumed input
func (l Location) Remaining() string {
	if l.Offset >= len(l.Input) {
		return ""
	}
	return l.Input[l.Offset:]
}

// AtEOF reports whether the whole input has been consumed
func (l Location) AtEOF() bool {
	return l.Offset >= len(l.Input)
}

// Context returns up to n characters of input starting at the offset. It never
// splits a multi-byte rune.
func (l Location) Context(n int) string {
	rest := l.Remaining()

	pos := 0
	for i := 0; i < n && pos < len(rest); i++ {
		_, width := utf8.DecodeRuneInString(rest[pos:])
		pos += width
	}

	return rest[:pos]
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line(), l.Column())
}
