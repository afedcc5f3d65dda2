/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
)

// ContextWidth is the number of characters of input quoted in failure messages
const ContextWidth = 10

// Error describes where and why a match failed
type Error struct {
	Location Location
	Message  string
}

func NewError(l Location, m string) *Error {
	return &Error{Location: l, Message: m}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// FormatError renders the line containing the failure with a caret beneath
// the offending column, followed by the message.
func (e *Error) FormatError() string {
	input := e.Location.Input
	offset := e.Location.Offset
	if offset > len(input) {
		offset = len(input)
	}

	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end == -1 {
		end = len(input)
	} else {
		end += offset
	}

	errorString := fmt.Sprintf("Syntax error on line %d:\n", e.Location.Line())
	errorString += input[start:end]
	errorString += fmt.Sprintf("\n%s^ ", strings.Repeat(" ", offset-start))
	errorString += fmt.Sprintf("%s\n", e.Message)
	return errorString
}
