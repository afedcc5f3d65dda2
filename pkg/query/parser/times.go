/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var numberFormats = [...]string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC822,
	time.RFC822Z,
	time.Layout,
	"2006/01/02",
	"02/01/2006",
}

var letterFormats = [...]string{
	"Jan 02, 2006",
	time.RFC850,
	time.UnixDate,
	time.RFC1123,
	time.RFC1123Z,
	time.Stamp,
}

// ParseVagueDateTime parses some against a list of common timestamp layouts,
// returning the first that matches.
func ParseVagueDateTime(some string) (time.Time, error) {
	first, _ := utf8.DecodeRuneInString(some)

	formats := letterFormats[:]
	if unicode.IsDigit(first) {
		formats = numberFormats[:]
	}

	for _, theFmt := range formats {
		tm, err := time.Parse(theFmt, some)
		if err == nil {
			return tm, nil
		}
	}

	return time.Time{}, errors.Errorf("Specified time '%s' did not match a known timestamp", some)
}
