/*
 * Copyright (c) 2023, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"github.com/rs/zerolog"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

// Traced logs every attempt of p at trace level under the given rule name.
// Logging has no effect on the result.
func Traced[A any](p Parser[A], rule string, logger zerolog.Logger) Parser[A] {
	return func(loc parse.Location) Result[A] {
		if logger.GetLevel() > zerolog.TraceLevel || zerolog.GlobalLevel() > zerolog.TraceLevel {
			return p(loc)
		}

		logger.Trace().
			Str("rule", rule).
			Int("offset", loc.Offset).
			Int("line", loc.Line()).
			Int("column", loc.Column()).
			Msg("attempt")

		r := p(loc)
		if r.Ok() {
			logger.Trace().
				Str("rule", rule).
				Int("offset", loc.Offset).
				Int("consumed", r.location.Offset-loc.Offset).
				Msg("matched")
		} else {
			logger.Trace().
				Str("rule", rule).
				Int("offset", r.err.Location.Offset).
				Str("error", r.err.Message).
				Msg("failed")
		}

		return r
	}
}

// Trace is the method form of Traced
func (p Parser[A]) Trace(rule string, logger zerolog.Logger) Parser[A] {
	return Traced(p, rule, logger)
}
