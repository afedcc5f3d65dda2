/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/dburkart/parsnip/pkg/combinator"
	"github.com/dburkart/parsnip/pkg/common/parse"
	"github.com/dburkart/parsnip/pkg/fp"
)

// Parse parses a schema definition. Errors wrap a *parse.Error.
//
// Grammar:
//
//	schema    = type / array / composite
//	type      = "boolean" / "int8" / "uint8" / ... / "string" / "binary"
//	array     = "[" 1*DIGIT "]" type
//	composite = "{" [ entry *( "," entry ) [ "," ] ] "}"
//	entry     = key ":" ( type / array )
//	key       = DQUOTE 1*( ALPHA / DIGIT / "_" / "-" ) DQUOTE
func Parse(s string) (Object, error) {
	obj, err := combinator.ParseAll(grammar, strings.Trim(s, " \t\n"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}
	return obj, nil
}

var grammar = build()

func build() combinator.Parser[Object] {
	ws := combinator.MustRegex(`\s*`)
	token := func(s string) combinator.Parser[string] {
		return combinator.KeepLeft(combinator.Str(s), ws)
	}

	known := combinator.MustRegex(`(boolean|u?int(8|16|32|64)|float(32|64)|string|binary)\b`)
	unknown := combinator.FlatMap(combinator.MustRegex(`[A-Za-z_][A-Za-z0-9_]*`).Desc("type"), func(name string) combinator.Parser[string] {
		msg := fmt.Sprintf("Error: unknown type '%s'", name)
		if s := closestType(name); s != "" {
			msg += fmt.Sprintf(", did you mean '%s'?", s)
		}
		return combinator.Fail[string](msg)
	})

	dType := combinator.Map(
		combinator.KeepLeft(combinator.Or(known, func() combinator.Parser[string] { return unknown }), ws),
		func(name string) Type { return Type{Name: name} },
	)

	length := arrayLength(combinator.KeepLeft(combinator.MustRegex(`[0-9]+`), ws).Desc("array length"))

	array := fixedArray(combinator.Product(combinator.KeepLeft(length, token("]")), dType))

	// An opening bracket commits to an array so that its errors are reported
	// instead of a failed type match at the same offset.
	value := combinator.FlatMap(combinator.Optional(token("[")), func(open fp.Option[string]) combinator.Parser[Object] {
		if open.IsSome() {
			return combinator.Map(array, asObject[Array])
		}
		return combinator.Map(dType, asObject[Type])
	})

	key := combinator.Map(combinator.KeepLeft(combinator.MustRegex(`"[A-Za-z0-9_\-]+"|'[A-Za-z0-9_\-]+'`), ws).Desc("map key"), func(s string) string {
		return s[1 : len(s)-1]
	})

	entry := combinator.Product(combinator.KeepLeft(key, token(":")), value)

	entries := combinator.KeepLeft(combinator.SepBy(entry, token(",")), combinator.Optional(token(",")))

	composite := combinator.Map(combinator.KeepLeft(entries, token("}")), func(es []fp.Pair[string, Object]) Object {
		var c Composite
		for _, e := range es {
			var idx int
			c.Keys, idx = insertInto(c.Keys, e.First)
			c.Values = append(c.Values[:idx], append([]Object{e.Second}, c.Values[idx:]...)...)
		}
		return c
	})

	return combinator.FlatMap(combinator.Optional(token("{")), func(open fp.Option[string]) combinator.Parser[Object] {
		if open.IsSome() {
			return composite
		}
		return value
	})
}

// closestType returns the known type name nearest to name, or "" when
// nothing is within a couple of edits.
func closestType(name string) string {
	match := ""
	closest := maxSuggestionDistance + 1

	names := make([]string, 0, len(typeSizes))
	for n := range typeSizes {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		d := levenshtein.DistanceForStrings([]rune(strings.ToLower(name)), []rune(n), levenshtein.DefaultOptionsWithSub)
		if d < closest {
			closest = d
			match = n
		}
	}

	return match
}

const maxSuggestionDistance = 2

// arrayLength converts matched digits, failing at their start when they do
// not fit in an int
func arrayLength(p combinator.Parser[string]) combinator.Parser[int] {
	return func(loc parse.Location) combinator.Result[int] {
		r := p.Run(loc)
		if !r.Ok() {
			return combinator.Failure[int](r.Err())
		}

		n, err := strconv.Atoi(r.Value())
		if err != nil {
			return combinator.Failure[int](parse.NewError(loc, fmt.Sprintf("Error: invalid array length '%s'", r.Value())))
		}

		return combinator.Success(n, r.Location())
	}
}

// fixedArray rejects arrays of variable-length types
func fixedArray(p combinator.Parser[fp.Pair[int, Type]]) combinator.Parser[Array] {
	return func(loc parse.Location) combinator.Result[Array] {
		r := p.Run(loc)
		if !r.Ok() {
			return combinator.Failure[Array](r.Err())
		}

		a := Array{Length: r.Value().First, Type: r.Value().Second}
		if a.Type.VariableLength() {
			return combinator.Failure[Array](parse.NewError(loc, "Error: variable-length type '"+a.Type.Name+"' not valid in array"))
		}

		return combinator.Success(a, r.Location())
	}
}

func asObject[T Object](t T) Object {
	return t
}

// Insert a string into a list of strings (preserving order), returning the resulting index
func insertInto(list []string, key string) ([]string, int) {
	for idx, s := range list {
		if strings.Compare(key, s) <= 0 {
			return append(list[:idx], append([]string{key}, list[idx:]...)...), idx
		}
	}
	return append(list, key), len(list)
}
