/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"strings"
	"testing"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

func TestMapResult(t *testing.T) {
	loc := parse.Location{Input: "abc", Offset: 2}

	r := MapResult(Success("ab", loc), strings.ToUpper)
	if !r.Ok() || r.Value() != "AB" || r.Location() != loc {
		t.Errorf("wanted Success(AB, 2), got %+v", r)
	}

	e := parse.NewError(loc, "boom")
	f := MapResult(MapResult(Failure[string](e), strings.ToUpper), func(s string) int { return len(s) })
	if f.Ok() {
		t.Fatalf("wanted failure to pass through map")
	}
	if f.Err() != e || f.Location() != loc {
		t.Errorf("wanted the original error and location, got %+v", f)
	}
}

func TestToEither(t *testing.T) {
	loc := parse.Location{Input: "abc", Offset: 1}

	right := Success("a", loc).ToEither()
	if !right.IsRight() {
		t.Fatalf("wanted Right for a success")
	}
	if p := right.Right(); p.First != "a" || p.Second != loc {
		t.Errorf("wanted (a, 1), got %+v", p)
	}

	e := parse.NewError(loc, "boom")
	left := Failure[string](e).ToEither()
	if !left.IsLeft() || left.Left() != e {
		t.Errorf("wanted Left(error), got %+v", left)
	}
}

func TestGet(t *testing.T) {
	loc := parse.Location{Input: "abc", Offset: 1}

	v, l, err := Success(7, loc).Get()
	if v != 7 || l != loc || err != nil {
		t.Errorf("wanted (7, 1, nil), got (%d, %v, %v)", v, l, err)
	}

	_, _, err = Failure[int](parse.NewError(loc, "boom")).Get()
	if err == nil {
		t.Errorf("wanted an error from a failure")
	}
}
