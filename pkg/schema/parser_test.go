/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

func TestParseType(t *testing.T) {
	for _, input := range []string{"int32", "uint32", "string", "float32", "boolean", " binary "} {
		obj, err := Parse(input)
		if err != nil {
			t.Errorf("wanted '%s' to parse: %v", input, err)
			continue
		}
		if obj.ToSchema() != strings.TrimSpace(input) {
			t.Errorf("wanted schema '%s', got '%s'", input, obj.ToSchema())
		}
	}

	for _, input := range []string{"bogus", "int", "int32x", ""} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected '%s' to fail", input)
		}
	}
}

func TestParseArray(t *testing.T) {
	obj, err := Parse("[2]int32")
	if err != nil {
		t.Fatal(err)
	}

	a, ok := obj.(Array)
	if !ok || a.Length != 2 || a.Type.Name != "int32" {
		t.Errorf("wanted [2]int32, got %#v", obj)
	}

	for _, input := range []string{"[]int32", "[foo]int32", "[2]", "[2]bogus"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected '%s' to fail", input)
		}
	}
}

func TestParseVariableLengthArray(t *testing.T) {
	_, err := Parse("[2]string")
	if err == nil {
		t.Fatal("expected variable-length array to fail")
	}

	if _, ok := errors.Cause(err).(*parse.Error); !ok {
		t.Errorf("wanted a *parse.Error cause, got %T", errors.Cause(err))
	}
}

func TestParseArrayLengthOverflow(t *testing.T) {
	_, err := Parse("[99999999999999999999]int32")
	perr, ok := errors.Cause(err).(*parse.Error)
	if !ok {
		t.Fatalf("wanted a *parse.Error, got %v", err)
	}

	if perr.Location.Offset != 1 {
		t.Errorf("wanted failure at 1, got %d", perr.Location.Offset)
	}
	if perr.Message != "Error: invalid array length '99999999999999999999'" {
		t.Errorf("unexpected message %q", perr.Message)
	}
}

func slicesEqualStr(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if strings.Compare(v, b[i]) != 0 {
			return false
		}
	}
	return true
}

func slicesEqualObj(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if strings.Compare(v.ToSchema(), b[i].ToSchema()) != 0 {
			return false
		}
	}
	return true
}

func TestParseShallowMap(t *testing.T) {
	obj, err := Parse(`{ "x": int32, "y": int32, }`)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := obj.(Composite); !ok {
		t.Fatalf("wanted a Composite, got %T", obj)
	}

	obj, err = Parse(`{ "event": string, "coords": [2]int32 }`)
	if err != nil {
		t.Fatal(err)
	}

	c, ok := obj.(Composite)
	if !ok {
		t.Fatalf("wanted a Composite, got %T", obj)
	}

	if !slicesEqualStr(c.Keys, []string{"coords", "event"}) {
		t.Errorf("%v", c.Keys)
	}

	if !slicesEqualObj(c.Values, []Object{Array{2, Type{"int32"}}, Type{"string"}}) {
		t.Errorf("%v", c.Values)
	}

	if c.ToSchema() != `{'coords':[2]int32,'event':string,}` {
		t.Errorf("unexpected schema %s", c.ToSchema())
	}

	for _, input := range []string{`{ "key": foo, }`, `{ "key" int32 }`, `{ key: int32 }`, `{ "a": int32,, }`, `{ "a": int32`} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected '%s' to fail", input)
		}
	}
}

func TestParseEmptyMap(t *testing.T) {
	obj, err := Parse("{}")
	if err != nil {
		t.Fatal(err)
	}
	if c := obj.(Composite); len(c.Keys) != 0 {
		t.Errorf("wanted no keys, got %v", c.Keys)
	}
}

func TestCompositeValidate(t *testing.T) {
	obj, err := Parse(`{ 'a': int16, 'b': [3]uint8 }`)
	if err != nil {
		t.Fatal(err)
	}

	if !obj.Validate(make([]byte, 5)) {
		t.Errorf("wanted 5 bytes to validate")
	}
	if obj.Validate(make([]byte, 4)) {
		t.Errorf("wanted 4 bytes to be rejected")
	}
}

func TestParseSuggestion(t *testing.T) {
	tt := []struct {
		input   string
		message string
	}{
		{"int", "Error: unknown type 'int', did you mean 'int8'?"},
		{"[4]flot64", "Error: unknown type 'flot64', did you mean 'float64'?"},
		{"bogus", "Error: unknown type 'bogus'"},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			_, err := Parse(tc.input)
			perr, ok := errors.Cause(err).(*parse.Error)
			if !ok {
				t.Fatalf("wanted a *parse.Error, got %v", err)
			}
			if perr.Message != tc.message {
				t.Errorf("wanted message %q, got %q", tc.message, perr.Message)
			}
		})
	}
}
