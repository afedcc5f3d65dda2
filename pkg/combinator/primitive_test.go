/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"testing"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

func TestStr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   int
		expected string
		ok       bool
		message  string
	}{
		{"match at start", "hello world", 0, "hello", true, ""},
		{"match mid input", "hello world", 6, "world", true, ""},
		{"empty literal", "abc", 1, "", true, ""},
		{"mismatch", "hello", 0, "help", false, "Expected 'help' at 0, found 'hell'"},
		{"truncated at end", "ab", 1, "bcd", false, "Expected 'bcd' at 1, found 'b'"},
		{"at end of input", "ab", 2, "c", false, "Expected 'c' at 2, found ''"},
		{"multibyte found", "aéz", 0, "ab", false, "Expected 'ab' at 0, found 'aé'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loc := parse.Location{Input: tc.input, Offset: tc.offset}
			r := Str(tc.expected).Run(loc)

			if r.Ok() != tc.ok {
				t.Fatalf("wanted ok=%v, got %+v", tc.ok, r)
			}

			if tc.ok {
				if r.Value() != tc.expected {
					t.Errorf("wanted value '%s', got '%s'", tc.expected, r.Value())
				}
				if r.Location() != loc.Advance(len(tc.expected)) {
					t.Errorf("wanted location %d, got %d", tc.offset+len(tc.expected), r.Location().Offset)
				}
				return
			}

			if r.Err().Location != loc {
				t.Errorf("wanted failure at the invocation location, got %+v", r.Err().Location)
			}
			if r.Err().Message != tc.message {
				t.Errorf("wanted message '%s', got '%s'", tc.message, r.Err().Message)
			}
		})
	}
}

func TestRegex(t *testing.T) {
	digits := MustRegex(`[0-9]+`)

	t.Run("prefix match", func(t *testing.T) {
		r := digits.Parse("12ab")
		if !r.Ok() || r.Value() != "12" || r.Location().Offset != 2 {
			t.Errorf("wanted Success(12, 2), got %+v", r)
		}
	})

	t.Run("anchored at offset", func(t *testing.T) {
		r := digits.Run(parse.Location{Input: "12ab", Offset: 2})
		if r.Ok() {
			t.Fatalf("expected failure at offset 2, got %+v", r)
		}
		if r.Err().Location.Offset != 2 {
			t.Errorf("wanted failure at 2, got %d", r.Err().Location.Offset)
		}
		if r.Err().Message != "Expected pattern '[0-9]+' at 2 near 'ab'" {
			t.Errorf("unexpected message '%s'", r.Err().Message)
		}
	})

	t.Run("no scan ahead", func(t *testing.T) {
		if r := digits.Parse("ab12"); r.Ok() {
			t.Errorf("regex must not search past the current offset, got %+v", r)
		}
	})

	t.Run("mid input", func(t *testing.T) {
		r := digits.Run(parse.Location{Input: "ab12cd", Offset: 2})
		if !r.Ok() || r.Value() != "12" || r.Location().Offset != 4 {
			t.Errorf("wanted Success(12, 4), got %+v", r)
		}
	})

	t.Run("alternation inside pattern", func(t *testing.T) {
		r := MustRegex(`ab|c`).Run(parse.Location{Input: "xxc", Offset: 2})
		if !r.Ok() || r.Value() != "c" {
			t.Errorf("wanted Success(c), got %+v", r)
		}
	})

	t.Run("lookahead", func(t *testing.T) {
		p := MustRegex(`[a-z]+(?=!)`)
		if r := p.Parse("abc!"); !r.Ok() || r.Value() != "abc" || r.Location().Offset != 3 {
			t.Errorf("wanted Success(abc, 3), got %+v", r)
		}
		if r := p.Parse("abc?"); r.Ok() {
			t.Errorf("expected lookahead to reject, got %+v", r)
		}
	})

	t.Run("multibyte input", func(t *testing.T) {
		r := MustRegex(`[0-9]+`).Run(parse.Location{Input: "é42", Offset: 2})
		if !r.Ok() || r.Value() != "42" || r.Location().Offset != 4 {
			t.Errorf("wanted Success(42, 4), got %+v", r)
		}
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		input := "\xff1"
		r := MustRegex(`.`).Run(parse.NewLocation(input))
		if !r.Ok() || r.Value() != "\xff" || r.Location().Offset != 1 {
			t.Fatalf("wanted Success(\\xff, 1), got %+v", r)
		}
		if line, col := r.Location().Line(), r.Location().Column(); line != 1 || col != 2 {
			t.Errorf("wanted 1:2, got %d:%d", line, col)
		}

		r = MustRegex(`.+`).Run(parse.NewLocation(input))
		if !r.Ok() || r.Value() != input || r.Location().Offset != len(input) {
			t.Errorf("wanted the whole input consumed, got %+v", r)
		}
	})

	t.Run("offset inside a rune", func(t *testing.T) {
		if r := MustRegex(`.`).Run(parse.Location{Input: "é", Offset: 1}); r.Ok() {
			t.Errorf("expected failure inside a multibyte rune, got %+v", r)
		}
	})

	t.Run("alternating inputs", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if r := digits.Parse("123"); !r.Ok() || r.Value() != "123" {
				t.Fatalf("wanted Success(123), got %+v", r)
			}
			if r := digits.Run(parse.Location{Input: "ab9", Offset: 2}); !r.Ok() || r.Value() != "9" {
				t.Fatalf("wanted Success(9), got %+v", r)
			}
		}
	})

	t.Run("bad pattern", func(t *testing.T) {
		if _, err := Regex(`[0-9`); err == nil {
			t.Errorf("expected compile error")
		}
	})
}

func TestEOF(t *testing.T) {
	if r := EOF().Run(parse.Location{Input: "ab", Offset: 2}); !r.Ok() {
		t.Errorf("wanted EOF to match at end of input")
	}
	if r := EOF().Parse("ab"); r.Ok() {
		t.Errorf("wanted EOF to fail before end of input")
	}
}

func TestFail(t *testing.T) {
	r := Fail[int]("nope").Run(parse.Location{Input: "abc", Offset: 1})
	if r.Ok() || r.Err().Message != "nope" || r.Err().Location.Offset != 1 {
		t.Errorf("wanted failure 'nope' at 1, got %+v", r)
	}
}
