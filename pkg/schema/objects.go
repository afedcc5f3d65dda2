/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package schema

import (
	"fmt"
	"strings"
)

type Object interface {
	Validate([]byte) bool
	ToSchema() string
}

type (
	Type struct {
		Name string
	}

	Array struct {
		Length int
		Type   Type
	}

	Composite struct {
		Keys   []string
		Values []Object
	}
)

// typeSizes maps every known type to its encoded size. Variable-length types
// are stored as a 4 byte length prefix.
var typeSizes = map[string]int{
	"boolean": 1,
	"int8":    1,
	"uint8":   1,
	"int16":   2,
	"uint16":  2,
	"int32":   4,
	"uint32":  4,
	"int64":   8,
	"uint64":  8,
	"float32": 4,
	"float64": 8,
	"string":  4,
	"binary":  4,
}

func TypeFromString(input string) Object {
	if _, ok := typeSizes[input]; !ok {
		panic("unknown schema type")
	}
	return Type{Name: input}
}

func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t.ToSchema())), nil
}

func (t Type) Size() int {
	return typeSizes[t.Name]
}

// VariableLength reports whether values of t carry their own length
func (t Type) VariableLength() bool {
	return t.Name == "string" || t.Name == "binary"
}

func (t Type) Validate(val []byte) bool {
	if t.VariableLength() {
		return true
	}
	return len(val) == t.Size()
}

func (t Type) ToSchema() string {
	return t.Name
}

func (a Array) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, a.ToSchema())), nil
}

func (a Array) Size() int {
	return a.Length * a.Type.Size()
}

func (a Array) Validate(val []byte) bool {
	// string / binary is not allowed.
	if a.Type.VariableLength() {
		panic(fmt.Sprintf("invalid type found in array: %s", a.Type.Name))
	}

	return len(val) == a.Size()
}

func (a Array) ToSchema() string {
	return fmt.Sprintf("[%d]%s", a.Length, a.Type.ToSchema())
}

func (c Composite) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, c.ToSchema())), nil
}

func (c Composite) Validate(val []byte) bool {
	var size int
	hasString := false
	for _, v := range c.Values {
		switch o := v.(type) {
		case Type:
			hasString = hasString || o.VariableLength()
			size += o.Size()
		case Array:
			size += o.Size()
		}
	}

	if hasString {
		return len(val) >= size
	}
	return len(val) == size
}

func (c Composite) ToSchema() string {
	var schema strings.Builder

	schema.WriteString("{")
	for idx := range c.Keys {
		schema.WriteString(fmt.Sprintf(`'%s':%s,`, c.Keys[idx], c.Values[idx].ToSchema()))
	}
	schema.WriteString("}")

	return schema.String()
}
