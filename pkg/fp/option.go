/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package fp

// Option is a value that may be absent
type Option[A any] struct {
	value A
	ok    bool
}

func Some[A any](a A) Option[A] {
	return Option[A]{value: a, ok: true}
}

func None[A any]() Option[A] {
	return Option[A]{}
}

func (o Option[A]) IsSome() bool { return o.ok }
func (o Option[A]) IsNone() bool { return !o.ok }

// Get returns the held value. Calling Get on None is a programmer error.
func (o Option[A]) Get() A {
	if !o.ok {
		panic("fp: Get called on None")
	}
	return o.value
}

func (o Option[A]) GetOrElse(a A) A {
	if !o.ok {
		return a
	}
	return o.value
}
