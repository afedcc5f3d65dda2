/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package fp holds the small value types the combinator engine exposes:
// a two-branch Either, an Option, and a Pair.
package fp

// Either holds exactly one of a Left or a Right value
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

func (e Either[L, R]) IsLeft() bool  { return !e.isRight }
func (e Either[L, R]) IsRight() bool { return e.isRight }

// Left returns the left value, panicking if this is a Right
func (e Either[L, R]) Left() L {
	if e.isRight {
		panic("fp: Left called on a Right")
	}
	return e.left
}

// Right returns the right value, panicking if this is a Left
func (e Either[L, R]) Right() R {
	if !e.isRight {
		panic("fp: Right called on a Left")
	}
	return e.right
}

// Fold applies onLeft or onRight depending on which branch is held
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
