/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"fmt"
	"time"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

type ASTNode interface {
	Value() string
}

type Visitor interface {
	Visit(ASTNode) Visitor
}

type Numeric interface {
	DerivedValue() int64
}

type (
	// BaseNode holds the text a node was parsed from and where it started
	BaseNode struct {
		Lexeme   string
		Location parse.Location
	}

	QueryNode struct {
		BaseNode
		Input         string
		Quantifier    ASTNode
		Topic         ASTNode
		TimePredicate ASTNode
	}

	QuantifierNode struct {
		BaseNode
		TimeQuantity ASTNode
	}

	TopicSelectorNode struct {
		BaseNode
		Topic string
	}

	TimePredicateNode struct {
		BaseNode
		Begin ASTNode
		End   ASTNode
	}

	TimeExpressionNode struct {
		BaseNode
		Whence   ASTNode
		Quantity ASTNode
	}

	TimeWhenceNode struct {
		BaseNode
		Now  bool
		When time.Time
	}

	BinaryOpNode struct {
		BaseNode
		Left  ASTNode
		Right ASTNode
	}

	TimespanNode struct {
		BaseNode
	}

	NumberNode struct {
		BaseNode
		Val int64
	}
)

// -- BaseNode

func (b *BaseNode) Value() string {
	return b.Lexeme
}

//-- QueryNode

func (q *QueryNode) Value() string {
	return q.Input
}

//-- TopicSelectorNode

func (t *TopicSelectorNode) Value() string {
	return "in"
}

//-- TimeExpressionNode

// Time resolves the expression, using now for "~now"
func (t *TimeExpressionNode) Time(now time.Time) time.Time {
	tm := t.Whence.(*TimeWhenceNode).Time(now)

	switch t.Lexeme {
	case "-":
		rh := t.Quantity.(Numeric)
		return tm.Add(time.Duration(rh.DerivedValue() * -1))
	case "+":
		rh := t.Quantity.(Numeric)
		return tm.Add(time.Duration(rh.DerivedValue()))
	}

	return tm
}

//-- TimeWhenceNode

func (t *TimeWhenceNode) Time(now time.Time) time.Time {
	if t.Now {
		return now
	}
	return t.When
}

//-- BinaryOpNode

func (b *BinaryOpNode) DerivedValue() int64 {
	lh, rh := b.Left.(Numeric), b.Right.(Numeric)

	switch b.Value() {
	case "*":
		return lh.DerivedValue() * rh.DerivedValue()
	case "-":
		return lh.DerivedValue() - rh.DerivedValue()
	case "+":
		return lh.DerivedValue() + rh.DerivedValue()
	}

	panic(fmt.Sprintf("Unknown operator '%s'", b.Value()))
}

//-- TimespanNode

func (t *TimespanNode) DerivedValue() int64 {
	switch t.Value() {
	case "@year":
		return int64(time.Hour * 24 * 365)
	case "@month":
		return int64(time.Hour * 24 * 30)
	case "@week":
		return int64(time.Hour * 24 * 7)
	case "@day":
		return int64(time.Hour * 24)
	case "@hour":
		return int64(time.Hour)
	case "@minute":
		return int64(time.Minute)
	case "@second":
		return int64(time.Second)
	}
	return 0
}

//-- NumberNode

func (n *NumberNode) DerivedValue() int64 {
	return n.Val
}
