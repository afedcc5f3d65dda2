/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

// Walk traverses node depth first, calling v.Visit for each node and
// v.Visit(nil) once a node's children are done.
func Walk(v Visitor, node ASTNode) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *QueryNode:
		Walk(v, n.Quantifier)

		if n.Topic != nil {
			Walk(v, n.Topic)
		}

		if n.TimePredicate != nil {
			Walk(v, n.TimePredicate)
		}

	case *QuantifierNode:
		if n.TimeQuantity != nil {
			Walk(v, n.TimeQuantity)
		}

	case *TopicSelectorNode:
		// Skip, leaf node

	case *TimePredicateNode:
		Walk(v, n.Begin)

		if n.End != nil {
			Walk(v, n.End)
		}

	case *TimeExpressionNode:
		Walk(v, n.Whence)

		if n.Quantity != nil {
			Walk(v, n.Quantity)
		}

	case *BinaryOpNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *TimeWhenceNode, *TimespanNode, *NumberNode:
		// Skip, leaf nodes

	default:
		panic("Unexpected ASTNode passed to Walk")
	}

	v.Visit(nil)
}
