/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dburkart/parsnip/internal/config"
	"github.com/dburkart/parsnip/pkg/combinator"
	"github.com/dburkart/parsnip/pkg/common/parse"
	"github.com/dburkart/parsnip/pkg/fp"
	"github.com/dburkart/parsnip/pkg/query/ast"
)

// Parser parses fossil query headers. The grammar is built once by New and
// a Parser may be used from many goroutines.
type Parser struct {
	Logger  zerolog.Logger
	Metrics *combinator.Metrics

	query combinator.Parser[*ast.QueryNode]
}

func New(logger zerolog.Logger, metrics *combinator.Metrics) *Parser {
	p := &Parser{Logger: logger, Metrics: metrics}
	p.query = p.grammar()
	return p
}

var defaultParser = sync.OnceValue(func() *Parser {
	v := config.Default()

	var metrics *combinator.Metrics
	if v.GetBool(config.KeyMetrics) {
		metrics = combinator.NewMetrics(prometheus.DefaultRegisterer)
	}

	return New(config.Logger(v), metrics)
})

// Parse parses input with a Parser configured from the parsnip settings
func Parse(input string) (*ast.QueryNode, error) {
	return defaultParser().Parse(input)
}

// Parse parses a whole query. Leading and trailing whitespace is ignored; any
// other unconsumed input is an error. Errors wrap a *parse.Error.
func (p *Parser) Parse(input string) (*ast.QueryNode, error) {
	input = strings.Trim(input, " \t\n")

	q, err := combinator.ParseAll(p.query, input)
	if err != nil {
		p.Logger.Debug().Err(err).Str("query", input).Msg("query rejected")
		return nil, errors.Wrap(err, "invalid query")
	}

	q.Input = input
	q.Location = parse.NewLocation(input)
	return q, nil
}

// FormatError renders a query error with a caret under the failing column
func FormatError(err error) string {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.FormatError()
	}
	return err.Error()
}

// grammar builds the query parser
//
// Grammar:
//
//	query           = quantifier [ topic-selector ] [ time-predicate ]
//	quantifier      = "all" / "sample" "(" time-quantity ")"
//	topic-selector  = "in" topic
//	topic           = "/" *( ALPHA / DIGIT / "/" / "_" / "-" )
//	time-predicate  = ( "since" time-expression ) / ( "before" time-expression ) /
//	                ( "between" time-expression "," time-expression )
//	time-expression = time-whence [ ( "-" / "+" ) time-quantity ]
//	time-whence     = "~now" / "~(" date-time ")"
//	time-quantity   = time-term *( ( "-" / "+" ) time-term )
//	time-term       = time-atom *( "*" time-atom )
//	time-atom       = "(" time-quantity ")" / integer / timespan
func (p *Parser) grammar() combinator.Parser[*ast.QueryNode] {
	var timeQuantity combinator.Parser[ast.ASTNode]

	number := convert(lexeme(`[0-9]+`), func(s string, loc parse.Location) (ast.ASTNode, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Errorf("'%s' is not a valid integer", s)
		}
		return &ast.NumberNode{BaseNode: ast.BaseNode{Lexeme: s, Location: loc}, Val: n}, nil
	})

	timespan := at(lexeme(`@(year|month|week|day|hour|minute|second)\b`), func(s string, loc parse.Location) ast.ASTNode {
		return &ast.TimespanNode{BaseNode: ast.BaseNode{Lexeme: s, Location: loc}}
	})

	// A parenthesised quantity commits once "(" has been seen
	timeAtom := rule(p, "time-atom", combinator.FlatMap(combinator.Optional(token("(")), func(open fp.Option[string]) combinator.Parser[ast.ASTNode] {
		if open.IsSome() {
			return combinator.KeepLeft(combinator.Lazy(func() combinator.Parser[ast.ASTNode] { return timeQuantity }), token(")"))
		}
		return combinator.Or(number, func() combinator.Parser[ast.ASTNode] { return timespan }).Desc("number or timespan")
	}))

	timeTerm := rule(p, "time-term", combinator.Map2(timeAtom, combinator.ZeroOrMore(combinator.Product(operator("*"), timeAtom)), foldBinary))

	additive := operator("-", "+")
	timeQuantity = rule(p, "time-quantity", combinator.Map2(timeTerm, combinator.ZeroOrMore(combinator.Product(additive, timeTerm)), foldBinary))

	now := at(keyword("~now"), func(s string, loc parse.Location) ast.ASTNode {
		return &ast.TimeWhenceNode{BaseNode: ast.BaseNode{Lexeme: s, Location: loc}, Now: true}
	})

	dated := convert(lexeme(`~\([^)]*\)`).Desc("time-whence"), func(s string, loc parse.Location) (ast.ASTNode, error) {
		when, err := ParseVagueDateTime(strings.TrimSpace(s[2 : len(s)-1]))
		if err != nil {
			return nil, err
		}
		return &ast.TimeWhenceNode{BaseNode: ast.BaseNode{Lexeme: s, Location: loc}, When: when}, nil
	})

	timeWhence := rule(p, "time-whence", combinator.Or(now, func() combinator.Parser[ast.ASTNode] { return dated }))

	shift := combinator.FlatMap(combinator.Optional(additive), func(op fp.Option[ast.BaseNode]) combinator.Parser[fp.Pair[ast.BaseNode, ast.ASTNode]] {
		if op.IsNone() {
			return combinator.Pure(fp.Pair[ast.BaseNode, ast.ASTNode]{})
		}
		return combinator.Map(timeQuantity, func(q ast.ASTNode) fp.Pair[ast.BaseNode, ast.ASTNode] {
			return fp.MakePair(op.Get(), q)
		})
	})

	timeExpression := rule(p, "time-expression", combinator.Map2(timeWhence, shift, func(w ast.ASTNode, s fp.Pair[ast.BaseNode, ast.ASTNode]) ast.ASTNode {
		return &ast.TimeExpressionNode{BaseNode: s.First, Whence: w, Quantity: s.Second}
	}))

	specifier := at(combinator.Choice(keyword("since"), keyword("before"), keyword("between")), base)

	timePredicate := rule(p, "time-predicate", combinator.FlatMap(combinator.Optional(specifier), func(spec fp.Option[ast.BaseNode]) combinator.Parser[ast.ASTNode] {
		if spec.IsNone() {
			return combinator.Pure[ast.ASTNode](nil)
		}

		s := spec.Get()
		if s.Lexeme == "between" {
			return combinator.Map2(combinator.KeepLeft(timeExpression, token(",")), timeExpression, func(b, e ast.ASTNode) ast.ASTNode {
				return &ast.TimePredicateNode{BaseNode: s, Begin: b, End: e}
			})
		}

		return combinator.Map(timeExpression, func(b ast.ASTNode) ast.ASTNode {
			return &ast.TimePredicateNode{BaseNode: s, Begin: b}
		})
	}))

	topic := lexeme(`/[A-Za-z0-9/_\-]*`).Desc("topic")

	topicSelector := rule(p, "topic-selector", combinator.FlatMap(combinator.Optional(at(keyword("in"), base)), func(in fp.Option[ast.BaseNode]) combinator.Parser[ast.ASTNode] {
		if in.IsNone() {
			return combinator.Pure[ast.ASTNode](nil)
		}
		return combinator.Map(topic, func(t string) ast.ASTNode {
			return &ast.TopicSelectorNode{BaseNode: in.Get(), Topic: t}
		})
	}))

	quantifierKeyword := at(combinator.Or(keyword("all"), func() combinator.Parser[string] { return keyword("sample") }).Desc("quantifier"), base)

	quantifier := rule(p, "quantifier", combinator.FlatMap(quantifierKeyword, func(q ast.BaseNode) combinator.Parser[ast.ASTNode] {
		if q.Lexeme == "all" {
			return combinator.Pure[ast.ASTNode](&ast.QuantifierNode{BaseNode: q})
		}
		return combinator.Map(combinator.Between(token("("), timeQuantity, token(")")), func(tq ast.ASTNode) ast.ASTNode {
			return &ast.QuantifierNode{BaseNode: q, TimeQuantity: tq}
		})
	}))

	query := combinator.Map2(quantifier, combinator.Product(topicSelector, timePredicate), func(q ast.ASTNode, rest fp.Pair[ast.ASTNode, ast.ASTNode]) *ast.QueryNode {
		return &ast.QueryNode{Quantifier: q, Topic: rest.First, TimePredicate: rest.Second}
	})

	return rule(p, "query", combinator.KeepRight(whitespace, query))
}

var whitespace = combinator.Slice(combinator.ZeroOrMore(combinator.Choice(combinator.Str(" "), combinator.Str("\t"), combinator.Str("\n"))))

func token(s string) combinator.Parser[string] {
	return combinator.KeepLeft(combinator.Str(s), whitespace)
}

// keyword matches a whole word, so "all" does not match the start of "allow"
func keyword(k string) combinator.Parser[string] {
	return lexeme(k + `\b`)
}

func lexeme(pattern string) combinator.Parser[string] {
	return combinator.KeepLeft(combinator.MustRegex(pattern), whitespace)
}

// operator matches one of ops, keeping the operator and where it was found
func operator(ops ...string) combinator.Parser[ast.BaseNode] {
	choices := make([]combinator.Parser[string], 0, len(ops))
	for _, op := range ops {
		choices = append(choices, token(op))
	}
	return at(combinator.Choice(choices...), base)
}

func base(s string, loc parse.Location) ast.BaseNode {
	return ast.BaseNode{Lexeme: s, Location: loc}
}

// foldBinary folds a left-associative chain of operations into BinaryOpNodes
func foldBinary(first ast.ASTNode, rest []fp.Pair[ast.BaseNode, ast.ASTNode]) ast.ASTNode {
	node := first
	for _, r := range rest {
		node = &ast.BinaryOpNode{BaseNode: r.First, Left: node, Right: r.Second}
	}
	return node
}

func rule[A any](p *Parser, name string, r combinator.Parser[A]) combinator.Parser[A] {
	return combinator.Instrument(combinator.Traced(r, name, p.Logger), name, p.Metrics)
}

// at hands f the location the match started at
func at[A, B any](p combinator.Parser[A], f func(A, parse.Location) B) combinator.Parser[B] {
	return convert(p, func(a A, loc parse.Location) (B, error) {
		return f(a, loc), nil
	})
}

// convert is like at, but f may reject the match. The failure is reported at
// the start of the match.
func convert[A, B any](p combinator.Parser[A], f func(A, parse.Location) (B, error)) combinator.Parser[B] {
	return func(loc parse.Location) combinator.Result[B] {
		r := p.Run(loc)
		if !r.Ok() {
			return combinator.Failure[B](r.Err())
		}

		b, err := f(r.Value(), loc)
		if err != nil {
			return combinator.Failure[B](parse.NewError(loc, fmt.Sprintf("Error: %s", err)))
		}

		return combinator.Success(b, r.Location())
	}
}
