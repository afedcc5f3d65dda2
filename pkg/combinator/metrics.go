/*
 * Copyright (c) 2023, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package combinator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dburkart/parsnip/pkg/common/parse"
)

var (
	RuleLabel    = "rule"
	OutcomeLabel = "outcome"

	OutcomeMatched = "matched"
	OutcomeFailed  = "failed"
)

// Metrics collects per-rule attempt counts and consumed input sizes
type Metrics struct {
	Attempts *prometheus.CounterVec
	Consumed *prometheus.HistogramVec
}

// NewMetrics registers the parser collectors on reg. A nil reg uses a fresh
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)
	return &Metrics{
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parsnip_rule_attempts",
			Help: "Parse attempts per grammar rule, by outcome",
		}, []string{RuleLabel, OutcomeLabel}),
		Consumed: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parsnip_rule_consumed_bytes",
			Help:    "Bytes of input consumed by successful matches of a grammar rule",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{RuleLabel}),
	}
}

func (m *Metrics) observe(rule string, consumed int, ok bool) {
	if !ok {
		m.Attempts.With(prometheus.Labels{RuleLabel: rule, OutcomeLabel: OutcomeFailed}).Inc()
		return
	}

	m.Attempts.With(prometheus.Labels{RuleLabel: rule, OutcomeLabel: OutcomeMatched}).Inc()
	m.Consumed.With(prometheus.Labels{RuleLabel: rule}).Observe(float64(consumed))
}

// Instrument records every attempt of p in m under the given rule name
func Instrument[A any](p Parser[A], rule string, m *Metrics) Parser[A] {
	if m == nil {
		return p
	}

	return func(loc parse.Location) Result[A] {
		r := p(loc)
		m.observe(rule, r.location.Offset-loc.Offset, r.Ok())
		return r
	}
}
