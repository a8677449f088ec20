// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK = "ok"

	CandidateAccepted = "accepted"
	CandidateMissing  = "missing"
	CandidateMismatch = "mismatch"
)

// ParseTotal is the counter for parse attempts.
// Use RegisterMetrics to register this with a Prometheus registry.
var ParseTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "disguise_parse_total",
		Help: "Total number of disguise parse attempts",
	},
	[]string{"category", "result"},
)

// ParseDuration is the histogram for parse duration.
// Use RegisterMetrics to register this with a Prometheus registry.
var ParseDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "disguise_parse_duration_seconds",
		Help:    "Disguise parse duration in seconds",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	},
)

// OptionCandidates is the counter for setter candidates probed by the option loop.
// Use RegisterMetrics to register this with a Prometheus registry.
var OptionCandidates = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "disguise_option_candidates_total",
		Help: "Total number of option setter candidates probed",
	},
	[]string{"result"},
)

// RegisterMetrics registers parser metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ParseTotal)
	reg.MustRegister(ParseDuration)
	reg.MustRegister(OptionCandidates)
}

// RecordParse increments the parse counter.
// Parameters:
//   - category: canonical category name, empty when resolution failed
//   - err: the parse error, nil on success
func RecordParse(category string, err error) {
	if category == "" {
		category = "none"
	}
	result := ResultOK
	if err != nil {
		result = strings.ToLower(KindOf(err))
		if result == "" {
			result = "internal"
		}
	}
	ParseTotal.WithLabelValues(category, result).Inc()
}

// RecordParseDuration records how long a parse took.
func RecordParseDuration(d time.Duration) {
	ParseDuration.Observe(d.Seconds())
}

// RecordCandidate increments the candidate counter (use Candidate* constants).
func RecordCandidate(result string) {
	OptionCandidates.WithLabelValues(result).Inc()
}
