package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_generation_requests_total",
			Help: "Text generation calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	AnswersServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_answers_total",
			Help: "Question answers by source (model or search)",
		},
		[]string{"source"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthsnap_search_requests_total",
			Help: "Fallback web search calls by outcome",
		},
		[]string{"outcome"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "healthsnap_operation_duration_seconds",
			Help:    "Duration of summarize, answer and transcribe operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"

	SourceModel  = "model"
	SourceSearch = "search"
)
