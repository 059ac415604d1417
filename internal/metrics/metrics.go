package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Topic extraction outcomes
const (
	OutcomeOK               = "ok"
	OutcomeNoValidInput     = "no_valid_input"
	OutcomeInferenceFailure = "inference_failure"
	OutcomeCancelled        = "cancelled"
)

var (
	// TopicExtractionsTotal counts extraction calls by outcome
	TopicExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topic_extractions_total",
			Help: "Topic extraction calls by outcome",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration tracks the extract-then-score pipeline for one location
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "location_analysis_duration_seconds",
			Help:    "Time to build a location sentiment profile in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	ProfileCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_requests_total",
			Help: "Profile cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ProfilePublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_publish_errors_total",
			Help: "Location profiles that could not be published",
		},
	)
)
