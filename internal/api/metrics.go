package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_analyses_total",
		Help: "Analysis requests by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	suggestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_suggestions_total",
		Help: "Suggestion requests by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_analysis_duration_seconds",
		Help:    "End-to-end analysis handler latency.",
		Buckets: prometheus.DefBuckets,
	})

	tasksAnalyzed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_tasks_per_analysis",
		Help:    "Task set size per analysis request.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
)
