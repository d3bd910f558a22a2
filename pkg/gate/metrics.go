package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stepVerdictTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizgate_step_verdict_total",
			Help: "Total number of step evaluations by step and verdict",
		},
		[]string{"step", "verdict"},
	)

	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wizgate_evaluation_duration_seconds",
			Help:    "Duration of step and report evaluations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"}, // status or report
	)

	memoLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizgate_memo_lookups_total",
			Help: "Total number of memoized step evaluation lookups",
		},
		[]string{"result"}, // hit or miss
	)
)
