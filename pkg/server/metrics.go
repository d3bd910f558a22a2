package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizgate_http_requests_total",
			Help: "Total number of HTTP requests by path, method and status code",
		},
		[]string{"path", "method", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wizgate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	rateLimitRejectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizgate_rate_limit_rejects_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
