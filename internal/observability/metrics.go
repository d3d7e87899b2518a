package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpaccess_http_requests_total",
			Help: "HTTP requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gpaccess_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SeedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpaccess_seed_rows_total",
			Help: "Mock-data rows processed by the bulk loader, by entity and result.",
		},
		[]string{"entity", "result"},
	)
)
