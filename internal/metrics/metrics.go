package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// ListTotal counts list queries by resource and cache outcome
	// (hit, miss, off).
	ListTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_list_queries_total",
			Help: "Total number of list queries served",
		},
		[]string{"resource", "cache"},
	)
	// IgnoredParams counts query parameters dropped by the field whitelist.
	IgnoredParams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_list_ignored_params_total",
			Help: "Query parameters ignored because they name non-whitelisted fields or unknown operators",
		},
		[]string{"resource"},
	)
	// ShapeDuration measures the in-memory filter, order and paginate pass.
	ShapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_list_shape_duration_seconds",
			Help:    "Time spent shaping list results",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"resource"},
	)
)
