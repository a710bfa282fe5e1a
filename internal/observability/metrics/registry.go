// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency. /api/news fans out to every
	// feed source, so buckets reach well past the per-source fetch timeout.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Feed metrics track upstream feed fetching
var (
	// FeedFetchDuration measures time to fetch and parse one feed source
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and parse a feed source",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"feed_url", "result"},
	)

	// FeedFetchErrors counts per-source fetch failures by error type
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch failures",
		},
		[]string{"feed_url", "error_type"},
	)
)

// Aggregation metrics track what each aggregation run produced
var (
	// AggregationRunsTotal counts aggregation runs
	AggregationRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregation_runs_total",
			Help: "Total number of aggregation runs",
		},
	)

	// AggregationDuration measures the wall time of a whole aggregation run
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Time taken by one aggregation run",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// NewsItemsTotal counts entries by what happened to them during aggregation
	NewsItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_items_total",
			Help: "Total number of feed entries processed, by outcome",
		},
		[]string{"outcome"}, // outcome: admitted, duplicate, skipped
	)

	// DateParseFallbacksTotal counts published dates that could not be parsed
	DateParseFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "date_parse_fallbacks_total",
			Help: "Total number of published dates replaced by the current time",
		},
	)

	// SourcesFailedLastRun reports how many sources failed in the latest run
	SourcesFailedLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aggregation_sources_failed",
			Help: "Number of feed sources that failed in the latest aggregation run",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// Rate limit metrics track inbound request throttling
var (
	// RateLimitRequestsTotal counts rate limit checks by result (allowed, denied)
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of rate limit checks",
		},
		[]string{"result"},
	)

	// RateLimitActiveKeys reports how many clients are currently tracked
	RateLimitActiveKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_active_keys",
			Help: "Number of client keys tracked by the rate limiter",
		},
	)
)
