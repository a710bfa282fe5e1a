package metrics

import "time"

// Outcome labels for NewsItemsTotal.
const (
	OutcomeAdmitted  = "admitted"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
)

// RecordFeedFetch records the duration of one feed fetch and whether it succeeded.
func RecordFeedFetch(feedURL string, duration time.Duration, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	FeedFetchDuration.WithLabelValues(feedURL, result).Observe(duration.Seconds())
}

// RecordFeedFetchError records a per-source fetch failure.
// errorType is a short classification such as "timeout", "http_status" or "parse".
func RecordFeedFetchError(feedURL, errorType string) {
	FeedFetchErrors.WithLabelValues(feedURL, errorType).Inc()
}

// RecordNewsItem records the outcome of a single entry during aggregation.
func RecordNewsItem(outcome string) {
	NewsItemsTotal.WithLabelValues(outcome).Inc()
}

// RecordDateParseFallback records a published date replaced by the current time.
func RecordDateParseFallback() {
	DateParseFallbacksTotal.Inc()
}

// RecordAggregationRun records a completed aggregation run.
func RecordAggregationRun(duration time.Duration, failedSources int) {
	AggregationRunsTotal.Inc()
	AggregationDuration.Observe(duration.Seconds())
	SourcesFailedLastRun.Set(float64(failedSources))
}

// RecordRateLimit records one inbound rate limit decision.
func RecordRateLimit(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

// SetRateLimitActiveKeys reports the number of tracked client keys.
func SetRateLimitActiveKeys(n int) {
	RateLimitActiveKeys.Set(float64(n))
}
