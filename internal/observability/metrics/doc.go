// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Feed fetch metrics (duration, errors by type)
//   - Aggregation metrics (items, duplicates, skipped entries, date fallbacks)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "market-news/internal/observability/metrics"
//
//	start := time.Now()
//	feed, err := fetcher.Fetch(ctx, url)
//	metrics.RecordFeedFetch(url, time.Since(start), err == nil)
package metrics
