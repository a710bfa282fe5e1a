// Package resilience provides fault tolerance patterns for calls to upstream
// feed servers.
//
// The circuitbreaker subpackage keeps one breaker per feed URL so that a feed
// which keeps failing is rejected fast instead of holding every aggregation
// run up until its fetch timeout. Requests are never retried within a run.
//
// Usage Example:
//
//	breakers := circuitbreaker.NewGroup(circuitbreaker.FeedFetchConfig())
//	result, err := breakers.Get(feedURL).Execute(func() (interface{}, error) {
//	    return fetch(ctx, feedURL)
//	})
package resilience
