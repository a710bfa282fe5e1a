// Package aggregate implements the news aggregation use case.
// It fetches every configured feed source concurrently, normalizes entries
// into NewsItems, drops repeated titles and orders the result newest first.
package aggregate

import "errors"

// Sentinel errors for aggregation operations.
var (
	// ErrFeedFetchFailed indicates that fetching a feed from the source URL failed.
	// This can occur due to network issues, timeouts, non-2xx responses or an open breaker.
	ErrFeedFetchFailed = errors.New("failed to fetch feed from source")

	// ErrInvalidFeedFormat indicates that the feed content could not be parsed.
	ErrInvalidFeedFormat = errors.New("invalid feed format")
)
