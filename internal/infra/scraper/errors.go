package scraper

import (
	"fmt"

	"market-news/internal/usecase/aggregate"
)

// HTTPStatusError is returned when a feed server answers with a non-2xx status.
// It unwraps to aggregate.ErrFeedFetchFailed.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d fetching %s", e.StatusCode, e.URL)
}

func (e *HTTPStatusError) Unwrap() error {
	return aggregate.ErrFeedFetchFailed
}
