package main

import (
	"context"
	"errors"
	"time"

	"market-news/internal/domain/entity"
	"market-news/internal/infra/scraper"
	"market-news/internal/usecase/aggregate"
)

// Diagnostic status values.
const (
	StatusOK         = "OK"
	StatusHTTPError  = "HTTP_ERROR"
	StatusParseError = "PARSE_ERROR"
	StatusEmpty      = "EMPTY"
	StatusTimeout    = "TIMEOUT"
	StatusFetchError = "FETCH_ERROR"
)

// FeedDiagnostic represents the diagnostic result for a single feed source.
type FeedDiagnostic struct {
	URL            string `json:"url"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	HTTPCode       int    `json:"http_code,omitempty"`
	ItemCount      int    `json:"item_count"`
	InvalidEntries int    `json:"invalid_entries"`
	WithImage      int    `json:"with_image"`
	DateFallbacks  int    `json:"date_fallbacks"`
	LatestDate     string `json:"latest_date,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ResponseTime   int64  `json:"response_time_ms"`
}

// Healthy reports whether the feed produced usable entries.
func (d FeedDiagnostic) Healthy() bool {
	return d.Status == StatusOK
}

// zeroClock makes a date parse failure observable as the zero time.
type zeroClock struct{}

func (zeroClock) Now() time.Time { return time.Time{} }

// diagnoser checks feed sources one at a time through the production fetcher.
type diagnoser struct {
	fetcher aggregate.FeedFetcher
	dates   *aggregate.DateParser
	timeout time.Duration
}

func (d *diagnoser) run(ctx context.Context, sources []entity.FeedSource) []FeedDiagnostic {
	out := make([]FeedDiagnostic, 0, len(sources))
	for _, src := range sources {
		out = append(out, d.check(ctx, src))
	}
	return out
}

func (d *diagnoser) check(ctx context.Context, src entity.FeedSource) FeedDiagnostic {
	diag := FeedDiagnostic{URL: src.String()}

	fetchCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	feed, err := d.fetcher.Fetch(fetchCtx, src.String())
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.Status = classify(err)
		diag.ErrorMessage = err.Error()
		var statusErr *scraper.HTTPStatusError
		if errors.As(err, &statusErr) {
			diag.HTTPCode = statusErr.StatusCode
		}
		return diag
	}

	diag.Title = feed.Title
	diag.ItemCount = len(feed.Entries)
	if diag.ItemCount == 0 {
		diag.Status = StatusEmpty
		diag.ErrorMessage = "feed has no items"
		return diag
	}

	var latest time.Time
	for _, e := range feed.Entries {
		if e.Validate() != nil {
			diag.InvalidEntries++
			continue
		}
		if len(e.MediaURLs) > 0 && e.MediaURLs[0] != "" {
			diag.WithImage++
		}
		t := d.dates.Parse(e.Published)
		if t.IsZero() {
			diag.DateFallbacks++
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.Format(time.RFC3339)
	}

	diag.Status = StatusOK
	return diag
}

func classify(err error) string {
	var statusErr *scraper.HTTPStatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.As(err, &statusErr):
		return StatusHTTPError
	case errors.Is(err, aggregate.ErrInvalidFeedFormat):
		return StatusParseError
	default:
		return StatusFetchError
	}
}
