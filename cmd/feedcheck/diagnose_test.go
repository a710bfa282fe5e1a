package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-news/internal/domain/entity"
	"market-news/internal/infra/scraper"
	"market-news/internal/usecase/aggregate"
)

type fakeFetcher struct {
	feeds map[string]*entity.RawFeed
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*entity.RawFeed, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.feeds[url], nil
}

func newTestDiagnoser(f aggregate.FeedFetcher) *diagnoser {
	return &diagnoser{
		fetcher: f,
		dates:   aggregate.NewDateParser(zeroClock{}),
		timeout: time.Second,
	}
}

func TestDiagnoser_Run(t *testing.T) {
	fetcher := &fakeFetcher{
		feeds: map[string]*entity.RawFeed{
			"https://ok.example.com/rss": {
				Title: "OK Feed",
				Entries: []entity.RawEntry{
					{Title: "a", Link: "l", Description: "d", Published: "Mon, 01 Jan 2024 10:00:00 GMT", MediaURLs: []string{"https://img/1.jpg"}},
					{Title: "b", Link: "l", Description: "d", Published: "Tue, 02 Jan 2024 10:00:00 GMT"},
					{Title: "c", Link: "l", Description: "d", Published: "yesterday"},
					{Title: "", Link: "l", Description: "d", Published: "Tue, 02 Jan 2024 10:00:00 GMT"},
				},
			},
			"https://empty.example.com/rss": {Title: "Empty"},
		},
		errs: map[string]error{
			"https://status.example.com/rss":  &scraper.HTTPStatusError{URL: "https://status.example.com/rss", StatusCode: 404},
			"https://parse.example.com/rss":   fmt.Errorf("%w: bad xml", aggregate.ErrInvalidFeedFormat),
			"https://timeout.example.com/rss": fmt.Errorf("%w: %w", aggregate.ErrFeedFetchFailed, context.DeadlineExceeded),
			"https://down.example.com/rss":    fmt.Errorf("%w: connection refused", aggregate.ErrFeedFetchFailed),
		},
	}

	sources := []entity.FeedSource{
		"https://ok.example.com/rss",
		"https://empty.example.com/rss",
		"https://status.example.com/rss",
		"https://parse.example.com/rss",
		"https://timeout.example.com/rss",
		"https://down.example.com/rss",
	}

	got := newTestDiagnoser(fetcher).run(context.Background(), sources)
	require.Len(t, got, len(sources))

	ok := got[0]
	assert.Equal(t, StatusOK, ok.Status)
	assert.Equal(t, "OK Feed", ok.Title)
	assert.Equal(t, 4, ok.ItemCount)
	assert.Equal(t, 1, ok.InvalidEntries)
	assert.Equal(t, 1, ok.WithImage)
	assert.Equal(t, 1, ok.DateFallbacks)
	assert.Equal(t, "2024-01-02T10:00:00Z", ok.LatestDate)

	assert.Equal(t, StatusEmpty, got[1].Status)

	assert.Equal(t, StatusHTTPError, got[2].Status)
	assert.Equal(t, 404, got[2].HTTPCode)

	assert.Equal(t, StatusParseError, got[3].Status)
	assert.Equal(t, StatusTimeout, got[4].Status)
	assert.Equal(t, StatusFetchError, got[5].Status)
	assert.NotEmpty(t, got[5].ErrorMessage)
}

func TestReport(t *testing.T) {
	feeds := []FeedDiagnostic{
		{URL: "https://a.example.com/rss", Title: "A", Status: StatusOK, ItemCount: 3},
		{URL: "https://b.example.com/rss", Status: StatusHTTPError, HTTPCode: 500, ErrorMessage: "boom"},
	}
	r := newReport(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), feeds)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 1, r.Healthy)
	assert.Equal(t, 1, r.Broken)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeText(&buf, r))
		out := buf.String()
		assert.Contains(t, out, "Total Sources: 2")
		assert.Contains(t, out, "Working: 1 (50.0%)")
		assert.Contains(t, out, "HTTP_ERROR: 1")
		assert.Contains(t, out, "Status: HTTP_ERROR | HTTP: 500")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeJSON(&buf, r))
		var decoded Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, r.Feeds, decoded.Feeds)
		assert.Equal(t, 1, decoded.Broken)
	})
}

func TestPercent_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, percent(0, 0))
}
