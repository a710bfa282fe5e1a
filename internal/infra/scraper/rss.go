// Package scraper provides the feed fetcher used by the aggregator.
// It downloads RSS/Atom documents over HTTP and parses them with gofeed,
// guarded by a per-source circuit breaker and a shared rate limiter.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"market-news/internal/domain/entity"
	"market-news/internal/resilience/circuitbreaker"
	"market-news/internal/usecase/aggregate"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/sony/gobreaker"
)

// Config holds the RSSFetcher settings.
type Config struct {
	UserAgent   string
	MaxBodySize int64   // bytes; larger documents are rejected
	RateLimit   float64 // outbound requests per second, shared by all sources
	Burst       int
	Breaker     circuitbreaker.Config // template for the per-source breakers
}

// DefaultConfig returns the default fetcher settings.
func DefaultConfig() Config {
	return Config{
		UserAgent:   "MarketNewsBot/1.0",
		MaxBodySize: 5 * 1024 * 1024,
		RateLimit:   10,
		Burst:       5,
		Breaker:     circuitbreaker.FeedFetchConfig(),
	}
}

// RSSFetcher implements aggregate.FeedFetcher using the gofeed library.
// Each source URL gets its own circuit breaker. Requests are never retried.
type RSSFetcher struct {
	client   *http.Client
	cfg      Config
	breakers *circuitbreaker.Group
	limiter  *RateLimiter
}

var _ aggregate.FeedFetcher = (*RSSFetcher)(nil)

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// The client should not set its own timeout; the caller's context bounds each fetch.
func NewRSSFetcher(client *http.Client, cfg Config) *RSSFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &RSSFetcher{
		client:   client,
		cfg:      cfg,
		breakers: circuitbreaker.NewGroup(cfg.Breaker),
		limiter:  NewRateLimiter(cfg.RateLimit, cfg.Burst),
	}
}

// BreakerStates reports the breaker state per source URL that has been fetched.
func (f *RSSFetcher) BreakerStates() map[string]string {
	return f.breakers.States()
}

// Fetch retrieves and parses the RSS/Atom feed at feedURL.
// Errors wrap aggregate.ErrFeedFetchFailed or aggregate.ErrInvalidFeedFormat.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) (*entity.RawFeed, error) {
	// Local throttling is not a source failure, so it stays outside the breaker.
	if err := f.limiter.Allow(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", aggregate.ErrFeedFetchFailed, err)
	}

	cb := f.breakers.Get(feedURL)

	result, err := cb.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, feedURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("service", cb.Name()),
				slog.String("feed_url", feedURL),
				slog.String("state", cb.State().String()))
			return nil, fmt.Errorf("%w: %w", aggregate.ErrFeedFetchFailed, err)
		}
		return nil, err
	}

	return result.(*entity.RawFeed), nil
}

// doFetch performs the actual request and parse without the circuit breaker or limiter.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) (*entity.RawFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", aggregate.ErrFeedFetchFailed, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aggregate.ErrFeedFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{URL: feedURL, StatusCode: resp.StatusCode}
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aggregate.ErrInvalidFeedFormat, err)
	}

	return toRawFeed(feed), nil
}

func (f *RSSFetcher) readBody(r io.Reader) ([]byte, error) {
	if f.cfg.MaxBodySize <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", aggregate.ErrFeedFetchFailed, err)
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, f.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", aggregate.ErrFeedFetchFailed, err)
	}
	if int64(len(body)) > f.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", aggregate.ErrFeedFetchFailed, f.cfg.MaxBodySize)
	}
	return body, nil
}

func toRawFeed(feed *gofeed.Feed) *entity.RawFeed {
	raw := &entity.RawFeed{
		Title:   feed.Title,
		Entries: make([]entity.RawEntry, 0, len(feed.Items)),
	}
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		raw.Entries = append(raw.Entries, entity.RawEntry{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Published:   it.Published,
			MediaURLs:   mediaURLs(it.Extensions),
		})
	}
	return raw
}

// mediaURLs collects the url attribute of every media:content element.
// Direct children come first, then those nested in media:group. Order is
// kept within each of the two groups; gofeed's extension map does not keep
// the relative order between them.
func mediaURLs(exts ext.Extensions) []string {
	media, ok := exts["media"]
	if !ok {
		return nil
	}

	var urls []string
	for _, c := range media["content"] {
		if u := c.Attrs["url"]; u != "" {
			urls = append(urls, u)
		}
	}
	for _, g := range media["group"] {
		for _, c := range g.Children["content"] {
			if u := c.Attrs["url"]; u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}
