package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"market-news/internal/domain/entity"
	"market-news/internal/observability/logging"
	"market-news/internal/observability/metrics"
	"market-news/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FeedFetcher retrieves and parses the feed document at url.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*entity.RawFeed, error)
}

// FetchResult is the outcome of fetching one source: either Feed or Err is set.
type FetchResult struct {
	Source   entity.FeedSource
	Feed     *entity.RawFeed
	Err      error
	Duration time.Duration
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil && r.Feed != nil
}

// Config controls an aggregation run.
type Config struct {
	Sources      []entity.FeedSource // ordered; earlier sources win title ties
	FetchTimeout time.Duration       // per source; zero disables
	Parallelism  int                 // concurrent fetches; zero or less means unbounded
}

// RunStats contains statistics about one aggregation run.
type RunStats struct {
	Sources       int
	FailedSources int
	Entries       int
	Admitted      int
	Duplicates    int
	Skipped       int
	DateFallbacks int
	Duration      time.Duration
}

// Service aggregates news items from many feed sources.
type Service struct {
	fetcher    FeedFetcher
	normalizer *Normalizer
	cfg        Config
}

// NewService creates an aggregation Service.
//
// Parameters:
//   - fetcher: fetches and parses a single feed
//   - normalizer: maps raw entries to NewsItems
//   - cfg: configured sources and fetch limits
func NewService(fetcher FeedFetcher, normalizer *Normalizer, cfg Config) *Service {
	return &Service{
		fetcher:    fetcher,
		normalizer: normalizer,
		cfg:        cfg,
	}
}

// Latest aggregates the configured sources and returns the items newest first.
// It never fails; sources that cannot be fetched contribute nothing.
func (s *Service) Latest(ctx context.Context) []entity.NewsItem {
	items, _ := s.Aggregate(ctx, s.cfg.Sources)
	SortNewestFirst(items)
	return items
}

// Aggregate fetches all sources concurrently and merges their entries.
//
// Every fetch completes (or times out) before assembly starts. Assembly walks
// sources in the given order and entries in document order, so the first
// occurrence of a title wins no matter which fetch finished first. Failed
// sources are logged and contribute no items. The returned slice is never nil.
func (s *Service) Aggregate(ctx context.Context, sources []entity.FeedSource) ([]entity.NewsItem, *RunStats) {
	ctx, span := tracing.GetTracer().Start(ctx, "aggregate.Run",
		trace.WithAttributes(attribute.Int("aggregate.sources", len(sources))))
	defer span.End()

	logger := logging.FromContext(ctx)
	start := time.Now()
	stats := &RunStats{Sources: len(sources)}

	results := s.fetchAll(ctx, sources)
	items := s.assemble(logger, results, stats)

	stats.Duration = time.Since(start)
	metrics.RecordAggregationRun(stats.Duration, stats.FailedSources)
	span.SetAttributes(
		attribute.Int("aggregate.failed_sources", stats.FailedSources),
		attribute.Int("aggregate.items", stats.Admitted),
	)

	logger.Info("aggregation run completed",
		slog.Int("sources", stats.Sources),
		slog.Int("failed_sources", stats.FailedSources),
		slog.Int("entries", stats.Entries),
		slog.Int("admitted", stats.Admitted),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("skipped", stats.Skipped),
		slog.Int("date_fallbacks", stats.DateFallbacks),
		slog.Duration("duration", stats.Duration),
	)

	return items, stats
}

// fetchAll runs one task per source and stores each result at the source's index.
// Tasks never return an error so a failing source cannot cancel its siblings.
func (s *Service) fetchAll(ctx context.Context, sources []entity.FeedSource) []FetchResult {
	results := make([]FetchResult, len(sources))

	var eg errgroup.Group
	if s.cfg.Parallelism > 0 {
		eg.SetLimit(s.cfg.Parallelism)
	}

	for i, src := range sources {
		eg.Go(func() error {
			results[i] = s.fetchOne(ctx, src)
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func (s *Service) fetchOne(ctx context.Context, src entity.FeedSource) FetchResult {
	ctx, span := tracing.GetTracer().Start(ctx, "aggregate.FetchSource",
		trace.WithAttributes(attribute.String("feed.url", src.String())))
	defer span.End()

	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	feed, err := s.fetcher.Fetch(ctx, src.String())
	if err == nil && feed == nil {
		err = fmt.Errorf("%w: no feed returned", ErrFeedFetchFailed)
	}
	duration := time.Since(start)
	metrics.RecordFeedFetch(src.String(), duration, err == nil)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return FetchResult{Source: src, Err: err, Duration: duration}
	}

	span.SetAttributes(attribute.Int("feed.entries", len(feed.Entries)))
	return FetchResult{Source: src, Feed: feed, Duration: duration}
}

func (s *Service) assemble(logger *slog.Logger, results []FetchResult, stats *RunStats) []entity.NewsItem {
	dedup := NewDeduplicator()
	items := make([]entity.NewsItem, 0)

	for _, res := range results {
		feedURL := res.Source.String()

		if !res.OK() {
			stats.FailedSources++
			metrics.RecordFeedFetchError(feedURL, classifyFetchError(res.Err))
			logger.Warn("failed to fetch feed",
				slog.String("feed_url", feedURL),
				slog.Any("error", res.Err),
				slog.Duration("duration", res.Duration))
			continue
		}

		for _, entry := range res.Feed.Entries {
			stats.Entries++

			// Invalid entries must not claim a title.
			if err := entry.Validate(); err != nil {
				stats.Skipped++
				metrics.RecordNewsItem(metrics.OutcomeSkipped)
				logger.Warn("skipping feed entry",
					slog.String("feed_url", feedURL),
					slog.String("title", entry.Title),
					slog.Any("error", err))
				continue
			}

			if !dedup.Admit(entry.Title) {
				stats.Duplicates++
				metrics.RecordNewsItem(metrics.OutcomeDuplicate)
				continue
			}

			item, fallback, err := s.normalizer.normalize(entry, res.Feed.Title)
			if err != nil {
				stats.Skipped++
				metrics.RecordNewsItem(metrics.OutcomeSkipped)
				logger.Warn("skipping feed entry",
					slog.String("feed_url", feedURL),
					slog.String("title", entry.Title),
					slog.Any("error", err))
				continue
			}
			if fallback {
				stats.DateFallbacks++
			}

			stats.Admitted++
			metrics.RecordNewsItem(metrics.OutcomeAdmitted)
			items = append(items, item)
		}
	}

	return items
}

// classifyFetchError maps a fetch error to the error_type metric label.
func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrInvalidFeedFormat):
		return "parse"
	case errors.Is(err, ErrFeedFetchFailed):
		return "fetch"
	default:
		return "unknown"
	}
}
