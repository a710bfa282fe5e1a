// Command feedcheck fetches every configured feed source once and reports
// which ones are healthy. It uses the same fetcher, limits and configuration
// as the API server, so a feed that passes here will aggregate.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-news/internal/config"
	"market-news/internal/infra/scraper"
	"market-news/internal/observability/logging"
	"market-news/internal/resilience/circuitbreaker"
	"market-news/internal/usecase/aggregate"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "feedcheck:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("feedcheck", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "write the report as JSON")
	strict := fs.Bool("strict", false, "exit non-zero when any feed is broken")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.NewLoggerTo(os.Stderr)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := &diagnoser{
		fetcher: scraper.NewRSSFetcher(&http.Client{}, scraper.Config{
			UserAgent:   cfg.Fetch.UserAgent,
			MaxBodySize: cfg.Fetch.MaxBodySize,
			RateLimit:   cfg.Fetch.RateLimit,
			Burst:       cfg.Fetch.Burst,
			Breaker:     circuitbreaker.FeedFetchConfig(),
		}),
		dates:   aggregate.NewDateParser(zeroClock{}),
		timeout: cfg.Fetch.Timeout,
	}

	logger.Info("checking feed sources", slog.Int("sources", len(cfg.Sources)))
	report := newReport(time.Now(), d.run(ctx, cfg.Sources))

	if *asJSON {
		err = writeJSON(stdout, report)
	} else {
		err = writeText(stdout, report)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if *strict && report.Broken > 0 {
		return fmt.Errorf("%d of %d feeds broken", report.Broken, report.Total)
	}
	return nil
}
