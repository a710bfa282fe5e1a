package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"market-news/internal/config"
	"market-news/internal/infra/scraper"
	"market-news/internal/observability/logging"
	"market-news/internal/observability/tracing"
	"market-news/internal/resilience/circuitbreaker"
	"market-news/internal/usecase/aggregate"

	hhttp "market-news/internal/handler/http"
	"market-news/internal/handler/http/middleware"
	hnews "market-news/internal/handler/http/news"
	"market-news/internal/handler/http/requestid"
	"market-news/internal/observability/metrics"
	"market-news/pkg/ratelimit"

	_ "market-news/docs" // swagger docs
)

// @title           Market News API
// @version         1.0
// @description     Aggregates market overview RSS feeds into one deduplicated, newest-first news list.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.NewProvider()

	bgCtx, stopBackground := context.WithCancel(context.Background())
	handler := setupServer(bgCtx, logger, cfg)
	runErr := runServer(logger, cfg, handler)
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to shut down tracer provider", slog.Any("error", err))
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// initLogger initializes the process-wide structured logger from LOG_LEVEL and LOG_FORMAT.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// setupServer wires the aggregation pipeline and returns the HTTP handler with all routes and middleware.
// Background work started here stops when ctx is cancelled.
func setupServer(ctx context.Context, logger *slog.Logger, cfg config.Config) http.Handler {
	fetcher := scraper.NewRSSFetcher(newFeedHTTPClient(), scraper.Config{
		UserAgent:   cfg.Fetch.UserAgent,
		MaxBodySize: cfg.Fetch.MaxBodySize,
		RateLimit:   cfg.Fetch.RateLimit,
		Burst:       cfg.Fetch.Burst,
		Breaker:     circuitbreaker.FeedFetchConfig(),
	})

	normalizer := aggregate.NewNormalizer(aggregate.NewDateParser(aggregate.SystemClock{}))
	svc := aggregate.NewService(fetcher, normalizer, aggregate.Config{
		Sources:      cfg.Sources,
		FetchTimeout: cfg.Fetch.Timeout,
		Parallelism:  cfg.Fetch.Parallelism,
	})

	logger.Info("feed aggregation configured",
		slog.Int("sources", len(cfg.Sources)),
		slog.Duration("fetch_timeout", cfg.Fetch.Timeout),
		slog.Int("parallelism", cfg.Fetch.Parallelism),
		slog.Float64("rate_limit", cfg.Fetch.RateLimit),
		slog.Int("rate_burst", cfg.Fetch.Burst))

	var newsMiddleware []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled() {
		limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(cfg.RateLimit.MaxKeys),
			cfg.RateLimit.Limit, cfg.RateLimit.Window, nil)
		go limiter.StartCleanup(ctx, cfg.RateLimit.Window, metrics.SetRateLimitActiveKeys)
		newsMiddleware = append(newsMiddleware, middleware.RateLimit(limiter, logger))

		logger.Info("rate limiting enabled",
			slog.Int("limit", cfg.RateLimit.Limit),
			slog.Duration("window", cfg.RateLimit.Window),
			slog.Int("max_keys", cfg.RateLimit.MaxKeys))
	} else {
		logger.Warn("rate limiting disabled")
	}

	mux := setupRoutes(cfg, svc, fetcher, newsMiddleware...)
	return applyMiddleware(logger, cfg, mux)
}

// newFeedHTTPClient returns the client used for outbound feed requests.
// There is no client-wide timeout; each fetch is bounded by its context.
func newFeedHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4
	transport.ResponseHeaderTimeout = 15 * time.Second
	return &http.Client{Transport: transport}
}

// setupRoutes registers all HTTP routes.
func setupRoutes(cfg config.Config, svc *aggregate.Service, fetcher *scraper.RSSFetcher, newsMiddleware ...func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	hnews.Register(mux, svc, newsMiddleware...)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:  cfg.Version,
		Sources:  len(cfg.Sources),
		Breakers: fetcher,
	})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → CSP → Request ID → Tracing → Recovery → Logging → Metrics
func applyMiddleware(logger *slog.Logger, cfg config.Config, handler http.Handler) http.Handler {
	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	corsConfig.Logger = logger

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", cfg.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	mws := []func(http.Handler) http.Handler{middleware.CORS(corsConfig)}
	if cfg.CSP.Enabled {
		mws = append(mws, middleware.CSP(middleware.DefaultCSPConfig(cfg.CSP.ReportOnly)))
		logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSP.ReportOnly))
	}
	mws = append(mws,
		requestid.Middleware,
		tracing.NewMiddleware(hhttp.RouteLabel),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(handler, mws...)
}

// runServer starts the HTTP server and handles graceful shutdown.
// It returns the listener error if the server stopped on its own.
func runServer(logger *slog.Logger, cfg config.Config, handler http.Handler) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down server...")
	case runErr = <-serverErr:
		logger.Error("server failed", slog.Any("error", runErr))
	}

	// Give in-flight aggregations a chance to finish before cancelling them.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout+5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
	return runErr
}
