// Package config loads the aggregator's runtime configuration from the
// environment into an immutable Config value injected at startup.
package config

import (
	"errors"
	"fmt"
	"time"

	"market-news/internal/domain/entity"
	pkgconfig "market-news/pkg/config"
)

// DefaultFeedSources is the compiled-in list of market overview feeds used
// when FEED_SOURCES is not set.
var DefaultFeedSources = []string{
	"https://vn.investing.com/rss/market_overview_Fundamental.rss",
	"https://vn.investing.com/rss/market_overview_Technical.rss",
	"https://vn.investing.com/rss/market_overview_Opinion.rss",
	"https://vn.investing.com/rss/market_overview_investing_ideas.rss",
}

// Config holds the whole runtime configuration of the API process.
type Config struct {
	// Addr is the listen address of the HTTP server.
	// Default: ":8080"
	Addr string

	// Version is reported by the health endpoint.
	// Default: "dev"
	Version string

	// Sources is the ordered list of feeds aggregated on every request.
	// Order matters: earlier sources win title ties during deduplication.
	Sources []entity.FeedSource

	// Fetch controls how each source is fetched.
	Fetch FetchConfig

	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	// Default: ["*"]
	AllowedOrigins []string

	// RateLimit throttles inbound /api/news requests per client IP.
	RateLimit RateLimitConfig

	// CSP controls the Content-Security-Policy header.
	CSP CSPConfig
}

// CSPConfig holds the Content-Security-Policy settings.
type CSPConfig struct {
	// Default: true
	Enabled bool

	// ReportOnly sends the policy without enforcing it.
	// Default: false
	ReportOnly bool
}

// RateLimitConfig holds the inbound per-client rate limit settings.
// Every /api/news request fetches every source, so this also bounds the
// load the server puts on the upstream feeds.
type RateLimitConfig struct {
	// Limit is the number of requests allowed per client within Window.
	// Zero disables rate limiting.
	// Default: 60
	Limit int

	// Window is the sliding window duration.
	// Default: 1m
	Window time.Duration

	// MaxKeys bounds the number of tracked clients.
	// Default: 10000
	MaxKeys int
}

// Enabled reports whether inbound rate limiting is active.
func (r RateLimitConfig) Enabled() bool {
	return r.Limit > 0
}

// Validate checks the rate limit settings. A disabled limiter is always valid.
func (r RateLimitConfig) Validate() error {
	if !r.Enabled() {
		if r.Limit < 0 {
			return fmt.Errorf("api rate limit must not be negative, got %d", r.Limit)
		}
		return nil
	}

	var errs []error
	if err := pkgconfig.ValidateDurationRange(r.Window, time.Second, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("api rate window: %w", err))
	}
	if r.MaxKeys < 1 {
		errs = append(errs, fmt.Errorf("api rate max keys must be at least 1, got %d", r.MaxKeys))
	}
	return errors.Join(errs...)
}

// FetchConfig holds the per-source fetch settings.
type FetchConfig struct {
	// Timeout bounds a single source fetch. A timeout is a per-source failure.
	// Default: 10s
	Timeout time.Duration

	// Parallelism is the maximum number of sources fetched at once.
	// Default: 4
	Parallelism int

	// MaxBodySize caps the feed document size in bytes.
	// Default: 5MiB
	MaxBodySize int64

	// UserAgent is sent with every feed request.
	UserAgent string

	// RateLimit is the sustained outbound request rate (requests per second)
	// shared by all sources. Burst is the bucket size.
	// Defaults: 10 req/s, burst 5
	RateLimit float64
	Burst     int
}

// DefaultFetchConfig returns the default fetch settings.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:     10 * time.Second,
		Parallelism: 4,
		MaxBodySize: 5 * 1024 * 1024,
		UserAgent:   "MarketNewsBot/1.0",
		RateLimit:   10,
		Burst:       5,
	}
}

// Load reads the configuration from environment variables and validates it.
//
// Environment variables:
//   - HTTP_ADDR: listen address (default: ":8080")
//   - VERSION: application version (default: "dev")
//   - FEED_SOURCES: comma-separated feed URLs (default: DefaultFeedSources)
//   - FEED_FETCH_TIMEOUT: duration, e.g. "10s"
//   - FEED_FETCH_PARALLELISM: integer
//   - FEED_MAX_BODY_SIZE: integer in bytes
//   - FEED_USER_AGENT: string
//   - FEED_RATE_LIMIT: float, requests per second
//   - FEED_RATE_BURST: integer
//   - CORS_ALLOWED_ORIGINS: comma-separated origins (default: "*")
//   - API_RATE_LIMIT: requests per client and window, 0 disables (default: 60)
//   - API_RATE_WINDOW: duration (default: "1m")
//   - API_RATE_MAX_KEYS: integer (default: 10000)
//   - CSP_ENABLED: bool (default: true)
//   - CSP_REPORT_ONLY: bool (default: false)
func Load() (Config, error) {
	def := DefaultFetchConfig()

	rawSources := pkgconfig.GetEnvStringList("FEED_SOURCES", DefaultFeedSources)
	sources := make([]entity.FeedSource, 0, len(rawSources))
	for _, s := range rawSources {
		sources = append(sources, entity.FeedSource(s))
	}

	cfg := Config{
		Addr:    pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version: pkgconfig.GetEnvString("VERSION", "dev"),
		Sources: sources,
		Fetch: FetchConfig{
			Timeout:     pkgconfig.GetEnvDuration("FEED_FETCH_TIMEOUT", def.Timeout),
			Parallelism: pkgconfig.GetEnvInt("FEED_FETCH_PARALLELISM", def.Parallelism),
			MaxBodySize: int64(pkgconfig.GetEnvInt("FEED_MAX_BODY_SIZE", int(def.MaxBodySize))),
			UserAgent:   pkgconfig.GetEnvString("FEED_USER_AGENT", def.UserAgent),
			RateLimit:   pkgconfig.GetEnvFloat("FEED_RATE_LIMIT", def.RateLimit),
			Burst:       pkgconfig.GetEnvInt("FEED_RATE_BURST", def.Burst),
		},
		AllowedOrigins: pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimit: RateLimitConfig{
			Limit:   pkgconfig.GetEnvInt("API_RATE_LIMIT", 60),
			Window:  pkgconfig.GetEnvDuration("API_RATE_WINDOW", time.Minute),
			MaxKeys: pkgconfig.GetEnvInt("API_RATE_MAX_KEYS", 10000),
		},
		CSP: CSPConfig{
			Enabled:    pkgconfig.GetEnvBool("CSP_ENABLED", true),
			ReportOnly: pkgconfig.GetEnvBool("CSP_REPORT_ONLY", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and returns all problems joined together.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr: must not be empty"))
	}

	if len(c.Sources) == 0 {
		errs = append(errs, errors.New("sources: at least one feed source is required"))
	}
	for i, src := range c.Sources {
		if err := entity.ValidateFeedURL(src.String()); err != nil {
			errs = append(errs, fmt.Errorf("sources[%d] %q: %w", i, src, err))
		}
	}

	if err := c.Fetch.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("allowed origins: at least one origin is required"))
	}

	if err := c.RateLimit.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the fetch settings.
//
// Validation rules:
//   - Timeout: between 1s and 2m
//   - Parallelism: 1-32
//   - MaxBodySize: 1KB-100MB
//   - RateLimit: > 0
//   - Burst: >= 1
func (f FetchConfig) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateDurationRange(f.Timeout, time.Second, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("fetch timeout: %w", err))
	}

	if f.Parallelism < 1 || f.Parallelism > 32 {
		errs = append(errs, fmt.Errorf("fetch parallelism must be between 1 and 32, got %d", f.Parallelism))
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if f.MaxBodySize < minBodySize || f.MaxBodySize > maxBodySize {
		errs = append(errs, fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, f.MaxBodySize))
	}

	if f.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("rate limit must be positive, got %v", f.RateLimit))
	}

	if f.Burst < 1 {
		errs = append(errs, fmt.Errorf("rate burst must be at least 1, got %d", f.Burst))
	}

	return errors.Join(errs...)
}
