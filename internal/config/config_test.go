package config

import (
	"strings"
	"testing"
	"time"

	"market-news/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "VERSION", "FEED_SOURCES", "FEED_FETCH_TIMEOUT",
		"FEED_FETCH_PARALLELISM", "FEED_MAX_BODY_SIZE", "FEED_USER_AGENT",
		"FEED_RATE_LIMIT", "FEED_RATE_BURST", "CORS_ALLOWED_ORIGINS",
		"API_RATE_LIMIT", "API_RATE_WINDOW", "API_RATE_MAX_KEYS",
		"CSP_ENABLED", "CSP_REPORT_ONLY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "dev", cfg.Version)
	require.Len(t, cfg.Sources, len(DefaultFeedSources))
	for i, src := range DefaultFeedSources {
		assert.Equal(t, entity.FeedSource(src), cfg.Sources[i])
	}
	assert.Equal(t, DefaultFetchConfig(), cfg.Fetch)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, RateLimitConfig{Limit: 60, Window: time.Minute, MaxKeys: 10000}, cfg.RateLimit)
	assert.True(t, cfg.RateLimit.Enabled())
	assert.Equal(t, CSPConfig{Enabled: true}, cfg.CSP)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("FEED_SOURCES", "https://a.example/rss, https://b.example/atom")
	t.Setenv("FEED_FETCH_TIMEOUT", "3s")
	t.Setenv("FEED_FETCH_PARALLELISM", "2")
	t.Setenv("FEED_RATE_LIMIT", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")
	t.Setenv("API_RATE_LIMIT", "0")
	t.Setenv("CSP_REPORT_ONLY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, []entity.FeedSource{"https://a.example/rss", "https://b.example/atom"}, cfg.Sources)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.Parallelism)
	assert.Equal(t, 0.5, cfg.Fetch.RateLimit)
	assert.Equal(t, []string{"https://app.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled())
	assert.True(t, cfg.CSP.ReportOnly)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("FEED_SOURCES", "https://ok.example/rss,ftp://bad.example/rss")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources[1]")
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := Config{
		Addr:    "",
		Sources: nil,
		Fetch: FetchConfig{
			Timeout:     0,
			Parallelism: 0,
			MaxBodySize: 10,
			RateLimit:   0,
			Burst:       0,
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"addr", "sources", "fetch timeout", "parallelism",
		"max body size", "rate limit", "rate burst", "allowed origins",
	} {
		assert.True(t, strings.Contains(msg, want), "expected %q in %q", want, msg)
	}
}

func TestFetchConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *FetchConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(f *FetchConfig) {}},
		{name: "timeout too short", mutate: func(f *FetchConfig) { f.Timeout = 100 * time.Millisecond }, wantErr: true},
		{name: "timeout too long", mutate: func(f *FetchConfig) { f.Timeout = time.Hour }, wantErr: true},
		{name: "parallelism too high", mutate: func(f *FetchConfig) { f.Parallelism = 100 }, wantErr: true},
		{name: "body too large", mutate: func(f *FetchConfig) { f.MaxBodySize = 1 << 30 }, wantErr: true},
		{name: "negative rate", mutate: func(f *FetchConfig) { f.RateLimit = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFetchConfig()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RateLimitConfig
		wantErr bool
	}{
		{name: "enabled", cfg: RateLimitConfig{Limit: 10, Window: time.Minute, MaxKeys: 100}},
		{name: "disabled ignores window", cfg: RateLimitConfig{Limit: 0}},
		{name: "negative limit", cfg: RateLimitConfig{Limit: -1}, wantErr: true},
		{name: "window too short", cfg: RateLimitConfig{Limit: 10, Window: time.Millisecond, MaxKeys: 100}, wantErr: true},
		{name: "no keys", cfg: RateLimitConfig{Limit: 10, Window: time.Minute}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
