// Package ratelimit provides framework-agnostic sliding window rate limiting.
//
// A Limiter counts requests per key (for example a client IP) inside a
// sliding time window backed by a Store. The in-memory store bounds the number
// of tracked keys with LRU eviction.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// Store holds per-key request timestamps. Implementations must be safe for
// concurrent use and CheckAndAdd must be atomic.
type Store interface {
	// CheckAndAdd counts timestamps after cutoff and records now when the
	// count is below limit. It returns the count after the call.
	CheckAndAdd(ctx context.Context, key string, now, cutoff time.Time, limit int) (allowed bool, count int, err error)

	// Cleanup removes timestamps at or before cutoff and drops empty keys.
	Cleanup(ctx context.Context, cutoff time.Time) (removed int, err error)

	// KeyCount returns the number of tracked keys.
	KeyCount(ctx context.Context) (int, error)
}

// Decision is the result of a rate limit check.
type Decision struct {
	Key        string
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RetryAfterSeconds returns the retry delay rounded up to whole seconds.
func (d *Decision) RetryAfterSeconds() int64 {
	if d.RetryAfter <= 0 {
		return 0
	}
	secs := int64(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		secs++
	}
	return secs
}

func (d *Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf("Decision{Allowed: true, Key: %s, Remaining: %d/%d}", d.Key, d.Remaining, d.Limit)
	}
	return fmt.Sprintf("Decision{Allowed: false, Key: %s, Limit: %d, RetryAfter: %s}", d.Key, d.Limit, d.RetryAfter)
}

// Limiter implements the sliding window algorithm.
//
// Clock skew protection: if the clock moves backwards for a key, the last
// seen timestamp for that key is used instead, so a clock change cannot
// reopen a full window.
type Limiter struct {
	store  Store
	clock  Clock
	limit  int
	window time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewLimiter creates a Limiter allowing limit requests per window and key.
func NewLimiter(store Store, limit int, window time.Duration, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Limiter{
		store:    store,
		clock:    clock,
		limit:    limit,
		window:   window,
		lastSeen: make(map[string]time.Time),
	}
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }

// Allow checks and records one request for key.
func (l *Limiter) Allow(ctx context.Context, key string) (*Decision, error) {
	now := l.validTimestamp(key)
	cutoff := now.Add(-l.window)
	resetAt := now.Add(l.window)

	allowed, count, err := l.store.CheckAndAdd(ctx, key, now, cutoff, l.limit)
	if err != nil {
		return nil, fmt.Errorf("check and add request: %w", err)
	}

	d := &Decision{
		Key:     key,
		Allowed: allowed,
		Limit:   l.limit,
		ResetAt: resetAt,
	}
	if allowed {
		d.Remaining = l.limit - count
		return d, nil
	}
	d.RetryAfter = resetAt.Sub(now)
	return d, nil
}

// Cleanup drops expired timestamps from the store and forgets clock skew
// tracking for keys not seen within the window.
func (l *Limiter) Cleanup(ctx context.Context) (int, error) {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	for key, ts := range l.lastSeen {
		if ts.Before(cutoff) {
			delete(l.lastSeen, key)
		}
	}
	l.mu.Unlock()

	return l.store.Cleanup(ctx, cutoff)
}

func (l *Limiter) validTimestamp(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if last, ok := l.lastSeen[key]; ok && now.Before(last) {
		slog.Warn("clock skew detected, using last valid timestamp",
			slog.String("key", key),
			slog.Time("now", now),
			slog.Time("last_seen", last),
			slog.Duration("skew", last.Sub(now)))
		return last
	}
	l.lastSeen[key] = now
	return now
}

// StartCleanup runs Cleanup every interval until ctx is cancelled.
// report, if set, receives the number of tracked keys after each pass.
func (l *Limiter) StartCleanup(ctx context.Context, interval time.Duration, report func(activeKeys int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := l.Cleanup(ctx)
			if err != nil {
				slog.Warn("rate limit cleanup failed", slog.Any("error", err))
				continue
			}
			slog.Debug("rate limit cleanup completed", slog.Int("removed", removed))
			if report != nil {
				if n, err := l.store.KeyCount(ctx); err == nil {
					report(n)
				}
			}
		}
	}
}
