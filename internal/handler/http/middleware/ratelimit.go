package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"market-news/internal/handler/http/respond"
	"market-news/internal/observability/metrics"
	"market-news/pkg/ratelimit"
)

// errRateLimited is the client-facing message for a denied request.
var errRateLimited = errors.New("rate limit exceeded, retry later")

// RateLimit returns middleware enforcing a per-client-IP sliding window.
//
// Response headers:
//   - X-RateLimit-Limit: maximum requests in the window
//   - X-RateLimit-Remaining: requests left in the current window
//   - X-RateLimit-Reset: unix time the window resets
//   - Retry-After: seconds to wait (denied requests only)
//
// A limiter failure or an unreadable client address lets the request through.
func RateLimit(limiter *ratelimit.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, err := ClientIP(r)
			if err != nil {
				logger.Warn("rate limiter: failed to extract client IP, allowing request",
					slog.String("remote_addr", r.RemoteAddr),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				logger.Error("rate limiter: check failed, allowing request",
					slog.String("ip", ip),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}
			metrics.RecordRateLimit(decision.Allowed)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				h.Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds(), 10))
				logger.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
					slog.Int("limit", decision.Limit))
				respond.Error(w, http.StatusTooManyRequests, errRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the IP part of r.RemoteAddr. Forwarding headers are not
// trusted since they can be set by any client.
func ClientIP(r *http.Request) (string, error) {
	addr := r.RemoteAddr
	if addr == "" {
		return "", errors.New("empty remote address")
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// no port
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", err
	}
	if net.ParseIP(host) == nil {
		return "", errors.New("invalid ip " + host)
	}
	return host, nil
}
