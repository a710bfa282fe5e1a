// Package middleware provides cross-cutting HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// Validator decides which origins may read responses.
	Validator OriginValidator

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: ["GET", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Default: 86400 (24 hours)
	MaxAge int

	// Logger receives rejected-origin warnings. Nil disables logging.
	Logger *slog.Logger
}

// DefaultCORSConfig returns a read-only API policy for the given origins.
// An origin of "*" allows any origin.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		Validator:      NewOriginValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If Origin header is empty, skip CORS processing (same-origin request)
//   - If Origin is not allowed, log warning and continue without CORS headers
//   - If any origin is allowed, respond with "Access-Control-Allow-Origin: *"
//   - Otherwise echo the allowed origin and add "Vary: Origin"
//   - Preflight OPTIONS requests are answered with 204 and not passed on
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("remote_addr", r.RemoteAddr))
				}
				next.ServeHTTP(w, r)
				return
			}

			if config.Validator.AllowsAny() {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
