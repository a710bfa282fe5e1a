package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"market-news/internal/handler/http/responsewriter"
	"market-news/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// knownRoutes are recorded under their own path label; anything else is "other"
// so that scanners cannot explode label cardinality.
var knownRoutes = map[string]struct{}{
	"/":         {},
	"/api/news": {},
	"/health":   {},
	"/live":     {},
	"/metrics":  {},
}

// RouteLabel maps a request path onto a bounded set of route names.
func RouteLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/"
	}
	return "other"
}

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// The middleware tracks:
// - In-flight requests (gauge incremented/decremented per request)
// - Request duration
// - Response size
// - Status code distribution
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			RouteLabel(r.URL.Path),
			strconv.Itoa(rw.StatusCode()),
			time.Since(start),
			rw.BytesWritten(),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
