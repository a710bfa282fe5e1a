package tracing

import (
	"net/http"

	"market-news/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Middleware creates OpenTelemetry tracing middleware for HTTP handlers.
// It extracts trace context from incoming requests, creates a new span,
// and propagates the trace ID in response headers.
//
// The middleware:
//   - Extracts trace context from incoming request headers (W3C Trace Context format)
//   - Creates a new server span for the request
//   - Adds trace ID to response headers (X-Trace-Id)
//   - Records HTTP method, path, and status code as span attributes
//   - Automatically ends the span when the request completes
//
// The span is named after the method alone. Use NewMiddleware to add a route.
func Middleware(next http.Handler) http.Handler {
	return NewMiddleware(nil)(next)
}

// NewMiddleware is Middleware with spans named "<method> <route(path)>".
// route must map paths onto a bounded set of names; the raw path is kept
// only as the http.path attribute. A nil route names spans by method only.
func NewMiddleware(route func(path string) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return serve(route, next)
	}
}

func serve(route func(path string) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(
			r.Context(),
			propagation.HeaderCarrier(r.Header),
		)

		name := r.Method
		if route != nil {
			name += " " + route(r.URL.Path)
		}

		ctx, span := GetTracer().Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		// Add trace ID to response headers for client-side correlation
		w.Header().Set("X-Trace-Id", span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		span.SetAttributes(
			attribute.Int("http.status_code", rw.StatusCode()),
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
		)

		if rw.StatusCode() >= 500 {
			span.SetAttributes(attribute.Bool("error", true))
		}
	})
}
