// Package observability groups the logging, metrics and tracing packages used
// by the aggregator.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
