package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "market-news"

// GetTracer returns the application tracer from the current global provider.
// It is looked up on every call so providers installed after package init
// (tests, NewProvider) take effect.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// NewProvider installs a global SDK tracer provider and W3C trace-context
// propagator. Optional exporters receive finished spans synchronously.
// The returned function flushes and shuts the provider down.
func NewProvider(exporters ...sdktrace.SpanExporter) func(context.Context) error {
	opts := make([]sdktrace.TracerProviderOption, 0, len(exporters))
	for _, exp := range exporters {
		opts = append(opts, sdktrace.WithSyncer(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown
}
