// Package tracing provides OpenTelemetry tracing integration.
//
// NewProvider installs an SDK tracer provider so that spans carry real trace
// IDs, which the HTTP logging middleware writes next to each request. No
// exporter is configured by default; spans are sampled and dropped in-process
// unless an exporter is passed in.
//
//	shutdown := tracing.NewProvider()
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.GetTracer().Start(ctx, "aggregate")
//	defer span.End()
package tracing
