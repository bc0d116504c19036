// Package tracing installs the OpenTelemetry tracer provider and the W3C
// propagator. Spans are not exported; they exist so that every log line of a
// request carries the caller's trace_id and span_id.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Propagator reads and writes traceparent, tracestate and baggage headers.
func Propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// NewProvider builds a provider that samples according to the parent span
// and always samples root spans.
func NewProvider(service, version string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", service),
			attribute.String("service.version", version),
		)),
	)
}

// Setup registers a new provider and Propagator globally and returns the
// provider's shutdown.
func Setup(service, version string) (*sdktrace.TracerProvider, func(context.Context) error) {
	tp := NewProvider(service, version)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(Propagator())
	return tp, tp.Shutdown
}
