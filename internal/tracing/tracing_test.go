package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPropagator_ContinuesIncomingTrace(t *testing.T) {
	h := http.Header{}
	h.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	ctx := Propagator().Extract(context.Background(), propagation.HeaderCarrier(h))
	tp := NewProvider("coach-crm", "test")
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(ctx, "child")
	defer span.End()

	sc := span.SpanContext()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", sc.TraceID().String())
	assert.NotEqual(t, "00f067aa0ba902b7", sc.SpanID().String())
	assert.True(t, sc.IsSampled())
}

func TestSetup_RegistersGlobals(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	tp, shutdown := Setup("coach-crm", "test")
	assert.Same(t, tp, otel.GetTracerProvider())
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())

	_, span := otel.Tracer("test").Start(context.Background(), "root")
	assert.True(t, span.SpanContext().IsValid())
	assert.Equal(t, trace.FlagsSampled, span.SpanContext().TraceFlags())
	span.End()

	require.NoError(t, shutdown(context.Background()))
}
