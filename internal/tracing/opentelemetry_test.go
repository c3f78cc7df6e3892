package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return recorder
}

func TestStartSpanSetsAttributes(t *testing.T) {
	recorder := setupRecorder(t)

	ctx, span := StartSpan(context.Background(), "http_request",
		attribute.String("http.method", "GET"),
	)
	assert.NotEmpty(t, TraceID(ctx))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "http_request", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.method", "GET"))
}

func TestRecordError(t *testing.T) {
	recorder := setupRecorder(t)

	ctx, span := StartSpan(context.Background(), "op")
	RecordError(ctx, errors.New("invalid credentials"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "invalid credentials", spans[0].Status().Description)

	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestSetSpanStatus(t *testing.T) {
	recorder := setupRecorder(t)

	ctx, span := StartSpan(context.Background(), "op")
	SetSpanStatus(ctx, codes.Ok, "")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}
