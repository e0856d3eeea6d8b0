package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("memsim", "0.0.1", exporter))

	ctx, parent := StartSpan(context.Background(), "pool.Submit", "INTERNAL")
	parent.WithAttributes(map[string]string{"process.name": "P1"}).WithInt("process.memoryMB", 600)
	_, child := StartSpan(ctx, "runner.run", "INTERNAL")
	EndSpan(child, errors.New("interrupted"))
	EndSpan(parent, nil)

	spans := exporter.GetSpans()
	if !assert.Len(t, spans, 2) {
		return
	}
	assert.Equal(t, "runner.run", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Len(t, spans[0].Events, 1) // recorded error
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	EndSpan(span, nil)
}
