package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"bookworm/internal/tracing"
)

func TestProviderRecordsSpansWithServiceName(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := tracing.New("bookworm-test", sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "orders.place")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "orders.place", ended[0].Name())
	assert.Contains(t, ended[0].Resource().Attributes(), attribute.String("service.name", "bookworm-test"))
}

func TestSetupWithoutEndpoint(t *testing.T) {
	tp, err := tracing.Setup(context.Background(), "bookworm-test", "")
	require.NoError(t, err)
	assert.NoError(t, tp.Shutdown(context.Background()))
}
