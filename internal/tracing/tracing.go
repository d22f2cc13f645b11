// Package tracing installs the process TracerProvider used by the otel spans in services.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// New builds a provider tagged with service. extra adds span processors or a sampler.
func New(service string, extra ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	}, extra...)
	return sdktrace.NewTracerProvider(opts...)
}

// Setup installs a global provider. Spans are exported over OTLP/HTTP when endpoint is
// set; otherwise they are sampled and dropped.
func Setup(ctx context.Context, service, endpoint string) (*sdktrace.TracerProvider, error) {
	var extra []sdktrace.TracerProviderOption
	if endpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		extra = append(extra, sdktrace.WithBatcher(exp))
	}
	tp := New(service, extra...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp, nil
}
