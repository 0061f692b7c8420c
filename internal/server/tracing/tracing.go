// Package tracing configures OpenTelemetry tracing for the server.
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

// ServiceName is reported as service.name on every span.
const ServiceName = "patientauth"

// Config selects where spans go. Tracing is off when Endpoint is empty.
type Config struct {
	// Endpoint is the OTLP HTTP collector host:port (e.g. "localhost:4318").
	Endpoint string
	// Insecure disables TLS towards the collector.
	Insecure bool
	// Version is reported as service.version.
	Version string
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Init installs a global tracer provider exporting over OTLP/HTTP and returns
// its shutdown function. With an empty endpoint the global no-op provider is
// left in place and the returned function does nothing.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	tp := NewProvider(sdktrace.WithBatcher(exporter), cfg.Version)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// NewProvider builds a tracer provider with the service resource attached.
func NewProvider(processor sdktrace.TracerProviderOption, version string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(newResource(version)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
}

func newResource(version string) *resource.Resource {
	if version == "" {
		version = "dev"
	}
	return resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)
}
