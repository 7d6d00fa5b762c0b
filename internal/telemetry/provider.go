// Package telemetry wires OpenTelemetry tracing for stack transitions: an
// in-memory recorder for the demo, and OTLP/HTTP export when
// OTEL_EXPORTER_OTLP_ENDPOINT is set.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is used when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "tabstack"

// Provider owns the SDK tracer provider.
type Provider struct {
	tp        *sdktrace.TracerProvider
	exporting bool
}

// NewProvider builds a tracer provider that feeds rec (if non-nil) and, when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, batches spans to that endpoint. The
// provider is installed as the otel global.
func NewProvider(ctx context.Context, rec *Recorder) (*Provider, error) {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if rec != nil {
		opts = append(opts, sdktrace.WithSpanProcessor(rec))
	}

	exporting := false
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		exporting = true
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp, exporting: exporting}, nil
}

// Tracer returns the tracer the stack controller records on.
func (p *Provider) Tracer() oteltrace.Tracer {
	return p.tp.Tracer("tabstack/stack")
}

// Exporting reports whether spans leave the process.
func (p *Provider) Exporting() bool { return p.exporting }

// Shutdown flushes pending exports. Call it before the process exits.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}
