package telemetry

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of planner spans.
const TracerName = "github.com/felixgeelhaar/goap"

// TracingConfig configures span export.
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	// Writer receives exported spans. Defaults to stderr.
	Writer io.Writer
	// PrettyPrint indents exported spans.
	PrettyPrint bool
}

// Tracing owns a tracer provider that writes spans as JSON.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewStdoutTracing creates a provider exporting each span synchronously to
// config.Writer.
func NewStdoutTracing(config TracingConfig) (*Tracing, error) {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	if config.ServiceName == "" {
		config.ServiceName = "goap"
	}

	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if config.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	)

	return &Tracing{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		),
	}, nil
}

// Tracer returns a tracer for planner spans.
func (t *Tracing) Tracer() trace.Tracer {
	return t.provider.Tracer(TracerName)
}

// Shutdown flushes and stops the provider.
func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// GlobalTracer returns the planner tracer from the global provider.
func GlobalTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
