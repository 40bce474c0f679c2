package application_test

import (
	"io"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/felixgeelhaar/goap/application"
	"github.com/felixgeelhaar/goap/infrastructure/logging"
	"github.com/felixgeelhaar/goap/infrastructure/telemetry"
)

func TestDefaultPlannerConfig(t *testing.T) {
	t.Parallel()

	config := application.DefaultPlannerConfig()
	if config.MaxExpansions != 0 || config.Timeout != 0 {
		t.Errorf("default limits = %d, %v; want unbounded", config.MaxExpansions, config.Timeout)
	}
	if config.Heuristic == nil || config.Metrics == nil || config.Tracer == nil || config.NewID == nil {
		t.Error("DefaultPlannerConfig should fill every collaborator")
	}
	if config.Logger != nil {
		t.Error("DefaultPlannerConfig should defer to the default logger")
	}
}

func TestPlannerOptions(t *testing.T) {
	t.Parallel()

	logger := logging.New(logging.Config{Output: io.Discard})
	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := telemetry.NoopMetricsProvider{}

	p := application.NewPlanner(
		application.WithMaxExpansions(500),
		application.WithTimeout(2*time.Second),
		application.WithHeuristic(application.ZeroHeuristic),
		application.WithMetrics(metrics),
		application.WithTracer(tracer),
		application.WithLogger(logger),
		application.WithIDGenerator(func() string { return "fixed" }),
	)
	config := p.Config()

	if config.MaxExpansions != 500 {
		t.Errorf("MaxExpansions = %d, want 500", config.MaxExpansions)
	}
	if config.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", config.Timeout)
	}
	if config.Tracer != tracer {
		t.Error("WithTracer should set the tracer")
	}
	if config.Logger != logger {
		t.Error("WithLogger should set the logger")
	}
	if config.Metrics != metrics {
		t.Error("WithMetrics should set the metrics")
	}
	if config.NewID() != "fixed" {
		t.Error("WithIDGenerator should set the ID generator")
	}
}

func TestNewPlanner_NilOptionsFallBack(t *testing.T) {
	t.Parallel()

	p := application.NewPlanner(
		application.WithHeuristic(nil),
		application.WithMetrics(nil),
		application.WithTracer(nil),
		application.WithIDGenerator(nil),
	)
	config := p.Config()
	if config.Heuristic == nil || config.Metrics == nil || config.Tracer == nil || config.NewID == nil {
		t.Error("NewPlanner should restore defaults for nil collaborators")
	}
}
