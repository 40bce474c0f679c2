// Package telemetry provides OpenTelemetry metrics and tracing for the planner.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how a planning call ended.
type Outcome string

// Planning outcomes.
const (
	OutcomeFound     Outcome = "found"
	OutcomeNoPlan    Outcome = "no_plan"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeError     Outcome = "error"
)

// Metrics defines the interface for planner metrics recording.
type Metrics interface {
	RecordPlan(ctx context.Context, strategy string, outcome Outcome, expanded, cost int, duration time.Duration)
	RecordError(ctx context.Context, errorType string)
	IncrementInflight(ctx context.Context)
	DecrementInflight(ctx context.Context)
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/goap").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// MeterProvider overrides the global provider.
	MeterProvider metric.MeterProvider
	// Attributes are attached to every measurement.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/goap",
		MeterVersion: "1.0.0",
	}
}

// MetricsProvider records planner metrics through an OpenTelemetry meter.
type MetricsProvider struct {
	meter metric.Meter
	attrs []attribute.KeyValue

	plans      metric.Int64Counter
	expansions metric.Int64Counter
	errors     metric.Int64Counter
	duration   metric.Float64Histogram
	cost       metric.Int64Histogram
	inflight   metric.Int64UpDownCounter

	initErr error
}

// NewMetricsProvider creates a metrics provider. Instrument creation errors
// are reported by Error.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	defaults := DefaultMetricsConfig()
	if config.MeterName == "" {
		config.MeterName = defaults.MeterName
	}
	if config.MeterVersion == "" {
		config.MeterVersion = defaults.MeterVersion
	}
	provider := config.MeterProvider
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	mp := &MetricsProvider{
		meter: provider.Meter(config.MeterName, metric.WithInstrumentationVersion(config.MeterVersion)),
		attrs: config.Attributes,
	}
	mp.initErr = mp.initInstruments()
	return mp
}

func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.plans, err = mp.meter.Int64Counter(
		"goap.plans",
		metric.WithDescription("Number of planning calls"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.expansions, err = mp.meter.Int64Counter(
		"goap.search.expansions",
		metric.WithDescription("Search nodes expanded"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"goap.errors",
		metric.WithDescription("Number of planning errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mp.duration, err = mp.meter.Float64Histogram(
		"goap.planning.duration",
		metric.WithDescription("Duration of planning calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.cost, err = mp.meter.Int64Histogram(
		"goap.plan.cost",
		metric.WithDescription("Total cost of found plans"),
		metric.WithUnit("{cost}"),
	)
	if err != nil {
		return err
	}

	mp.inflight, err = mp.meter.Int64UpDownCounter(
		"goap.batch.inflight",
		metric.WithDescription("Planning requests currently running in a batch"),
		metric.WithUnit("{request}"),
	)
	return err
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

func (mp *MetricsProvider) with(attrs ...attribute.KeyValue) metric.MeasurementOption {
	all := make([]attribute.KeyValue, 0, len(mp.attrs)+len(attrs))
	all = append(all, mp.attrs...)
	all = append(all, attrs...)
	return metric.WithAttributes(all...)
}

// RecordPlan records one planning call.
func (mp *MetricsProvider) RecordPlan(ctx context.Context, strategy string, outcome Outcome, expanded, cost int, duration time.Duration) {
	if mp.initErr != nil {
		return
	}
	opt := mp.with(
		attribute.String("plan.strategy", strategy),
		attribute.String("plan.outcome", string(outcome)),
	)

	mp.plans.Add(ctx, 1, opt)
	mp.expansions.Add(ctx, int64(expanded), opt)
	mp.duration.Record(ctx, float64(duration.Microseconds())/1000, opt)
	if outcome == OutcomeFound {
		mp.cost.Record(ctx, int64(cost), opt)
	}
}

// RecordError records a planning error by type.
func (mp *MetricsProvider) RecordError(ctx context.Context, errorType string) {
	if mp.initErr != nil {
		return
	}
	mp.errors.Add(ctx, 1, mp.with(attribute.String("error.type", errorType)))
}

// IncrementInflight marks a batch request as started.
func (mp *MetricsProvider) IncrementInflight(ctx context.Context) {
	if mp.initErr != nil {
		return
	}
	mp.inflight.Add(ctx, 1, mp.with())
}

// DecrementInflight marks a batch request as finished.
func (mp *MetricsProvider) DecrementInflight(ctx context.Context) {
	if mp.initErr != nil {
		return
	}
	mp.inflight.Add(ctx, -1, mp.with())
}

// NoopMetricsProvider is a no-op metrics provider for when metrics are disabled.
type NoopMetricsProvider struct{}

// RecordPlan is a no-op.
func (NoopMetricsProvider) RecordPlan(context.Context, string, Outcome, int, int, time.Duration) {}

// RecordError is a no-op.
func (NoopMetricsProvider) RecordError(context.Context, string) {}

// IncrementInflight is a no-op.
func (NoopMetricsProvider) IncrementInflight(context.Context) {}

// DecrementInflight is a no-op.
func (NoopMetricsProvider) DecrementInflight(context.Context) {}

var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = NoopMetricsProvider{}
)
