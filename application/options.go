package application

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap/domain/policy"
	"github.com/felixgeelhaar/goap/infrastructure/telemetry"
)

// Option configures the planner.
type Option func(*PlannerConfig)

// PlannerConfig holds planner settings.
type PlannerConfig struct {
	// MaxExpansions bounds the nodes expanded per call; 0 means unlimited.
	MaxExpansions int

	// MaxGenerated bounds the successor nodes generated per call; 0 means unlimited.
	MaxGenerated int

	// SharedBudget, when set, is charged for every call on top of the
	// per-call limits.
	SharedBudget *policy.Budget

	// Timeout bounds the wall-clock time per call; 0 means none.
	Timeout time.Duration

	// Heuristic builds the search heuristic per call.
	Heuristic HeuristicFactory

	// Metrics records planning metrics.
	Metrics telemetry.Metrics

	// Tracer starts a span per call.
	Tracer trace.Tracer

	// Logger overrides the default logger.
	Logger *bolt.Logger

	// NewID generates plan IDs.
	NewID func() string
}

// DefaultPlannerConfig returns an unbounded planner with the relaxed heuristic.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Heuristic: RelaxedHeuristic,
		Metrics:   telemetry.NoopMetricsProvider{},
		Tracer:    telemetry.GlobalTracer(),
		NewID:     generatePlanID,
	}
}

// WithMaxExpansions bounds the number of expanded nodes.
func WithMaxExpansions(n int) Option {
	return func(c *PlannerConfig) {
		c.MaxExpansions = n
	}
}

// WithMaxGenerated bounds the number of generated successor nodes.
func WithMaxGenerated(n int) Option {
	return func(c *PlannerConfig) {
		c.MaxGenerated = n
	}
}

// WithSharedBudget charges every call to budget, e.g. to cap the total work
// of a batch.
func WithSharedBudget(budget *policy.Budget) Option {
	return func(c *PlannerConfig) {
		c.SharedBudget = budget
	}
}

// WithTimeout bounds the duration of each planning call.
func WithTimeout(d time.Duration) Option {
	return func(c *PlannerConfig) {
		c.Timeout = d
	}
}

// WithHeuristic sets the heuristic factory.
func WithHeuristic(h HeuristicFactory) Option {
	return func(c *PlannerConfig) {
		c.Heuristic = h
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m telemetry.Metrics) Option {
	return func(c *PlannerConfig) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *PlannerConfig) {
		c.Tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *bolt.Logger) Option {
	return func(c *PlannerConfig) {
		c.Logger = l
	}
}

// WithIDGenerator sets the plan ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *PlannerConfig) {
		c.NewID = fn
	}
}
