package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/world"
	"github.com/felixgeelhaar/goap/infrastructure/logging"
	"github.com/felixgeelhaar/goap/infrastructure/resilience"
)

// Request is one independent planning problem in a batch.
type Request struct {
	State    world.State
	Goal     goal.Goal
	Strategy plan.Strategy
}

// Result is the outcome of one Request.
type Result struct {
	Plan  plan.Plan
	Found bool
	Err   error
}

// BatchPlanner plans many requests concurrently over one action library.
// The library is shared read-only between the searches.
type BatchPlanner struct {
	planner  *Planner
	actions  []action.Action
	executor *resilience.Executor[Result]
}

// NewBatchPlanner creates a batch planner. The library is copied once.
func NewBatchPlanner(planner *Planner, actions []action.Action, opts ...resilience.Option) *BatchPlanner {
	if planner == nil {
		planner = NewPlanner()
	}
	// The planner enforces its own timeout.
	opts = append([]resilience.Option{resilience.WithTimeout(0)}, opts...)
	return &BatchPlanner{
		planner:  planner,
		actions:  append([]action.Action(nil), actions...),
		executor: resilience.NewExecutorWithOptions[Result](opts...),
	}
}

// Concurrency returns the maximum number of searches run at once.
func (b *BatchPlanner) Concurrency() int {
	return b.executor.MaxConcurrent()
}

// PlanAll runs every request and returns the results in request order.
// A failing request does not cancel the others; cancelling ctx stops all.
func (b *BatchPlanner) PlanAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	metrics := b.planner.config.Metrics

	var g errgroup.Group
	g.SetLimit(b.executor.MaxConcurrent())

	for i, req := range reqs {
		g.Go(func() error {
			metrics.IncrementInflight(ctx)
			defer metrics.DecrementInflight(ctx)

			res, err := b.executor.Execute(ctx, func(ctx context.Context) (Result, error) {
				p, ok, err := b.planner.MakePlanWithStrategy(ctx, req.Strategy, req.State, b.actions, req.Goal)
				return Result{Plan: p, Found: ok, Err: err}, err
			})
			if err != nil && res.Err == nil {
				res.Err = err
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	found := 0
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	logging.NewEvent(b.planner.logger().Info()).
		Add(logging.Component("batch")).
		Add(logging.Operation("plan_all")).
		Add(logging.Int("requests", len(reqs))).
		Add(logging.Int("found", found)).
		Msg("batch planning finished")

	return results
}
