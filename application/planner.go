// Package application provides the planning services built on the domain model.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/policy"
	"github.com/felixgeelhaar/goap/domain/world"
	"github.com/felixgeelhaar/goap/infrastructure/logging"
	"github.com/felixgeelhaar/goap/infrastructure/search"
	"github.com/felixgeelhaar/goap/infrastructure/telemetry"
)

// Planner computes least-cost plans. It holds no per-call state and is safe
// for concurrent use.
type Planner struct {
	config PlannerConfig
}

// NewPlanner creates a planner with the given options.
func NewPlanner(opts ...Option) *Planner {
	config := DefaultPlannerConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Heuristic == nil {
		config.Heuristic = RelaxedHeuristic
	}
	if config.Metrics == nil {
		config.Metrics = telemetry.NoopMetricsProvider{}
	}
	if config.Tracer == nil {
		config.Tracer = telemetry.GlobalTracer()
	}
	if config.NewID == nil {
		config.NewID = generatePlanID
	}
	return &Planner{config: config}
}

// Config returns the planner configuration.
func (p *Planner) Config() PlannerConfig {
	return p.config
}

// MakePlan searches forward from start for the cheapest sequence of actions
// that satisfies g. ok is false with a nil error when no plan exists.
func (p *Planner) MakePlan(ctx context.Context, start world.State, actions []action.Action, g goal.Goal) (plan.Plan, bool, error) {
	return p.MakePlanWithStrategy(ctx, plan.StartToGoal, start, actions, g)
}

// MakePlanWithStrategy is MakePlan with an explicit search strategy.
// GoalToStart fails with plan.ErrStrategyNotImplemented.
func (p *Planner) MakePlanWithStrategy(ctx context.Context, strategy plan.Strategy, start world.State, actions []action.Action, g goal.Goal) (plan.Plan, bool, error) {
	started := time.Now()
	planID := p.config.NewID()

	ctx, span := p.config.Tracer.Start(ctx, "goap.make_plan", trace.WithAttributes(
		attribute.String("goap.plan_id", planID),
		attribute.String("goap.strategy", strategy.String()),
		attribute.String("goap.goal", g.Name),
		attribute.Int("goap.actions", len(actions)),
	))
	defer span.End()

	logging.NewEvent(p.logger().Debug()).
		Add(logging.Component("planner")).
		Add(logging.PlanID(planID)).
		Add(logging.Strategy(strategy.String())).
		Add(logging.Goal(g.Name)).
		Add(logging.Actions(len(actions))).
		Msg("planning started")

	result, ok, err := p.run(ctx, strategy, start, actions, g)
	result.ID = planID
	result.Strategy = strategy
	elapsed := time.Since(started)

	outcome := classify(ok, err)
	p.config.Metrics.RecordPlan(ctx, strategy.String(), outcome, result.Expanded, result.Cost, elapsed)
	span.SetAttributes(
		attribute.String("goap.outcome", string(outcome)),
		attribute.Int("goap.expanded", result.Expanded),
	)

	switch outcome {
	case telemetry.OutcomeFound:
		span.SetAttributes(attribute.Int("goap.cost", result.Cost), attribute.Int("goap.steps", result.Len()))
		span.SetStatus(codes.Ok, "")
		logging.NewEvent(p.logger().Info()).
			Add(logging.Component("planner")).
			Add(logging.PlanID(planID)).
			Add(logging.Goal(g.Name)).
			Add(logging.Cost(result.Cost)).
			Add(logging.PlanLength(result.Len())).
			Add(logging.Expanded(result.Expanded)).
			Add(logging.Duration(elapsed)).
			Msg("plan found")
	case telemetry.OutcomeNoPlan:
		logging.NewEvent(p.logger().Info()).
			Add(logging.Component("planner")).
			Add(logging.PlanID(planID)).
			Add(logging.Goal(g.Name)).
			Add(logging.Expanded(result.Expanded)).
			Add(logging.Duration(elapsed)).
			Msg("no plan exists")
	default:
		p.config.Metrics.RecordError(ctx, errorType(err))
		exhausted := result.Budget.Exhausted()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if len(exhausted) > 0 {
			span.SetAttributes(attribute.StringSlice("goap.exhausted", exhausted))
		}
		logging.NewEvent(p.logger().Warn()).
			Add(logging.Component("planner")).
			Add(logging.PlanID(planID)).
			Add(logging.Goal(g.Name)).
			Add(logging.Expanded(result.Expanded)).
			Add(logging.Exhausted(exhausted)).
			Add(logging.Duration(elapsed)).
			Add(logging.ErrorField(err)).
			Msg("planning failed")
	}

	return result, ok, err
}

func (p *Planner) run(ctx context.Context, strategy plan.Strategy, start world.State, actions []action.Action, g goal.Goal) (plan.Plan, bool, error) {
	switch strategy {
	case plan.StartToGoal:
	case plan.GoalToStart:
		return plan.Plan{}, false, fmt.Errorf("%w: %s", plan.ErrStrategyNotImplemented, strategy)
	default:
		return plan.Plan{}, false, fmt.Errorf("%w: %d", plan.ErrUnknownStrategy, strategy)
	}

	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return plan.Plan{}, false, err
		}
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	problem := &planningProblem{
		start:     start.Clone(),
		actions:   actions,
		goal:      g,
		heuristic: p.config.Heuristic(actions, g),
	}
	limits := policy.SearchLimits(p.config.MaxExpansions, p.config.MaxGenerated)
	budget := policy.NewBudget(limits)
	if p.config.SharedBudget != nil {
		budget = p.config.SharedBudget.Child(limits)
	}
	res, ok, err := search.AStar[plan.Node](ctx, problem, budget)
	out := plan.Plan{Expanded: res.Expanded, Budget: budget.Snapshot()}
	if err != nil || !ok {
		return out, false, err
	}
	out.Nodes = res.Path
	out.Cost = res.Cost
	return out, true, nil
}

func (p *Planner) logger() *bolt.Logger {
	if p.config.Logger != nil {
		return p.config.Logger
	}
	return logging.Get()
}

// Successors returns the nodes reachable from node in one action, in library
// order. Actions whose preconditions fail or that have no effect are skipped.
func Successors(node plan.Node, actions []action.Action) ([]search.Edge[plan.Node], error) {
	state := node.State()
	var out []search.Edge[plan.Node]
	for _, a := range actions {
		tmpl, ok := a.Effect()
		if !ok {
			continue
		}
		ok, err := a.Satisfied(state)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		realized, err := tmpl.Realize(state)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", a.Key, err)
		}
		out = append(out, search.Edge[plan.Node]{Node: plan.Applied(realized), Cost: realized.Cost})
	}
	return out, nil
}

// planningProblem adapts a planning call to the search package.
type planningProblem struct {
	start     world.State
	actions   []action.Action
	goal      goal.Goal
	heuristic HeuristicFunc
}

func (pp *planningProblem) Start() plan.Node {
	return plan.Initial(pp.start)
}

func (pp *planningProblem) Key(n plan.Node) string {
	return n.Key()
}

func (pp *planningProblem) Successors(_ context.Context, n plan.Node) ([]search.Edge[plan.Node], error) {
	return Successors(n, pp.actions)
}

func (pp *planningProblem) Heuristic(n plan.Node) (float64, error) {
	return pp.heuristic(n.State())
}

func (pp *planningProblem) IsGoal(n plan.Node) (bool, error) {
	return pp.goal.Satisfied(n.State())
}

var _ search.Problem[plan.Node] = (*planningProblem)(nil)

func classify(ok bool, err error) telemetry.Outcome {
	switch {
	case err == nil && ok:
		return telemetry.OutcomeFound
	case err == nil:
		return telemetry.OutcomeNoPlan
	case errors.Is(err, search.ErrBudgetExhausted):
		return telemetry.OutcomeExhausted
	default:
		return telemetry.OutcomeError
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, search.ErrBudgetExhausted):
		return "budget_exhausted"
	case errors.Is(err, world.ErrMissingFact):
		return "missing_fact"
	case errors.Is(err, world.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, world.ErrOverflow):
		return "overflow"
	case errors.Is(err, action.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, plan.ErrStrategyNotImplemented):
		return "strategy_not_implemented"
	default:
		return "other"
	}
}

func generatePlanID() string {
	return "plan-" + uuid.New().String()
}
