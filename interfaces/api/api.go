// Package api provides the public API for goap, a goal-oriented action
// planner.
//
// A planning problem is a start state, a library of actions and a goal. The
// planner returns the cheapest sequence of actions whose effects, applied in
// order to the start state, reach a state satisfying the goal.
//
// # Quick Start
//
//	start := api.NewState().
//	    With("energy", api.Int(0)).
//	    With("at", api.Enum("home"))
//
//	actions := []api.Action{
//	    api.SimpleIncrement("sleep", "energy", api.Int(5)),
//	    api.NewAction("walk_to_mine").
//	        WithPrecondition("energy", api.GreaterThanOrEquals(api.Int(5))).
//	        WithMutator(api.Set("at", api.Enum("mine"))).
//	        WithCost(2),
//	}
//
//	g := api.NewGoal().WithRequirement("at", api.Equals(api.Enum("mine")))
//
//	p, ok, err := api.MakePlan(ctx, start, actions, g)
//	if err != nil {
//	    // evaluation error, invalid action or exhausted budget
//	}
//	if !ok {
//	    // no sequence of actions reaches the goal
//	}
//	fmt.Print(api.FormatPlan(p))
//
// # Planners
//
// MakePlan uses a default, unbounded planner. Use NewPlanner with options to
// bound the search or to change the heuristic:
//
//	planner := api.NewPlanner(
//	    api.WithMaxExpansions(10_000),
//	    api.WithTimeout(time.Second),
//	)
//
// # Scenarios
//
// Planning problems can also be described in YAML or JSON and loaded with
// LoadScenario; PlannerOptions maps the scenario's planner settings to
// planner options.
package api

import (
	"context"

	"github.com/felixgeelhaar/goap/application"
	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/policy"
	"github.com/felixgeelhaar/goap/domain/world"
	"github.com/felixgeelhaar/goap/infrastructure/resilience"
	"github.com/felixgeelhaar/goap/infrastructure/search"
)

// Re-export world types.
type (
	// State is an immutable mapping from fact names to values.
	State = world.State
	// Value is a typed fact value.
	Value = world.Value
	// Kind is the type tag of a Value.
	Kind = world.Kind
	// Operator is a comparison operator.
	Operator = world.Operator
	// Comparison pairs an operator with a threshold value.
	Comparison = world.Comparison
	// Mutator changes one fact.
	Mutator = world.Mutator
	// EvalError describes a failed evaluation against a fact.
	EvalError = world.EvalError
)

// Re-export action, goal and plan types.
type (
	// Action is a costed, conditional state transformation.
	Action = action.Action
	// Effect is an action's mutators and cost, realized against a state.
	Effect = action.Effect
	// DynamicFunc computes a precondition from the current state.
	DynamicFunc = action.DynamicFunc
	// Assignment is one fact assignment for SimpleMulti.
	Assignment = action.Assignment
	// Goal is a set of requirements with a priority.
	Goal = goal.Goal
	// Requirement is one goal condition.
	Requirement = goal.Requirement
	// Plan is a found sequence of nodes from the start state to a goal state.
	Plan = plan.Plan
	// Node is a step in a plan.
	Node = plan.Node
	// Strategy is the direction of search.
	Strategy = plan.Strategy
	// Budget meters search resources, optionally shared between searches.
	Budget = policy.Budget
	// BudgetSnapshot is what a search consumed.
	BudgetSnapshot = policy.BudgetSnapshot
)

// Re-export application types.
type (
	// Planner computes least-cost plans.
	Planner = application.Planner
	// PlannerConfig holds planner settings.
	PlannerConfig = application.PlannerConfig
	// Option configures a Planner.
	Option = application.Option
	// HeuristicFunc estimates the remaining cost from a state.
	HeuristicFunc = application.HeuristicFunc
	// HeuristicFactory builds a heuristic for one planning call.
	HeuristicFactory = application.HeuristicFactory
	// BatchPlanner plans many requests concurrently.
	BatchPlanner = application.BatchPlanner
	// BatchRequest is one request to a BatchPlanner.
	BatchRequest = application.Request
	// BatchResult is the outcome of one BatchRequest.
	BatchResult = application.Result
	// BatchOption configures a BatchPlanner.
	BatchOption = resilience.Option
)

// Value kinds.
const (
	KindBool  = world.KindBool
	KindInt   = world.KindInt
	KindFloat = world.KindFloat
	KindEnum  = world.KindEnum
)

// Strategies.
const (
	StartToGoal = plan.StartToGoal
	GoalToStart = plan.GoalToStart
)

// Planning errors.
var (
	// ErrMissingFact indicates a fact is absent from the state.
	ErrMissingFact = world.ErrMissingFact
	// ErrTypeMismatch indicates incompatible value kinds.
	ErrTypeMismatch = world.ErrTypeMismatch
	// ErrOverflow indicates integer arithmetic left the int64 range.
	ErrOverflow = world.ErrOverflow
	// ErrInvalidAction indicates an action cannot be planned with.
	ErrInvalidAction = action.ErrInvalidAction
	// ErrStrategyNotImplemented indicates a reserved strategy was requested.
	ErrStrategyNotImplemented = plan.ErrStrategyNotImplemented
	// ErrBudgetExhausted indicates the search stopped on its budget, timeout
	// or cancellation.
	ErrBudgetExhausted = search.ErrBudgetExhausted
	// ErrBudgetExceeded is wrapped by ErrBudgetExhausted when a budget limit
	// stopped the search.
	ErrBudgetExceeded = policy.ErrBudgetExceeded
	// ErrNoGoal indicates goal selection over an empty set.
	ErrNoGoal = goal.ErrNoGoal
)

// Value constructors.
var (
	Bool  = world.Bool
	Int   = world.Int
	Float = world.Float
	Enum  = world.Enum
)

// Comparison constructors.
var (
	Equals              = world.Equals
	NotEquals           = world.NotEquals
	GreaterThan         = world.GreaterThan
	GreaterThanOrEquals = world.GreaterThanOrEquals
	LessThan            = world.LessThan
	LessThanOrEquals    = world.LessThanOrEquals
)

// Mutator constructors.
var (
	Set       = world.Set
	Increment = world.Increment
	Decrement = world.Decrement
)

// Action builders.
var (
	SimpleIncrement = action.SimpleIncrement
	SimpleDecrement = action.SimpleDecrement
	SimpleMulti     = action.SimpleMulti
)

// Planner options.
var (
	WithMaxExpansions = application.WithMaxExpansions
	WithMaxGenerated  = application.WithMaxGenerated
	WithSharedBudget  = application.WithSharedBudget
	WithTimeout       = application.WithTimeout
	WithHeuristic     = application.WithHeuristic
	WithMetrics       = application.WithMetrics
	WithTracer        = application.WithTracer
	WithLogger        = application.WithLogger
	WithIDGenerator   = application.WithIDGenerator
)

// Budget resources.
const (
	Expansions = policy.Expansions
	Generated  = policy.Generated
)

// Budget helpers.
var (
	NewBudget    = policy.NewBudget
	SearchLimits = policy.SearchLimits
)

// Heuristics.
var (
	RelaxedHeuristic      = application.RelaxedHeuristic
	GoalDistanceHeuristic = application.GoalDistanceHeuristic
	ZeroHeuristic         = application.ZeroHeuristic
)

// NewState returns an empty state.
func NewState() State {
	return world.NewState()
}

// StateFrom builds a state from plain Go values.
func StateFrom(facts map[string]any) (State, error) {
	return world.StateFrom(facts)
}

// NewAction creates an action with no preconditions and no effect.
func NewAction(key string) Action {
	return action.New(key)
}

// Simple creates a cost-1 action that sets fact to v.
func Simple(name, fact string, v Value) Action {
	return action.Simple(name, fact, v)
}

// NewGoal creates an empty goal.
func NewGoal() Goal {
	return goal.New()
}

// GoalFromConditions creates a goal from a list of requirements.
func GoalFromConditions(reqs []Requirement) Goal {
	return goal.FromConditions(reqs)
}

// HighestPriority returns the goal with the highest priority.
func HighestPriority(goals []Goal) (Goal, error) {
	return goal.Highest(goals)
}

// NewPlanner creates a planner.
func NewPlanner(opts ...Option) *Planner {
	return application.NewPlanner(opts...)
}

// NewBatchPlanner creates a batch planner sharing planner's settings.
func NewBatchPlanner(planner *Planner, actions []Action, opts ...BatchOption) *BatchPlanner {
	return application.NewBatchPlanner(planner, actions, opts...)
}

// WithMaxConcurrent bounds the searches a BatchPlanner runs at once.
func WithMaxConcurrent(n int) BatchOption {
	return resilience.WithMaxConcurrent(n)
}

// MakePlan searches forward from start with a default planner. ok is false
// with a nil error when no plan exists.
func MakePlan(ctx context.Context, start State, actions []Action, g Goal) (Plan, bool, error) {
	return application.NewPlanner().MakePlan(ctx, start, actions, g)
}

// MakePlanWithStrategy is MakePlan with an explicit search direction.
func MakePlanWithStrategy(ctx context.Context, strategy Strategy, start State, actions []Action, g Goal) (Plan, bool, error) {
	return application.NewPlanner().MakePlanWithStrategy(ctx, strategy, start, actions, g)
}

// GetEffectsFromPlan returns the realized effects of a plan, skipping the
// initial node.
func GetEffectsFromPlan(p Plan) []Effect {
	return p.Effects()
}

// ReplayPlan re-applies a plan's effects to start and returns the final state.
func ReplayPlan(start State, p Plan) (State, error) {
	return plan.Replay(start, p.Effects())
}

// FormatPlan renders a human-readable trace of a plan.
func FormatPlan(p Plan) string {
	return plan.Format(p)
}

// ParseStrategy parses a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	return plan.ParseStrategy(name)
}
