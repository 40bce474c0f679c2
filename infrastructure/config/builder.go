package config

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/goap/domain/action"
	domainconfig "github.com/felixgeelhaar/goap/domain/config"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/world"
)

// Builder builds planner inputs from a scenario.
type Builder struct {
	config *domainconfig.ScenarioConfig
}

// NewBuilder creates a new scenario builder.
func NewBuilder(config *domainconfig.ScenarioConfig) *Builder {
	return &Builder{config: config}
}

// BuildResult contains the planning problem described by a scenario.
type BuildResult struct {
	// Name is the scenario name.
	Name string
	// State is the starting state.
	State world.State
	// Actions is the action library in declaration order.
	Actions []action.Action
	// Goals are the candidate goals in declaration order.
	Goals []goal.Goal

	// Strategy is the search direction.
	Strategy plan.Strategy
	// Heuristic is the heuristic name, defaulting to relaxed.
	Heuristic string
	// MaxExpansions bounds expanded nodes per plan.
	MaxExpansions int
	// MaxGenerated bounds generated successor nodes per plan.
	MaxGenerated int
	// Timeout bounds each plan.
	Timeout time.Duration
	// MaxConcurrent bounds concurrent searches when planning every goal.
	MaxConcurrent int
	// BatchMaxExpansions bounds expanded nodes across every goal when
	// planning them all.
	BatchMaxExpansions int
}

// Build converts the scenario. Errors wrap domainconfig.ErrBuildFailed.
func (b *Builder) Build() (*BuildResult, error) {
	settings := b.config.Planner
	strategy, err := plan.ParseStrategy(settings.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: planner.strategy: %w", domainconfig.ErrBuildFailed, err)
	}

	result := &BuildResult{
		Name:               b.config.Name,
		Strategy:           strategy,
		Heuristic:          settings.Heuristic,
		MaxExpansions:      settings.MaxExpansions,
		MaxGenerated:       settings.MaxGenerated,
		Timeout:            settings.Timeout.Duration(),
		MaxConcurrent:      b.config.Batch.MaxConcurrent,
		BatchMaxExpansions: b.config.Batch.MaxExpansions,
	}
	if result.Heuristic == "" {
		result.Heuristic = domainconfig.HeuristicRelaxed
	}

	if err := b.buildState(result); err != nil {
		return nil, fmt.Errorf("%w: %w", domainconfig.ErrBuildFailed, err)
	}
	if err := b.buildActions(result); err != nil {
		return nil, fmt.Errorf("%w: %w", domainconfig.ErrBuildFailed, err)
	}
	if err := b.buildGoals(result); err != nil {
		return nil, fmt.Errorf("%w: %w", domainconfig.ErrBuildFailed, err)
	}
	return result, nil
}

func (b *Builder) buildState(result *BuildResult) error {
	state := world.NewState()
	for fact, raw := range b.config.State {
		v, err := domainconfig.Scalar(raw)
		if err != nil {
			return fmt.Errorf("state.%s: %w", fact, err)
		}
		state = state.With(fact, v)
	}
	result.State = state
	return nil
}

func (b *Builder) buildActions(result *BuildResult) error {
	for i, ac := range b.config.Actions {
		a := action.New(ac.Key)

		for j, pc := range ac.Preconditions {
			op, err := world.ParseOperator(pc.Op)
			if err != nil {
				return fmt.Errorf("actions[%d].preconditions[%d]: %w", i, j, err)
			}
			if pc.IsDynamic() {
				a = a.WithDynamicPrecondition(pc.Fact, refPrecondition(op, pc.Ref))
				continue
			}
			v, err := domainconfig.Scalar(pc.Value)
			if err != nil {
				return fmt.Errorf("actions[%d].preconditions[%d]: %w", i, j, err)
			}
			a = a.WithPrecondition(pc.Fact, world.Comparison{Op: op, Value: v})
		}

		for j, mc := range ac.Mutators {
			kind, err := world.ParseMutatorKind(mc.Op)
			if err != nil {
				return fmt.Errorf("actions[%d].mutators[%d]: %w", i, j, err)
			}
			v, err := domainconfig.Scalar(mc.Value)
			if err != nil {
				return fmt.Errorf("actions[%d].mutators[%d]: %w", i, j, err)
			}
			a = a.WithMutator(world.Mutator{Kind: kind, Fact: mc.Fact, Value: v})
		}
		a = a.WithCost(ac.Cost)

		if err := a.Validate(); err != nil {
			return fmt.Errorf("actions[%d]: %w", i, err)
		}
		result.Actions = append(result.Actions, a)
	}
	return nil
}

// refPrecondition compares against the current value of fact ref.
func refPrecondition(op world.Operator, ref string) action.DynamicFunc {
	return func(s world.State) (world.Comparison, error) {
		v, err := s.Lookup(ref)
		if err != nil {
			return world.Comparison{}, err
		}
		return world.Comparison{Op: op, Value: v}, nil
	}
}

func (b *Builder) buildGoals(result *BuildResult) error {
	for i, gc := range b.config.Goals {
		g := goal.New().WithName(gc.Name).WithPriority(gc.Priority)
		for j, rc := range gc.Requirements {
			op, err := world.ParseOperator(rc.Op)
			if err != nil {
				return fmt.Errorf("goals[%d].requirements[%d]: %w", i, j, err)
			}
			v, err := domainconfig.Scalar(rc.Value)
			if err != nil {
				return fmt.Errorf("goals[%d].requirements[%d]: %w", i, j, err)
			}
			g = g.WithRequirement(rc.Fact, world.Comparison{Op: op, Value: v})
		}
		result.Goals = append(result.Goals, g)
	}
	return nil
}

// SelectGoal returns the goal with the given name, or the highest-priority
// goal when name is empty. Priority ties go to the first declared goal.
func (r *BuildResult) SelectGoal(name string) (goal.Goal, error) {
	if name == "" {
		return goal.Highest(r.Goals)
	}
	for _, g := range r.Goals {
		if g.Name == name {
			return g, nil
		}
	}
	return goal.Goal{}, fmt.Errorf("%w: %s", domainconfig.ErrGoalNotFound, name)
}

// LoadAndBuild loads a scenario file and builds it.
func LoadAndBuild(path string, opts ...LoaderOption) (*BuildResult, error) {
	cfg, err := NewLoaderWithOptions(opts...).LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuilder(cfg).Build()
}
