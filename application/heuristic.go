package application

import (
	"fmt"
	"math"

	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/config"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/world"
)

// HeuristicFunc estimates the cost still needed to satisfy a goal from a
// state. +Inf marks the goal as unreachable from that state.
type HeuristicFunc func(world.State) (float64, error)

// HeuristicFactory builds the heuristic for one planning call.
type HeuristicFactory func(actions []action.Action, g goal.Goal) HeuristicFunc

// ZeroHeuristic turns the search into uniform-cost search.
func ZeroHeuristic(_ []action.Action, _ goal.Goal) HeuristicFunc {
	return func(world.State) (float64, error) { return 0, nil }
}

// GoalDistanceHeuristic uses the raw goal distance. It is fast but only
// admissible when every unit of distance costs at least one, so plans found
// with it may not be optimal.
func GoalDistanceHeuristic(_ []action.Action, g goal.Goal) HeuristicFunc {
	return g.Distance
}

// HeuristicByName returns the factory for a scenario heuristic name. An
// empty name selects RelaxedHeuristic.
func HeuristicByName(name string) (HeuristicFactory, error) {
	switch name {
	case "", config.HeuristicRelaxed:
		return RelaxedHeuristic, nil
	case config.HeuristicGoalDistance:
		return GoalDistanceHeuristic, nil
	case config.HeuristicZero:
		return ZeroHeuristic, nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownHeuristic, name)
	}
}

// setter is an action that leaves a fact at a fixed value.
type setter struct {
	cost    int
	helpful bool
}

// stepper is an action that moves a numeric fact by a fixed delta.
type stepper struct {
	cost  int
	delta float64
}

// bound holds what the action library can do to one required fact.
type bound struct {
	req      goal.Requirement
	setters  []setter
	steppers []stepper
}

// RelaxedHeuristic derives, for each unmet requirement, a lower bound on
// the cost of the actions needed to meet it, and returns the largest bound.
// The bound only looks at the actions that mutate the required fact, so it
// never overestimates, for any library.
func RelaxedHeuristic(actions []action.Action, g goal.Goal) HeuristicFunc {
	reqs := g.Requirements()
	bounds := make([]bound, len(reqs))
	for i, r := range reqs {
		bounds[i] = analyze(r, actions)
	}

	return func(state world.State) (float64, error) {
		var h float64
		for i := range bounds {
			b, err := bounds[i].estimate(g, state)
			if err != nil {
				return 0, err
			}
			if b > h {
				h = b
			}
		}
		return h, nil
	}
}

// analyze classifies how each action affects the required fact.
func analyze(r goal.Requirement, actions []action.Action) bound {
	b := bound{req: r}
	for _, a := range actions {
		e, ok := a.Effect()
		if !ok {
			continue
		}
		value, sets, delta, valid := netEffect(e.Mutators, r.Fact, r.Comparison.Value.Kind())
		if !valid {
			continue
		}
		if sets {
			ok, err := world.Evaluate(r.Comparison, value)
			b.setters = append(b.setters, setter{cost: e.Cost, helpful: err == nil && ok})
			continue
		}
		if delta != 0 {
			b.steppers = append(b.steppers, stepper{cost: e.Cost, delta: delta})
		}
	}
	return b
}

// netEffect folds the mutators touching fact. When the fact is set, value is
// its final value; otherwise delta is the net numeric change. valid is false
// when the fact is untouched or the mutators cannot apply.
func netEffect(ms []world.Mutator, fact string, kind world.Kind) (value world.Value, sets bool, delta float64, valid bool) {
	stepsOK := true
	for _, m := range ms {
		if m.Fact != fact {
			continue
		}
		valid = true
		switch m.Kind {
		case world.MutateSet:
			value, sets = m.Value, true
		case world.MutateIncrement, world.MutateDecrement:
			if sets {
				var err error
				if m.Kind == world.MutateIncrement {
					value, err = value.Add(m.Value)
				} else {
					value, err = value.Sub(m.Value)
				}
				if err != nil {
					return world.Value{}, false, 0, false
				}
				continue
			}
			if !m.Value.IsNumeric() || m.Value.Kind() != kind {
				stepsOK = false
				continue
			}
			d := asFloat(m.Value)
			if m.Kind == world.MutateDecrement {
				d = -d
			}
			delta += d
		}
	}
	if !sets && !stepsOK {
		return world.Value{}, false, 0, false
	}
	return value, sets, delta, valid
}

func asFloat(v world.Value) float64 {
	if i, ok := v.AsInt(); ok {
		return float64(i)
	}
	f, _ := v.AsFloat()
	return f
}

// estimate returns the lower bound for the requirement in state.
func (b *bound) estimate(g goal.Goal, state world.State) (float64, error) {
	gap, err := g.Gap(b.req.Fact, state)
	if err != nil {
		return 0, err
	}
	if gap == 0 {
		return 0, nil
	}

	best := math.Inf(1)
	for _, s := range b.setters {
		if s.helpful && float64(s.cost) < best {
			best = float64(s.cost)
		}
	}

	actual, _ := state.Get(b.req.Fact)
	if !actual.IsNumeric() || actual.Kind() != b.req.Comparison.Value.Kind() {
		// Only a set can change the kind or a non-numeric value.
		return best, nil
	}
	if actual.IsNaN() || b.req.Comparison.Value.IsNaN() {
		// Stepping keeps NaN; only a set can leave it.
		return best, nil
	}

	// Any setter may reposition the fact before stepping, so the progress
	// argument only holds when nothing sets it.
	reposition := len(b.setters) > 0
	dir := direction(b.req.Comparison, actual, reposition)

	minCost := math.Inf(1)
	minRatio := math.Inf(1)
	for _, s := range b.steppers {
		if !dir(s.delta) {
			continue
		}
		c := float64(s.cost)
		minCost = math.Min(minCost, c)
		minRatio = math.Min(minRatio, c/math.Abs(s.delta))
	}
	if math.IsInf(minCost, 1) {
		return best, nil
	}

	stepBound := minCost
	if !reposition && b.req.Comparison.Op != world.OpNotEquals {
		progress := math.Abs(asFloat(b.req.Comparison.Value) - asFloat(actual))
		if _, isInt := actual.AsInt(); isInt {
			progress = gap
		}
		stepBound = math.Max(stepBound, progress*minRatio)
	}
	return math.Min(best, stepBound), nil
}

// direction reports which deltas can contribute to meeting c. Without a
// reposition the direction is relative to actual.
func direction(c world.Comparison, actual world.Value, reposition bool) func(float64) bool {
	up := func(d float64) bool { return d > 0 }
	down := func(d float64) bool { return d < 0 }
	either := func(d float64) bool { return d != 0 }

	switch c.Op {
	case world.OpGreaterThan, world.OpGreaterThanOrEquals:
		return up
	case world.OpLessThan, world.OpLessThanOrEquals:
		return down
	case world.OpEquals:
		if reposition {
			return either
		}
		if asFloat(c.Value) > asFloat(actual) {
			return up
		}
		return down
	default:
		return either
	}
}
