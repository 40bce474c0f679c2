// Package plan holds the result of planning and helpers to inspect it.
package plan

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/policy"
	"github.com/felixgeelhaar/goap/domain/world"
)

// Plan is an ordered path from the start state to a goal state. Nodes[0] is
// always the initial node.
type Plan struct {
	ID       string
	Strategy Strategy
	Nodes    []Node
	Cost     int
	Expanded int
	// Budget is what this search consumed, set whether or not a plan was found.
	Budget policy.BudgetSnapshot
}

// Len returns the number of actions in the plan.
func (p Plan) Len() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// Effects returns the realized effects of the plan.
func (p Plan) Effects() []action.Effect {
	return Effects(p.Nodes)
}

// Actions returns the action keys in execution order.
func (p Plan) Actions() []string {
	effects := p.Effects()
	keys := make([]string, len(effects))
	for i, e := range effects {
		keys[i] = e.Action
	}
	return keys
}

// Final returns the state the plan ends in.
func (p Plan) Final() (world.State, error) {
	if len(p.Nodes) == 0 {
		return world.State{}, ErrEmptyPlan
	}
	return p.Nodes[len(p.Nodes)-1].State(), nil
}

// Effects drops the initial node and returns the effects in order.
func Effects(nodes []Node) []action.Effect {
	out := make([]action.Effect, 0, len(nodes))
	for _, n := range nodes {
		if e, ok := n.Effect(); ok {
			out = append(out, e)
		}
	}
	return out
}

// Replay re-applies the mutators of effects to start.
func Replay(start world.State, effects []action.Effect) (world.State, error) {
	current := start.Clone()
	for i, e := range effects {
		next, err := world.ApplyAll(current, e.Mutators)
		if err != nil {
			return world.State{}, fmt.Errorf("step %d (%s): %w", i+1, e.Action, err)
		}
		current = next
	}
	return current, nil
}

// Format renders a human-readable trace of the plan.
func Format(p Plan) string {
	var b strings.Builder
	if len(p.Nodes) == 0 {
		b.WriteString("empty plan\n")
		return b.String()
	}

	fmt.Fprintf(&b, "initial state: %s\n", p.Nodes[0].State())
	for i, e := range p.Effects() {
		fmt.Fprintf(&b, "%d. %s (cost %d)\n", i+1, e.Action, e.Cost)
		for _, m := range e.Mutators {
			fmt.Fprintf(&b, "     %s\n", m)
		}
	}
	final, _ := p.Final()
	fmt.Fprintf(&b, "final state: %s\n", final)
	fmt.Fprintf(&b, "total cost: %d (%d steps, %d expanded)\n", p.Cost, p.Len(), p.Expanded)
	return b.String()
}
