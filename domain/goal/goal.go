// Package goal defines planning targets and how far a state is from meeting them.
package goal

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/felixgeelhaar/goap/domain/world"
)

// Requirement is one fact constraint of a goal.
type Requirement struct {
	Fact       string
	Comparison world.Comparison
}

// Goal is a set of requirements plus a priority used by callers that choose
// among goals. Builder methods return modified copies.
type Goal struct {
	// Name is an optional label.
	Name string
	// Priority orders goals; higher wins.
	Priority int

	requirements map[string]world.Comparison
}

// New creates an empty goal. An empty goal is satisfied by every state.
func New() Goal {
	return Goal{}
}

// FromConditions builds a goal from fact/comparison pairs. Later pairs on the
// same fact replace earlier ones.
func FromConditions(reqs []Requirement) Goal {
	g := New()
	for _, r := range reqs {
		g = g.WithRequirement(r.Fact, r.Comparison)
	}
	return g
}

// WithRequirement sets the comparison required of fact.
func (g Goal) WithRequirement(fact string, c world.Comparison) Goal {
	next := make(map[string]world.Comparison, len(g.requirements)+1)
	for k, v := range g.requirements {
		next[k] = v
	}
	next[fact] = c
	g.requirements = next
	return g
}

// WithPriority sets the priority.
func (g Goal) WithPriority(p int) Goal {
	g.Priority = p
	return g
}

// WithName sets the name.
func (g Goal) WithName(name string) Goal {
	g.Name = name
	return g
}

// Requirements returns the requirements sorted by fact name.
func (g Goal) Requirements() []Requirement {
	facts := make([]string, 0, len(g.requirements))
	for f := range g.requirements {
		facts = append(facts, f)
	}
	sort.Strings(facts)

	out := make([]Requirement, len(facts))
	for i, f := range facts {
		out[i] = Requirement{Fact: f, Comparison: g.requirements[f]}
	}
	return out
}

// Requirement returns the comparison required of fact.
func (g Goal) Requirement(fact string) (world.Comparison, bool) {
	c, ok := g.requirements[fact]
	return c, ok
}

// Len returns the number of requirements.
func (g Goal) Len() int {
	return len(g.requirements)
}

// Satisfied reports whether every requirement holds in state.
func (g Goal) Satisfied(state world.State) (bool, error) {
	for _, r := range g.Requirements() {
		ok, err := world.Check(state, r.Fact, r.Comparison)
		if err != nil {
			return false, fmt.Errorf("requirement %q: %w", r.Fact, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Distance sums the per-requirement gaps. It is zero iff the goal is satisfied.
func (g Goal) Distance(state world.State) (float64, error) {
	var total float64
	for _, r := range g.Requirements() {
		gap, err := g.Gap(r.Fact, state)
		if err != nil {
			return 0, err
		}
		total += gap
	}
	return total, nil
}

// Gap measures how far fact is from meeting its requirement in state:
//
//   - 0 when satisfied
//   - the numeric difference needed to cross the threshold, with integers
//     needing one more unit for strict operators
//   - 1 for an unmet NotEquals, any non-numeric mismatch or a NaN operand
//
// A fact the goal does not constrain has gap 0.
func (g Goal) Gap(fact string, state world.State) (float64, error) {
	c, ok := g.requirements[fact]
	if !ok {
		return 0, nil
	}
	satisfied, err := world.Check(state, fact, c)
	if err != nil {
		return 0, fmt.Errorf("requirement %q: %w", fact, err)
	}
	if satisfied {
		return 0, nil
	}

	actual, _ := state.Get(fact)
	if c.Op == world.OpNotEquals || !actual.IsNumeric() || actual.Kind() != c.Value.Kind() {
		return 1, nil
	}
	if gap := numericGap(c, actual); !math.IsNaN(gap) {
		return gap, nil
	}
	// NaN on either side never meets the requirement.
	return 1, nil
}

// numericGap assumes the comparison is unmet and both values share a numeric kind.
func numericGap(c world.Comparison, actual world.Value) float64 {
	if a, ok := actual.AsInt(); ok {
		t, _ := c.Value.AsInt()
		switch c.Op {
		case world.OpGreaterThan:
			return float64(t) - float64(a) + 1
		case world.OpLessThan:
			return float64(a) - float64(t) + 1
		default:
			return math.Abs(float64(a) - float64(t))
		}
	}

	a, _ := actual.AsFloat()
	t, _ := c.Value.AsFloat()
	switch c.Op {
	case world.OpGreaterThan:
		return math.Nextafter(t, math.Inf(1)) - a
	case world.OpLessThan:
		return a - math.Nextafter(t, math.Inf(-1))
	default:
		return math.Abs(a - t)
	}
}

// String renders the goal, e.g. "eat(p=2){hunger <= 0}".
func (g Goal) String() string {
	parts := make([]string, 0, len(g.requirements))
	for _, r := range g.Requirements() {
		parts = append(parts, r.Fact+" "+r.Comparison.String())
	}
	return fmt.Sprintf("%s(p=%d){%s}", g.Name, g.Priority, strings.Join(parts, ", "))
}

// Highest returns the goal with the highest priority; ties go to the earliest.
func Highest(goals []Goal) (Goal, error) {
	if len(goals) == 0 {
		return Goal{}, ErrNoGoal
	}
	best := goals[0]
	for _, g := range goals[1:] {
		if g.Priority > best.Priority {
			best = g
		}
	}
	return best, nil
}
