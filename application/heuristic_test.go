package application

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/felixgeelhaar/goap/domain/action"
	"github.com/felixgeelhaar/goap/domain/config"
	"github.com/felixgeelhaar/goap/domain/goal"
	"github.com/felixgeelhaar/goap/domain/plan"
	"github.com/felixgeelhaar/goap/domain/world"
)

func TestRelaxedHeuristic_Values(t *testing.T) {
	t.Parallel()

	inf := math.Inf(1)
	tests := []struct {
		name    string
		state   world.State
		actions []action.Action
		g       goal.Goal
		want    float64
	}{
		{
			name:    "satisfied",
			state:   energy(10),
			actions: []action.Action{action.SimpleIncrement("sleep", "energy", world.Int(3))},
			g:       energyGoal(10),
			want:    0,
		},
		{
			name:    "steps needed",
			state:   energy(0),
			actions: []action.Action{action.SimpleIncrement("sleep", "energy", world.Int(1))},
			g:       energyGoal(4),
			want:    4,
		},
		{
			name:    "at least one step",
			state:   energy(9),
			actions: []action.Action{action.SimpleIncrement("sleep", "energy", world.Int(3))},
			g:       energyGoal(10),
			want:    1,
		},
		{
			name:    "no helpful action",
			state:   energy(0),
			actions: []action.Action{action.SimpleDecrement("run", "energy", world.Int(1))},
			g:       energyGoal(1),
			want:    inf,
		},
		{
			name:  "cheapest helpful setter",
			state: energy(0),
			actions: []action.Action{
				action.New("coffee").WithMutator(world.Set("energy", world.Int(20))).WithCost(2),
				action.New("tea").WithMutator(world.Set("energy", world.Int(5))).WithCost(1),
				action.SimpleIncrement("sleep", "energy", world.Int(1)),
			},
			g:    energyGoal(10),
			want: 1,
		},
		{
			name:  "setter repositions before stepping down",
			state: energy(0),
			actions: []action.Action{
				action.New("charge").WithMutator(world.Set("energy", world.Int(8))).WithCost(3),
				action.New("drain").WithMutator(world.Decrement("energy", world.Int(1))).WithCost(2),
			},
			g:    goal.New().WithRequirement("energy", world.Equals(world.Int(5))),
			want: 2,
		},
		{
			name:  "max over requirements",
			state: energy(0).With("fed", world.Bool(false)),
			actions: []action.Action{
				action.SimpleIncrement("sleep", "energy", world.Int(1)),
				action.New("feast").WithMutator(world.Set("fed", world.Bool(true))).WithCost(7),
			},
			g:    energyGoal(3).WithRequirement("fed", world.Equals(world.Bool(true))),
			want: 7,
		},
		{
			name:    "nan cannot be stepped",
			state:   world.NewState().With("energy", world.Float(math.NaN())),
			actions: []action.Action{action.SimpleIncrement("sleep", "energy", world.Float(1))},
			g:       goal.New().WithRequirement("energy", world.GreaterThanOrEquals(world.Float(10))),
			want:    inf,
		},
		{
			name:  "nan left by a setter",
			state: world.NewState().With("energy", world.Float(math.NaN())),
			actions: []action.Action{
				action.SimpleIncrement("sleep", "energy", world.Float(1)),
				action.New("reset").WithMutator(world.Set("energy", world.Float(10))).WithCost(2),
			},
			g:    goal.New().WithRequirement("energy", world.GreaterThanOrEquals(world.Float(10))),
			want: 2,
		},
		{
			name:    "enum requirement without setter",
			state:   world.NewState().With("at", world.Enum("home")),
			actions: []action.Action{action.Simple("stay", "at", world.Enum("home"))},
			g:       goal.New().WithRequirement("at", world.Equals(world.Enum("mine"))),
			want:    inf,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := RelaxedHeuristic(tt.actions, tt.g)(tt.state)
			if err != nil {
				t.Fatalf("heuristic error: %v", err)
			}
			if got != tt.want {
				t.Errorf("h = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalDistanceHeuristic(t *testing.T) {
	t.Parallel()

	h := GoalDistanceHeuristic(nil, energyGoal(10))
	got, err := h(energy(4))
	if err != nil || got != 6 {
		t.Errorf("h = %v, %v; want 6", got, err)
	}
	if got, _ := ZeroHeuristic(nil, energyGoal(10))(energy(4)); got != 0 {
		t.Errorf("ZeroHeuristic = %v, want 0", got)
	}
}

func TestHeuristicByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"default", "", 3},
		{"relaxed", config.HeuristicRelaxed, 3},
		{"goal distance", config.HeuristicGoalDistance, 6},
		{"zero", config.HeuristicZero, 0},
	}

	actions := []action.Action{action.SimpleIncrement("sleep", "energy", world.Int(2))}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			factory, err := HeuristicByName(tt.input)
			if err != nil {
				t.Fatalf("HeuristicByName(%q) error: %v", tt.input, err)
			}
			got, err := factory(actions, energyGoal(10))(energy(4))
			if err != nil {
				t.Fatalf("heuristic error: %v", err)
			}
			if got != tt.want {
				t.Errorf("h = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := HeuristicByName("dijkstra"); !errors.Is(err, config.ErrUnknownHeuristic) {
		t.Errorf("HeuristicByName(dijkstra) error = %v, want ErrUnknownHeuristic", err)
	}
}

// randomProblem builds a small closed world: two booleans and a counter held
// in [0, 3] by preconditions.
func randomProblem(rng *rand.Rand) (world.State, []action.Action, goal.Goal) {
	start := world.NewState().
		With("a", world.Bool(rng.Intn(2) == 0)).
		With("b", world.Bool(rng.Intn(2) == 0)).
		With("n", world.Int(int64(rng.Intn(4))))

	facts := []string{"a", "b"}
	var actions []action.Action
	count := 3 + rng.Intn(4)
	for i := 0; i < count; i++ {
		a := action.New(string(rune('p' + i))).WithCost(rng.Intn(5))
		switch rng.Intn(5) {
		case 0:
			a = a.WithMutator(world.Set(facts[rng.Intn(2)], world.Bool(rng.Intn(2) == 0)))
		case 1:
			d := int64(1 + rng.Intn(2))
			a = a.WithPrecondition("n", world.LessThanOrEquals(world.Int(3-d))).
				WithMutator(world.Increment("n", world.Int(d)))
		case 2:
			a = a.WithPrecondition("n", world.GreaterThanOrEquals(world.Int(1))).
				WithMutator(world.Decrement("n", world.Int(1)))
		case 3:
			a = a.WithMutator(world.Set("n", world.Int(int64(rng.Intn(4)))))
		default:
			a = a.WithPrecondition("n", world.LessThan(world.Int(3))).
				WithMutator(world.Set(facts[rng.Intn(2)], world.Bool(rng.Intn(2) == 0))).
				WithMutator(world.Increment("n", world.Int(1)))
		}
		if rng.Intn(3) == 0 {
			a = a.WithPrecondition(facts[rng.Intn(2)], world.Equals(world.Bool(rng.Intn(2) == 0)))
		}
		actions = append(actions, a)
	}

	k := world.Int(int64(rng.Intn(4)))
	comparisons := []world.Comparison{
		world.Equals(k), world.NotEquals(k), world.GreaterThan(k),
		world.GreaterThanOrEquals(k), world.LessThan(k), world.LessThanOrEquals(k),
	}
	g := goal.New().WithRequirement("n", comparisons[rng.Intn(len(comparisons))])
	if rng.Intn(2) == 0 {
		g = g.WithRequirement(facts[rng.Intn(2)], world.Equals(world.Bool(rng.Intn(2) == 0)))
	}
	return start, actions, g
}

// exactDistances enumerates every reachable state and computes its exact
// cost-to-goal by relaxation until a fixpoint.
func exactDistances(t *testing.T, start world.State, actions []action.Action, g goal.Goal) (map[string]world.State, map[string]float64) {
	t.Helper()

	type edge struct {
		to   string
		cost float64
	}
	states := map[string]world.State{start.Fingerprint(): start}
	edges := map[string][]edge{}
	queue := []world.State{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		succ, err := Successors(plan.Initial(s), actions)
		if err != nil {
			t.Fatalf("Successors() error: %v", err)
		}
		for _, e := range succ {
			next := e.Node.State()
			key := next.Fingerprint()
			edges[s.Fingerprint()] = append(edges[s.Fingerprint()], edge{to: key, cost: float64(e.Cost)})
			if _, seen := states[key]; !seen {
				states[key] = next
				queue = append(queue, next)
			}
		}
	}

	dist := map[string]float64{}
	for key, s := range states {
		ok, err := g.Satisfied(s)
		if err != nil {
			t.Fatalf("Satisfied() error: %v", err)
		}
		dist[key] = math.Inf(1)
		if ok {
			dist[key] = 0
		}
	}
	for changed := true; changed; {
		changed = false
		for from, es := range edges {
			for _, e := range es {
				if d := e.cost + dist[e.to]; d < dist[from] {
					dist[from] = d
					changed = true
				}
			}
		}
	}
	return states, dist
}

func TestRelaxedHeuristic_AdmissibleAndOptimal(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	relaxed := quietPlanner()
	uniform := quietPlanner(WithHeuristic(ZeroHeuristic))

	for trial := 0; trial < 300; trial++ {
		start, actions, g := randomProblem(rng)
		states, dist := exactDistances(t, start, actions, g)

		h := RelaxedHeuristic(actions, g)
		for key, s := range states {
			est, err := h(s)
			if err != nil {
				t.Fatalf("trial %d: heuristic error: %v", trial, err)
			}
			if est > dist[key] {
				t.Fatalf("trial %d: h(%s) = %v overestimates %v for goal %s", trial, s, est, dist[key], g)
			}
		}

		want := dist[start.Fingerprint()]
		for name, p := range map[string]*Planner{"relaxed": relaxed, "uniform": uniform} {
			result, ok, err := p.MakePlan(context.Background(), start, actions, g)
			if err != nil {
				t.Fatalf("trial %d (%s): MakePlan() error: %v", trial, name, err)
			}
			if math.IsInf(want, 1) {
				if ok {
					t.Errorf("trial %d (%s): found plan %v for an unreachable goal", trial, name, result.Actions())
				}
				continue
			}
			if !ok {
				t.Fatalf("trial %d (%s): no plan, want cost %v", trial, name, want)
			}
			if float64(result.Cost) != want {
				t.Errorf("trial %d (%s): Cost = %d, want %v", trial, name, result.Cost, want)
			}

			final, err := plan.Replay(start, result.Effects())
			if err != nil {
				t.Fatalf("trial %d (%s): Replay() error: %v", trial, name, err)
			}
			if ok, _ := g.Satisfied(final); !ok {
				t.Errorf("trial %d (%s): plan ends in %s which misses %s", trial, name, final, g)
			}
		}
	}
}
