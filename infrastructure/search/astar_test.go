package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/felixgeelhaar/goap/domain/policy"
)

var errBoom = errors.New("boom")

// graph is a weighted digraph over string vertices.
type graph struct {
	start  string
	goals  map[string]bool
	edges  map[string][]Edge[string]
	h      map[string]float64
	failOn string
}

func (g *graph) Start() string       { return g.start }
func (g *graph) Key(n string) string { return n }

func (g *graph) IsGoal(n string) (bool, error) {
	return g.goals[n], nil
}

func (g *graph) Heuristic(n string) (float64, error) {
	return g.h[n], nil
}

func (g *graph) Successors(_ context.Context, n string) ([]Edge[string], error) {
	if n == g.failOn {
		return nil, errBoom
	}
	return g.edges[n], nil
}

func (g *graph) edge(from, to string, cost int) *graph {
	g.edges[from] = append(g.edges[from], Edge[string]{Node: to, Cost: cost})
	return g
}

func newGraph(start string, goals ...string) *graph {
	g := &graph{start: start, goals: map[string]bool{}, edges: map[string][]Edge[string]{}, h: map[string]float64{}}
	for _, n := range goals {
		g.goals[n] = true
	}
	return g
}

// bruteForce returns the cheapest cost from start to any goal by enumerating
// simple paths, or -1 when none exists.
func bruteForce(g *graph, from string) int {
	best := -1
	onPath := map[string]bool{}
	var dfs func(n string, cost int)
	dfs = func(n string, cost int) {
		if g.goals[n] {
			if best < 0 || cost < best {
				best = cost
			}
			return
		}
		onPath[n] = true
		for _, e := range g.edges[n] {
			if !onPath[e.Node] {
				dfs(e.Node, cost+e.Cost)
			}
		}
		onPath[n] = false
	}
	dfs(from, 0)
	return best
}

func pathCost(t *testing.T, g *graph, path []string) int {
	t.Helper()
	total := 0
	for i := 1; i < len(path); i++ {
		found := false
		for _, e := range g.edges[path[i-1]] {
			if e.Node == path[i] {
				total += e.Cost
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("path uses missing edge %s->%s", path[i-1], path[i])
		}
	}
	return total
}

func TestAStar_StartIsGoal(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "s").edge("s", "a", 1)
	res, ok, err := AStar[string](context.Background(), g, nil)
	if err != nil || !ok {
		t.Fatalf("AStar() = %v, %v", ok, err)
	}
	if len(res.Path) != 1 || res.Cost != 0 || res.Expanded != 0 {
		t.Errorf("AStar() = %+v, want single-node path", res)
	}
}

func TestAStar_NoPath(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "g").edge("s", "a", 1).edge("a", "s", 1)
	res, ok, err := AStar[string](context.Background(), g, nil)
	if err != nil {
		t.Fatalf("AStar() error: %v", err)
	}
	if ok {
		t.Errorf("AStar() found path %v in a disconnected graph", res.Path)
	}
	if res.Expanded != 2 {
		t.Errorf("Expanded = %d, want 2", res.Expanded)
	}
}

// The heuristic below is admissible but inconsistent: c is first closed via
// the expensive route and must be reopened once the cheap one is found.
func TestAStar_ReopensWithInconsistentHeuristic(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "g").
		edge("s", "a", 1).
		edge("s", "b", 1).
		edge("a", "c", 1).
		edge("b", "c", 3).
		edge("c", "g", 3)
	g.h["a"] = 4

	res, ok, err := AStar[string](context.Background(), g, nil)
	if err != nil || !ok {
		t.Fatalf("AStar() = %v, %v", ok, err)
	}
	if res.Cost != 5 {
		t.Errorf("Cost = %d, want 5", res.Cost)
	}
	if got := strings.Join(res.Path, ""); got != "sacg" {
		t.Errorf("Path = %s, want sacg", got)
	}
}

func TestAStar_FIFOTieBreak(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "g").
		edge("s", "a", 1).
		edge("s", "b", 1).
		edge("a", "g", 1).
		edge("b", "g", 1)

	for i := 0; i < 5; i++ {
		res, ok, err := AStar[string](context.Background(), g, nil)
		if err != nil || !ok {
			t.Fatalf("AStar() = %v, %v", ok, err)
		}
		if got := strings.Join(res.Path, ""); got != "sag" {
			t.Errorf("Path = %s, want sag", got)
		}
	}
}

func TestAStar_InfiniteHeuristicPrunes(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "g").
		edge("s", "dead", 1).
		edge("dead", "x", 1).
		edge("x", "y", 1).
		edge("s", "g", 10)
	g.h["dead"] = math.Inf(1)

	res, ok, err := AStar[string](context.Background(), g, nil)
	if err != nil || !ok {
		t.Fatalf("AStar() = %v, %v", ok, err)
	}
	if res.Expanded != 1 {
		t.Errorf("Expanded = %d, want 1 (pruned branch must not be expanded)", res.Expanded)
	}
}

func TestAStar_BudgetExhausted(t *testing.T) {
	t.Parallel()

	g := newGraph("n0", "n9")
	for i := 0; i < 9; i++ {
		g.edge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1), 1)
	}

	_, ok, err := AStar[string](context.Background(), g, policy.NewBudget(policy.SearchLimits(3, 0)))
	if ok {
		t.Fatal("AStar() should not succeed with too small a budget")
	}
	if !errors.Is(err, ErrBudgetExhausted) || !errors.Is(err, policy.ErrBudgetExceeded) {
		t.Errorf("AStar() error = %v, want ErrBudgetExhausted wrapping ErrBudgetExceeded", err)
	}

	res, ok, err := AStar[string](context.Background(), g, policy.NewBudget(policy.SearchLimits(9, 0)))
	if err != nil || !ok || res.Cost != 9 {
		t.Errorf("AStar() with enough budget = %+v, %v, %v", res, ok, err)
	}

	_, _, err = AStar[string](context.Background(), g, policy.NewBudget(policy.SearchLimits(0, 4)))
	if !errors.Is(err, ErrBudgetExhausted) || !errors.Is(err, policy.ErrBudgetExceeded) {
		t.Errorf("AStar() with generated limit error = %v, want ErrBudgetExhausted", err)
	}
}

func TestAStar_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGraph("s", "g").edge("s", "g", 1)
	_, ok, err := AStar[string](ctx, g, nil)
	if ok {
		t.Fatal("AStar() should stop on a cancelled context")
	}
	if !errors.Is(err, ErrBudgetExhausted) || !errors.Is(err, context.Canceled) {
		t.Errorf("AStar() error = %v, want ErrBudgetExhausted wrapping context.Canceled", err)
	}
}

func TestAStar_SuccessorErrorPropagates(t *testing.T) {
	t.Parallel()

	g := newGraph("s", "g").edge("s", "a", 1).edge("a", "g", 1)
	g.failOn = "a"

	_, ok, err := AStar[string](context.Background(), g, nil)
	if ok || !errors.Is(err, errBoom) {
		t.Errorf("AStar() = %v, %v; want errBoom", ok, err)
	}
}

// Random small graphs, checked against exhaustive enumeration with a zero
// heuristic and with randomly weakened exact distances (admissible, usually
// inconsistent).
func TestAStar_OptimalAgainstBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	const nodes = 7

	for trial := 0; trial < 200; trial++ {
		g := newGraph("v0", fmt.Sprintf("v%d", nodes-1))
		for i := 0; i < nodes; i++ {
			for j := 0; j < nodes; j++ {
				if i != j && rng.Intn(3) == 0 {
					g.edge(fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", j), rng.Intn(6))
				}
			}
		}

		want := bruteForce(g, "v0")

		for _, weakened := range []bool{false, true} {
			g.h = map[string]float64{}
			if weakened {
				for i := 0; i < nodes; i++ {
					v := fmt.Sprintf("v%d", i)
					exact := bruteForce(g, v)
					if exact < 0 {
						g.h[v] = math.Inf(1)
						continue
					}
					g.h[v] = math.Floor(float64(exact) * rng.Float64())
				}
			}

			res, ok, err := AStar[string](context.Background(), g, nil)
			if err != nil {
				t.Fatalf("trial %d: AStar() error: %v", trial, err)
			}
			if want < 0 {
				if ok {
					t.Errorf("trial %d: found path %v but none exists", trial, res.Path)
				}
				continue
			}
			if !ok {
				t.Fatalf("trial %d (weakened=%v): no path, want cost %d", trial, weakened, want)
			}
			if res.Cost != want {
				t.Errorf("trial %d (weakened=%v): Cost = %d, want %d", trial, weakened, res.Cost, want)
			}
			if got := pathCost(t, g, res.Path); got != res.Cost {
				t.Errorf("trial %d: path %v costs %d, reported %d", trial, res.Path, got, res.Cost)
			}
		}
	}
}
