// Package search implements best-first graph search over caller-defined problems.
package search

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/felixgeelhaar/goap/domain/policy"
)

// Edge is a successor together with the cost of reaching it.
type Edge[N any] struct {
	Node N
	Cost int
}

// Problem describes a search graph. Key must return equal strings exactly
// for nodes that represent the same vertex.
type Problem[N any] interface {
	Start() N
	Key(n N) string
	Successors(ctx context.Context, n N) ([]Edge[N], error)
	// Heuristic estimates the remaining cost. +Inf prunes the node.
	Heuristic(n N) (float64, error)
	IsGoal(n N) (bool, error)
}

// Result is a found path, start node first.
type Result[N any] struct {
	Path      []N
	Cost      int
	Expanded  int
	Generated int
}

type record[N any] struct {
	node   N
	parent int
	g      int
}

// AStar runs A* from p.Start(). It returns ok=false with a nil error when no
// goal is reachable. A nil budget is unlimited.
//
// The heuristic must be admissible for the returned path to be optimal; it
// need not be consistent since vertices are reopened when a cheaper route
// is found.
func AStar[N any](ctx context.Context, p Problem[N], budget *policy.Budget) (Result[N], bool, error) {
	if budget == nil {
		budget = policy.UnlimitedBudget()
	}

	var (
		records []record[N]
		open    openSet
		bestG   = make(map[string]int)
		seq     uint64
		res     Result[N]
	)

	push := func(n N, parent, g int) error {
		h, err := p.Heuristic(n)
		if err != nil {
			return err
		}
		if math.IsInf(h, 1) {
			return nil
		}
		records = append(records, record[N]{node: n, parent: parent, g: g})
		heap.Push(&open, &openItem{record: len(records) - 1, g: g, f: float64(g) + h, seq: seq})
		seq++
		return nil
	}

	start := p.Start()
	bestG[p.Key(start)] = 0
	if err := push(start, -1, 0); err != nil {
		return res, false, err
	}

	for open.Len() > 0 {
		item := heap.Pop(&open).(*openItem)
		rec := records[item.record]
		key := p.Key(rec.node)
		if item.g > bestG[key] {
			continue
		}

		done, err := p.IsGoal(rec.node)
		if err != nil {
			return res, false, err
		}
		if done {
			res.Path = walk(records, item.record)
			res.Cost = item.g
			return res, true, nil
		}

		if err := ctx.Err(); err != nil {
			return res, false, fmt.Errorf("%w: %w", ErrBudgetExhausted, err)
		}
		if err := budget.Consume(policy.Expansions, 1); err != nil {
			return res, false, fmt.Errorf("%w: %w", ErrBudgetExhausted, err)
		}
		res.Expanded++

		edges, err := p.Successors(ctx, rec.node)
		if err != nil {
			return res, false, err
		}
		for _, e := range edges {
			g := item.g + e.Cost
			k := p.Key(e.Node)
			if old, seen := bestG[k]; seen && g >= old {
				continue
			}
			bestG[k] = g
			if err := budget.Consume(policy.Generated, 1); err != nil {
				return res, false, fmt.Errorf("%w: %w", ErrBudgetExhausted, err)
			}
			res.Generated++
			if err := push(e.Node, item.record, g); err != nil {
				return res, false, err
			}
		}
	}

	return res, false, nil
}

func walk[N any](records []record[N], i int) []N {
	var rev []N
	for ; i >= 0; i = records[i].parent {
		rev = append(rev, records[i].node)
	}
	path := make([]N, len(rev))
	for j, n := range rev {
		path[len(rev)-1-j] = n
	}
	return path
}
