// Package main loads a scenario file and plans every goal in it.
//
// Run from the repository root:
//
//	go run ./example/02-scenario
package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	goap "github.com/felixgeelhaar/goap/interfaces/api"
)

func main() {
	scenario, err := goap.LoadScenario(filepath.Join("example", "02-scenario", "farm.yaml"))
	if err != nil {
		log.Fatalf("failed to load scenario: %v", err)
	}

	opts, err := goap.PlannerOptions(scenario)
	if err != nil {
		log.Fatalf("invalid planner settings: %v", err)
	}
	planner := goap.NewPlanner(opts...)

	// Plan the goal a caller would pick: highest priority, first declared wins.
	g, err := scenario.SelectGoal("")
	if err != nil {
		log.Fatalf("no goal: %v", err)
	}
	p, ok, err := planner.MakePlan(context.Background(), scenario.State, scenario.Actions, g)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}
	if ok {
		fmt.Printf("== %s ==\n%s\n", g.Name, goap.FormatPlan(p))
	}

	// Plan every goal concurrently, capping the total work of the batch.
	shared := goap.NewBudget(goap.SearchLimits(scenario.BatchMaxExpansions, 0))
	batchPlanner := goap.NewPlanner(append(opts, goap.WithSharedBudget(shared))...)
	batch := goap.NewBatchPlanner(batchPlanner, scenario.Actions, goap.WithMaxConcurrent(scenario.MaxConcurrent))
	reqs := make([]goap.BatchRequest, len(scenario.Goals))
	for i, g := range scenario.Goals {
		reqs[i] = goap.BatchRequest{State: scenario.State, Goal: g}
	}
	for i, r := range batch.PlanAll(context.Background(), reqs) {
		switch {
		case r.Err != nil:
			fmt.Printf("%s: error: %v\n", scenario.Goals[i].Name, r.Err)
		case !r.Found:
			fmt.Printf("%s: unreachable\n", scenario.Goals[i].Name)
		default:
			fmt.Printf("%s: %v (cost %d)\n", scenario.Goals[i].Name, r.Plan.Actions(), r.Plan.Cost)
		}
	}
	fmt.Printf("batch used %d expansions\n", shared.Snapshot().Consumed[goap.Expansions])
}
