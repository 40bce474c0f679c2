// Package main demonstrates the smallest useful plan: a miner who has to rest
// before walking to the mine.
package main

import (
	"context"
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap/interfaces/api"
)

func main() {
	// 1. Describe the world as it is now
	start := goap.NewState().
		With("energy", goap.Int(0)).
		With("at", goap.Enum("home")).
		With("ore", goap.Int(0))

	// 2. Describe what the miner can do
	actions := []goap.Action{
		goap.SimpleIncrement("rest", "energy", goap.Int(5)),
		goap.NewAction("walk_to_mine").
			WithPrecondition("energy", goap.GreaterThanOrEquals(goap.Int(5))).
			WithMutator(goap.Set("at", goap.Enum("mine"))).
			WithMutator(goap.Decrement("energy", goap.Int(2))).
			WithCost(2),
		goap.NewAction("mine").
			WithPrecondition("at", goap.Equals(goap.Enum("mine"))).
			WithPrecondition("energy", goap.GreaterThanOrEquals(goap.Int(2))).
			WithMutator(goap.Increment("ore", goap.Int(1))).
			WithMutator(goap.Decrement("energy", goap.Int(2))).
			WithCost(1),
	}

	// 3. Describe what the miner wants
	g := goap.NewGoal().
		WithName("haul").
		WithRequirement("ore", goap.GreaterThanOrEquals(goap.Int(2)))

	// 4. Plan
	p, ok, err := goap.MakePlan(context.Background(), start, actions, g)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}
	if !ok {
		log.Fatal("no plan reaches the goal")
	}

	fmt.Print(goap.FormatPlan(p))

	final, err := goap.ReplayPlan(start, p)
	if err != nil {
		log.Fatalf("replay failed: %v", err)
	}
	fmt.Printf("replayed: %s\n", final)
}
