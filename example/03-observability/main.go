// Package main demonstrates planner observability: spans written to stdout,
// metrics collected in memory and structured JSON logs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/felixgeelhaar/goap/infrastructure/logging"
	"github.com/felixgeelhaar/goap/infrastructure/telemetry"
	goap "github.com/felixgeelhaar/goap/interfaces/api"
)

func main() {
	ctx := context.Background()

	// Spans for every planning call, pretty-printed to stdout.
	tracing, err := telemetry.NewStdoutTracing(telemetry.TracingConfig{
		ServiceName:    "observability-example",
		ServiceVersion: "1.0.0",
		Writer:         os.Stdout,
		PrettyPrint:    true,
	})
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() { _ = tracing.Shutdown(ctx) }()

	// Metrics kept in memory and summarized at the end.
	collector, err := telemetry.NewCollector()
	if err != nil {
		log.Fatalf("failed to set up metrics: %v", err)
	}
	defer func() { _ = collector.Shutdown(ctx) }()

	// Debug-level JSON logs on stderr.
	logger := logging.New(logging.Config{Level: "debug", Format: "json", Output: os.Stderr})

	planner := goap.NewPlanner(
		goap.WithTracer(tracing.Tracer()),
		goap.WithMetrics(collector.Metrics()),
		goap.WithLogger(logger),
		goap.WithTimeout(time.Second),
	)

	start := goap.NewState().With("water", goap.Int(0)).With("thirsty", goap.Bool(true))
	actions := []goap.Action{
		goap.SimpleIncrement("fetch_water", "water", goap.Int(1)),
		goap.NewAction("drink").
			WithPrecondition("water", goap.GreaterThanOrEquals(goap.Int(1))).
			WithMutator(goap.Decrement("water", goap.Int(1))).
			WithMutator(goap.Set("thirsty", goap.Bool(false))).
			WithCost(1),
	}

	goals := []goap.Goal{
		goap.NewGoal().WithName("quench").WithRequirement("thirsty", goap.Equals(goap.Bool(false))),
		goap.NewGoal().WithName("stockpile").WithRequirement("water", goap.GreaterThanOrEquals(goap.Int(3))),
		// Nothing ever makes water negative, so this one fails.
		goap.NewGoal().WithName("debt").WithRequirement("water", goap.LessThan(goap.Int(0))),
	}

	for _, g := range goals {
		p, ok, err := planner.MakePlan(ctx, start, actions, g)
		switch {
		case err != nil:
			fmt.Printf("%s: error: %v\n", g.Name, err)
		case !ok:
			fmt.Printf("%s: unreachable\n", g.Name)
		default:
			fmt.Printf("%s: %v (cost %d)\n", g.Name, p.Actions(), p.Cost)
		}
	}

	fmt.Println("\nmetrics:")
	if err := collector.WriteSummary(ctx, os.Stdout); err != nil {
		log.Fatalf("failed to collect metrics: %v", err)
	}
}
