package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap/infrastructure/telemetry"
	api "github.com/felixgeelhaar/goap/interfaces/api"
)

// errNoPlan is returned when the selected goal cannot be reached.
var errNoPlan = errors.New("no plan found")

// planOptions holds options for the plan command.
type planOptions struct {
	configPath    string
	goal          string
	all           bool
	maxExpansions int
	maxGenerated  int
	timeout       time.Duration
	heuristic     string
	jsonOutput    bool
	trace         bool
	metrics       bool
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a plan for a scenario",
		Long: `Compute the cheapest plan that takes the scenario's state to a goal.

Without --goal the goal with the highest priority is planned; ties go to the
goal declared first. With --all every goal is planned concurrently, and
batch.max_expansions caps the nodes expanded across all of them.

The command fails when the selected goal cannot be reached.

Examples:
  # Plan the highest-priority goal
  goap plan -c farm.yaml

  # Plan a named goal with a tighter budget
  goap plan -c farm.yaml --goal rich --max-expansions 1000 --timeout 500ms

  # Plan every goal and print JSON
  goap plan -c farm.yaml --all --json

  # Print spans and metrics to stderr
  goap plan -c farm.yaml --trace --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file (required)")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "Goal to plan (default: highest priority)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Plan every goal concurrently")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "Maximum expanded nodes (overrides scenario)")
	cmd.Flags().IntVar(&opts.maxGenerated, "max-generated", 0, "Maximum generated nodes (overrides scenario)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Planning timeout (overrides scenario)")
	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "", "Heuristic: relaxed, goal_distance or zero (overrides scenario)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print spans to stderr")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print metric totals to stderr")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runPlan loads the scenario and plans it with the telemetry requested.
func (a *App) runPlan(ctx context.Context, opts *planOptions) error {
	var extra []api.Option

	if opts.trace {
		tracing, err := telemetry.NewStdoutTracing(telemetry.TracingConfig{
			ServiceVersion: Version,
			Writer:         a.stderr,
		})
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() { _ = tracing.Shutdown(context.WithoutCancel(ctx)) }()
		extra = append(extra, api.WithTracer(tracing.Tracer()))
	}

	if opts.metrics {
		collector, err := telemetry.NewCollector()
		if err != nil {
			return fmt.Errorf("failed to set up metrics: %w", err)
		}
		defer func() {
			_ = collector.WriteSummary(context.WithoutCancel(ctx), a.stderr)
			_ = collector.Shutdown(context.WithoutCancel(ctx))
		}()
		extra = append(extra, api.WithMetrics(collector.Metrics()))
	}

	return a.planScenario(ctx, opts, extra...)
}

// planScenario loads the scenario, applies overrides and prints the plans.
func (a *App) planScenario(ctx context.Context, opts *planOptions, extra ...api.Option) error {
	result, err := api.LoadScenario(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	if opts.heuristic != "" {
		result.Heuristic = opts.heuristic
	}
	var overrides []api.Option
	if opts.maxExpansions > 0 {
		overrides = append(overrides, api.WithMaxExpansions(opts.maxExpansions))
	}
	if opts.maxGenerated > 0 {
		overrides = append(overrides, api.WithMaxGenerated(opts.maxGenerated))
	}
	if opts.timeout > 0 {
		overrides = append(overrides, api.WithTimeout(opts.timeout))
	}
	plannerOpts, err := api.PlannerOptions(result, append(overrides, extra...)...)
	if err != nil {
		return err
	}

	if opts.all {
		return a.planAll(ctx, opts, plannerOpts, result)
	}
	planner := api.NewPlanner(plannerOpts...)

	g, err := result.SelectGoal(opts.goal)
	if err != nil {
		return err
	}
	p, ok, err := planner.MakePlanWithStrategy(ctx, result.Strategy, result.State, result.Actions, g)
	if err != nil {
		return fmt.Errorf("planning %s failed: %w", g.Name, err)
	}

	out := newPlanOutput(g, api.BatchResult{Plan: p, Found: ok})
	if err := a.printPlans(opts, []planOutput{out}); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w for goal %s", errNoPlan, g.Name)
	}
	return nil
}

// planAll plans every goal of the scenario concurrently.
func (a *App) planAll(ctx context.Context, opts *planOptions, plannerOpts []api.Option, result *api.ConfigBuildResult) error {
	var shared *api.Budget
	if result.BatchMaxExpansions > 0 {
		shared = api.NewBudget(api.SearchLimits(result.BatchMaxExpansions, 0))
		plannerOpts = append(plannerOpts, api.WithSharedBudget(shared))
	}
	planner := api.NewPlanner(plannerOpts...)

	var batchOpts []api.BatchOption
	if result.MaxConcurrent > 0 {
		batchOpts = append(batchOpts, api.WithMaxConcurrent(result.MaxConcurrent))
	}
	batch := api.NewBatchPlanner(planner, result.Actions, batchOpts...)

	reqs := make([]api.BatchRequest, len(result.Goals))
	for i, g := range result.Goals {
		reqs[i] = api.BatchRequest{State: result.State, Goal: g, Strategy: result.Strategy}
	}
	results := batch.PlanAll(ctx, reqs)

	outputs := make([]planOutput, len(results))
	var errs []error
	for i, r := range results {
		g := result.Goals[i]
		outputs[i] = newPlanOutput(g, r)
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("planning %s failed: %w", g.Name, r.Err))
		}
	}
	if err := a.printPlans(opts, outputs); err != nil {
		return err
	}
	if shared != nil && !opts.jsonOutput {
		snap := shared.Snapshot()
		_, _ = fmt.Fprintf(a.stdout, "\nBatch budget: %d of %d expansions used\n",
			snap.Consumed[api.Expansions], snap.Limits[api.Expansions])
	}
	return errors.Join(errs...)
}

// planOutput is the JSON form of one planned goal.
type planOutput struct {
	Goal     string             `json:"goal"`
	Priority int                `json:"priority"`
	Found    bool               `json:"found"`
	PlanID   string             `json:"plan_id,omitempty"`
	Cost     int                `json:"cost"`
	Expanded int                `json:"expanded"`
	Steps    []stepOutput       `json:"steps"`
	Final    map[string]any     `json:"final_state,omitempty"`
	Budget   api.BudgetSnapshot `json:"budget"`
	Error    string             `json:"error,omitempty"`

	plan api.Plan
}

// stepOutput is the JSON form of one plan step.
type stepOutput struct {
	Action   string   `json:"action"`
	Cost     int      `json:"cost"`
	Mutators []string `json:"mutators"`
}

func newPlanOutput(g api.Goal, r api.BatchResult) planOutput {
	out := planOutput{
		Goal:     g.Name,
		Priority: g.Priority,
		Found:    r.Found,
		Steps:    []stepOutput{},
		Budget:   r.Plan.Budget,
		plan:     r.Plan,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		return out
	}
	if !r.Found {
		return out
	}

	out.PlanID = r.Plan.ID
	out.Cost = r.Plan.Cost
	out.Expanded = r.Plan.Expanded
	for _, e := range api.GetEffectsFromPlan(r.Plan) {
		step := stepOutput{Action: e.Action, Cost: e.Cost, Mutators: make([]string, len(e.Mutators))}
		for i, m := range e.Mutators {
			step.Mutators[i] = m.String()
		}
		out.Steps = append(out.Steps, step)
	}
	if final, err := r.Plan.Final(); err == nil {
		out.Final = final.ToMap()
	}
	return out
}

// printPlans writes the outputs as JSON or as human-readable traces.
func (a *App) printPlans(opts *planOptions, outputs []planOutput) error {
	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if opts.all {
			return enc.Encode(outputs)
		}
		return enc.Encode(outputs[0])
	}

	for i, out := range outputs {
		if i > 0 {
			_, _ = fmt.Fprintln(a.stdout)
		}
		_, _ = fmt.Fprintf(a.stdout, "Goal: %s (priority %d)\n", out.Goal, out.Priority)
		switch {
		case out.Error != "":
			_, _ = fmt.Fprintf(a.stdout, "  Error: %s\n", out.Error)
		case !out.Found:
			_, _ = fmt.Fprintf(a.stdout, "  No plan found\n")
		default:
			_, _ = fmt.Fprintf(a.stdout, "Plan %s\n", out.PlanID)
			_, _ = fmt.Fprint(a.stdout, api.FormatPlan(out.plan))
		}
	}
	return nil
}
