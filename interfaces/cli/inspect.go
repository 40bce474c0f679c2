package cli

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap/application"
	api "github.com/felixgeelhaar/goap/interfaces/api"
)

// inspectOptions holds options for the inspect command.
type inspectOptions struct {
	configPath string
	outputJSON bool
}

// newInspectCmd creates the inspect command.
func (a *App) newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a scenario from its starting state",
		Long: `Inspect a scenario as the planner sees it from the starting state.

For every action this shows its preconditions evaluated against the start,
and whether it can run. For every goal it shows whether the start already
satisfies it, the raw goal distance and the heuristic's lower bound on the
remaining cost.

Examples:
  # Inspect a scenario
  goap inspect -c farm.yaml

  # Output as JSON
  goap inspect -c farm.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspectScenario(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file (required)")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "Output as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// actionReport describes an action against the starting state.
type actionReport struct {
	Key           string   `json:"key"`
	Cost          int      `json:"cost"`
	Preconditions []string `json:"preconditions"`
	Mutators      []string `json:"mutators"`
	Enabled       bool     `json:"enabled"`
	Error         string   `json:"error,omitempty"`
}

// goalReport describes a goal against the starting state.
type goalReport struct {
	Name      string   `json:"name"`
	Priority  int      `json:"priority"`
	Satisfied bool     `json:"satisfied"`
	Distance  float64  `json:"distance"`
	Estimate  *float64 `json:"estimate"`
	Error     string   `json:"error,omitempty"`
}

// scenarioReport is the inspect output.
type scenarioReport struct {
	Name      string         `json:"name"`
	Strategy  string         `json:"strategy"`
	Heuristic string         `json:"heuristic"`
	State     map[string]any `json:"state"`
	Actions   []actionReport `json:"actions"`
	Goals     []goalReport   `json:"goals"`
}

// inspectScenario loads the scenario and reports on it.
func (a *App) inspectScenario(opts *inspectOptions) error {
	result, err := api.LoadScenario(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	report, err := buildReport(result)
	if err != nil {
		return err
	}

	if opts.outputJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	a.inspectText(result, report)
	return nil
}

func buildReport(result *api.ConfigBuildResult) (scenarioReport, error) {
	heuristic, err := application.HeuristicByName(result.Heuristic)
	if err != nil {
		return scenarioReport{}, err
	}

	report := scenarioReport{
		Name:      result.Name,
		Strategy:  result.Strategy.String(),
		Heuristic: result.Heuristic,
		State:     result.State.ToMap(),
		Actions:   []actionReport{},
		Goals:     []goalReport{},
	}

	for _, act := range result.Actions {
		ar := actionReport{Key: act.Key, Cost: act.Cost(), Preconditions: []string{}, Mutators: []string{}}
		if e, ok := act.Effect(); ok {
			for _, m := range e.Mutators {
				ar.Mutators = append(ar.Mutators, m.String())
			}
		}
		conditions, err := act.Conditions(result.State)
		if err == nil {
			for _, c := range conditions {
				ar.Preconditions = append(ar.Preconditions, c.String())
			}
			ar.Enabled, err = act.Satisfied(result.State)
		}
		if err != nil {
			ar.Error = err.Error()
		}
		report.Actions = append(report.Actions, ar)
	}

	for _, g := range result.Goals {
		gr := goalReport{Name: g.Name, Priority: g.Priority}
		gr.Satisfied, err = g.Satisfied(result.State)
		if err == nil {
			gr.Distance, err = g.Distance(result.State)
		}
		if err == nil {
			var estimate float64
			estimate, err = heuristic(result.Actions, g)(result.State)
			// +Inf cannot be encoded as JSON; nil marks an unreachable goal.
			if err == nil && !math.IsInf(estimate, 1) {
				gr.Estimate = &estimate
			}
		}
		if err != nil {
			gr.Error = err.Error()
		}
		report.Goals = append(report.Goals, gr)
	}
	return report, nil
}

// inspectText prints the report for humans.
func (a *App) inspectText(result *api.ConfigBuildResult, report scenarioReport) {
	_, _ = fmt.Fprintf(a.stdout, "Scenario: %s\n", report.Name)
	_, _ = fmt.Fprintf(a.stdout, "  Strategy: %s\n", report.Strategy)
	_, _ = fmt.Fprintf(a.stdout, "  Heuristic: %s\n", report.Heuristic)
	_, _ = fmt.Fprintf(a.stdout, "  State: %s\n", result.State)

	_, _ = fmt.Fprintf(a.stdout, "\nActions:\n")
	for _, ar := range report.Actions {
		status := "blocked"
		if ar.Enabled {
			status = "enabled"
		}
		_, _ = fmt.Fprintf(a.stdout, "  %s (cost %d) [%s]\n", ar.Key, ar.Cost, status)
		for _, p := range ar.Preconditions {
			_, _ = fmt.Fprintf(a.stdout, "    requires %s\n", p)
		}
		for _, m := range ar.Mutators {
			_, _ = fmt.Fprintf(a.stdout, "    then %s\n", m)
		}
		if ar.Error != "" {
			_, _ = fmt.Fprintf(a.stdout, "    error: %s\n", ar.Error)
		}
	}

	_, _ = fmt.Fprintf(a.stdout, "\nGoals:\n")
	for _, gr := range report.Goals {
		_, _ = fmt.Fprintf(a.stdout, "  %s (priority %d)\n", gr.Name, gr.Priority)
		if gr.Error != "" {
			_, _ = fmt.Fprintf(a.stdout, "    error: %s\n", gr.Error)
			continue
		}
		_, _ = fmt.Fprintf(a.stdout, "    satisfied: %t\n", gr.Satisfied)
		_, _ = fmt.Fprintf(a.stdout, "    distance: %g\n", gr.Distance)
		if gr.Estimate == nil {
			_, _ = fmt.Fprintf(a.stdout, "    estimate: unreachable\n")
		} else {
			_, _ = fmt.Fprintf(a.stdout, "    estimate: %g\n", *gr.Estimate)
		}
	}
}
