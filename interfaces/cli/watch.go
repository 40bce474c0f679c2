package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap/infrastructure/logging"
)

// watchOptions holds options for the watch command.
type watchOptions struct {
	planOptions
	debounce time.Duration
}

// newWatchCmd creates the watch command.
func (a *App) newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plan whenever a scenario file changes",
		Long: `Plan a scenario, then plan it again every time the file is saved.

Errors in the scenario are reported and the watch continues, so a scenario
can be edited until it plans as expected. Stop with Ctrl-C.

Examples:
  # Watch the highest-priority goal
  goap watch -c farm.yaml

  # Watch every goal
  goap watch -c farm.yaml --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watchScenario(cmd.Context(), opts)
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
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 200*time.Millisecond, "Wait this long after a change before planning")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// watchScenario plans once and then on every change until ctx is done.
func (a *App) watchScenario(ctx context.Context, opts *watchOptions) error {
	absPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	opts.configPath = absPath

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	a.replan(ctx, &opts.planOptions)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug().
				Add(logging.Component("watch")).
				Add(logging.Str("event", event.Op.String())).
				Msg("scenario changed")
			pending = time.After(opts.debounce)
		case <-pending:
			pending = nil
			a.replan(ctx, &opts.planOptions)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().
				Add(logging.Component("watch")).
				Add(logging.ErrorField(err)).
				Msg("watch error")
		}
	}
}

// replan plans the scenario and reports failures without stopping the watch.
func (a *App) replan(ctx context.Context, opts *planOptions) {
	_, _ = fmt.Fprintf(a.stdout, "==> %s\n", filepath.Base(opts.configPath))
	if err := a.planScenario(ctx, opts); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
}
