// Package cli provides a command-line interface for the goap planner.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap/infrastructure/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	logLevel  string
	logFormat string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "goap",
		Short: "Goal-oriented action planner",
		Long: `goap computes the cheapest sequence of actions that takes a world state
to one satisfying a goal.

Planning problems are described in YAML or JSON scenario files: a starting
state, a library of costed actions with preconditions and effects, and one
or more prioritized goals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initLogging()
		},
	}
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	app.root.PersistentFlags().StringVar(&app.logFormat, "log-format", "console", "Log format (console or json)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newValidateCmd(),
		app.newPlanCmd(),
		app.newWatchCmd(),
		app.newInspectCmd(),
		app.newExportSchemaCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// initLogging points the default logger at stderr so plans on stdout stay
// machine-readable.
func (a *App) initLogging() {
	logging.Init(logging.Config{
		Level:  a.logLevel,
		Format: a.logFormat,
		Output: a.stderr,
	})
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "goap version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
