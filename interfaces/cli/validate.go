package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/felixgeelhaar/goap/interfaces/api"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file",
		Long: `Validate a planning scenario file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (name, version)
  - Operators, mutator kinds and value types
  - Facts referenced by actions and goals exist in the state
  - Environment variable references (in strict mode)

Examples:
  # Validate a scenario file
  goap validate -c farm.yaml

  # Strict validation (fail on missing env vars)
  goap validate -c farm.yaml --strict

  # Show the JSON schema for scenarios
  goap validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to scenario file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for scenarios")

	return cmd
}

// validateConfig validates the scenario file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("scenario file path is required (-c flag)")
	}

	loaderOpts := []api.ConfigLoaderOption{
		api.ConfigWithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, api.ConfigWithStrictEnv(true))
	}

	loader := api.NewConfigLoaderWithOptions(loaderOpts...)
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// The builder catches values the validator cannot, such as unsupported scalars.
	result, err := api.NewConfigBuilder(config).Build()
	if err != nil {
		return fmt.Errorf("scenario build failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Scenario is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", config.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", config.Version)
	if config.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", config.Description)
	}

	fmt.Fprintf(a.stdout, "\nScenario summary:\n")
	fmt.Fprintf(a.stdout, "  Facts: %d\n", result.State.Len())
	fmt.Fprintf(a.stdout, "  Actions: %d\n", len(result.Actions))
	fmt.Fprintf(a.stdout, "  Goals: %d\n", len(result.Goals))
	for _, g := range result.Goals {
		fmt.Fprintf(a.stdout, "    - %s (priority %d, %d requirements)\n", g.Name, g.Priority, g.Len())
	}
	fmt.Fprintf(a.stdout, "  Strategy: %s\n", result.Strategy)
	fmt.Fprintf(a.stdout, "  Heuristic: %s\n", result.Heuristic)
	if result.MaxExpansions > 0 {
		fmt.Fprintf(a.stdout, "  Max expansions: %d\n", result.MaxExpansions)
	}
	if result.MaxGenerated > 0 {
		fmt.Fprintf(a.stdout, "  Max generated: %d\n", result.MaxGenerated)
	}
	if result.Timeout > 0 {
		fmt.Fprintf(a.stdout, "  Timeout: %s\n", result.Timeout)
	}
	if result.BatchMaxExpansions > 0 {
		fmt.Fprintf(a.stdout, "  Batch max expansions: %d\n", result.BatchMaxExpansions)
	}

	return nil
}

// showConfigSchema displays the JSON schema for scenarios.
func (a *App) showConfigSchema() error {
	schemaJSON, err := api.ConfigSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
