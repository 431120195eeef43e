package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/roadmap"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// GeneratorFactory builds the roadmap generator for a configuration.
type GeneratorFactory func(ctx context.Context, cfg *config.Config) (roadmap.Generator, error)

// Deps are the collaborators the commands use. Zero fields select the
// production implementations.
type Deps struct {
	NewGenerator GeneratorFactory
}

func (d Deps) generatorFactory() GeneratorFactory {
	if d.NewGenerator != nil {
		return d.NewGenerator
	}
	return newLLMGenerator
}

// NewRootCmd creates the root Cobra command for the carbonplan CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithDeps(ver, Deps{})
}

// NewRootCmdWithDeps creates the root command with explicit collaborators
// for testability.
func NewRootCmdWithDeps(ver string, deps Deps) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:   "carbonplan",
		Short: "Emission reduction scenarios and decarbonization roadmaps",
		Long: `carbonplan projects a business-as-usual and a reduction emissions trajectory
from a Scope 1 and Scope 2 baseline, and asks a language model for a phased
decarbonization roadmap based on the result.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $CARBONPLAN_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .carbonplan/ overlay")

	cmd.AddCommand(
		NewScenarioCmd(),
		NewRoadmapCmd(deps),
		NewFormCmd(deps),
		NewServeCmd(deps),
		newConfigCmd(),
		newCacheCmd(),
	)

	return cmd
}

// loadConfig resolves the project overlay and --config, then installs the
// result as the global configuration.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	flagDir, _ := cmd.Flags().GetString("project-dir")
	cwd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(ctx, flagDir, cwd)
	config.SetResolvedProjectDir(projectDir)

	cfg := config.NewWithProjectDir(ctx, projectDir)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := cfg.LoadFrom(path); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
		cfg.ApplyEnvOverrides()
	}

	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Project a scenario and print it as a table with a chart
  carbonplan scenario --scope1 1200 --scope2 800 --growth 2 --reduction 46 --years 10

  # Generate a roadmap and save it to roadmap.txt
  carbonplan roadmap --scope1 1200 --scope2 800 --industry Manufacturing --source Gas --save roadmap.txt

  # Fill in the interactive form
  carbonplan form

  # Serve the web form on 127.0.0.1:8501
  carbonplan serve

  # Initialize configuration
  carbonplan config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
