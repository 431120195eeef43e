package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/cache"
	"github.com/rshade/carbonplan/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the effective configuration: the global file, the project overlay,
--config and CARBONPLAN_* environment variables combined.

Reports every invalid setting, and warns when the API key for the selected
provider is not set.`,
		Example: `  # Validate current configuration
  carbonplan config validate

  # Validate and show detailed information
  carbonplan config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.LLM.APIKey() == "" {
		cmd.PrintErrf("Warning: %s is not set; roadmap generation will fail\n", cfg.LLM.KeyEnvName())
	}
	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if path := cfg.Path(); path != "" {
		cmd.Printf("  Config file: %s\n", path)
	}
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  LLM: %s / %s (key from %s)\n", cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.KeyEnvName())
	if cfg.Cache.Enabled {
		cmd.Printf("  Roadmap cache: enabled, ttl %s\n",
			cache.FormatDuration(cache.ResolveTTL(cfg.Cache.TTLSeconds)))
	} else {
		cmd.Println("  Roadmap cache: disabled")
	}
	cmd.Printf("  Web form address: %s\n", cfg.Server.Address)
}
