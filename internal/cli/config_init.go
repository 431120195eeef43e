package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
)

var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project-dir (or CARBONPLAN_PROJECT_DIR, or a .carbonplan/ directory
// above the working directory) and without --global, it writes the
// project-local .carbonplan/config.yaml and .gitignore. Otherwise it writes
// $CARBONPLAN_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project (see --project-dir), creates $PROJECT/.carbonplan/config.yaml
with a .gitignore that keeps the roadmap cache and logs out of version control.
Use --global to initialize the global configuration even inside a project.`,
		Example: `  # Create the global configuration
  carbonplan config init

  # Create project-local configuration
  carbonplan config init --project-dir .

  # Overwrite an existing file
  carbonplan config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()
			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize the global configuration even inside a project")

	return cmd
}

// checkWritable refuses to overwrite an existing file unless force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	// Defaults only: the global file and environment are not baked in.
	cfg := config.Defaults()
	cfg.SetPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	updated, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if updated {
		cmd.Printf("Updated .gitignore to keep the roadmap cache and logs untracked\n")
	}
	return nil
}

func initGlobalConfig(cmd *cobra.Command, force bool) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err = checkWritable(configPath, force); err != nil {
		return err
	}

	cfg := config.Defaults()
	cfg.SetPath(configPath)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)
	return nil
}
