package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
)

// NewConfigShowCmd prints the effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after the global file, the project overlay, --config
and CARBONPLAN_* environment variables have been applied. API keys are never
part of the configuration and are not printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GetGlobalConfig().ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
