package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/roadmap"
	"github.com/rshade/carbonplan/internal/session"
	"github.com/rshade/carbonplan/internal/tui"
)

// NewFormCmd creates the form command, which runs the interactive
// terminal form.
func NewFormCmd(deps Deps) *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the scenario and roadmap form in the terminal",
		Long: `Opens an interactive form for the company profile and the scenario.
Press enter to calculate the scenario, then esc and g to generate the
roadmap, s to save it and q to quit.

Roadmap generation needs an API key; without one the form still calculates
scenarios and reports the missing key when g is pressed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New("form needs an interactive terminal; use the scenario or roadmap commands instead")
			}
			ctx := cmd.Context()

			in, profile := configDefaults()
			state := session.NewState("form", profile, in)

			var gen tui.RoadmapGenerator
			svc, err := newRoadmapService(ctx, config.GetGlobalConfig(), deps)
			if err != nil {
				logger.Warn().Ctx(ctx).Err(err).Msg("roadmap generation unavailable")
				gen = unavailableGenerator{err: err}
			} else {
				gen = svc
			}

			return tui.RunForm(ctx, tui.NewFormModel(ctx, state, gen,
				tui.WithSavePath(savePath),
				tui.WithPrecision(config.GetGlobalConfig().Output.Precision)))
		},
	}

	cmd.Flags().StringVar(&savePath, "save", tui.DefaultRoadmapFile, "file the s key writes the roadmap to")
	return cmd
}

// unavailableGenerator reports why roadmap generation could not be set up.
type unavailableGenerator struct {
	err error
}

func (u unavailableGenerator) Generate(context.Context, roadmap.Request) (*roadmap.Roadmap, error) {
	return nil, u.err
}
