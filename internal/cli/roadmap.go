package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/internal/session"
	"github.com/rshade/carbonplan/internal/tui"
)

// roadmapParams holds the parameters for the roadmap command execution.
type roadmapParams struct {
	flags     scenarioFlags
	inputPath string
	industry  string
	employees string
	sources   []string
	equipment []string
	savingLaw string
	shape     string
	notes     string
	savePath  string
	raw       bool
}

// NewRoadmapCmd creates the roadmap command, which projects the scenario
// and asks the configured language model for a decarbonization roadmap.
func NewRoadmapCmd(deps Deps) *cobra.Command {
	var params roadmapParams

	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Generate a decarbonization roadmap for a scenario",
		Long: `Projects the scenario, then sends the company profile, the scenario
parameters and every projected year to the configured language model and
prints the roadmap it returns.

Values come from the config file, then --input, then flags. The API key is
read from the environment variable named by llm.api_key_env.`,
		Example: `  # Roadmap for a food manufacturer, saved next to the printed output
  carbonplan roadmap --scope1 420 --scope2 380 --reduction 46 --years 10 \
    --industry Food --employees 51-100 --source Gas --source Electricity --save roadmap.txt

  # Everything from a file
  carbonplan roadmap --input company.yaml --raw`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRoadmap(cmd, params, deps)
		},
	}

	addScenarioFlags(cmd, &params.flags)
	cmd.Flags().StringVar(&params.inputPath, "input", "", "YAML or JSON file with the company profile and a scenario section")
	cmd.Flags().StringVar(&params.industry, "industry", "", "industry")
	cmd.Flags().StringVar(&params.employees, "employees", "", "headcount band, e.g. 51-100")
	cmd.Flags().StringArrayVar(&params.sources, "source", nil, "emission source (repeatable)")
	cmd.Flags().StringArrayVar(&params.equipment, "equipment", nil, "emitting equipment (repeatable)")
	cmd.Flags().StringVar(&params.savingLaw, "saving-law", "", "covered by the energy saving law: No, Yes or Unknown")
	cmd.Flags().StringVar(&params.shape, "profile", "", "emission profile")
	cmd.Flags().StringVar(&params.notes, "notes", "", "free-text notes passed to the model")
	cmd.Flags().StringVar(&params.savePath, "save", "", "also write the roadmap to this file (e.g. "+tui.DefaultRoadmapFile+")")
	cmd.Flags().BoolVar(&params.raw, "raw", false, "print the markdown unrendered")

	return cmd
}

func executeRoadmap(cmd *cobra.Command, params roadmapParams, deps Deps) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	in, profile, err := collectRoadmapInput(cmd, params)
	if err != nil {
		return err
	}

	state := session.NewState("cli", profile, in)
	if err = state.Recalculate(profile, in); err != nil {
		return err
	}

	svc, err := newRoadmapService(ctx, config.GetGlobalConfig(), deps)
	if err != nil {
		return err
	}

	req, err := state.RoadmapRequest()
	if err != nil {
		return err
	}
	rm, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}
	state.SetRoadmap(rm)

	if params.savePath != "" {
		if err = saveRoadmap(params.savePath, rm.Markdown); err != nil {
			return err
		}
		log.Info().Ctx(ctx).Str("path", params.savePath).Msg("roadmap saved")
	}

	return printRoadmap(cmd, rm.Markdown, params.raw)
}

func collectRoadmapInput(cmd *cobra.Command, params roadmapParams) (scenario.Input, company.Profile, error) {
	in, profile := configDefaults()

	if params.inputPath != "" {
		if err := loadInputFile(params.inputPath, &in, &profile); err != nil {
			return in, profile, err
		}
	}

	applyScenarioFlags(cmd, &params.flags, &in, &profile.BaselineYear)

	changed := cmd.Flags().Changed
	if changed("industry") {
		profile.Industry = params.industry
	}
	if changed("employees") {
		profile.Employees = params.employees
	}
	if changed("source") {
		profile.Sources = params.sources
	}
	if changed("equipment") {
		profile.Equipment = params.equipment
	}
	if changed("saving-law") {
		profile.SavingLaw = params.savingLaw
	}
	if changed("profile") {
		profile.EmissionShape = params.shape
	}
	if changed("notes") {
		profile.Notes = params.notes
	}
	return in, profile, nil
}

func saveRoadmap(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}
	//nolint:gosec // The roadmap is a user document, readable like any other.
	if err := os.WriteFile(path, []byte(markdown+"\n"), 0o644); err != nil {
		return fmt.Errorf("saving roadmap: %w", err)
	}
	return nil
}

// printRoadmap writes markdown to stdout, rendered with glamour when stdout
// is a terminal and raw is false.
func printRoadmap(cmd *cobra.Command, markdown string, raw bool) error {
	out := cmd.OutOrStdout()
	f, isFile := out.(*os.File)
	if raw || !isFile || tui.DetectOutputMode(false, false) == tui.OutputModePlain || !isTerminal(f) {
		_, err := fmt.Fprintln(out, markdown)
		return err
	}

	rendered, err := tui.RenderMarkdown(markdown, tui.DefaultWrap, true)
	if err != nil {
		logger.Debug().Err(err).Msg("markdown rendering failed, printing raw")
		_, err = fmt.Fprintln(out, markdown)
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
