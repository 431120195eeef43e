package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/logging"
	"github.com/rshade/carbonplan/internal/scenario"
	"github.com/rshade/carbonplan/internal/tui"
)

const (
	chartWidth  = 48
	chartHeight = 10
)

// scenarioParams holds the parameters for the scenario command execution.
type scenarioParams struct {
	flags   scenarioFlags
	output  string
	noChart bool
}

// NewScenarioCmd creates the scenario command, which projects the BAU and
// planned trajectories and renders them.
func NewScenarioCmd() *cobra.Command {
	var params scenarioParams

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Project a business-as-usual and a reduction emissions scenario",
		Long: `Projects emissions for every year from the baseline to the target year.

Business-as-usual emissions grow the combined Scope 1 and Scope 2 baseline at
the annual growth rate. Planned emissions apply a reduction that ramps
linearly from 0% in the baseline year to the target reduction in the final
year.`,
		Example: `  # 150 t baseline, no growth, halve emissions in 5 years
  carbonplan scenario --scope1 100 --scope2 50 --reduction 50 --years 5

  # Machine-readable output
  carbonplan scenario --scope1 0 --scope2 1000 --growth 10 --years 2 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScenario(cmd, params)
		},
	}

	addScenarioFlags(cmd, &params.flags)
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json, ndjson or csv (default from config)")
	cmd.Flags().BoolVar(&params.noChart, "no-chart", false, "omit the ASCII chart from table output")

	return cmd
}

func executeScenario(cmd *cobra.Command, params scenarioParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format := params.output
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	outputFormat, err := scenario.ParseOutputFormat(format)
	if err != nil {
		return err
	}

	in, profile := configDefaults()
	applyScenarioFlags(cmd, &params.flags, &in, &profile.BaselineYear)

	if err = errors.Join(in.Validate(), profile.Validate()); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	result := scenario.Project(in)
	report := scenario.NewReport(in, profile.BaselineYear, result).
		WithPrecision(config.GetGlobalConfig().Output.Precision)

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "scenario").
		Int("rows", len(result)).
		Str("output", string(outputFormat)).
		Msg("scenario projected")

	if err = scenario.Render(cmd.OutOrStdout(), outputFormat, report); err != nil {
		return err
	}
	if outputFormat == scenario.OutputTable && !params.noChart {
		return writeChart(cmd.OutOrStdout(), report)
	}
	return nil
}

func writeChart(w io.Writer, report scenario.Report) error {
	chart := tui.RenderChart(report.Rows, 0, chartWidth, chartHeight)
	_, err := fmt.Fprintf(w, "\n%s%s\n", chart, tui.ChartLegend)
	return err
}
