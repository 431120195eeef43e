package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/scenario"
)

// scenarioFlags holds the baseline and target flags shared by scenario and roadmap.
type scenarioFlags struct {
	scope1       float64
	scope2       float64
	growth       float64
	reduction    float64
	years        int
	baselineYear int
}

func addScenarioFlags(cmd *cobra.Command, f *scenarioFlags) {
	cmd.Flags().Float64Var(&f.scope1, "scope1", 0, "baseline Scope 1 emissions (t-CO2e)")
	cmd.Flags().Float64Var(&f.scope2, "scope2", 0, "baseline Scope 2 emissions (t-CO2e)")
	cmd.Flags().Float64Var(&f.growth, "growth", 0, "annual business growth rate in percent, -10 to 20 (default from config)")
	cmd.Flags().Float64Var(&f.reduction, "reduction", 0, "target reduction in percent at the final year, 0 to 100 (default from config)")
	cmd.Flags().IntVar(&f.years, "years", 0, "years from the baseline to the target year, 1 to 30 (default from config)")
	cmd.Flags().IntVar(&f.baselineYear, "baseline-year", 0, "baseline calendar year, 2020 to 2025 (default from config)")
}

// applyScenarioFlags overlays explicitly set flags on in and baselineYear.
// Unset flags keep the values passed in, so flags override files which
// override config.
func applyScenarioFlags(cmd *cobra.Command, f *scenarioFlags, in *scenario.Input, baselineYear *int) {
	changed := cmd.Flags().Changed
	if changed("scope1") {
		in.Scope1 = f.scope1
	}
	if changed("scope2") {
		in.Scope2 = f.scope2
	}
	if changed("growth") {
		in.GrowthRatePercent = f.growth
	}
	if changed("reduction") {
		in.ReductionRatePercent = f.reduction
	}
	if changed("years") {
		in.HorizonYears = f.years
	}
	if changed("baseline-year") {
		*baselineYear = f.baselineYear
	}
}

// configDefaults returns the scenario input and profile prefilled from the
// scenario section of the global config.
func configDefaults() (scenario.Input, company.Profile) {
	sc := config.GetGlobalConfig().Scenario
	in := scenario.Input{
		GrowthRatePercent:    sc.GrowthRatePercent,
		ReductionRatePercent: sc.ReductionRatePercent,
		HorizonYears:         sc.HorizonYears,
	}
	profile := company.DefaultProfile()
	if sc.BaselineYear != 0 {
		profile.BaselineYear = sc.BaselineYear
	}
	return in, profile
}

// inputFile is the --input document: profile fields at the top level and
// the scenario parameters in a nested section.
type inputFile struct {
	company.Profile `yaml:",inline"`

	Scenario *scenario.Input `json:"scenario" yaml:"scenario"`
}

// loadInputFile reads a YAML or JSON input document over in and profile.
// Fields absent from the file keep their current values.
func loadInputFile(path string, in *scenario.Input, profile *company.Profile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	doc := inputFile{Profile: *profile, Scenario: in}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("parsing input file %s: %w", path, err)
	}

	*profile = doc.Profile
	if doc.Scenario != nil && doc.Scenario != in {
		*in = *doc.Scenario
	}
	return nil
}
