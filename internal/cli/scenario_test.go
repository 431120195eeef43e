package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonplan/internal/cli"
	"github.com/rshade/carbonplan/internal/scenario"
)

var halveIn5 = []string{"scenario", "--scope1", "100", "--scope2", "50", "--reduction", "50", "--years", "5"}

func TestScenario_Table(t *testing.T) {
	isolate(t)

	out, _, err := run(t, cli.Deps{}, halveIn5...)
	require.NoError(t, err)

	assert.Contains(t, out, "YEAR")
	assert.Contains(t, out, "2020")
	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "Cumulative avoided:")
	assert.Contains(t, out, "* BAU", "chart legend")
}

func TestScenario_NoChart(t *testing.T) {
	isolate(t)

	out, _, err := run(t, cli.Deps{}, append(halveIn5, "--no-chart")...)
	require.NoError(t, err)

	assert.NotContains(t, out, "* BAU")
}

func TestScenario_JSON(t *testing.T) {
	isolate(t)

	out, _, err := run(t, cli.Deps{}, append(halveIn5, "--output", "json", "--baseline-year", "2023")...)
	require.NoError(t, err)

	var report scenario.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Rows, 6)
	assert.Equal(t, 2023, report.Rows[0].Year)
	assert.Equal(t, 2028, report.Rows[5].Year)
	assert.InDelta(t, 75.0, report.Rows[5].Planned, 1e-9)
	assert.InDelta(t, 50.0, report.Rows[5].ReductionPercent, 1e-9)
}

func TestScenario_CSV(t *testing.T) {
	isolate(t)

	out, _, err := run(t, cli.Deps{}, append(halveIn5, "--output", "csv")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "year,bau_tco2e,planned_tco2e,reduction_percent", lines[0])
	assert.Equal(t, "2020,150,150,0", lines[1])
	assert.Equal(t, "2025,150,75,50", lines[6])
}

func TestScenario_Growth(t *testing.T) {
	isolate(t)

	out, _, err := run(t, cli.Deps{}, "scenario", "--scope2", "1000", "--growth", "10",
		"--reduction", "0", "--years", "2", "--output", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var last scenario.DatedRow
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.InDelta(t, 1210.0, last.BAU, 1e-6)
	assert.InDelta(t, 1210.0, last.Planned, 1e-6)
}

func TestScenario_ConfigDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, "config.yaml", "scenario:\n  baseline_year: 2024\n  reduction_rate_percent: 30\n  horizon_years: 3\noutput:\n  default_format: csv\n  precision: 2\n")

	out, _, err := run(t, cli.Deps{}, "scenario", "--scope1", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[4], "2027,10,7"), lines[4])
}

func TestScenario_ConfigPrecision(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, "config.yaml", "output:\n  precision: 0\n")

	out, _, err := run(t, cli.Deps{}, append(halveIn5, "--no-chart")...)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 7)
	assert.Equal(t, []string{"2025", "150", "75", "50"}, strings.Fields(lines[7]))
	assert.Contains(t, out, "Cumulative avoided:  225 t-CO2e")
	assert.NotContains(t, out, "75.00")
}

func TestScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "negative scope", args: []string{"--scope1", "-1"}, want: "invalid scenario"},
		{name: "zero horizon", args: []string{"--years", "0"}, want: "invalid scenario"},
		{name: "reduction over 100", args: []string{"--reduction", "120"}, want: "invalid scenario"},
		{name: "unknown baseline year", args: []string{"--baseline-year", "2019"}, want: "baseline year"},
		{name: "unknown output", args: []string{"--output", "xml"}, want: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, _, err := run(t, cli.Deps{}, append([]string{"scenario"}, tt.args...)...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
