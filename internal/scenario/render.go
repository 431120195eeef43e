package scenario

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rshade/carbonplan/internal/greenops"
)

// OutputFormat selects a scenario renderer.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
	OutputCSV    OutputFormat = "csv"
)

// ErrUnknownFormat is returned by ParseOutputFormat for unsupported names.
const ErrUnknownFormat = constError("unknown output format")

// DefaultPrecision is the number of decimals shown for emission values
// unless a Report is given another one.
const DefaultPrecision = 2

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// ParseOutputFormat converts a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON, OutputCSV:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json, ndjson or csv)", ErrUnknownFormat, s)
	}
}

// Report bundles a projection with everything a renderer needs.
type Report struct {
	Input        Input                      `json:"input"`
	BaselineYear int                        `json:"baseline_year"`
	Rows         []DatedRow                 `json:"rows"`
	Summary      Summary                    `json:"summary"`
	Equivalency  greenops.EquivalencyOutput `json:"avoided_equivalency"`

	// Precision is the number of decimals the table renderers show.
	// Machine-readable formats always carry full values.
	Precision int `json:"-"`
}

// NewReport builds a Report for an already projected Result.
// Equivalencies describe the cumulative avoided emissions; a failed
// equivalency calculation leaves the field empty.
func NewReport(in Input, baselineYear int, result Result) Report {
	summary := result.Summarize()
	eq, err := greenops.Calculate(greenops.CarbonInput{
		Value: summary.CumulativeAvoided,
		Unit:  "tCO2e",
	})
	if err != nil {
		eq = greenops.EquivalencyOutput{IsEmpty: true}
	}
	return Report{
		Input:        in,
		BaselineYear: baselineYear,
		Rows:         result.Dated(baselineYear),
		Summary:      summary,
		Equivalency:  eq,
		Precision:    DefaultPrecision,
	}
}

// WithPrecision returns a copy of the report showing precision decimals.
// Negative values keep the current precision.
func (r Report) WithPrecision(precision int) Report {
	if precision >= 0 {
		r.Precision = precision
	}
	return r
}

// Emissions formats a t-CO2e value at the report's precision.
func (r Report) Emissions(v float64) string {
	return greenops.FormatFloat(v, r.Precision)
}

// Percent formats a reduction percentage at the report's precision.
func (r Report) Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', r.Precision, 64)
}

// Render writes the report in the requested format.
func Render(w io.Writer, format OutputFormat, report Report) error {
	switch format {
	case OutputTable:
		return RenderTable(w, report)
	case OutputJSON:
		return RenderJSON(w, report)
	case OutputNDJSON:
		return RenderNDJSON(w, report)
	case OutputCSV:
		return RenderCSV(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatEmissions formats a t-CO2e value with two decimals and thousand separators.
func FormatEmissions(v float64) string {
	return greenops.FormatFloat(v, DefaultPrecision)
}

// RenderTable writes an aligned text table followed by a summary footer.
func RenderTable(w io.Writer, report Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprint(tw, "YEAR\tBAU (t-CO2e)\tPLANNED (t-CO2e)\tREDUCTION %\t\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprint(tw, "----\t------------\t----------------\t-----------\t\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, row := range report.Rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n",
			row.Year,
			report.Emissions(row.BAU),
			report.Emissions(row.Planned),
			report.Percent(row.ReductionPercent),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	return renderSummaryFooter(w, report)
}

func renderSummaryFooter(w io.Writer, report Report) error {
	s := report.Summary
	if _, err := fmt.Fprintf(w, "\nCumulative BAU:      %s t-CO2e\n", report.Emissions(s.CumulativeBAU)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Cumulative planned:  %s t-CO2e\n", report.Emissions(s.CumulativePlanned)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Cumulative avoided:  %s t-CO2e\n", report.Emissions(s.CumulativeAvoided)); err != nil {
		return err
	}
	if !report.Equivalency.IsEmpty {
		if _, err := fmt.Fprintf(w, "%s\n", report.Equivalency.DisplayText); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the whole report as indented JSON.
func RenderJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding scenario JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes one dated row per line.
func RenderNDJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	for _, row := range report.Rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding scenario row %d: %w", row.Year, err)
		}
	}
	return nil
}

// RenderCSV writes the dated rows with full float precision.
func RenderCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "bau_tco2e", "planned_tco2e", "reduction_percent"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := cw.Write([]string{
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.BAU, 'f', -1, 64),
			strconv.FormatFloat(row.Planned, 'f', -1, 64),
			strconv.FormatFloat(row.ReductionPercent, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
