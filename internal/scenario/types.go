// Package scenario projects business-as-usual and reduction emissions
// trajectories for a company baseline.
//
// The projection is a closed-form calculation: the combined Scope-1 and
// Scope-2 baseline grows at a compound annual rate, and the planned
// trajectory applies a reduction that ramps linearly from 0% at the
// baseline year to the target rate at the horizon year.
//
// Project performs no validation. Callers guard the input domain with
// Input.Validate before projecting.
package scenario

// Input is the baseline and target parameters for a projection.
type Input struct {
	// Scope1 is baseline direct emissions in t-CO2e.
	Scope1 float64 `json:"scope1_tco2"  yaml:"scope1"`

	// Scope2 is baseline purchased-energy emissions in t-CO2e.
	Scope2 float64 `json:"scope2_tco2"  yaml:"scope2"`

	// GrowthRatePercent is the annual business growth rate in percent. May be negative.
	GrowthRatePercent float64 `json:"growth_rate_percent"    yaml:"growth_rate_percent"`

	// ReductionRatePercent is the reduction reached at the horizon year, in percent.
	ReductionRatePercent float64 `json:"reduction_rate_percent" yaml:"reduction_rate_percent"`

	// HorizonYears is the number of years from the baseline to the target year.
	HorizonYears int `json:"target_years" yaml:"horizon_years"`
}

// Baseline returns the combined Scope-1 and Scope-2 baseline.
func (in Input) Baseline() float64 {
	return in.Scope1 + in.Scope2
}

// Row is a single projected year.
type Row struct {
	// Offset is the number of years since the baseline year.
	Offset int `json:"offset"`

	// BAU is business-as-usual emissions in t-CO2e.
	BAU float64 `json:"bau_tco2e"`

	// Planned is emissions under the reduction plan in t-CO2e.
	Planned float64 `json:"planned_tco2e"`

	// ReductionPercent is the reduction applied to BAU at this offset.
	ReductionPercent float64 `json:"reduction_percent"`
}

// Avoided returns the emissions avoided by the plan in this year.
func (r Row) Avoided() float64 {
	return r.BAU - r.Planned
}

// DatedRow is a Row anchored to a calendar year.
type DatedRow struct {
	Row

	Year int `json:"year"`
}

// Result is the projected trajectory, ordered by ascending offset.
// It always holds HorizonYears+1 rows for a valid Input.
type Result []Row

// Summary aggregates a Result.
type Summary struct {
	// CumulativeBAU is the sum of BAU emissions over all rows.
	CumulativeBAU float64 `json:"cumulative_bau_tco2e"`

	// CumulativePlanned is the sum of planned emissions over all rows.
	CumulativePlanned float64 `json:"cumulative_planned_tco2e"`

	// CumulativeAvoided is CumulativeBAU minus CumulativePlanned.
	CumulativeAvoided float64 `json:"cumulative_avoided_tco2e"`

	// FinalBAU is BAU emissions in the horizon year.
	FinalBAU float64 `json:"final_bau_tco2e"`

	// FinalPlanned is planned emissions in the horizon year.
	FinalPlanned float64 `json:"final_planned_tco2e"`

	// ReductionVsBaselinePercent compares the horizon-year planned
	// emissions with the baseline total. Negative when emissions grew.
	ReductionVsBaselinePercent float64 `json:"reduction_vs_baseline_percent"`
}
