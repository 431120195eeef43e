package scenario

import "math"

// percentDivisor converts percent values to fractions.
const percentDivisor = 100

// chartHeadroom is the y-axis headroom applied above the largest value.
const chartHeadroom = 1.1

// Project computes the BAU and planned trajectory for offsets 0..HorizonYears.
//
// Formula, for each offset t:
//
//	bau(t)      = (scope1 + scope2) * (1 + growth/100)^t
//	fraction(t) = (reduction/100) * (t / horizon)
//	planned(t)  = bau(t) * (1 - fraction(t))
//
// No rounding is applied. Growth compounds on the combined baseline; the
// scopes are not tracked separately. The reduction ramp is linear in the
// offset regardless of the growth trajectory.
//
// HorizonYears must be at least 1. A zero horizon divides by zero and is
// not guarded here; see Input.Validate.
func Project(in Input) Result {
	base := in.Scope1 + in.Scope2
	growth := in.GrowthRatePercent / percentDivisor
	finalReduction := in.ReductionRatePercent / percentDivisor
	horizon := float64(in.HorizonYears)

	rows := make(Result, 0, in.HorizonYears+1)
	for t := 0; t <= in.HorizonYears; t++ {
		bau := base * math.Pow(1+growth, float64(t))
		fraction := finalReduction * (float64(t) / horizon)
		rows = append(rows, Row{
			Offset:           t,
			BAU:              bau,
			Planned:          bau * (1 - fraction),
			ReductionPercent: fraction * percentDivisor,
		})
	}
	return rows
}

// Dated anchors every row to baselineYear + offset.
func (r Result) Dated(baselineYear int) []DatedRow {
	out := make([]DatedRow, len(r))
	for i, row := range r {
		out[i] = DatedRow{Row: row, Year: baselineYear + row.Offset}
	}
	return out
}

// Final returns the horizon-year row, or the zero Row for an empty Result.
func (r Result) Final() Row {
	if len(r) == 0 {
		return Row{}
	}
	return r[len(r)-1]
}

// MaxEmissions returns the largest BAU or planned value in the Result.
func (r Result) MaxEmissions() float64 {
	var m float64
	for _, row := range r {
		m = math.Max(m, math.Max(row.BAU, row.Planned))
	}
	return m
}

// ChartCeiling returns the y-axis upper bound used by chart renderers.
func (r Result) ChartCeiling() float64 {
	return r.MaxEmissions() * chartHeadroom
}

// Summarize aggregates the Result. The baseline is taken from row 0.
func (r Result) Summarize() Summary {
	var s Summary
	if len(r) == 0 {
		return s
	}
	for _, row := range r {
		s.CumulativeBAU += row.BAU
		s.CumulativePlanned += row.Planned
	}
	s.CumulativeAvoided = s.CumulativeBAU - s.CumulativePlanned

	final := r.Final()
	s.FinalBAU = final.BAU
	s.FinalPlanned = final.Planned

	if base := r[0].BAU; base > 0 {
		s.ReductionVsBaselinePercent = (base - final.Planned) / base * percentDivisor
	}
	return s
}
