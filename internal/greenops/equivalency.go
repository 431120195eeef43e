package greenops

import (
	"fmt"
	"math"
)

// activity describes how one equivalency is calculated and labelled.
type activity struct {
	kind    EquivalencyType
	factor  float64
	label   string
	compact string
}

// activities is the display order of equivalencies.
//
//nolint:gochecknoglobals // Read-only table.
var activities = []activity{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven", "mi"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged", "phones"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years", "seedlings"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity", "home-days"},
}

// Calculate normalises input to kilograms and computes every equivalency.
//
// Inputs below MinEquivalencyThresholdKg produce an empty output without
// error. Invalid units, negative values and non-finite results produce an
// empty output and the matching sentinel error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(activities))
	for _, a := range activities {
		v := kg / a.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           a.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          a.label,
		})
	}

	miles := results[EquivalencyMilesDriven].FormattedValue
	phones := results[EquivalencySmartphonesCharged].FormattedValue
	trees := results[EquivalencyTreeSeedlings].FormattedValue
	homes := results[EquivalencyHomeDays].FormattedValue

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf(
			"Equivalent to driving ~%s miles, charging ~%s smartphones or growing ~%s tree seedlings for 10 years",
			miles, phones, trees),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones, %s seedlings, %s home-days)",
			miles, phones, trees, homes),
	}, nil
}

// CalculateAvoided computes equivalencies for avoided emissions given in t-CO2e.
func CalculateAvoided(tonnes float64) (EquivalencyOutput, error) {
	return Calculate(CarbonInput{Value: tonnes, Unit: "tCO2e"})
}

// formatEquivalencyValue abbreviates large values and rounds the rest to
// a comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
