package greenops

import (
	"math"
	"strings"
)

// unitFactors maps lower-cased unit names to their kilogram factor.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unitFactors = map[string]float64{
	"g":      GramsToKg,
	"gco2e":  GramsToKg,
	"kg":     KgToKg,
	"kgco2e": KgToKg,
	"t":      TonsToKg,
	"tco2e":  TonsToKg,
	"t-co2e": TonsToKg,
	"lb":     PoundsToKg,
	"lbco2e": PoundsToKg,
}

// NormalizeToKg converts value in unit to kilograms CO2e.
// Unit matching is case-insensitive.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactors[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, ErrInvalidUnit
	}

	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactors[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}
