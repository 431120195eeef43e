package greenops

// EPA greenhouse gas equivalency factors (2024 edition), in kg CO2e per unit
// of activity. Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2e / factor
const (
	EPAMilesDrivenFactor      = 0.192
	EPASmartphoneChargeFactor = 0.00822
	EPATreeSeedlingFactor     = 60.0
	EPAHomeDayFactor          = 18.3
)

// Conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest input that produces equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches formatting to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches formatting to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
