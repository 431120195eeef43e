// Package greenops turns avoided emissions into relatable equivalencies.
//
// A reduction plan's cumulative avoided emissions (BAU minus planned) are
// normalised to kilograms CO2e and divided by EPA-published activity
// factors: miles driven, smartphones charged, tree seedlings grown and
// days of home electricity.
package greenops

import "fmt"

// EquivalencyType identifies an equivalency activity.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven by an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns the activity name.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is an emission quantity in any recognised unit.
type CarbonInput struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one input, in display order.
type EquivalencyOutput struct {
	// InputKg is the input normalised to kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	Results []EquivalencyResult `json:"results,omitempty"`

	// DisplayText is the prose sentence used by the CLI, TUI and web page,
	// e.g. "Equivalent to driving ~781 miles or growing ~3 tree seedlings for 10 years".
	DisplayText string `json:"display_text,omitempty"`

	// CompactText is the abbreviated form used in narrow layouts.
	CompactText string `json:"compact_text,omitempty"`

	IsEmpty bool `json:"is_empty"`
}

// Find returns the result of the given type, if present.
func (o EquivalencyOutput) Find(t EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == t {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}
