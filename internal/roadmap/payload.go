// Package roadmap turns a calculated scenario and a company profile into a
// request for a generated decarbonization roadmap.
package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/scenario"
)

// Payload is the structured request sent to the text generator. Field names
// are part of the generator contract; values are passed through verbatim.
type Payload struct {
	Industry             string              `json:"industry"`
	Employees            string              `json:"employees"`
	BaselineYear         int                 `json:"baseline_year"`
	TargetYears          int                 `json:"target_years"`
	Scope1               float64             `json:"scope1_tco2"`
	Scope2               float64             `json:"scope2_tco2"`
	GrowthRatePercent    float64             `json:"growth_rate_percent"`
	ReductionRatePercent float64             `json:"reduction_rate_percent"`
	AdditionalInfo       string              `json:"additional_info"`
	Scenario             []scenario.DatedRow `json:"scenario"`
	EmissionSources      []string            `json:"emission_sources"`
	EmissionEquipments   []string            `json:"emission_equipments"`
	SavingLaw            string              `json:"saving_law"`
	EmissionProfile      string              `json:"emission_profile"`
}

// NewPayload combines the profile, the scenario parameters and every row of
// the projection. Rows carry calendar years counted from the profile's
// baseline year.
func NewPayload(profile company.Profile, in scenario.Input, result scenario.Result) Payload {
	sources := profile.Sources
	if sources == nil {
		sources = []string{}
	}
	equipment := profile.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	return Payload{
		Industry:             profile.Industry,
		Employees:            profile.Employees,
		BaselineYear:         profile.BaselineYear,
		TargetYears:          in.HorizonYears,
		Scope1:               in.Scope1,
		Scope2:               in.Scope2,
		GrowthRatePercent:    in.GrowthRatePercent,
		ReductionRatePercent: in.ReductionRatePercent,
		AdditionalInfo:       profile.Notes,
		Scenario:             result.Dated(profile.BaselineYear),
		EmissionSources:      sources,
		EmissionEquipments:   equipment,
		SavingLaw:            profile.SavingLaw,
		EmissionProfile:      profile.EmissionShape,
	}
}

// JSON encodes the payload without HTML escaping so non-ASCII and markup
// characters in free-text fields reach the generator unchanged.
func (p Payload) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding roadmap payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
