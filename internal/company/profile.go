// Package company holds the supplementary company details collected next to
// the emissions baseline. The values are passed to the roadmap generator
// verbatim; nothing here is interpreted by the projection.
package company

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownOption is returned when a value is not in its option catalogue.
var ErrUnknownOption = errors.New("unknown option")

// Profile describes the company requesting a roadmap.
type Profile struct {
	Industry      string   `json:"industry"            yaml:"industry"`
	Employees     string   `json:"employees"           yaml:"employees"`
	BaselineYear  int      `json:"baseline_year"       yaml:"baseline_year"`
	Sources       []string `json:"emission_sources"    yaml:"emission_sources"`
	Equipment     []string `json:"emission_equipments" yaml:"emission_equipments"`
	SavingLaw     string   `json:"saving_law"          yaml:"saving_law"`
	EmissionShape string   `json:"emission_profile"    yaml:"emission_profile"`
	Notes         string   `json:"additional_info"     yaml:"additional_info"`
}

// DefaultProfile returns the first option of every single-choice field,
// matching the initial state of the input form.
func DefaultProfile() Profile {
	return Profile{
		Industry:      Industries[0],
		Employees:     HeadcountBands[0],
		BaselineYear:  BaselineYears[0],
		SavingLaw:     SavingLawStatuses[0],
		EmissionShape: EmissionProfiles[0],
	}
}

// Validate checks every field against its catalogue and reports all
// violations. Notes are free text and always accepted.
func (p Profile) Validate() error {
	var errs []error

	check := func(field, value string, options []string) {
		if !slices.Contains(options, value) {
			errs = append(errs, fmt.Errorf("%w: %s %q", ErrUnknownOption, field, value))
		}
	}

	check("industry", p.Industry, Industries)
	check("employees", p.Employees, HeadcountBands)
	check("saving law", p.SavingLaw, SavingLawStatuses)
	check("emission profile", p.EmissionShape, EmissionProfiles)

	if !slices.Contains(BaselineYears, p.BaselineYear) {
		errs = append(errs, fmt.Errorf("%w: baseline year %d", ErrUnknownOption, p.BaselineYear))
	}
	for _, s := range p.Sources {
		check("emission source", s, EmissionSources)
	}
	for _, e := range p.Equipment {
		check("equipment", e, Equipment)
	}

	return errors.Join(errs...)
}

// Normalize trims whitespace and drops empty or repeated multi-choice entries.
func (p Profile) Normalize() Profile {
	p.Industry = strings.TrimSpace(p.Industry)
	p.Employees = strings.TrimSpace(p.Employees)
	p.SavingLaw = strings.TrimSpace(p.SavingLaw)
	p.EmissionShape = strings.TrimSpace(p.EmissionShape)
	p.Notes = strings.TrimSpace(p.Notes)
	p.Sources = dedupe(p.Sources)
	p.Equipment = dedupe(p.Equipment)
	return p
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
