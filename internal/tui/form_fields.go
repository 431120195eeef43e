package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/scenario"
)

type fieldKind int

const (
	fieldNumber fieldKind = iota
	fieldInteger
	fieldChoice
	fieldList
	fieldText
)

// Field keys.
const (
	keyIndustry  = "industry"
	keyEmployees = "employees"
	keyBaseline  = "baseline_year"
	keyScope1    = "scope1"
	keyScope2    = "scope2"
	keyGrowth    = "growth"
	keyReduction = "reduction"
	keyYears     = "years"
	keySources   = "sources"
	keyEquipment = "equipment"
	keySavingLaw = "saving_law"
	keyShape     = "emission_profile"
	keyNotes     = "notes"
)

const inputWidth = 40

type formField struct {
	key     string
	label   string
	kind    fieldKind
	options []string
	choice  int
	input   textinput.Model
}

// editable reports whether the field takes typed text.
func (f *formField) editable() bool {
	return f.kind != fieldChoice
}

func (f *formField) value() string {
	if f.kind == fieldChoice {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice]
	}
	return f.input.Value()
}

func (f *formField) cycle(delta int) {
	if f.kind != fieldChoice || len(f.options) == 0 {
		return
	}
	f.choice = (f.choice + delta + len(f.options)) % len(f.options)
}

func newChoiceField(key, label string, options []string, current string) formField {
	idx := max(slices.Index(options, current), 0)
	return formField{key: key, label: label, kind: fieldChoice, options: options, choice: idx}
}

func newInputField(key, label string, kind fieldKind, value, placeholder string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = inputWidth
	ti.Placeholder = placeholder
	ti.SetValue(value)
	return formField{key: key, label: label, kind: kind, input: ti}
}

// newFormFields lays out the form in the order of the original input page,
// pre-filled from profile and in.
func newFormFields(profile company.Profile, in scenario.Input) []formField {
	years := make([]string, len(company.BaselineYears))
	for i, y := range company.BaselineYears {
		years[i] = strconv.Itoa(y)
	}

	return []formField{
		newChoiceField(keyIndustry, "Industry", company.Industries, profile.Industry),
		newChoiceField(keyEmployees, "Employees", company.HeadcountBands, profile.Employees),
		newChoiceField(keyBaseline, "Baseline year", years, strconv.Itoa(profile.BaselineYear)),
		newInputField(keyScope1, "Scope 1 (t-CO2e)", fieldNumber, formatNumber(in.Scope1), "0"),
		newInputField(keyScope2, "Scope 2 (t-CO2e)", fieldNumber, formatNumber(in.Scope2), "0"),
		newInputField(keyGrowth, "Annual growth %", fieldNumber, formatNumber(in.GrowthRatePercent), "-10..20"),
		newInputField(keyReduction, "Target reduction %", fieldNumber, formatNumber(in.ReductionRatePercent), "0..100"),
		newInputField(keyYears, "Years to target", fieldInteger, strconv.Itoa(in.HorizonYears), "1..30"),
		newInputField(keySources, "Emission sources", fieldList, strings.Join(profile.Sources, ", "),
			strings.Join(company.EmissionSources, ", ")),
		newInputField(keyEquipment, "Equipment", fieldList, strings.Join(profile.Equipment, ", "),
			"comma separated"),
		newChoiceField(keySavingLaw, "Energy saving law", company.SavingLawStatuses, profile.SavingLaw),
		newChoiceField(keyShape, "Emission profile", company.EmissionProfiles, profile.EmissionShape),
		newInputField(keyNotes, "Notes", fieldText, profile.Notes, "optional"),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// collectForm converts the field values into a profile and scenario input.
// Parse errors name the offending field; range checks are left to the
// validators.
func collectForm(fields []formField) (company.Profile, scenario.Input, error) {
	var (
		profile company.Profile
		in      scenario.Input
	)

	for i := range fields {
		f := &fields[i]
		raw := strings.TrimSpace(f.value())

		switch f.key {
		case keyIndustry:
			profile.Industry = raw
		case keyEmployees:
			profile.Employees = raw
		case keyBaseline:
			year, err := strconv.Atoi(raw)
			if err != nil {
				return profile, in, fmt.Errorf("%s: %q is not a year", f.label, raw)
			}
			profile.BaselineYear = year
		case keyScope1, keyScope2, keyGrowth, keyReduction:
			v, err := parseNumber(raw)
			if err != nil {
				return profile, in, fmt.Errorf("%s: %q is not a number", f.label, raw)
			}
			switch f.key {
			case keyScope1:
				in.Scope1 = v
			case keyScope2:
				in.Scope2 = v
			case keyGrowth:
				in.GrowthRatePercent = v
			default:
				in.ReductionRatePercent = v
			}
		case keyYears:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return profile, in, fmt.Errorf("%s: %q is not a whole number", f.label, raw)
			}
			in.HorizonYears = n
		case keySources:
			profile.Sources = splitList(raw)
		case keyEquipment:
			profile.Equipment = splitList(raw)
		case keySavingLaw:
			profile.SavingLaw = raw
		case keyShape:
			profile.EmissionShape = raw
		case keyNotes:
			profile.Notes = raw
		}
	}
	return profile, in, nil
}

func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
