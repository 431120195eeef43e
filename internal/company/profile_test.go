package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile_IsValid(t *testing.T) {
	p := DefaultProfile()

	require.NoError(t, p.Validate())
	assert.Equal(t, "Manufacturing", p.Industry)
	assert.Equal(t, 2020, p.BaselineYear)
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr string
	}{
		{name: "valid multi-choice", mutate: func(p *Profile) {
			p.Sources = []string{"Gas", "Electricity"}
			p.Equipment = []string{"Forklifts", "Lighting"}
			p.Notes = "anything goes here"
		}},
		{name: "unknown industry", mutate: func(p *Profile) { p.Industry = "Mining" }, wantErr: `industry "Mining"`},
		{name: "unknown band", mutate: func(p *Profile) { p.Employees = "5000+" }, wantErr: `employees "5000+"`},
		{name: "baseline year outside list", mutate: func(p *Profile) { p.BaselineYear = 2019 }, wantErr: "baseline year 2019"},
		{name: "unknown source", mutate: func(p *Profile) { p.Sources = []string{"Coal"} }, wantErr: `emission source "Coal"`},
		{name: "unknown equipment", mutate: func(p *Profile) { p.Equipment = []string{"Kiln"} }, wantErr: `equipment "Kiln"`},
		{name: "unknown saving law", mutate: func(p *Profile) { p.SavingLaw = "Maybe" }, wantErr: `saving law "Maybe"`},
		{name: "unknown shape", mutate: func(p *Profile) { p.EmissionShape = "" }, wantErr: `emission profile ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrUnknownOption)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfile_Normalize(t *testing.T) {
	p := Profile{
		Industry:  "  Retail ",
		Sources:   []string{"Gas", " Gas", "", "Electricity"},
		Equipment: []string{" Lighting "},
		Notes:     "\n two sites \n",
	}.Normalize()

	assert.Equal(t, "Retail", p.Industry)
	assert.Equal(t, []string{"Gas", "Electricity"}, p.Sources)
	assert.Equal(t, []string{"Lighting"}, p.Equipment)
	assert.Equal(t, "two sites", p.Notes)
}
