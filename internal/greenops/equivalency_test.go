package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       CarbonInput
		wantKg      float64
		wantMiles   float64
		wantPhones  float64
		wantTrees   float64
		wantHomes   float64
		wantIsEmpty bool
		wantErr     error
	}{
		{
			name:       "150kg reference value",
			input:      CarbonInput{Value: 150.0, Unit: "kg"},
			wantKg:     150,
			wantMiles:  781.25,   // 150 / 0.192
			wantPhones: 18248.18, // 150 / 0.00822
			wantTrees:  2.5,      // 150 / 60
			wantHomes:  8.20,     // 150 / 18.3
		},
		{
			name:       "tonnes as produced by a scenario summary",
			input:      CarbonInput{Value: 75, Unit: "tCO2e"},
			wantKg:     75000,
			wantMiles:  390625,
			wantPhones: 9124087.59,
			wantTrees:  1250,
			wantHomes:  4098.36,
		},
		{
			name:       "grams normalised",
			input:      CarbonInput{Value: 150000.0, Unit: "g"},
			wantKg:     150,
			wantMiles:  781.25,
			wantPhones: 18248.18,
			wantTrees:  2.5,
			wantHomes:  8.20,
		},
		{
			name:        "below threshold returns empty",
			input:       CarbonInput{Value: 0.5, Unit: "kg"},
			wantIsEmpty: true,
		},
		{
			name:        "zero avoided emissions returns empty",
			input:       CarbonInput{Value: 0, Unit: "tCO2e"},
			wantIsEmpty: true,
		},
		{
			name:    "negative value",
			input:   CarbonInput{Value: -100.0, Unit: "kg"},
			wantErr: ErrNegativeValue,
		},
		{
			name:    "invalid unit",
			input:   CarbonInput{Value: 100.0, Unit: "barrels"},
			wantErr: ErrInvalidUnit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.Empty(t, got.Results)
				return
			}

			assert.False(t, got.IsEmpty)
			assert.InDelta(t, tt.wantKg, got.InputKg, 1e-9)
			require.Len(t, got.Results, 4)

			want := map[EquivalencyType]float64{
				EquivalencyMilesDriven:        tt.wantMiles,
				EquivalencySmartphonesCharged: tt.wantPhones,
				EquivalencyTreeSeedlings:      tt.wantTrees,
				EquivalencyHomeDays:           tt.wantHomes,
			}
			for i, r := range got.Results {
				assert.Equal(t, EquivalencyType(i), r.Type, "results are in display order")
				assert.InDelta(t, want[r.Type], r.Value, want[r.Type]*0.01, r.Type.String())
				assert.NotEmpty(t, r.Label)
				assert.NotEmpty(t, r.FormattedValue)
			}

			assert.Contains(t, got.DisplayText, "Equivalent to driving")
			assert.Contains(t, got.DisplayText, "tree seedlings")
			assert.Contains(t, got.CompactText, "home-days")
		})
	}
}

func TestCalculate_DisplayText(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 150, Unit: "kg"})
	require.NoError(t, err)

	assert.Equal(t,
		"Equivalent to driving ~781 miles, charging ~18,248 smartphones or growing ~3 tree seedlings for 10 years",
		got.DisplayText)
	assert.Equal(t, "(≈ 781 mi, 18,248 phones, 3 seedlings, 8 home-days)", got.CompactText)
}

func TestCalculate_LargeValuesAbbreviated(t *testing.T) {
	got, err := CalculateAvoided(1000)
	require.NoError(t, err)

	phones, ok := got.Find(EquivalencySmartphonesCharged)
	require.True(t, ok)
	assert.Equal(t, "~121.7 million", phones.FormattedValue)

	miles, ok := got.Find(EquivalencyMilesDriven)
	require.True(t, ok)
	assert.Equal(t, "~5.2 million", miles.FormattedValue)
}

func TestEquivalencyOutput_FindMissing(t *testing.T) {
	_, ok := EquivalencyOutput{IsEmpty: true}.Find(EquivalencyHomeDays)
	assert.False(t, ok)
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "TreeSeedlings", EquivalencyTreeSeedlings.String())
	assert.Equal(t, "HomeDays", EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}

func BenchmarkCalculate(b *testing.B) {
	input := CarbonInput{Value: 150.0, Unit: "kg"}
	for b.Loop() {
		_, _ = Calculate(input)
	}
}
