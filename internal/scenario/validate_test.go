package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Validate(t *testing.T) {
	valid := Input{Scope1: 100, Scope2: 50, GrowthRatePercent: 0, ReductionRatePercent: 50, HorizonYears: 5}

	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr []error
	}{
		{name: "valid", mutate: func(*Input) {}},
		{name: "zero emissions allowed", mutate: func(in *Input) { in.Scope1, in.Scope2 = 0, 0 }},
		{name: "horizon lower bound", mutate: func(in *Input) { in.HorizonYears = 1 }},
		{name: "horizon upper bound", mutate: func(in *Input) { in.HorizonYears = 30 }},
		{name: "growth band edges", mutate: func(in *Input) { in.GrowthRatePercent = -10 }},
		{name: "full reduction", mutate: func(in *Input) { in.ReductionRatePercent = 100 }},
		{
			name:    "zero horizon",
			mutate:  func(in *Input) { in.HorizonYears = 0 },
			wantErr: []error{ErrHorizonOutOfRange},
		},
		{
			name:    "horizon too long",
			mutate:  func(in *Input) { in.HorizonYears = 31 },
			wantErr: []error{ErrHorizonOutOfRange},
		},
		{
			name:    "negative scope1",
			mutate:  func(in *Input) { in.Scope1 = -1 },
			wantErr: []error{ErrNegativeEmissions},
		},
		{
			name:    "NaN scope2",
			mutate:  func(in *Input) { in.Scope2 = math.NaN() },
			wantErr: []error{ErrNegativeEmissions},
		},
		{
			name:    "infinite scope2",
			mutate:  func(in *Input) { in.Scope2 = math.Inf(1) },
			wantErr: []error{ErrNegativeEmissions},
		},
		{
			name:    "reduction above 100",
			mutate:  func(in *Input) { in.ReductionRatePercent = 100.5 },
			wantErr: []error{ErrReductionOutOfRange},
		},
		{
			name:    "negative reduction",
			mutate:  func(in *Input) { in.ReductionRatePercent = -5 },
			wantErr: []error{ErrReductionOutOfRange},
		},
		{
			name:    "growth above band",
			mutate:  func(in *Input) { in.GrowthRatePercent = 25 },
			wantErr: []error{ErrGrowthOutOfRange},
		},
		{
			name:    "NaN growth",
			mutate:  func(in *Input) { in.GrowthRatePercent = math.NaN() },
			wantErr: []error{ErrGrowthOutOfRange},
		},
		{
			name: "every violation reported",
			mutate: func(in *Input) {
				in.Scope1 = -1
				in.HorizonYears = 0
				in.ReductionRatePercent = 200
			},
			wantErr: []error{ErrNegativeEmissions, ErrHorizonOutOfRange, ErrReductionOutOfRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := in.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestInput_ValidateMessageNamesField(t *testing.T) {
	err := Input{Scope1: 1, Scope2: -2, HorizonYears: 5}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope2 = -2")
}
