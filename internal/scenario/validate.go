package scenario

import (
	"errors"
	"fmt"
	"math"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Input domain errors. Compare with errors.Is.
var (
	// ErrNegativeEmissions indicates a negative or non-finite baseline.
	ErrNegativeEmissions = constError("baseline emissions must be non-negative")

	// ErrHorizonOutOfRange indicates a horizon outside MinHorizonYears..MaxHorizonYears.
	ErrHorizonOutOfRange = constError("horizon years out of range")

	// ErrReductionOutOfRange indicates a target reduction outside 0..100 percent.
	ErrReductionOutOfRange = constError("reduction rate out of range")

	// ErrGrowthOutOfRange indicates a growth rate outside the accepted band.
	ErrGrowthOutOfRange = constError("growth rate out of range")
)

// Input bounds accepted by the presentation surfaces.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 30

	MinReductionPercent = 0.0
	MaxReductionPercent = 100.0

	MinGrowthPercent = -10.0
	MaxGrowthPercent = 20.0
)

// Validate checks the input domain. Every violation is reported; the
// returned error joins them and each one matches its sentinel via errors.Is.
func (in Input) Validate() error {
	var errs []error

	if !validEmissions(in.Scope1) {
		errs = append(errs, fmt.Errorf("%w: scope1 = %v", ErrNegativeEmissions, in.Scope1))
	}
	if !validEmissions(in.Scope2) {
		errs = append(errs, fmt.Errorf("%w: scope2 = %v", ErrNegativeEmissions, in.Scope2))
	}
	if in.HorizonYears < MinHorizonYears || in.HorizonYears > MaxHorizonYears {
		errs = append(errs, fmt.Errorf("%w: got %d, want %d..%d",
			ErrHorizonOutOfRange, in.HorizonYears, MinHorizonYears, MaxHorizonYears))
	}
	if !inRange(in.ReductionRatePercent, MinReductionPercent, MaxReductionPercent) {
		errs = append(errs, fmt.Errorf("%w: got %v, want %v..%v",
			ErrReductionOutOfRange, in.ReductionRatePercent, MinReductionPercent, MaxReductionPercent))
	}
	if !inRange(in.GrowthRatePercent, MinGrowthPercent, MaxGrowthPercent) {
		errs = append(errs, fmt.Errorf("%w: got %v, want %v..%v",
			ErrGrowthOutOfRange, in.GrowthRatePercent, MinGrowthPercent, MaxGrowthPercent))
	}

	return errors.Join(errs...)
}

func validEmissions(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// inRange reports lo <= v <= hi. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
