package snowpack

import (
	"fmt"
	"math"
)

// Default model parameters
const (
	DefaultThresholdUpper     = 0.0   // ˚C, daily minimum above which no snow falls
	DefaultThresholdLower     = -6.0  // ˚C, daily minimum below which all precipitation is snow
	DefaultThresholdMin       = -12.0 // ˚C, daily minimum below which melt is impossible
	DefaultThresholdMax       = 5.0   // ˚C, daily maximum below which a freezing day cannot melt
	DefaultMeltRate           = 0.42  // mm/˚C/day
	DefaultThresholdSnowCover = 20.0  // snow cover above which one unit sublimates per day
)

// AccumulationParams configures the snowfall formula
type AccumulationParams struct {
	// ThresholdUpper is the daily minimum temperature at or above which
	// snowfall is impossible
	ThresholdUpper float64

	// ThresholdLower is the daily minimum temperature at or below which all
	// precipitation falls as snow
	ThresholdLower float64
}

// DefaultAccumulationParams returns the published snowfall thresholds
func DefaultAccumulationParams() AccumulationParams {
	return AccumulationParams{
		ThresholdUpper: DefaultThresholdUpper,
		ThresholdLower: DefaultThresholdLower,
	}
}

// Validate rejects threshold pairs with no transition band
func (p AccumulationParams) Validate() error {
	if math.IsNaN(p.ThresholdUpper) || math.IsNaN(p.ThresholdLower) {
		return fmt.Errorf("snowfall thresholds must be numbers: %w", ErrDegenerateThresholds)
	}
	if p.ThresholdUpper == p.ThresholdLower {
		return fmt.Errorf("upper and lower snowfall thresholds are both %g: %w", p.ThresholdUpper, ErrDegenerateThresholds)
	}
	return nil
}

// MeltParams configures the meltwater production formula
type MeltParams struct {
	// ThresholdMin is the daily minimum temperature at or below which melt
	// is impossible
	ThresholdMin float64

	// ThresholdMax is the daily maximum temperature a freezing day must
	// reach before melt can occur
	ThresholdMax float64

	// MeltRate is the meltwater yield per degree per day
	MeltRate float64
}

// DefaultMeltParams returns the published melt thresholds and rate
func DefaultMeltParams() MeltParams {
	return MeltParams{
		ThresholdMin: DefaultThresholdMin,
		ThresholdMax: DefaultThresholdMax,
		MeltRate:     DefaultMeltRate,
	}
}

// Validate checks that the melt rate is positive
func (p MeltParams) Validate() error {
	if math.IsNaN(p.MeltRate) || p.MeltRate <= 0 {
		return fmt.Errorf("got %g: %w", p.MeltRate, ErrInvalidMeltRate)
	}
	return nil
}

// SublimationParams configures the sublimation formula
type SublimationParams struct {
	// ThresholdSnowCover is the previous-day snow cover above which
	// sublimation occurs
	ThresholdSnowCover float64
}

// DefaultSublimationParams returns the published sublimation threshold
func DefaultSublimationParams() SublimationParams {
	return SublimationParams{ThresholdSnowCover: DefaultThresholdSnowCover}
}

// Params bundles the parameters of all three formulas
type Params struct {
	Accumulation AccumulationParams
	Melt         MeltParams
	Sublimation  SublimationParams
}

// DefaultParams returns the published parameter set
func DefaultParams() Params {
	return Params{
		Accumulation: DefaultAccumulationParams(),
		Melt:         DefaultMeltParams(),
		Sublimation:  DefaultSublimationParams(),
	}
}

// Validate checks every parameter group
func (p Params) Validate() error {
	if err := p.Accumulation.Validate(); err != nil {
		return fmt.Errorf("accumulation: %w", err)
	}
	if err := p.Melt.Validate(); err != nil {
		return fmt.Errorf("melt: %w", err)
	}
	return nil
}
