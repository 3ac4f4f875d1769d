// Package snowpack provides the daily mass balance terms of a threshold
// degree-day snow model (Trnka et al., 2010): snowfall accumulation,
// meltwater production and sublimation loss.
//
// The formulas are pure and stateless. They accept scalars of any float
// type, slices, N-dimensional arrays with NumPy-style broadcasting, or
// gonum matrices. Carrying the snow cover forward from one day to the next
// (accumulation minus melt minus sublimation) is left to the caller.
package snowpack

import "errors"

// Float is the set of numeric types the formulas operate on
type Float interface {
	~float32 | ~float64
}

var (
	// ErrDegenerateThresholds is returned when the upper and lower snowfall
	// thresholds coincide, leaving no transition band to interpolate across
	ErrDegenerateThresholds = errors.New("degenerate threshold configuration")

	// ErrInvalidMeltRate is returned for a melt rate that is not positive
	ErrInvalidMeltRate = errors.New("melt rate must be positive")

	// ErrShapeMismatch is returned when batched inputs cannot be broadcast
	// together or an output buffer does not fit the broadcast shape
	ErrShapeMismatch = errors.New("shape mismatch")
)

func abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
