package snowpack

import (
	"errors"
	"math"
	"testing"
)

func TestMeltwaterProduction(t *testing.T) {
	defaults := DefaultMeltParams()

	tests := []struct {
		name     string
		tempMin  float64
		tempMax  float64
		params   MeltParams
		expected float64
	}{
		{
			name:     "at minimum threshold",
			tempMin:  -12,
			tempMax:  10,
			params:   defaults,
			expected: 0,
		},
		{
			name:     "below minimum threshold with warm peak",
			tempMin:  -20,
			tempMax:  15,
			params:   defaults,
			expected: 0,
		},
		{
			name:     "freezing night with warm peak",
			tempMin:  -10,
			tempMax:  10,
			params:   defaults,
			expected: 0.84,
		},
		{
			name:     "freezing night with peak at maximum threshold",
			tempMin:  -2,
			tempMax:  5,
			params:   defaults,
			expected: 4.2,
		},
		{
			name:     "freezing night with cool peak",
			tempMin:  -2,
			tempMax:  4.9,
			params:   defaults,
			expected: 0,
		},
		{
			name:     "zero minimum with cool peak",
			tempMin:  0,
			tempMax:  3,
			params:   defaults,
			expected: 0,
		},
		{
			name:     "mild night with cool peak still melts",
			tempMin:  1,
			tempMax:  0,
			params:   defaults,
			expected: 5.46,
		},
		{
			name:     "custom rate",
			tempMin:  2,
			tempMax:  8,
			params:   MeltParams{ThresholdMin: -10, ThresholdMax: 4, MeltRate: 0.5},
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeltwaterProduction(tt.tempMin, tt.tempMax, tt.params)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("MeltwaterProduction(%g, %g) = %g, want %g", tt.tempMin, tt.tempMax, got, tt.expected)
			}
		})
	}
}

func TestMeltwaterProperties(t *testing.T) {
	p := DefaultMeltParams()

	for tmin := -30.0; tmin <= 20; tmin += 0.25 {
		for tmax := tmin; tmax <= tmin+25; tmax += 0.5 {
			got := MeltwaterProduction(tmin, tmax, p)

			if got < 0 {
				t.Fatalf("negative melt %g at (%g, %g)", got, tmin, tmax)
			}
			switch {
			case tmin <= -12:
				if got != 0 {
					t.Errorf("expected no melt at tmin %g, got %g", tmin, got)
				}
			case tmin <= 0 && tmax < 5:
				if got != 0 {
					t.Errorf("expected no melt at (%g, %g), got %g", tmin, tmax, got)
				}
			case tmin > 0:
				want := p.MeltRate * (tmin + 12)
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("at (%g, %g) expected %g, got %g", tmin, tmax, want, got)
				}
			}
		}
	}

	// A mild minimum melts whatever the maximum
	for _, tmax := range []float64{-5, 0, 4.99, 5, 30} {
		got := MeltwaterProduction(3.0, tmax, p)
		if math.Abs(got-p.MeltRate*15) > 1e-9 {
			t.Errorf("tmax %g: expected %g, got %g", tmax, p.MeltRate*15, got)
		}
	}
}

func TestMeltwaterInvalidRate(t *testing.T) {
	for _, rate := range []float64{0, -0.42, math.NaN()} {
		p := DefaultMeltParams()
		p.MeltRate = rate

		if err := p.Validate(); !errors.Is(err, ErrInvalidMeltRate) {
			t.Errorf("rate %g: expected ErrInvalidMeltRate, got %v", rate, err)
		}
		if _, err := MeltwaterInto(nil, []float64{1}, []float64{8}, p); !errors.Is(err, ErrInvalidMeltRate) {
			t.Errorf("rate %g: MeltwaterInto expected ErrInvalidMeltRate, got %v", rate, err)
		}
		if _, err := MeltwaterArray(Scalar(1.0), Scalar(8.0), p); !errors.Is(err, ErrInvalidMeltRate) {
			t.Errorf("rate %g: MeltwaterArray expected ErrInvalidMeltRate, got %v", rate, err)
		}
	}
}

func TestMeltwaterBatchMatchesScalar(t *testing.T) {
	p := DefaultMeltParams()
	tempMin := []float64{-12, -10, 1, -2, 0, 6}
	tempMax := []float64{10, 10, 0, 4, 8, 12}

	got, err := MeltwaterInto(nil, tempMin, tempMax, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range tempMin {
		if want := MeltwaterProduction(tempMin[i], tempMax[i], p); got[i] != want {
			t.Errorf("element %d: batch %g, scalar %g", i, got[i], want)
		}
	}

	// A scalar maximum broadcast across the minimum series
	arr, err := MeltwaterArray(Series(tempMin), Scalar(10.0), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range arr.Data() {
		if want := MeltwaterProduction(tempMin[i], 10, p); v != want {
			t.Errorf("element %d: array %g, scalar %g", i, v, want)
		}
	}
}
