package snowpack

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Day holds the inputs of the mass balance for a single day
type Day struct {
	Precipitation     float64
	TempMin           float64
	TempMax           float64
	SnowCoverPrevious float64
}

// Terms holds the mass balance terms of a single day
type Terms struct {
	Snowfall    float64
	Melt        float64
	Sublimation float64
}

// SeriesTerms holds the mass balance terms of a series of days
type SeriesTerms struct {
	Snowfall    []float64
	Melt        []float64
	Sublimation []float64
}

// GridTerms holds the mass balance terms of a grid of cells for one day
type GridTerms struct {
	Snowfall    *mat.Dense
	Melt        *mat.Dense
	Sublimation *mat.Dense
}

// Calculator evaluates the mass balance terms with a fixed, validated
// parameter set. It is safe for concurrent use.
type Calculator struct {
	params Params
	logger *zap.SugaredLogger
}

// NewCalculator validates params and returns a Calculator using them.
// A nil logger discards all output.
func NewCalculator(params Params, logger *zap.SugaredLogger) (*Calculator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snowpack parameters: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Calculator{
		params: params,
		logger: logger,
	}, nil
}

// Params returns the parameter set in use
func (c *Calculator) Params() Params {
	return c.params
}

// Snowfall returns the snow part of precipitation
func (c *Calculator) Snowfall(precipitation, tempMin float64) float64 {
	return Snowfall(precipitation, tempMin, c.params.Accumulation)
}

// Melt returns the meltwater production
func (c *Calculator) Melt(tempMin, tempMax float64) float64 {
	return MeltwaterProduction(tempMin, tempMax, c.params.Melt)
}

// Sublimation returns the sublimation loss
func (c *Calculator) Sublimation(snowCoverPrevious float64) float64 {
	return SublimedSnowCover(snowCoverPrevious, c.params.Sublimation)
}

// Day evaluates all three terms for one day
func (c *Calculator) Day(d Day) Terms {
	return Terms{
		Snowfall:    c.Snowfall(d.Precipitation, d.TempMin),
		Melt:        c.Melt(d.TempMin, d.TempMax),
		Sublimation: c.Sublimation(d.SnowCoverPrevious),
	}
}

// Series evaluates all three terms for every day of a series. Inputs of
// length 1 are broadcast across the series; every other input must have
// the same length.
func (c *Calculator) Series(precipitation, tempMin, tempMax, snowCoverPrevious []float64) (SeriesTerms, error) {
	n := len(precipitation)
	var err error
	for _, s := range [][]float64{tempMin, tempMax, snowCoverPrevious} {
		if n, err = seriesLen(n, len(s)); err != nil {
			return SeriesTerms{}, err
		}
	}

	at := func(s []float64, k int) float64 {
		if len(s) == 1 {
			return s[0]
		}
		return s[k]
	}

	terms := SeriesTerms{
		Snowfall:    make([]float64, n),
		Melt:        make([]float64, n),
		Sublimation: make([]float64, n),
	}
	evaluate(n, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			t := c.Day(Day{
				Precipitation:     at(precipitation, k),
				TempMin:           at(tempMin, k),
				TempMax:           at(tempMax, k),
				SnowCoverPrevious: at(snowCoverPrevious, k),
			})
			terms.Snowfall[k] = t.Snowfall
			terms.Melt[k] = t.Melt
			terms.Sublimation[k] = t.Sublimation
		}
	})

	c.logger.Debugw("evaluated series", "days", n)
	return terms, nil
}

// Grids evaluates all three terms cell by cell for one day. The four
// grids must broadcast to a common shape, which every term takes.
func (c *Calculator) Grids(precipitation, tempMin, tempMax, snowCoverPrevious mat.Matrix) (GridTerms, error) {
	inputs := []*Array[float64]{
		FromDense(precipitation),
		FromDense(tempMin),
		FromDense(tempMax),
		FromDense(snowCoverPrevious),
	}
	shapes := make([]Shape, len(inputs))
	for i, in := range inputs {
		shapes[i] = in.shape
	}
	shape, err := BroadcastShapes(shapes...)
	if err != nil {
		return GridTerms{}, fmt.Errorf("grids: %w", err)
	}
	for i, in := range inputs {
		if inputs[i], err = in.broadcastTo(shape); err != nil {
			return GridTerms{}, fmt.Errorf("grids: %w", err)
		}
	}
	pr, tmin, tmax, cover := inputs[0], inputs[1], inputs[2], inputs[3]

	snowfall, err := SnowfallArray(pr, tmin, c.params.Accumulation)
	if err != nil {
		return GridTerms{}, fmt.Errorf("snowfall: %w", err)
	}
	melt, err := MeltwaterArray(tmin, tmax, c.params.Melt)
	if err != nil {
		return GridTerms{}, fmt.Errorf("melt: %w", err)
	}
	sublimation, err := SublimationArray(cover, c.params.Sublimation)
	if err != nil {
		return GridTerms{}, fmt.Errorf("sublimation: %w", err)
	}

	var terms GridTerms
	for _, t := range []struct {
		dst **mat.Dense
		src *Array[float64]
	}{
		{&terms.Snowfall, snowfall},
		{&terms.Melt, melt},
		{&terms.Sublimation, sublimation},
	} {
		if *t.dst, err = ToDense(t.src); err != nil {
			return GridTerms{}, err
		}
	}

	c.logger.Debugw("evaluated grids", "rows", shape[0], "cols", shape[1])
	return terms, nil
}
