package snowpack

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromDense returns a two-dimensional array holding the elements of m.
// A contiguous *mat.Dense shares its backing data instead of being copied.
func FromDense(m mat.Matrix) *Array[float64] {
	r, c := m.Dims()
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		if raw.Stride == c {
			return &Array[float64]{shape: Shape{r, c}, data: raw.Data[:r*c]}
		}
	}

	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}
	return &Array[float64]{shape: Shape{r, c}, data: data}
}

// ToDense converts a non-empty two-dimensional array into a gonum matrix
func ToDense[T Float](a *Array[T]) (*mat.Dense, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("matrix needs 2 dimensions, array has shape %v: %w", a.shape, ErrShapeMismatch)
	}
	if len(a.data) == 0 {
		return nil, fmt.Errorf("empty array of shape %v: %w", a.shape, ErrShapeMismatch)
	}

	data := make([]float64, len(a.data))
	for i, v := range a.data {
		data[i] = float64(v)
	}
	return mat.NewDense(a.shape[0], a.shape[1], data), nil
}

// SnowfallGrid evaluates Snowfall cell by cell. A 1×1 matrix broadcasts
// like a scalar; a single row or column broadcasts along the other axis.
func SnowfallGrid(precipitation, tempMin mat.Matrix, p AccumulationParams) (*mat.Dense, error) {
	out, err := SnowfallArray(FromDense(precipitation), FromDense(tempMin), p)
	if err != nil {
		return nil, err
	}
	return ToDense(out)
}

// MeltwaterGrid evaluates MeltwaterProduction cell by cell, broadcasting
// like SnowfallGrid
func MeltwaterGrid(tempMin, tempMax mat.Matrix, p MeltParams) (*mat.Dense, error) {
	out, err := MeltwaterArray(FromDense(tempMin), FromDense(tempMax), p)
	if err != nil {
		return nil, err
	}
	return ToDense(out)
}

// SublimationGrid evaluates SublimedSnowCover cell by cell
func SublimationGrid(snowCoverPrevious mat.Matrix, p SublimationParams) (*mat.Dense, error) {
	out, err := SublimationArray(FromDense(snowCoverPrevious), p)
	if err != nil {
		return nil, err
	}
	return ToDense(out)
}
