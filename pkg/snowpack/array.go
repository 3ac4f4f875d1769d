package snowpack

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the output size from which element-wise evaluation
// is split across goroutines
const parallelThreshold = 1 << 16

// Shape lists the extent of each dimension of an Array. The empty shape
// describes a scalar.
type Shape []int

// Size returns the number of elements a value of this shape holds
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal reports whether two shapes are identical
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// strides returns row-major element strides
func (s Shape) strides() []int {
	st := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		st[i] = stride
		stride *= s[i]
	}
	return st
}

// BroadcastShapes returns the shape that all given shapes broadcast to.
// Dimensions are aligned from the right and must either match or be 1.
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	ndim := 0
	for _, s := range shapes {
		if len(s) > ndim {
			ndim = len(s)
		}
	}

	out := make(Shape, ndim)
	for i := range out {
		out[i] = 1
	}

	for _, s := range shapes {
		offset := ndim - len(s)
		for i, d := range s {
			j := i + offset
			switch {
			case d == out[j] || d == 1:
			case out[j] == 1:
				out[j] = d
			default:
				return nil, fmt.Errorf("cannot broadcast %v against %v: %w", s, out, ErrShapeMismatch)
			}
		}
	}
	return out, nil
}

// Array is a row-major N-dimensional array of float values
type Array[T Float] struct {
	shape Shape
	data  []T
}

// NewArray wraps data in an array of the given shape. The data is not
// copied.
func NewArray[T Float](shape Shape, data []T) (*Array[T], error) {
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative dimension in %v: %w", shape, ErrShapeMismatch)
		}
	}
	if shape.Size() != len(data) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d: %w", shape, shape.Size(), len(data), ErrShapeMismatch)
	}
	return &Array[T]{shape: append(Shape(nil), shape...), data: data}, nil
}

// Scalar returns a zero-dimensional array holding v
func Scalar[T Float](v T) *Array[T] {
	return &Array[T]{shape: Shape{}, data: []T{v}}
}

// Series returns a one-dimensional array backed by values
func Series[T Float](values []T) *Array[T] {
	return &Array[T]{shape: Shape{len(values)}, data: values}
}

// Shape returns a copy of the array's shape
func (a *Array[T]) Shape() Shape {
	return append(Shape{}, a.shape...)
}

// Len returns the number of elements
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Data returns the backing row-major slice
func (a *Array[T]) Data() []T {
	return a.data
}

// At returns the element at the given index. It panics if the index does
// not address an element.
func (a *Array[T]) At(idx ...int) T {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("snowpack: %d indices for array of shape %v", len(idx), a.shape))
	}
	off := 0
	for i, st := range a.shape.strides() {
		if idx[i] < 0 || idx[i] >= a.shape[i] {
			panic(fmt.Sprintf("snowpack: index %v out of range for shape %v", idx, a.shape))
		}
		off += idx[i] * st
	}
	return a.data[off]
}

// indexer maps a flat index in the broadcast output shape to a flat index
// into a's data
func (a *Array[T]) indexer(out Shape) func(int) int {
	if len(a.data) == 1 {
		return func(int) int { return 0 }
	}
	if a.shape.Equal(out) {
		return func(k int) int { return k }
	}

	// Broadcast dimensions get a zero stride
	offset := len(out) - len(a.shape)
	inStrides := make([]int, len(out))
	for i, st := range a.shape.strides() {
		if a.shape[i] != 1 {
			inStrides[i+offset] = st
		}
	}
	outStrides := out.strides()

	return func(k int) int {
		off := 0
		for d := range out {
			off += (k / outStrides[d] % out[d]) * inStrides[d]
		}
		return off
	}
}

// broadcastTo expands a to shape, which must be a broadcast of a's shape
func (a *Array[T]) broadcastTo(shape Shape) (*Array[T], error) {
	if a.shape.Equal(shape) {
		return a, nil
	}
	if _, err := BroadcastShapes(a.shape, shape); err != nil {
		return nil, err
	}
	ia := a.indexer(shape)
	out := make([]T, shape.Size())
	for k := range out {
		out[k] = a.data[ia(k)]
	}
	return &Array[T]{shape: append(Shape(nil), shape...), data: out}, nil
}

// Map1 applies fn to every element of a
func Map1[T Float](a *Array[T], fn func(T) T) *Array[T] {
	out := make([]T, len(a.data))
	evaluate(len(out), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			out[k] = fn(a.data[k])
		}
	})
	return &Array[T]{shape: a.Shape(), data: out}
}

// Map2 applies fn element-wise over the broadcast shape of a and b
func Map2[T Float](a, b *Array[T], fn func(T, T) T) (*Array[T], error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	ia, ib := a.indexer(shape), b.indexer(shape)

	out := make([]T, shape.Size())
	evaluate(len(out), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			out[k] = fn(a.data[ia(k)], b.data[ib(k)])
		}
	})
	return &Array[T]{shape: shape, data: out}, nil
}

// Map3 applies fn element-wise over the broadcast shape of a, b and c
func Map3[T Float](a, b, c *Array[T], fn func(T, T, T) T) (*Array[T], error) {
	shape, err := BroadcastShapes(a.shape, b.shape, c.shape)
	if err != nil {
		return nil, err
	}
	ia, ib, ic := a.indexer(shape), b.indexer(shape), c.indexer(shape)

	out := make([]T, shape.Size())
	evaluate(len(out), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			out[k] = fn(a.data[ia(k)], b.data[ib(k)], c.data[ic(k)])
		}
	})
	return &Array[T]{shape: shape, data: out}, nil
}

// seriesLen returns the broadcast length of two series
func seriesLen(a, b int) (int, error) {
	switch {
	case a == b || b == 1:
		return a, nil
	case a == 1:
		return b, nil
	default:
		return 0, fmt.Errorf("cannot broadcast series of length %d against %d: %w", a, b, ErrShapeMismatch)
	}
}

func prepareDst[T Float](dst []T, n int) ([]T, error) {
	if dst == nil {
		return make([]T, n), nil
	}
	if len(dst) != n {
		return nil, fmt.Errorf("output buffer has length %d, need %d: %w", len(dst), n, ErrShapeMismatch)
	}
	return dst, nil
}

func mapInto1[T Float](dst, a []T, fn func(T) T) ([]T, error) {
	dst, err := prepareDst(dst, len(a))
	if err != nil {
		return nil, err
	}
	evaluate(len(dst), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			dst[k] = fn(a[k])
		}
	})
	return dst, nil
}

func mapInto2[T Float](dst, a, b []T, fn func(T, T) T) ([]T, error) {
	n, err := seriesLen(len(a), len(b))
	if err != nil {
		return nil, err
	}
	dst, err = prepareDst(dst, n)
	if err != nil {
		return nil, err
	}

	sa, sb := len(a) == 1, len(b) == 1
	evaluate(n, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			ka, kb := k, k
			if sa {
				ka = 0
			}
			if sb {
				kb = 0
			}
			dst[k] = fn(a[ka], b[kb])
		}
	})
	return dst, nil
}

// evaluate runs fn over [0, n). Large ranges are split into one chunk per
// available CPU.
func evaluate(n int, fn func(lo, hi int)) {
	workers := runtime.GOMAXPROCS(0)
	if n < parallelThreshold || workers < 2 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	// Kernels cannot fail, so Wait only joins the chunks
	g.Wait()
}
