// ABOUTME: Dimensionality reduction engine mapping embedding batches to low-dimensional coordinates.
// ABOUTME: Principal-component projection with truncation and zero-padding fallbacks for small batches.
package position

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultDimensions is the coordinate length used when none is configured.
const DefaultDimensions = 3

var (
	// ErrInvalidInput marks a batch rejected before any computation:
	// empty, ragged, zero-width, or containing non-finite values.
	ErrInvalidInput = errors.New("invalid input batch")

	// ErrReduceFailed marks a well-formed batch the principal-component
	// fit could not handle.
	ErrReduceFailed = errors.New("reduction failed")
)

// Engine reduces batches of equal-length vectors to fixed-length coordinates.
//
// Each Reduce call is a fresh fit: the engine keeps no state between calls,
// so principal-axis orientation (sign, rotation) is not stable across calls
// even for identical batches. The truncation and padding fallbacks are pure
// functions of their input.
type Engine struct {
	dims int
}

// NewEngine creates an engine producing coordinates of the given length.
// A non-positive value selects DefaultDimensions.
func NewEngine(dims int) *Engine {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Engine{dims: dims}
}

// Dimensions returns the coordinate length this engine produces.
func (e *Engine) Dimensions() int {
	return e.dims
}

// Reduce maps a batch of equal-length vectors to one coordinate per input,
// in input order. With n = batch size, f = vector length, k = target length:
//
//   - f < k: each vector is right-padded with zeros to length k.
//   - n < k (and f >= k): each vector is truncated to its first k components.
//   - otherwise: variance-maximizing linear projection onto k principal axes.
func (e *Engine) Reduce(vectors [][]float64) ([][]float64, error) {
	if err := validateBatch(vectors); err != nil {
		return nil, err
	}

	n := len(vectors)
	f := len(vectors[0])
	k := e.dims

	switch {
	case f < k:
		return padBatch(vectors, k), nil
	case n < k:
		return truncateBatch(vectors, k), nil
	default:
		return projectBatch(vectors, n, f, k)
	}
}

func validateBatch(vectors [][]float64) error {
	if len(vectors) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	f := len(vectors[0])
	if f == 0 {
		return fmt.Errorf("%w: zero feature dimension", ErrInvalidInput)
	}
	for i, vec := range vectors {
		if len(vec) != f {
			return fmt.Errorf("%w: vector %d has length %d, want %d", ErrInvalidInput, i, len(vec), f)
		}
		for j, v := range vec {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: vector %d component %d is not finite", ErrInvalidInput, i, j)
			}
		}
	}
	return nil
}

func padBatch(vectors [][]float64, k int) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, vec := range vectors {
		coord := make([]float64, k)
		copy(coord, vec)
		out[i] = coord
	}
	return out
}

func truncateBatch(vectors [][]float64, k int) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, vec := range vectors {
		coord := make([]float64, k)
		copy(coord, vec[:k])
		out[i] = coord
	}
	return out
}

func projectBatch(vectors [][]float64, n, f, k int) ([][]float64, error) {
	data := mat.NewDense(n, f, nil)
	for i, vec := range vectors {
		data.SetRow(i, vec)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("%w: principal component fit did not converge", ErrReduceFailed)
	}

	var axes mat.Dense
	pc.VectorsTo(&axes)

	// Project mean-centered rows onto the first k principal axes.
	means := make([]float64, f)
	for j := 0; j < f; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, data), nil)
	}
	centered := mat.NewDense(n, f, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			centered.Set(i, j, data.At(i, j)-means[j])
		}
	}

	var projected mat.Dense
	projected.Mul(centered, axes.Slice(0, f, 0, k))

	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, &projected)
	}
	return out, nil
}
