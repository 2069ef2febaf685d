package conv

import (
	"fmt"
	"math"

	"github.com/hupe1980/quanta/errdefs"
)

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Widen converts a dimension-major float32 array to float64.
// NaN is preserved.
func Widen(values [][]float32) [][]float64 {
	if values == nil {
		return nil
	}
	out := make([][]float64, len(values))
	for i, axis := range values {
		if axis == nil {
			continue
		}
		row := make([]float64, len(axis))
		for j, v := range axis {
			row[j] = float64(v)
		}
		out[i] = row
	}
	return out
}

// Narrow converts a dimension-major float64 array to float32.
func Narrow(values [][]float64) [][]float32 {
	if values == nil {
		return nil
	}
	out := make([][]float32, len(values))
	for i, axis := range values {
		if axis == nil {
			continue
		}
		row := make([]float32, len(axis))
		for j, v := range axis {
			row[j] = float32(v)
		}
		out[i] = row
	}
	return out
}

// Clone returns a deep copy of a dimension-major array.
func Clone(values [][]float64) [][]float64 {
	if values == nil {
		return nil
	}
	out := make([][]float64, len(values))
	for i, axis := range values {
		if axis != nil {
			out[i] = append([]float64(nil), axis...)
		}
	}
	return out
}

// CheckShape verifies that values has dim axes of equal length and returns
// that length. context is used in the returned error.
func CheckShape(context string, values [][]float64, dim int) (int, error) {
	if len(values) != dim {
		return 0, errdefs.NewDimensionError(context, dim, len(values))
	}
	if dim == 0 {
		return 0, nil
	}
	n := len(values[0])
	for _, axis := range values[1:] {
		if len(axis) != n {
			return 0, errdefs.NewDimensionError(context+" (axis length)", n, len(axis))
		}
	}
	return n, nil
}
