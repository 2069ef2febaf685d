// Package bitmap provides the sample masks used by sample sets.
//
// A Mask records which sample positions are missing (NaN in any axis).
// It wraps a Roaring bitmap: masks are usually empty or very sparse, and
// Roaring keeps both cases compact.
package bitmap

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/quanta/internal/conv"
)

// Mask is a set of sample positions.
//
// A Mask is built once and then only read, so it is safe for concurrent
// readers after construction.
type Mask struct {
	rb *roaring.Bitmap
}

// New creates a new empty mask.
func New() *Mask {
	return &Mask{
		rb: roaring.New(),
	}
}

// MissingOf returns a mask of every sample position where any axis of the
// dimension-major samples is NaN. Positions must fit in a uint32.
func MissingOf(samples [][]float64) (*Mask, error) {
	m := New()
	for _, axis := range samples {
		if len(axis) == 0 {
			continue
		}
		if _, err := conv.IntToUint32(len(axis) - 1); err != nil {
			return nil, fmt.Errorf("mask of %d samples: %w", len(axis), err)
		}
		for i, v := range axis {
			if math.IsNaN(v) {
				m.rb.Add(uint32(i)) //nolint:gosec // bounded by the length check above
			}
		}
	}
	return m, nil
}

// Contains checks if a position is in the mask. Positions outside the
// uint32 range are never contained.
func (m *Mask) Contains(pos int) bool {
	p, err := conv.IntToUint32(pos)
	if err != nil {
		return false
	}
	return m.rb.Contains(p)
}

// IsEmpty returns true if the mask is empty.
func (m *Mask) IsEmpty() bool {
	return m.rb.IsEmpty()
}

// Cardinality returns the number of positions in the mask.
func (m *Mask) Cardinality() uint64 {
	return m.rb.GetCardinality()
}

// Complement returns the positions in [0, n) that are not in the mask.
func (m *Mask) Complement(n int) []int {
	if m.rb.IsEmpty() {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	full := roaring.New()
	full.AddRange(0, uint64(n))
	full.AndNot(m.rb)
	out := make([]int, 0, full.GetCardinality())
	it := full.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
