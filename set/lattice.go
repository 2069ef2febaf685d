package set

import "math"

// lattice is the index topology of a grid. The first axis varies fastest in
// the flattened sample order.
type lattice struct {
	lengths []int
	offsets []int
}

func newLattice(lengths []int) lattice {
	l := lattice{lengths: append([]int(nil), lengths...), offsets: make([]int, len(lengths))}
	off := 1
	for j, n := range lengths {
		l.offsets[j] = off
		off *= n
	}
	return l
}

// position splits a flat index into per-axis positions.
func (l lattice) position(i int, out []int) {
	for j, n := range l.lengths {
		out[j] = i % n
		i /= n
	}
}

// index returns the sample nearest to a grid coordinate, or -1 when any
// coordinate is NaN.
func (l lattice) index(coords []float64) int {
	index := 0
	for j, c := range coords {
		if math.IsNaN(c) {
			return -1
		}
		index += nearest(c, l.lengths[j]) * l.offsets[j]
	}
	return index
}

// neighbors returns the samples one step away from i along each axis, lower
// before upper, axis by axis.
func (l lattice) neighbors(i int) []int {
	var out []int
	rest := i
	for j, n := range l.lengths {
		p := rest % n
		rest /= n
		if p > 0 {
			out = append(out, i-l.offsets[j])
		}
		if p < n-1 {
			out = append(out, i+l.offsets[j])
		}
	}
	return out
}

// interp returns the multilinear neighbours of a grid coordinate. Along an
// axis where the coordinate sits in the outer half-cell the edge sample is
// replicated instead of extrapolated.
func (l lattice) interp(coords []float64) ([]int, []float64) {
	indices := []int{0}
	weights := []float64{1}
	for j, n := range l.lengths {
		c := coords[j]
		if math.IsNaN(c) {
			return nil, nil
		}
		p := nearest(c, n)
		frac := c - float64(p)
		off := l.offsets[j]

		if (p == 0 && frac <= 0) || (p == n-1 && frac >= 0) {
			for k := range indices {
				indices[k] += p * off
			}
			continue
		}

		other, wp, wo := p+1, 1-frac, frac
		if frac < 0 {
			other, wp, wo = p-1, 1+frac, -frac
		}
		m := len(indices)
		for k := 0; k < m; k++ {
			indices = append(indices, indices[k]+other*off)
			weights = append(weights, weights[k]*wo)
			indices[k] += p * off
			weights[k] *= wp
		}
	}
	return indices, weights
}
