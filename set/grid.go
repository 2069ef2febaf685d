package set

import (
	"math"
	"sort"
	"slices"

	"github.com/hupe1980/quanta/internal/conv"
)

// axis is one dimension of a product grid.
type axis interface {
	length() int

	// toGrid maps a value to a fractional grid coordinate, or NaN when the
	// value lies more than half a cell beyond either end.
	toGrid(v float64) float64

	// fromGrid maps a grid coordinate in [-0.5, length-0.5] to a value, or
	// NaN outside that range.
	fromGrid(g float64) float64

	value(i int) float64
}

type linearAxis struct {
	first, step float64
	n           int
}

func (a linearAxis) length() int         { return a.n }
func (a linearAxis) value(i int) float64 { return a.first + float64(i)*a.step }

func (a linearAxis) toGrid(v float64) float64 {
	g := (v - a.first) / a.step
	if !inGrid(g, a.n) {
		return math.NaN()
	}
	return g
}

func (a linearAxis) fromGrid(g float64) float64 {
	if !inGrid(g, a.n) {
		return math.NaN()
	}
	return a.first + g*a.step
}

// sampledAxis holds strictly monotonic samples.
type sampledAxis struct {
	samples   []float64
	ascending bool
}

func (a sampledAxis) length() int         { return len(a.samples) }
func (a sampledAxis) value(i int) float64 { return a.samples[i] }

func (a sampledAxis) toGrid(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	s := a.samples
	n := len(s)
	var i int
	if a.ascending {
		i = sort.Search(n, func(k int) bool { return s[k] > v }) - 1
	} else {
		i = sort.Search(n, func(k int) bool { return s[k] < v }) - 1
	}
	i = min(max(i, 0), n-2)

	g := float64(i) + (v-s[i])/(s[i+1]-s[i])
	if !inGrid(g, n) {
		return math.NaN()
	}
	return g
}

func (a sampledAxis) fromGrid(g float64) float64 {
	n := len(a.samples)
	if !inGrid(g, n) {
		return math.NaN()
	}
	i := min(max(int(math.Floor(g)), 0), n-2)
	w := g - float64(i)
	return (1-w)*a.samples[i] + w*a.samples[i+1]
}

func inGrid(g float64, n int) bool {
	return g >= -0.5 && g <= float64(n)-0.5
}

// nearest rounds a grid coordinate to a sample position on an axis of n
// samples.
func nearest(g float64, n int) int {
	return min(max(int(math.Floor(g+0.5)), 0), n-1)
}

// grid implements Gridded for the product of its axes. The first axis
// varies fastest in the flattened sample order.
type grid struct {
	base
	lattice
	axes []axis
}

func newGrid(b base, axes []axis) *grid {
	lengths := make([]int, len(axes))
	for j, a := range axes {
		lengths[j] = a.length()
	}
	g := &grid{base: b, lattice: newLattice(lengths), axes: axes}
	g.lo = make([]float64, len(axes))
	g.hi = make([]float64, len(axes))
	for j, a := range axes {
		first, last := a.value(0), a.value(a.length()-1)
		g.lo[j], g.hi[j] = min(first, last), max(first, last)
	}
	return g
}

// Lengths returns the number of samples along each axis.
func (g *grid) Lengths() []int { return append([]int(nil), g.lengths...) }

// Samples returns every grid sample in flattened order.
func (g *grid) Samples() [][]float64 {
	out := alloc(g.dim, g.length)
	for i := 0; i < g.length; i++ {
		g.at(i, out, i)
	}
	return out
}

func (g *grid) Sample(i int) ([]float64, error) { return sample(g, i) }

func (g *grid) at(i int, out [][]float64, col int) {
	for j, a := range g.axes {
		n := a.length()
		out[j][col] = a.value(i % n)
		i /= n
	}
}

func (g *grid) IndexToValue(index []int) [][]float64 {
	out := alloc(g.dim, len(index))
	for k, i := range index {
		if i < 0 || i >= g.length {
			nanColumn(out, k)
			continue
		}
		g.at(i, out, k)
	}
	return out
}

func (g *grid) GridToValue(coords [][]float64) ([][]float64, error) {
	n, err := conv.CheckShape(g.kind+" grid", coords, g.dim)
	if err != nil {
		return nil, err
	}
	out := alloc(g.dim, n)
	for j, a := range g.axes {
		for i, c := range coords[j] {
			out[j][i] = a.fromGrid(c)
		}
	}
	propagateNaN(out)
	return out, nil
}

func (g *grid) ValueToGrid(values [][]float64) ([][]float64, error) {
	n, err := conv.CheckShape(g.kind+" query", values, g.dim)
	if err != nil {
		return nil, err
	}
	out := alloc(g.dim, n)
	for j, a := range g.axes {
		for i, v := range values[j] {
			out[j][i] = a.toGrid(v)
		}
	}
	propagateNaN(out)
	return out, nil
}

func (g *grid) ValueToIndex(values [][]float64) ([]int, error) {
	return g.valueToIndex(values, func(point []float64, _ *int) int {
		coords := make([]float64, g.dim)
		for j, a := range g.axes {
			coords[j] = a.toGrid(point[j])
		}
		return g.index(coords)
	})
}

// Neighbors returns the samples one grid step away from sample i.
func (g *grid) Neighbors(i int) ([]int, error) {
	if err := g.checkIndex(i); err != nil {
		return nil, err
	}
	return g.neighbors(i), nil
}

func (g *grid) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	return g.valueToInterp(values, func(point []float64, _ *int) ([]int, []float64) {
		coords := make([]float64, g.dim)
		for j, a := range g.axes {
			coords[j] = a.toGrid(point[j])
		}
		return g.interp(coords)
	})
}

// propagateNaN makes a sample NaN on every axis when it is NaN on any.
func propagateNaN(values [][]float64) {
	if len(values) < 2 {
		return
	}
	for i := range values[0] {
		if slices.ContainsFunc(values, func(axis []float64) bool { return math.IsNaN(axis[i]) }) {
			nanColumn(values, i)
		}
	}
}
