package set

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

const (
	newtonSteps     = 20
	newtonTolerance = 1e-12

	// cellSlack is how far a local coordinate may leave [0, 1] and still
	// count as inside its cell.
	cellSlack = 1e-9
)

// curvilinear is a grid of arbitrary sample positions. Each cell is the
// multilinear image of the unit square (or cube) spanned by its corner
// samples.
type curvilinear struct {
	base
	lattice
	samples [][]float64
	cells   lattice
	corners []int // flat offset of each cell corner from the cell origin
}

func newCurvilinear(kind string, samples [][]float64, lengths []int, o options) (*curvilinear, error) {
	dim := len(lengths)
	n, err := conv.CheckShape(kind, samples, dim)
	if err != nil {
		return nil, err
	}
	want := 1
	cellLengths := make([]int, dim)
	for j, l := range lengths {
		if l < 2 {
			return nil, fmt.Errorf("%w: %s needs at least two samples per axis, axis %d has %d",
				errdefs.ErrInvalidGrid, kind, j, l)
		}
		want *= l
		cellLengths[j] = l - 1
	}
	if n != want {
		return nil, errdefs.NewDimensionError(kind+" samples", want, n)
	}
	for j, axis := range samples {
		for i, v := range axis {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s sample %d is not finite on axis %d", errdefs.ErrInvalidGrid, kind, i, j)
			}
		}
	}

	b, err := newBase(kind, dim, dim, n, o)
	if err != nil {
		return nil, err
	}
	if o.copy {
		samples = conv.Clone(samples)
	}
	if err := b.scan(samples); err != nil {
		return nil, err
	}

	c := &curvilinear{
		base:    b,
		lattice: newLattice(lengths),
		samples: samples,
		cells:   newLattice(cellLengths),
		corners: make([]int, 1<<dim),
	}
	for m := range c.corners {
		for j, off := range c.offsets {
			if m&(1<<j) != 0 {
				c.corners[m] += off
			}
		}
	}
	if err := c.checkOrientation(); err != nil {
		return nil, err
	}
	return c, nil
}

// checkOrientation rejects grids with a flat cell or with cells of opposite
// handedness. The Jacobian is taken at every corner of every cell.
func (c *curvilinear) checkOrientation() error {
	cell := make([]int, c.dim)
	t := make([]float64, c.dim)
	jac := mat.NewDense(c.dim, c.dim, nil)
	sign := 0.0
	total := 1
	for _, l := range c.cells.lengths {
		total *= l
	}
	for ci := 0; ci < total; ci++ {
		c.cells.position(ci, cell)
		for m := range c.corners {
			for j := range t {
				t[j] = float64((m >> j) & 1)
			}
			c.jacobian(cell, t, jac)
			det := mat.Det(jac)
			switch {
			case det == 0 || math.IsNaN(det):
				return fmt.Errorf("%w: %s cell %v is degenerate", errdefs.ErrInvalidGrid, c.kind, cell)
			case sign == 0:
				sign = math.Copysign(1, det)
			case math.Signbit(det) != math.Signbit(sign):
				return fmt.Errorf("%w: %s cell %v is folded over", errdefs.ErrInvalidGrid, c.kind, cell)
			}
		}
	}
	return nil
}

func (c *curvilinear) origin(cell []int) int {
	i := 0
	for j, p := range cell {
		i += p * c.offsets[j]
	}
	return i
}

func cornerWeight(m int, t []float64, skip int) float64 {
	w := 1.0
	for j, tj := range t {
		switch {
		case j == skip:
		case m&(1<<j) != 0:
			w *= tj
		default:
			w *= 1 - tj
		}
	}
	return w
}

// eval maps local cell coordinates t to a value.
func (c *curvilinear) eval(cell []int, t, out []float64) {
	clear(out)
	o := c.origin(cell)
	for m, d := range c.corners {
		w := cornerWeight(m, t, -1)
		for j := range out {
			out[j] += w * c.samples[j][o+d]
		}
	}
}

func (c *curvilinear) jacobian(cell []int, t []float64, jac *mat.Dense) {
	jac.Zero()
	o := c.origin(cell)
	for k := range t {
		for m, d := range c.corners {
			w := cornerWeight(m, t, k)
			if m&(1<<k) == 0 {
				w = -w
			}
			for j := range c.samples {
				jac.Set(j, k, jac.At(j, k)+w*c.samples[j][o+d])
			}
		}
	}
}

// solve inverts the multilinear map of one cell by Newton iteration. The
// result may lie outside the unit cell.
func (c *curvilinear) solve(cell []int, point, t []float64) bool {
	x := make([]float64, c.dim)
	r := mat.NewVecDense(c.dim, nil)
	jac := mat.NewDense(c.dim, c.dim, nil)
	var step mat.VecDense
	for j := range t {
		t[j] = 0.5
	}
	for range newtonSteps {
		c.eval(cell, t, x)
		for j := range x {
			r.SetVec(j, point[j]-x[j])
		}
		c.jacobian(cell, t, jac)
		if err := step.SolveVec(jac, r); err != nil {
			return false
		}
		done := true
		for j := range t {
			dt := step.AtVec(j)
			t[j] += dt
			if math.IsNaN(t[j]) || math.IsInf(t[j], 0) {
				return false
			}
			if math.Abs(dt) > newtonTolerance*(1+math.Abs(t[j])) {
				done = false
			}
		}
		if done {
			return true
		}
	}
	return false
}

// accepts reports whether local coordinates t belong to cell. Boundary
// cells also own the outer half-cell beyond the last sample.
func (c *curvilinear) accepts(cell []int, t []float64) bool {
	for j, n := range c.lengths {
		g := float64(cell[j]) + t[j]
		if t[j] < -cellSlack && (cell[j] > 0 || g < -0.5-cellSlack) {
			return false
		}
		if t[j] > 1+cellSlack && (cell[j] < n-2 || g > float64(n)-0.5+cellSlack) {
			return false
		}
	}
	return true
}

// locate returns the grid coordinates of a point, or nil when it lies off
// the grid. The walk starts at the cell in hint and falls back to trying
// every cell.
func (c *curvilinear) locate(point []float64, hint *int) []float64 {
	if slices.ContainsFunc(point, math.IsNaN) {
		return nil
	}
	cell := make([]int, c.dim)
	if *hint >= 0 {
		c.position(*hint, cell)
	} else {
		for j, n := range c.lengths {
			cell[j] = (n - 2) / 2
		}
	}
	t := make([]float64, c.dim)

	walk := 0
	for _, n := range c.lengths {
		walk += 2 * n
	}
	for range walk {
		if !c.solve(cell, point, t) {
			break
		}
		moved := false
		for j, n := range c.lengths {
			if t[j] >= -cellSlack && t[j] <= 1+cellSlack {
				continue
			}
			p := min(max(cell[j]+int(math.Floor(t[j])), 0), n-2)
			if p != cell[j] {
				cell[j] = p
				moved = true
			}
		}
		if !moved {
			if c.accepts(cell, t) {
				*hint = c.origin(cell)
				return gridCoords(cell, t)
			}
			break
		}
	}

	total := 1
	for _, l := range c.cells.lengths {
		total *= l
	}
	for ci := 0; ci < total; ci++ {
		c.cells.position(ci, cell)
		if c.solve(cell, point, t) && c.accepts(cell, t) {
			*hint = c.origin(cell)
			return gridCoords(cell, t)
		}
	}
	return nil
}

func gridCoords(cell []int, t []float64) []float64 {
	out := make([]float64, len(cell))
	for j, p := range cell {
		out[j] = float64(p) + t[j]
	}
	return out
}

// Lengths returns the number of samples along each grid axis.
func (c *curvilinear) Lengths() []int { return append([]int(nil), c.lengths...) }

// Samples returns a copy of the samples in grid order.
func (c *curvilinear) Samples() [][]float64 { return conv.Clone(c.samples) }

func (c *curvilinear) Sample(i int) ([]float64, error) { return sample(c, i) }

func (c *curvilinear) IndexToValue(index []int) [][]float64 {
	out := alloc(c.dim, len(index))
	for k, i := range index {
		if i < 0 || i >= c.length {
			nanColumn(out, k)
			continue
		}
		for j := range out {
			out[j][k] = c.samples[j][i]
		}
	}
	return out
}

// GridToValue evaluates the cell containing each grid coordinate. The
// outer half-cells extrapolate the boundary cells.
func (c *curvilinear) GridToValue(coords [][]float64) ([][]float64, error) {
	n, err := conv.CheckShape(c.kind+" grid", coords, c.dim)
	if err != nil {
		return nil, err
	}
	out := alloc(c.dim, n)
	cell := make([]int, c.dim)
	t := make([]float64, c.dim)
	x := make([]float64, c.dim)
	for i := 0; i < n; i++ {
		off := false
		for j, l := range c.lengths {
			g := coords[j][i]
			if math.IsNaN(g) || !inGrid(g, l) {
				off = true
				break
			}
			cell[j] = min(max(int(math.Floor(g)), 0), l-2)
			t[j] = g - float64(cell[j])
		}
		if off {
			nanColumn(out, i)
			continue
		}
		c.eval(cell, t, x)
		for j := range out {
			out[j][i] = x[j]
		}
	}
	return out, nil
}

// ValueToGrid inverts GridToValue. Points off the grid map to NaN.
func (c *curvilinear) ValueToGrid(values [][]float64) ([][]float64, error) {
	n, err := conv.CheckShape(c.kind+" query", values, c.dim)
	if err != nil {
		return nil, err
	}
	out := alloc(c.dim, n)
	err = parallel.For(context.Background(), n, c.workers, c.minChunk, func(_ context.Context, r parallel.Range) error {
		point := make([]float64, c.dim)
		hint := -1
		for i := r.Start; i < r.End; i++ {
			for j := range point {
				point[j] = values[j][i]
			}
			g := c.locate(point, &hint)
			if g == nil {
				nanColumn(out, i)
				continue
			}
			for j := range out {
				out[j][i] = g[j]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *curvilinear) ValueToIndex(values [][]float64) ([]int, error) {
	return c.valueToIndex(values, func(point []float64, hint *int) int {
		g := c.locate(point, hint)
		if g == nil {
			return -1
		}
		return c.index(g)
	})
}

func (c *curvilinear) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	return c.valueToInterp(values, func(point []float64, hint *int) ([]int, []float64) {
		g := c.locate(point, hint)
		if g == nil {
			return nil, nil
		}
		return c.interp(g)
	})
}

// Neighbors returns the samples one grid step away from sample i.
func (c *curvilinear) Neighbors(i int) ([]int, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	return c.neighbors(i), nil
}

// Gridded2D is a curvilinear grid of 2-D samples, such as satellite pixel
// positions. Lookups invert the bilinear map of each cell.
type Gridded2D struct {
	*curvilinear
}

// NewGridded2D builds a grid of nx by ny samples given dimension-major as
// samples[axis][i] with the x index varying fastest. Every cell must be
// non-degenerate and all cells must share one orientation.
func NewGridded2D(samples [][]float64, nx, ny int, opts ...Option) (s *Gridded2D, err error) {
	start := time.Now()
	defer func() { recordBuild("gridded2d", nx*ny, start, err) }()

	c, err := newCurvilinear("gridded2d", samples, []int{nx, ny}, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Gridded2D{curvilinear: c}, nil
}

// Gridded3D is a curvilinear grid of 3-D samples. Lookups invert the
// trilinear map of each cell.
type Gridded3D struct {
	*curvilinear
}

// NewGridded3D builds a grid of nx by ny by nz samples, the x index varying
// fastest and the z index slowest.
func NewGridded3D(samples [][]float64, nx, ny, nz int, opts ...Option) (s *Gridded3D, err error) {
	start := time.Now()
	defer func() { recordBuild("gridded3d", nx*ny*nz, start, err) }()

	c, err := newCurvilinear("gridded3d", samples, []int{nx, ny, nz}, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Gridded3D{curvilinear: c}, nil
}

// NewGridded builds the gridded set matching the number of axes: a
// Gridded1D, Gridded2D or Gridded3D.
func NewGridded(samples [][]float64, lengths []int, opts ...Option) (Gridded, error) {
	if len(lengths) != len(samples) {
		return nil, errdefs.NewDimensionError("gridded lengths", len(samples), len(lengths))
	}
	switch len(lengths) {
	case 1:
		if lengths[0] != len(samples[0]) {
			return nil, errdefs.NewDimensionError("gridded1d samples", lengths[0], len(samples[0]))
		}
		return NewGridded1D(samples[0], opts...)
	case 2:
		return NewGridded2D(samples, lengths[0], lengths[1], opts...)
	case 3:
		return NewGridded3D(samples, lengths[0], lengths[1], lengths[2], opts...)
	}
	return nil, errdefs.NewDimensionError("gridded set", 3, len(lengths))
}
