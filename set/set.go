// Package set implements finite sample sets in R^n with index and
// interpolation lookups.
//
// Samples are dimension-major: samples[axis][i]. Every set is built once
// from its raw samples and is read-only afterwards, so all methods are safe
// for concurrent use.
//
// Batch lookups never fail mid-batch. Queries that fall outside a set map
// to the index -1, to NaN values, or to nil interpolation rows.
package set

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/internal/bitmap"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/internal/parallel"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
	"gonum.org/v1/gonum/floats"
)

// Set is a finite sequence of samples.
type Set interface {
	// Type returns the tuple type of the samples.
	Type() *realtype.TupleType

	// Dimension returns the number of axes.
	Dimension() int

	// ManifoldDimension returns the dimension of the subspace the samples
	// span.
	ManifoldDimension() int

	// Length returns the number of samples, missing ones included.
	Length() int

	CoordinateSystem() realtype.CoordinateSystem
	Units() []unit.Unit
	Errors() []*errest.Estimate

	// Samples returns a copy of all samples.
	Samples() [][]float64

	// Sample returns the i-th sample, or ErrIndexOutOfRange.
	Sample(i int) ([]float64, error)

	// Bounds returns the per-axis minimum and maximum of the non-missing
	// samples.
	Bounds() (lo, hi []float64)

	MissingCount() int
	IsMissing(i int) bool

	// IndexToValue returns the samples at the given indices. Indices out of
	// range yield NaN.
	IndexToValue(index []int) [][]float64

	// ValueToIndex returns the index of the nearest sample for each query,
	// or -1 when the query lies outside the set.
	ValueToIndex(values [][]float64) ([]int, error)

	// ValueToInterp returns, per query, the neighbouring sample indices and
	// weights summing to one. Rows are nil for queries outside the set.
	ValueToInterp(values [][]float64) ([][]int, [][]float64, error)

	// Neighbors returns the samples topologically adjacent to sample i, or
	// ErrIndexOutOfRange.
	Neighbors(i int) ([]int, error)
}

// Gridded is a set whose samples form a topological grid.
type Gridded interface {
	Set

	// Lengths returns the number of samples along each grid axis.
	Lengths() []int

	// GridToValue maps fractional grid coordinates to values. Grid
	// coordinates outside [-0.5, length-0.5] map to NaN.
	GridToValue(grid [][]float64) ([][]float64, error)

	// ValueToGrid is the inverse of GridToValue.
	ValueToGrid(values [][]float64) ([][]float64, error)
}

// Option configures a set.
type Option func(*options)

type options struct {
	typ      *realtype.TupleType
	cs       realtype.CoordinateSystem
	units    []unit.Unit
	errors   []*errest.Estimate
	copy     bool
	workers  int
	minChunk int
}

// WithType sets the tuple type of the samples. Its dimension must match.
func WithType(t *realtype.TupleType) Option {
	return func(o *options) { o.typ = t }
}

// WithCoordinateSystem overrides the type's coordinate system. The override
// must share the type's reference.
func WithCoordinateSystem(cs realtype.CoordinateSystem) Option {
	return func(o *options) { o.cs = cs }
}

// WithUnits sets the units of the samples, one per axis.
func WithUnits(units ...unit.Unit) Option {
	return func(o *options) { o.units = units }
}

// WithErrors attaches an error estimate per axis.
func WithErrors(errors ...*errest.Estimate) Option {
	return func(o *options) { o.errors = errors }
}

// WithCopy controls whether the constructor copies the sample array.
// Passing false hands ownership of the array to the set.
func WithCopy(copy bool) Option {
	return func(o *options) { o.copy = copy }
}

// WithParallelism sets how batch lookups fan out: at most workers
// goroutines, each with at least minChunk queries. Zero keeps the default.
func WithParallelism(workers, minChunk int) Option {
	return func(o *options) {
		o.workers = workers
		o.minChunk = minChunk
	}
}

func applyOptions(opts []Option) options {
	o := options{copy: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	domain1D = realtype.Tuple(realtype.XAxis)
	domain2D = realtype.SpatialCartesian2D
	domain3D = realtype.SpatialCartesian3D
)

func defaultType(dim int) (*realtype.TupleType, error) {
	switch dim {
	case 1:
		return domain1D, nil
	case 2:
		return domain2D, nil
	case 3:
		return domain3D, nil
	}
	return nil, fmt.Errorf("%w: no default type for %d dimensions", errdefs.ErrDimension, dim)
}

// base holds the description shared by every set.
type base struct {
	kind     string
	typ      *realtype.TupleType
	cs       realtype.CoordinateSystem
	units    []unit.Unit
	errors   []*errest.Estimate
	dim      int
	manifold int
	length   int
	missing  *bitmap.Mask
	lo, hi   []float64
	workers  int
	minChunk int
}

func newBase(kind string, dim, manifold, length int, o options) (base, error) {
	b := base{
		kind:     kind,
		dim:      dim,
		manifold: manifold,
		length:   length,
		missing:  bitmap.New(),
		workers:  o.workers,
		minChunk: o.minChunk,
	}

	explicit := o.typ != nil
	b.typ = o.typ
	if b.typ == nil {
		t, err := defaultType(dim)
		if err != nil {
			return base{}, err
		}
		b.typ = t
	}
	if b.typ.Dimension() != dim {
		return base{}, errdefs.NewDimensionError(kind+" type", dim, b.typ.Dimension())
	}

	b.cs = b.typ.CoordinateSystem()
	if o.cs != nil {
		if b.cs == nil || !b.cs.Reference().Equal(o.cs.Reference()) {
			return base{}, fmt.Errorf("%w: %s coordinate system does not match type %s",
				errdefs.ErrInconsistentCoordinateSystem, kind, b.typ)
		}
		if o.cs.Dimension() != dim {
			return base{}, errdefs.NewDimensionError(kind+" coordinate system", dim, o.cs.Dimension())
		}
		b.cs = o.cs
	}

	if o.units != nil {
		if len(o.units) != dim {
			return base{}, errdefs.NewDimensionError(kind+" units", dim, len(o.units))
		}
		if explicit {
			defaults := b.typ.DefaultUnits()
			for i, u := range o.units {
				if !unit.CanConvert(u, defaults[i]) {
					return base{}, &errdefs.UnitMismatchError{From: unitName(u), To: unitName(defaults[i])}
				}
			}
		}
		b.units = append([]unit.Unit(nil), o.units...)
	} else {
		b.units = b.typ.DefaultUnits()
	}

	if o.errors != nil {
		if len(o.errors) != dim {
			return base{}, errdefs.NewDimensionError(kind+" errors", dim, len(o.errors))
		}
		b.errors = append([]*errest.Estimate(nil), o.errors...)
	}
	return b, nil
}

// scan records missing samples and bounds.
func (b *base) scan(samples [][]float64) error {
	missing, err := bitmap.MissingOf(samples)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errdefs.ErrInvalidGrid, b.kind, err)
	}
	b.missing = missing
	b.lo = make([]float64, b.dim)
	b.hi = make([]float64, b.dim)
	if b.length == 0 {
		for j := range samples {
			b.lo[j], b.hi[j] = math.NaN(), math.NaN()
		}
		return nil
	}
	if missing.IsEmpty() {
		for j, axis := range samples {
			b.lo[j] = floats.Min(axis)
			b.hi[j] = floats.Max(axis)
		}
		return nil
	}

	keep := missing.Complement(b.length)
	buf := make([]float64, len(keep))
	for j, axis := range samples {
		if len(keep) == 0 {
			b.lo[j], b.hi[j] = math.NaN(), math.NaN()
			continue
		}
		for k, i := range keep {
			buf[k] = axis[i]
		}
		b.lo[j] = floats.Min(buf)
		b.hi[j] = floats.Max(buf)
	}
	return nil
}

func (b *base) Type() *realtype.TupleType                   { return b.typ }
func (b *base) Dimension() int                              { return b.dim }
func (b *base) ManifoldDimension() int                      { return b.manifold }
func (b *base) Length() int                                 { return b.length }
func (b *base) CoordinateSystem() realtype.CoordinateSystem { return b.cs }
func (b *base) MissingCount() int                           { return int(b.missing.Cardinality()) }

func (b *base) Units() []unit.Unit {
	return append([]unit.Unit(nil), b.units...)
}

func (b *base) Errors() []*errest.Estimate {
	if b.errors == nil {
		return nil
	}
	return append([]*errest.Estimate(nil), b.errors...)
}

func (b *base) Bounds() ([]float64, []float64) {
	return append([]float64(nil), b.lo...), append([]float64(nil), b.hi...)
}

func (b *base) IsMissing(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}
	return b.missing.Contains(i)
}

func (b *base) checkIndex(i int) error {
	if i < 0 || i >= b.length {
		return fmt.Errorf("%w: sample %d of %d", errdefs.ErrIndexOutOfRange, i, b.length)
	}
	return nil
}

// locator answers one query. hint carries per-goroutine walk state between
// consecutive queries.
type locator func(point []float64, hint *int) int

type interpolator func(point []float64, hint *int) ([]int, []float64)

func (b *base) valueToIndex(values [][]float64, fn locator) ([]int, error) {
	n, err := conv.CheckShape(b.kind+" query", values, b.dim)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	err = parallel.For(context.Background(), n, b.workers, b.minChunk, func(_ context.Context, r parallel.Range) error {
		point := make([]float64, b.dim)
		hint := -1
		for i := r.Start; i < r.End; i++ {
			for j := range point {
				point[j] = values[j][i]
			}
			out[i] = fn(point, &hint)
		}
		return nil
	})
	return out, err
}

func (b *base) valueToInterp(values [][]float64, fn interpolator) ([][]int, [][]float64, error) {
	start := time.Now()
	n, err := conv.CheckShape(b.kind+" query", values, b.dim)
	if err != nil {
		return nil, nil, err
	}

	indices := make([][]int, n)
	weights := make([][]float64, n)
	var misses atomic.Int64
	err = parallel.For(context.Background(), n, b.workers, b.minChunk, func(_ context.Context, r parallel.Range) error {
		point := make([]float64, b.dim)
		hint := -1
		for i := r.Start; i < r.End; i++ {
			for j := range point {
				point[j] = values[j][i]
			}
			indices[i], weights[i] = fn(point, &hint)
			if indices[i] == nil {
				misses.Add(1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	telemetry.Metrics().RecordInterp(n, int(misses.Load()), time.Since(start))
	return indices, weights, nil
}

func recordBuild(kind string, length int, start time.Time, err error) {
	telemetry.Metrics().RecordSetBuild(kind, length, time.Since(start), err)
	if err != nil {
		telemetry.Logger().Debug("sample set rejected", "kind", kind, "samples", length, "error", err)
		return
	}
	telemetry.Logger().Debug("built sample set", "kind", kind, "samples", length)
}

// sample implements Set.Sample on top of IndexToValue.
func sample(s Set, i int) ([]float64, error) {
	if i < 0 || i >= s.Length() {
		return nil, fmt.Errorf("%w: sample %d of %d", errdefs.ErrIndexOutOfRange, i, s.Length())
	}
	v := s.IndexToValue([]int{i})
	out := make([]float64, len(v))
	for j := range v {
		out[j] = v[j][0]
	}
	return out, nil
}

func nanColumn(out [][]float64, i int) {
	for j := range out {
		out[j][i] = math.NaN()
	}
}

func alloc(dim, n int) [][]float64 {
	out := make([][]float64, dim)
	for j := range out {
		out[j] = make([]float64, n)
	}
	return out
}

func unitName(u unit.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.String()
}
