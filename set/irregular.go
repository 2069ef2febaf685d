package set

import (
	"fmt"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/internal/delaunay"
)

// Irregular is a set of scattered 2-D or 3-D samples indexed by a Delaunay
// triangulation (tetrahedralization in 3-D).
//
// ValueToInterp returns the vertices of the containing simplex with their
// barycentric weights. ValueToIndex returns the nearest sample. Queries
// outside the convex hull of the samples return -1 and nil rows.
type Irregular struct {
	base
	samples [][]float64
	tri     *delaunay.Triangulation
	vertex  []int // triangulation vertex -> sample index
	of      []int // sample index -> triangulation vertex, or -1
}

// NewIrregular builds a set from dimension-major samples[axis][i]. Missing
// samples are kept but left out of the triangulation.
func NewIrregular(samples [][]float64, opts ...Option) (s *Irregular, err error) {
	start := time.Now()
	n := 0
	if len(samples) > 0 {
		n = len(samples[0])
	}
	defer func() { recordBuild("irregular", n, start, err) }()

	dim := len(samples)
	if dim != 2 && dim != 3 {
		return nil, errdefs.NewDimensionError("irregular set", 2, dim)
	}
	if _, err := conv.CheckShape("irregular set", samples, dim); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	b, err := newBase("irregular", dim, dim, n, o)
	if err != nil {
		return nil, err
	}
	if o.copy {
		samples = conv.Clone(samples)
	}
	if err := b.scan(samples); err != nil {
		return nil, err
	}

	vertex := b.missing.Complement(n)
	points := make([][]float64, len(vertex))
	flat := make([]float64, len(vertex)*dim)
	for k, i := range vertex {
		p := flat[k*dim : (k+1)*dim : (k+1)*dim]
		for j := range p {
			p[j] = samples[j][i]
		}
		points[k] = p
	}

	tri, err := delaunay.New(points)
	if err != nil {
		return nil, fmt.Errorf("irregular set: %w", err)
	}

	of := make([]int, n)
	for i := range of {
		of[i] = -1
	}
	for k, i := range vertex {
		of[i] = k
	}

	return &Irregular{
		base:    b,
		samples: samples,
		tri:     tri,
		vertex:  vertex,
		of:      of,
	}, nil
}

// Simplices returns the number of simplices in the triangulation.
func (s *Irregular) Simplices() int { return s.tri.Len() }

// Samples returns a copy of the samples.
func (s *Irregular) Samples() [][]float64 { return conv.Clone(s.samples) }

func (s *Irregular) Sample(i int) ([]float64, error) { return sample(s, i) }

func (s *Irregular) IndexToValue(index []int) [][]float64 {
	out := alloc(s.dim, len(index))
	for k, i := range index {
		if i < 0 || i >= s.length {
			nanColumn(out, k)
			continue
		}
		for j := range out {
			out[j][k] = s.samples[j][i]
		}
	}
	return out
}

func (s *Irregular) ValueToIndex(values [][]float64) ([]int, error) {
	return s.valueToIndex(values, func(point []float64, hint *int) int {
		v, simplex := s.tri.Nearest(point, *hint)
		if v < 0 {
			return -1
		}
		*hint = simplex
		return s.vertex[v]
	})
}

func (s *Irregular) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	return s.valueToInterp(values, func(point []float64, hint *int) ([]int, []float64) {
		simplex, weights := s.tri.Locate(point, *hint)
		if simplex < 0 {
			return nil, nil
		}
		*hint = simplex
		indices := s.tri.Vertices(simplex)
		for k, v := range indices {
			indices[k] = s.vertex[v]
		}
		return indices, weights
	})
}

// Neighbors returns the samples sharing a triangulation edge with sample i.
// Missing samples have none.
func (s *Irregular) Neighbors(i int) ([]int, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	v := s.of[i]
	if v < 0 {
		return nil, nil
	}
	adj := s.tri.Adjacent(v)
	for k, w := range adj {
		adj[k] = s.vertex[w]
	}
	return adj, nil
}
