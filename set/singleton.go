package set

import (
	"math"
	"slices"
	"time"

	"github.com/hupe1980/quanta/errdefs"
)

// Singleton is a set of exactly one sample. Every query that is not NaN
// maps to it.
type Singleton struct {
	base
	value []float64
}

// NewSingleton builds a set holding the single sample value, one entry per
// axis.
func NewSingleton(value []float64, opts ...Option) (s *Singleton, err error) {
	start := time.Now()
	defer func() { recordBuild("singleton", 1, start, err) }()

	if len(value) == 0 {
		return nil, errdefs.NewDimensionError("singleton", 1, 0)
	}
	b, err := newBase("singleton", len(value), 0, 1, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	value = slices.Clone(value)
	samples := make([][]float64, len(value))
	for j, v := range value {
		samples[j] = []float64{v}
	}
	if err := b.scan(samples); err != nil {
		return nil, err
	}
	return &Singleton{base: b, value: value}, nil
}

// Value returns the sample.
func (s *Singleton) Value() []float64 { return slices.Clone(s.value) }

func (s *Singleton) Samples() [][]float64 {
	out := make([][]float64, s.dim)
	for j, v := range s.value {
		out[j] = []float64{v}
	}
	return out
}

func (s *Singleton) Sample(i int) ([]float64, error) { return sample(s, i) }

func (s *Singleton) IndexToValue(index []int) [][]float64 {
	out := alloc(s.dim, len(index))
	for k, i := range index {
		if i != 0 {
			nanColumn(out, k)
			continue
		}
		for j := range out {
			out[j][k] = s.value[j]
		}
	}
	return out
}

func (s *Singleton) ValueToIndex(values [][]float64) ([]int, error) {
	return s.valueToIndex(values, func(point []float64, _ *int) int {
		if s.IsMissing(0) || slices.ContainsFunc(point, math.IsNaN) {
			return -1
		}
		return 0
	})
}

func (s *Singleton) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	return s.valueToInterp(values, func(point []float64, _ *int) ([]int, []float64) {
		if s.IsMissing(0) || slices.ContainsFunc(point, math.IsNaN) {
			return nil, nil
		}
		return []int{0}, []float64{1}
	})
}

// Neighbors reports that the only sample has none.
func (s *Singleton) Neighbors(i int) ([]int, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return nil, nil
}
