package set

import (
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/quanta/errdefs"
)

// Irregular1D is a set of unordered 1-D samples.
//
// The samples are sorted once at construction. Lookups run on a Gridded1D
// built over the sorted copy and every index is mapped back to the caller's
// original order.
type Irregular1D struct {
	base
	samples  []float64
	sorted   *Gridded1D
	oldToNew []int // -1 for missing samples
	newToOld []int
}

// NewIrregular1D builds a set from samples in any order. Missing (NaN)
// samples are kept but never returned by lookups. At least two distinct
// non-missing samples are required and duplicates are rejected.
func NewIrregular1D(samples []float64, opts ...Option) (s *Irregular1D, err error) {
	start := time.Now()
	defer func() { recordBuild("irregular1d", len(samples), start, err) }()

	o := applyOptions(opts)
	b, err := newBase("irregular1d", 1, 1, len(samples), o)
	if err != nil {
		return nil, err
	}
	if o.copy {
		samples = slices.Clone(samples)
	}
	if err := b.scan([][]float64{samples}); err != nil {
		return nil, err
	}

	newToOld := b.missing.Complement(len(samples))
	slices.SortStableFunc(newToOld, func(i, j int) int {
		switch {
		case samples[i] < samples[j]:
			return -1
		case samples[i] > samples[j]:
			return 1
		}
		return 0
	})

	oldToNew := make([]int, len(samples))
	for i := range oldToNew {
		oldToNew[i] = -1
	}
	sorted := make([]float64, len(newToOld))
	for k, i := range newToOld {
		if k > 0 && samples[i] == sorted[k-1] {
			return nil, fmt.Errorf("%w: samples %d and %d are both %g",
				errdefs.ErrInvalidGrid, newToOld[k-1], i, samples[i])
		}
		sorted[k] = samples[i]
		oldToNew[i] = k
	}

	inner, err := NewGridded1D(sorted, WithCopy(false), WithParallelism(o.workers, o.minChunk))
	if err != nil {
		return nil, err
	}

	return &Irregular1D{
		base:     b,
		samples:  samples,
		sorted:   inner,
		oldToNew: oldToNew,
		newToOld: newToOld,
	}, nil
}

// Samples returns a copy of the samples in their original order.
func (s *Irregular1D) Samples() [][]float64 {
	return [][]float64{slices.Clone(s.samples)}
}

func (s *Irregular1D) Sample(i int) ([]float64, error) { return sample(s, i) }

// Sorted returns the lookup set over the sorted non-missing samples.
func (s *Irregular1D) Sorted() *Gridded1D { return s.sorted }

// SortedIndex returns the position of original sample i in sorted order,
// or -1 for missing or out-of-range samples.
func (s *Irregular1D) SortedIndex(i int) int {
	if i < 0 || i >= len(s.oldToNew) {
		return -1
	}
	return s.oldToNew[i]
}

// OriginalIndex returns the original index of sorted sample k, or -1.
func (s *Irregular1D) OriginalIndex(k int) int {
	if k < 0 || k >= len(s.newToOld) {
		return -1
	}
	return s.newToOld[k]
}

func (s *Irregular1D) IndexToValue(index []int) [][]float64 {
	remapped := make([]int, len(index))
	for k, i := range index {
		remapped[k] = s.SortedIndex(i)
	}
	return s.sorted.IndexToValue(remapped)
}

func (s *Irregular1D) ValueToIndex(values [][]float64) ([]int, error) {
	index, err := s.sorted.ValueToIndex(values)
	if err != nil {
		return nil, err
	}
	for k, i := range index {
		index[k] = s.OriginalIndex(i)
	}
	return index, nil
}

func (s *Irregular1D) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	indices, weights, err := s.sorted.ValueToInterp(values)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range indices {
		for k, i := range row {
			row[k] = s.newToOld[i]
		}
	}
	return indices, weights, nil
}

// Neighbors returns the samples just below and just above sample i in
// sorted order. Missing samples have none.
func (s *Irregular1D) Neighbors(i int) ([]int, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	k := s.oldToNew[i]
	if k < 0 {
		return nil, nil
	}
	var out []int
	if k > 0 {
		out = append(out, s.newToOld[k-1])
	}
	if k < len(s.newToOld)-1 {
		out = append(out, s.newToOld[k+1])
	}
	return out, nil
}
