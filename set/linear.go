package set

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/realtype"
)

// Linear1D is the arithmetic sequence first, first+step, ..., last.
type Linear1D struct {
	*grid
	first, last float64
}

// NewLinear1D returns n evenly spaced samples from first to last. A single
// sample must have first == last.
func NewLinear1D(first, last float64, n int, opts ...Option) (s *Linear1D, err error) {
	start := time.Now()
	defer func() { recordBuild("linear1d", n, start, err) }()

	if n < 1 {
		return nil, fmt.Errorf("%w: linear set needs at least one sample, got %d", errdefs.ErrInvalidGrid, n)
	}
	if math.IsNaN(first) || math.IsNaN(last) || math.IsInf(first, 0) || math.IsInf(last, 0) {
		return nil, fmt.Errorf("%w: linear set bounds must be finite", errdefs.ErrInvalidGrid)
	}

	step := 1.0
	switch {
	case n == 1 && first != last:
		return nil, fmt.Errorf("%w: single-sample linear set needs first == last", errdefs.ErrInvalidGrid)
	case n > 1 && first == last:
		return nil, fmt.Errorf("%w: linear set of %d samples has zero step", errdefs.ErrInvalidGrid, n)
	case n > 1:
		step = (last - first) / float64(n-1)
	}

	b, err := newBase("linear1d", 1, 1, n, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Linear1D{
		grid:  newGrid(b, []axis{linearAxis{first: first, step: step, n: n}}),
		first: first,
		last:  last,
	}, nil
}

// NewInteger1D returns the samples 0, 1, ..., n-1.
func NewInteger1D(n int, opts ...Option) (*Linear1D, error) {
	return NewLinear1D(0, float64(n-1), n, opts...)
}

// First returns the first sample.
func (s *Linear1D) First() float64 { return s.first }

// Last returns the last sample.
func (s *Linear1D) Last() float64 { return s.last }

// Step returns the spacing between samples. It is 1 for a single sample.
func (s *Linear1D) Step() float64 { return s.axes[0].(linearAxis).step }

// LinearND is the product of Linear1D axes. The first axis varies fastest.
type LinearND struct {
	*grid
	factors []*Linear1D
}

// NewLinearND builds the product of the given axes. Without WithType the
// set uses the Cartesian type of its dimension, or the tuple of the axes'
// components beyond three axes.
func NewLinearND(axes []*Linear1D, opts ...Option) (s *LinearND, err error) {
	start := time.Now()
	length := 0
	defer func() { recordBuild("linearnd", length, start, err) }()

	if len(axes) == 0 {
		return nil, errdefs.NewDimensionError("linear product", 1, 0)
	}
	length = 1
	manifold := 0
	components := make([]*realtype.RealType, len(axes))
	factors := make([]axis, len(axes))
	for j, a := range axes {
		if a == nil {
			return nil, fmt.Errorf("%w: linear product axis %d is nil", errdefs.ErrIllegalOperation, j)
		}
		if a.Dimension() != 1 {
			return nil, errdefs.NewDimensionError("linear product axis", 1, a.Dimension())
		}
		components[j] = a.Type().Component(0)
		factors[j] = a.axes[0]
		length *= a.Length()
		if a.Length() > 1 {
			manifold++
		}
	}

	o := applyOptions(opts)
	if o.typ == nil && len(axes) > 3 {
		t, terr := realtype.NewTupleType(components, nil, nil)
		if terr != nil {
			return nil, terr
		}
		o.typ = t
	}
	b, err := newBase("linearnd", len(axes), manifold, length, o)
	if err != nil {
		return nil, err
	}
	return &LinearND{
		grid:    newGrid(b, factors),
		factors: append([]*Linear1D(nil), axes...),
	}, nil
}

// Axis returns the j-th factor.
func (s *LinearND) Axis(j int) *Linear1D { return s.factors[j] }
