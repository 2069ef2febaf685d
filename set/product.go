package set

import (
	"fmt"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Product is the Cartesian product of sets. Its axes are the factors' axes
// in order and the first factor's index varies fastest.
type Product struct {
	base
	factors []Set
	strides []int // flat index stride of each factor
	first   []int // first axis of each factor
}

// NewProduct builds the product of sets. Nested products are flattened.
// Without WithType the set uses the Cartesian type of its dimension, or the
// tuple of the factors' components beyond three axes. Without WithUnits it
// carries the factors' units.
func NewProduct(sets []Set, opts ...Option) (s *Product, err error) {
	start := time.Now()
	length := 0
	defer func() { recordBuild("product", length, start, err) }()

	var factors []Set
	for k, f := range sets {
		switch f := f.(type) {
		case nil:
			return nil, fmt.Errorf("%w: product factor %d is nil", errdefs.ErrIllegalOperation, k)
		case *Product:
			factors = append(factors, f.factors...)
		default:
			factors = append(factors, f)
		}
	}
	if len(factors) == 0 {
		return nil, errdefs.NewDimensionError("product", 1, 0)
	}

	length = 1
	dim, manifold := 0, 0
	strides := make([]int, len(factors))
	first := make([]int, len(factors))
	var components []*realtype.RealType
	var units []unit.Unit
	for k, f := range factors {
		strides[k] = length
		first[k] = dim
		length *= f.Length()
		dim += f.Dimension()
		manifold += f.ManifoldDimension()
		components = append(components, f.Type().Components()...)
		units = append(units, f.Units()...)
	}

	o := applyOptions(opts)
	if o.typ == nil && dim > 3 {
		t, terr := realtype.NewTupleType(components, nil, nil)
		if terr != nil {
			return nil, terr
		}
		o.typ = t
	}
	explicitUnits := o.units != nil
	b, err := newBase("product", dim, manifold, length, o)
	if err != nil {
		return nil, err
	}
	if !explicitUnits {
		b.units = units
	}

	p := &Product{base: b, factors: factors, strides: strides, first: first}
	if err := p.scan(p.Samples()); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductOf returns the product of a and b. A product with a Union is
// distributed over the union's members.
func ProductOf(a, b Set) (Set, error) {
	if u, ok := a.(*Union); ok {
		return u.distribute(func(m Set) (Set, error) { return ProductOf(m, b) })
	}
	if u, ok := b.(*Union); ok {
		return u.distribute(func(m Set) (Set, error) { return ProductOf(a, m) })
	}
	return NewProduct([]Set{a, b})
}

// Factors returns the factor sets.
func (p *Product) Factors() []Set { return append([]Set(nil), p.factors...) }

// Samples returns every sample in flattened order.
func (p *Product) Samples() [][]float64 {
	index := make([]int, p.length)
	for i := range index {
		index[i] = i
	}
	return p.IndexToValue(index)
}

func (p *Product) Sample(i int) ([]float64, error) { return sample(p, i) }

// split returns the factor index of flat index i for factor k.
func (p *Product) split(i, k int) int {
	return (i / p.strides[k]) % p.factors[k].Length()
}

func (p *Product) IndexToValue(index []int) [][]float64 {
	out := make([][]float64, 0, p.dim)
	local := make([]int, len(index))
	for k, f := range p.factors {
		for q, i := range index {
			local[q] = -1
			if i >= 0 && i < p.length {
				local[q] = p.split(i, k)
			}
		}
		out = append(out, f.IndexToValue(local)...)
	}
	return out
}

func (p *Product) axesOf(values [][]float64, k int) [][]float64 {
	return values[p.first[k] : p.first[k]+p.factors[k].Dimension()]
}

func (p *Product) ValueToIndex(values [][]float64) ([]int, error) {
	n, err := conv.CheckShape(p.kind+" query", values, p.dim)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for k, f := range p.factors {
		local, err := f.ValueToIndex(p.axesOf(values, k))
		if err != nil {
			return nil, err
		}
		for q, i := range local {
			if i < 0 || out[q] < 0 {
				out[q] = -1
				continue
			}
			out[q] += i * p.strides[k]
		}
	}
	return out, nil
}

// ValueToInterp combines the factors' interpolation rows as a tensor
// product. A query outside any factor is outside the product.
func (p *Product) ValueToInterp(values [][]float64) ([][]int, [][]float64, error) {
	n, err := conv.CheckShape(p.kind+" query", values, p.dim)
	if err != nil {
		return nil, nil, err
	}
	indices := make([][]int, n)
	weights := make([][]float64, n)
	for q := range indices {
		indices[q] = []int{0}
		weights[q] = []float64{1}
	}
	for k, f := range p.factors {
		li, lw, err := f.ValueToInterp(p.axesOf(values, k))
		if err != nil {
			return nil, nil, err
		}
		for q := range indices {
			if indices[q] == nil {
				continue
			}
			if li[q] == nil {
				indices[q], weights[q] = nil, nil
				continue
			}
			idx := make([]int, 0, len(indices[q])*len(li[q]))
			w := make([]float64, 0, cap(idx))
			for a, i := range li[q] {
				for b, prev := range indices[q] {
					idx = append(idx, prev+i*p.strides[k])
					w = append(w, weights[q][b]*lw[q][a])
				}
			}
			indices[q], weights[q] = idx, w
		}
	}
	return indices, weights, nil
}

// Neighbors returns the samples adjacent to sample i within one factor
// while the other factors stay fixed.
func (p *Product) Neighbors(i int) ([]int, error) {
	if err := p.checkIndex(i); err != nil {
		return nil, err
	}
	var out []int
	for k, f := range p.factors {
		local := p.split(i, k)
		nb, err := f.Neighbors(local)
		if err != nil {
			return nil, err
		}
		for _, j := range nb {
			out = append(out, i+(j-local)*p.strides[k])
		}
	}
	return out, nil
}
