package coordsys

import (
	"fmt"
	"slices"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
	"gonum.org/v1/gonum/mat"
)

// Linear is the affine system ref = A*x + b. A must be square with the
// reference dimension and invertible.
type Linear struct {
	Base
	a      *mat.Dense
	inv    *mat.Dense
	offset []float64
}

// NewLinear builds an affine system from a row-major matrix and an offset.
// offset may be nil for a purely linear map.
func NewLinear(reference *realtype.TupleType, matrix [][]float64, offset []float64, units ...unit.Unit) (*Linear, error) {
	if len(units) == 0 {
		units = nil
	}
	b, err := NewBase(reference, units)
	if err != nil {
		return nil, err
	}
	dim := b.Dimension()
	if len(matrix) != dim {
		return nil, errdefs.NewDimensionError("linear matrix rows", dim, len(matrix))
	}
	data := make([]float64, 0, dim*dim)
	for _, row := range matrix {
		if len(row) != dim {
			return nil, errdefs.NewDimensionError("linear matrix columns", dim, len(row))
		}
		data = append(data, row...)
	}
	if offset == nil {
		offset = make([]float64, dim)
	} else if len(offset) != dim {
		return nil, errdefs.NewDimensionError("linear offset", dim, len(offset))
	}

	a := mat.NewDense(dim, dim, data)
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrSingularMatrix, err)
	}

	telemetry.Logger().Debug("built linear coordinate system", "reference", reference.String(), "dimension", dim)

	return &Linear{
		Base:   b,
		a:      a,
		inv:    &inv,
		offset: slices.Clone(offset),
	}, nil
}

// Matrix returns a copy of A in row-major order.
func (c *Linear) Matrix() [][]float64 {
	dim := c.Dimension()
	out := make([][]float64, dim)
	for i := range out {
		out[i] = slices.Clone(c.a.RawRowView(i))
	}
	return out
}

// Offset returns a copy of b.
func (c *Linear) Offset() []float64 { return slices.Clone(c.offset) }

func (c *Linear) ToReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("linear to reference", values)
	if err != nil {
		return nil, err
	}
	return c.apply(c.a, values, n, c.offset, nil), nil
}

func (c *Linear) FromReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("linear from reference", values)
	if err != nil {
		return nil, err
	}
	return c.apply(c.inv, values, n, nil, c.offset), nil
}

// apply computes m*(x - pre) + post over a batch.
func (c *Linear) apply(m *mat.Dense, values [][]float64, n int, post, pre []float64) [][]float64 {
	dim := c.Dimension()
	if n == 0 {
		return alloc(dim, 0)
	}

	x := mat.NewDense(dim, n, nil)
	for i, axis := range values {
		row := x.RawRowView(i)
		copy(row, axis)
		if pre != nil {
			for j := range row {
				row[j] -= pre[i]
			}
		}
	}

	var y mat.Dense
	y.Mul(m, x)

	out := make([][]float64, dim)
	for i := range out {
		out[i] = slices.Clone(y.RawRowView(i))
		if post != nil {
			for j := range out[i] {
				out[i][j] += post[i]
			}
		}
	}
	return out
}

func (c *Linear) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Linear)
	return ok && c.equal(o.Base) && mat.Equal(c.a, o.a) && slices.Equal(c.offset, o.offset)
}
