package coordsys

import (
	"fmt"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/realtype"
)

// Inverse swaps the directions of an existing system. The wrapped system's
// reference becomes this system's coordinate space and reference becomes
// its new reference.
type Inverse struct {
	Base
	inner CoordinateSystem
}

// NewInverse returns the inverse of inner over reference. reference must
// have the dimension of inner.
func NewInverse(reference *realtype.TupleType, inner CoordinateSystem) (*Inverse, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: inverse of nil coordinate system", errdefs.ErrIllegalOperation)
	}
	if reference != nil && reference.Dimension() != inner.Dimension() {
		return nil, errdefs.NewDimensionError("inverse reference", inner.Dimension(), reference.Dimension())
	}
	b, err := NewBase(reference, inner.Reference().DefaultUnits())
	if err != nil {
		return nil, err
	}
	return &Inverse{Base: b, inner: inner}, nil
}

// ToReference runs the wrapped system's FromReference.
func (c *Inverse) ToReference(values [][]float64) ([][]float64, error) {
	return c.inner.FromReference(values)
}

// FromReference runs the wrapped system's ToReference.
func (c *Inverse) FromReference(values [][]float64) ([][]float64, error) {
	return c.inner.ToReference(values)
}

// Inner returns the wrapped system.
func (c *Inverse) Inner() CoordinateSystem { return c.inner }

func (c *Inverse) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Inverse)
	return ok && c.reference.Equal(o.reference) && c.inner.Equal(o.inner)
}
