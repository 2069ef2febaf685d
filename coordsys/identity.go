package coordsys

import (
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Identity maps every coordinate to itself. It is useful for declaring that
// a tuple type is an alias for its reference.
type Identity struct {
	Base
}

// NewIdentity returns the identity system over reference.
func NewIdentity(reference *realtype.TupleType, units ...unit.Unit) (*Identity, error) {
	if len(units) == 0 {
		units = nil
	}
	b, err := NewBase(reference, units)
	if err != nil {
		return nil, err
	}
	return &Identity{Base: b}, nil
}

// ToReference returns a copy of values.
func (c *Identity) ToReference(values [][]float64) ([][]float64, error) {
	if _, err := c.check("identity to reference", values); err != nil {
		return nil, err
	}
	return conv.Clone(values), nil
}

// FromReference returns a copy of values.
func (c *Identity) FromReference(values [][]float64) ([][]float64, error) {
	if _, err := c.check("identity from reference", values); err != nil {
		return nil, err
	}
	return conv.Clone(values), nil
}

// Equal reports whether other is an identity over the same reference.
func (c *Identity) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Identity)
	return ok && c.equal(o.Base)
}
