package coordsys

import (
	"math"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Polar maps (radius, theta) to a 2-D Cartesian reference. Theta is in
// radians unless units say otherwise.
type Polar struct {
	Base
}

// NewPolar returns a polar system over a 2-D reference.
func NewPolar(reference *realtype.TupleType, units ...unit.Unit) (*Polar, error) {
	if reference != nil && reference.Dimension() != 2 {
		return nil, errdefs.NewDimensionError("polar reference", 2, reference.Dimension())
	}
	if len(units) == 0 {
		units = nil
	}
	b, err := NewBase(reference, units)
	if err != nil {
		return nil, err
	}
	return &Polar{Base: b}, nil
}

func (c *Polar) ToReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("polar to reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(2, n)
	for i := 0; i < n; i++ {
		r, theta := values[0][i], values[1][i]
		sin, cos := math.Sincos(theta)
		out[0][i] = r * cos
		out[1][i] = r * sin
	}
	return out, nil
}

func (c *Polar) FromReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("polar from reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(2, n)
	for i := 0; i < n; i++ {
		x, y := values[0][i], values[1][i]
		out[0][i] = math.Hypot(x, y)
		out[1][i] = math.Atan2(y, x)
	}
	return out, nil
}

func (c *Polar) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Polar)
	return ok && c.equal(o.Base)
}

// Cylindrical maps (radius, theta, z) to a 3-D Cartesian reference. Theta
// is in radians unless units say otherwise.
type Cylindrical struct {
	Base
}

// NewCylindrical returns a cylindrical system over a 3-D reference.
func NewCylindrical(reference *realtype.TupleType, units ...unit.Unit) (*Cylindrical, error) {
	if reference != nil && reference.Dimension() != 3 {
		return nil, errdefs.NewDimensionError("cylindrical reference", 3, reference.Dimension())
	}
	if len(units) == 0 {
		units = nil
	}
	b, err := NewBase(reference, units)
	if err != nil {
		return nil, err
	}
	return &Cylindrical{Base: b}, nil
}

func (c *Cylindrical) ToReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("cylindrical to reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(3, n)
	for i := 0; i < n; i++ {
		r, theta := values[0][i], values[1][i]
		sin, cos := math.Sincos(theta)
		out[0][i] = r * cos
		out[1][i] = r * sin
	}
	copy(out[2], values[2])
	return out, nil
}

func (c *Cylindrical) FromReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("cylindrical from reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(3, n)
	for i := 0; i < n; i++ {
		x, y := values[0][i], values[1][i]
		out[0][i] = math.Hypot(x, y)
		out[1][i] = math.Atan2(y, x)
	}
	copy(out[2], values[2])
	return out, nil
}

func (c *Cylindrical) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Cylindrical)
	return ok && c.equal(o.Base)
}
