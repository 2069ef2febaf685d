package coordsys

import (
	"math"

	"github.com/hupe1980/quanta/arith"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Spherical maps (latitude, longitude, radius) to a 3-D Cartesian reference.
// Latitude and longitude are in degrees. The z axis points at latitude 90.
type Spherical struct {
	Base
}

// NewSpherical returns a spherical system over a 3-D reference. Without
// explicit units the system expects (deg, deg, <unspecified>).
func NewSpherical(reference *realtype.TupleType, units ...unit.Unit) (*Spherical, error) {
	if reference != nil && reference.Dimension() != 3 {
		return nil, errdefs.NewDimensionError("spherical reference", 3, reference.Dimension())
	}
	if len(units) == 0 {
		units = []unit.Unit{unit.Degree, unit.Degree, nil}
	}
	b, err := NewBase(reference, units)
	if err != nil {
		return nil, err
	}
	return &Spherical{Base: b}, nil
}

func (c *Spherical) ToReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("spherical to reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(3, n)
	for i := 0; i < n; i++ {
		lat := values[0][i] * arith.DegreesToRadians
		lon := values[1][i] * arith.DegreesToRadians
		r := values[2][i]
		sinLat, cosLat := math.Sincos(lat)
		sinLon, cosLon := math.Sincos(lon)
		out[0][i] = r * cosLat * cosLon
		out[1][i] = r * cosLat * sinLon
		out[2][i] = r * sinLat
	}
	return out, nil
}

func (c *Spherical) FromReference(values [][]float64) ([][]float64, error) {
	n, err := c.check("spherical from reference", values)
	if err != nil {
		return nil, err
	}
	out := alloc(3, n)
	for i := 0; i < n; i++ {
		x, y, z := values[0][i], values[1][i], values[2][i]
		r := math.Sqrt(x*x + y*y + z*z)
		lat := 0.0
		if r != 0 {
			lat = math.Asin(z/r) * arith.RadiansToDegrees
		}
		out[0][i] = lat
		out[1][i] = math.Atan2(y, x) * arith.RadiansToDegrees
		out[2][i] = r
	}
	return out, nil
}

func (c *Spherical) Equal(other CoordinateSystem) bool {
	o, ok := unwrap(other).(*Spherical)
	return ok && c.equal(o.Base)
}
