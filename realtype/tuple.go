package realtype

import (
	"fmt"
	"strings"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/unit"
)

// TupleType is an immutable ordered group of RealTypes with an optional
// coordinate system to a reference tuple type.
type TupleType struct {
	components []*RealType
	cs         CoordinateSystem
	units      []unit.Unit
}

// NewTupleType builds a tuple type. When cs is non-nil its dimension must
// match the number of components and its units must be convertible to the
// default units. defaultUnits may be nil, in which case each component's
// default unit is used.
func NewTupleType(components []*RealType, cs CoordinateSystem, defaultUnits []unit.Unit) (*TupleType, error) {
	n := len(components)
	if n == 0 {
		return nil, errdefs.NewDimensionError("tuple type", 1, 0)
	}
	for i, c := range components {
		if c == nil {
			return nil, fmt.Errorf("%w: tuple component %d is nil", errdefs.ErrIllegalOperation, i)
		}
	}

	units := make([]unit.Unit, n)
	if defaultUnits != nil {
		if len(defaultUnits) != n {
			return nil, errdefs.NewDimensionError("tuple type default units", n, len(defaultUnits))
		}
		copy(units, defaultUnits)
	} else {
		for i, c := range components {
			units[i] = c.unit
		}
	}

	if cs != nil {
		if cs.Dimension() != n {
			return nil, errdefs.NewDimensionError("tuple type coordinate system", n, cs.Dimension())
		}
		if csUnits := cs.Units(); csUnits != nil {
			for i := range units {
				if !unit.CanConvert(csUnits[i], units[i]) {
					return nil, &errdefs.UnitMismatchError{From: unitString(csUnits[i]), To: unitString(units[i])}
				}
			}
		}
	}

	return &TupleType{
		components: append([]*RealType(nil), components...),
		cs:         cs,
		units:      units,
	}, nil
}

// MustTupleType is NewTupleType that panics on error.
func MustTupleType(components []*RealType, cs CoordinateSystem, defaultUnits []unit.Unit) *TupleType {
	t, err := NewTupleType(components, cs, defaultUnits)
	if err != nil {
		panic(err)
	}
	return t
}

// Tuple is shorthand for a tuple type without a coordinate system.
func Tuple(components ...*RealType) *TupleType {
	return MustTupleType(components, nil, nil)
}

// Dimension returns the number of components.
func (t *TupleType) Dimension() int { return len(t.components) }

// Component returns the i-th component type.
func (t *TupleType) Component(i int) *RealType { return t.components[i] }

// Components returns a copy of the component types.
func (t *TupleType) Components() []*RealType {
	return append([]*RealType(nil), t.components...)
}

// CoordinateSystem returns the declared coordinate system, or nil.
func (t *TupleType) CoordinateSystem() CoordinateSystem { return t.cs }

// DefaultUnits returns a copy of the per-component default units.
func (t *TupleType) DefaultUnits() []unit.Unit {
	return append([]unit.Unit(nil), t.units...)
}

// Reference returns the reference tuple type of the declared coordinate
// system, or nil.
func (t *TupleType) Reference() *TupleType {
	if t.cs == nil {
		return nil
	}
	return t.cs.Reference()
}

// Equal reports structural equality: the same component types in the same
// order. Coordinate systems are not compared.
func (t *TupleType) Equal(other *TupleType) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.components) != len(other.components) {
		return false
	}
	for i, c := range t.components {
		if !c.Equal(other.components[i]) {
			return false
		}
	}
	return true
}

// Index returns the position of a component type, or -1.
func (t *TupleType) Index(rt *RealType) int {
	for i, c := range t.components {
		if c.Equal(rt) {
			return i
		}
	}
	return -1
}

func (t *TupleType) String() string {
	names := make([]string, len(t.components))
	for i, c := range t.components {
		names[i] = c.name
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Common reference tuple types.
var (
	SpatialCartesian2D = Tuple(XAxis, YAxis)
	SpatialCartesian3D = Tuple(XAxis, YAxis, ZAxis)
	LatitudeLongitude  = Tuple(Latitude, Longitude)
	SpatialEarth3D     = Tuple(Latitude, Longitude, Altitude)
)
