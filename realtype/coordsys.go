package realtype

import (
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/unit"
)

// CoordinateSystem maps a tuple space to a reference tuple space and back.
//
// Values are dimension-major: values[axis][sample]. Implementations must be
// immutable and safe for concurrent use. They must not modify their input.
type CoordinateSystem interface {
	// Reference returns the reference tuple type. It never has a
	// coordinate system of its own.
	Reference() *TupleType

	// Dimension returns the number of axes on both sides.
	Dimension() int

	// Units returns the units the system expects its own coordinates in,
	// or nil when unspecified.
	Units() []unit.Unit

	// ToReference maps values in this system to the reference space,
	// expressed in the reference default units.
	ToReference(values [][]float64) ([][]float64, error)

	// FromReference is the inverse of ToReference.
	FromReference(values [][]float64) ([][]float64, error)

	// Equal reports whether two systems perform the same transform.
	Equal(other CoordinateSystem) bool
}

// Float32System is implemented by coordinate systems with a native float32
// path.
type Float32System interface {
	ToReference32(values [][]float32) ([][]float32, error)
	FromReference32(values [][]float32) ([][]float32, error)
}

// ToReference32 runs cs on float32 values, widening and narrowing around
// the float64 path unless cs implements Float32System.
func ToReference32(cs CoordinateSystem, values [][]float32) ([][]float32, error) {
	if f, ok := cs.(Float32System); ok {
		return f.ToReference32(values)
	}
	out, err := cs.ToReference(conv.Widen(values))
	if err != nil {
		return nil, err
	}
	return conv.Narrow(out), nil
}

// FromReference32 is the inverse of ToReference32.
func FromReference32(cs CoordinateSystem, values [][]float32) ([][]float32, error) {
	if f, ok := cs.(Float32System); ok {
		return f.FromReference32(values)
	}
	out, err := cs.FromReference(conv.Widen(values))
	if err != nil {
		return nil, err
	}
	return conv.Narrow(out), nil
}
