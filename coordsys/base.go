// Package coordsys implements coordinate systems between tuple spaces and
// the engine that moves values, units and error estimates through them.
//
// Every system works on dimension-major batches (values[axis][sample]) and
// returns freshly allocated output. Systems are immutable once built and
// may be shared between goroutines.
package coordsys

import (
	"fmt"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// CoordinateSystem is re-exported for callers that only import coordsys.
type CoordinateSystem = realtype.CoordinateSystem

// Base holds the reference type and units shared by every system in this
// package. Embed it and implement ToReference, FromReference and Equal.
type Base struct {
	reference *realtype.TupleType
	units     []unit.Unit
}

// NewBase validates a reference tuple type and the units of the system's
// own coordinates. units may be nil; otherwise it needs one entry per axis.
func NewBase(reference *realtype.TupleType, units []unit.Unit) (Base, error) {
	if reference == nil {
		return Base{}, fmt.Errorf("%w: coordinate system requires a reference", errdefs.ErrIllegalOperation)
	}
	if reference.CoordinateSystem() != nil {
		return Base{}, fmt.Errorf("%w: %s", errdefs.ErrReferenceHasCoordinateSystem, reference)
	}
	if units != nil && len(units) != reference.Dimension() {
		return Base{}, errdefs.NewDimensionError("coordinate system units", reference.Dimension(), len(units))
	}

	var u []unit.Unit
	if units != nil {
		u = append([]unit.Unit(nil), units...)
	}
	return Base{reference: reference, units: u}, nil
}

// Reference returns the reference tuple type.
func (b Base) Reference() *realtype.TupleType { return b.reference }

// Dimension returns the number of axes.
func (b Base) Dimension() int { return b.reference.Dimension() }

// Units returns a copy of the coordinate units, or nil when unspecified.
func (b Base) Units() []unit.Unit {
	if b.units == nil {
		return nil
	}
	return append([]unit.Unit(nil), b.units...)
}

func (b Base) check(context string, values [][]float64) (int, error) {
	return conv.CheckShape(context, values, b.reference.Dimension())
}

func sameUnits(a, b []unit.Unit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !unit.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (b Base) equal(other Base) bool {
	return b.reference.Equal(other.reference) && sameUnits(b.units, other.units)
}

// alloc returns dim zeroed axes of n samples.
func alloc(dim, n int) [][]float64 {
	out := make([][]float64, dim)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}
