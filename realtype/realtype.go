// Package realtype defines the named scalar and tuple types that give
// meaning to numeric values, and the CoordinateSystem contract.
//
// A RealType names a quantity (Latitude, Altitude, ...) and fixes its
// default unit. A TupleType groups RealTypes into a vector space and may
// declare a CoordinateSystem that maps it to a reference tuple type.
package realtype

import (
	"fmt"
	"sync"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/unit"
)

// RealType is an immutable named scalar type.
type RealType struct {
	name     string
	unit     unit.Unit
	interval bool
}

// Name returns the type name.
func (t *RealType) Name() string { return t.name }

// DefaultUnit returns the unit values of this type are expressed in by
// default. It may be nil.
func (t *RealType) DefaultUnit() unit.Unit { return t.unit }

// IsInterval reports whether the type describes differences (a
// temperature change rather than a temperature).
func (t *RealType) IsInterval() bool { return t.interval }

func (t *RealType) String() string { return t.name }

// Equal reports whether two types have the same name. Names are unique in
// the registry.
func (t *RealType) Equal(other *RealType) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name
}

// TypeOption configures GetRealType.
type TypeOption func(*typeOptions)

type typeOptions struct {
	interval bool
}

// Interval marks the type as an interval (delta) quantity. Values of
// interval types use the absolute form of their unit.
func Interval() TypeOption {
	return func(o *typeOptions) { o.interval = true }
}

var (
	typesMu sync.RWMutex
	types   = map[string]*RealType{}
)

// GetRealType returns the named type, creating it on first use. Asking
// again with a compatible unit returns the existing type; an incompatible
// unit is a UnitMismatchError.
func GetRealType(name string, u unit.Unit, opts ...TypeOption) (*RealType, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: real type requires a name", errdefs.ErrIllegalOperation)
	}
	var o typeOptions
	for _, opt := range opts {
		opt(&o)
	}

	typesMu.Lock()
	defer typesMu.Unlock()

	if t, ok := types[name]; ok {
		if u != nil && !unit.CanConvert(t.unit, u) {
			return nil, &errdefs.UnitMismatchError{From: u.String(), To: unitString(t.unit)}
		}
		return t, nil
	}

	if o.interval && u != nil {
		u = unit.Absolute(u)
	}
	t := &RealType{name: name, unit: u, interval: o.interval}
	types[name] = t
	telemetry.Logger().Debug("registered real type", "name", name, "unit", unitString(u))
	return t, nil
}

// MustRealType is GetRealType that panics on error.
func MustRealType(name string, u unit.Unit, opts ...TypeOption) *RealType {
	t, err := GetRealType(name, u, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// LookupRealType returns a registered type by name.
func LookupRealType(name string) (*RealType, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[name]
	return t, ok
}

func unitString(u unit.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.String()
}

// Predefined types.
var (
	Generic   = MustRealType("Generic", unit.Promiscuous)
	XAxis     = MustRealType("XAxis", nil)
	YAxis     = MustRealType("YAxis", nil)
	ZAxis     = MustRealType("ZAxis", nil)
	Latitude  = MustRealType("Latitude", unit.Degree)
	Longitude = MustRealType("Longitude", unit.Degree)
	Altitude  = MustRealType("Altitude", unit.Meter)
	Radius    = MustRealType("Radius", nil)
	Time      = MustRealType("Time", unit.Second)
)
