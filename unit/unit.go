// Package unit implements immutable physical units and their algebra.
//
// A Unit is one of five closed variants:
//
//   - *BaseUnit: a registered base quantity such as meter or second.
//   - *DerivedUnit: a product of base units raised to integer powers.
//   - *ScaledUnit: a multiple of a derived unit (kilometer = 1000 m).
//   - *OffsetUnit: a shifted absolute unit (celsius = K @ 273.15).
//   - *PromiscuousUnit: a wildcard compatible with every unit.
//
// Every non-promiscuous unit has a canonical form (factors, scale, offset)
// where a value v expressed in the unit equals (v+offset)*scale in the
// derived unit given by factors. Conversion, equality and the algebra are
// all defined on that form.
package unit

import (
	"math"
	"strconv"
)

// Unit is a physical unit. The interface is sealed; the variants are listed
// in the package documentation.
type Unit interface {
	// Identifier returns the unit's name, or "" for anonymous units.
	Identifier() string

	// Definition returns the unit expressed in base units,
	// e.g. "m.s-1" or "1000 m".
	Definition() string

	// String returns the identifier if set, otherwise the definition.
	String() string

	canonical() (form, bool)
}

// form is the canonical representation shared by all non-promiscuous units.
type form struct {
	factors []Factor
	scale   float64
	offset  float64
}

// Named returns a copy of u carrying the given identifier.
// Named(nil, ...) returns nil.
func Named(u Unit, id string) Unit {
	switch v := u.(type) {
	case nil:
		return nil
	case *BaseUnit:
		return &DerivedUnit{id: id, factors: []Factor{{Base: v, Power: 1}}}
	case *DerivedUnit:
		c := *v
		c.id = id
		return &c
	case *ScaledUnit:
		c := *v
		c.id = id
		return &c
	case *OffsetUnit:
		c := *v
		c.id = id
		return &c
	default:
		return u
	}
}

// Equal reports whether two units are the same unit. Names are ignored.
// Two nil units are equal; the promiscuous unit equals only itself.
func Equal(a, b Unit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, oka := a.canonical()
	fb, okb := b.canonical()
	if !oka || !okb {
		return !oka && !okb
	}
	return fa.scale == fb.scale && fa.offset == fb.offset && sameFactors(fa.factors, fb.factors)
}

// IsPromiscuous reports whether u is the wildcard unit.
func IsPromiscuous(u Unit) bool {
	_, ok := u.(*PromiscuousUnit)
	return ok
}

// IsDimensionless reports whether u has no dimension. Factors of
// dimensionless base units such as radian are ignored.
func IsDimensionless(u Unit) bool {
	if u == nil {
		return false
	}
	f, ok := u.canonical()
	if !ok {
		return false
	}
	return len(dimensional(f.factors)) == 0
}

// IsConvertible reports whether values in a can be converted to b.
// Both nil is convertible; one nil is not. The promiscuous unit converts
// to anything.
func IsConvertible(a, b Unit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, oka := a.canonical()
	fb, okb := b.canonical()
	if !oka || !okb {
		return true
	}
	return relate(fa.factors, fb.factors) != unrelated
}

// CanConvert is IsConvertible with nil and promiscuous both treated as
// "unknown": two unknowns are compatible, a known and an unknown are not.
func CanConvert(a, b Unit) bool {
	if IsPromiscuous(a) {
		a = nil
	}
	if IsPromiscuous(b) {
		b = nil
	}
	return IsConvertible(a, b)
}

// Absolute returns the purely multiplicative unit underlying u.
// Only offset units differ from their absolute unit.
func Absolute(u Unit) Unit {
	if o, ok := u.(*OffsetUnit); ok {
		return o.unit
	}
	return u
}

// DerivedOf returns the derived unit carrying u's factors, with scale and
// offset dropped. It returns nil for nil and promiscuous units.
func DerivedOf(u Unit) *DerivedUnit {
	if u == nil {
		return nil
	}
	f, ok := u.canonical()
	if !ok {
		return nil
	}
	return &DerivedUnit{factors: f.factors}
}

// ScaleOf returns the factor that converts a value in u (after removing
// any offset) into the unit returned by DerivedOf.
func ScaleOf(u Unit) float64 {
	if u == nil {
		return 1
	}
	f, ok := u.canonical()
	if !ok {
		return 1
	}
	return f.scale
}

// build turns a canonical form back into the simplest unit variant.
func build(f form) Unit {
	d := &DerivedUnit{factors: f.factors}
	var abs Unit = d
	if f.scale != 1 {
		abs = &ScaledUnit{amount: f.scale, unit: d}
	}
	if f.offset != 0 {
		return &OffsetUnit{offset: f.offset, unit: abs}
	}
	return abs
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
