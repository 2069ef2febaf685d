package unit

import (
	"slices"
	"strconv"
	"strings"
)

// Factor is a base unit raised to a nonzero integer power.
type Factor struct {
	Base  *BaseUnit
	Power int
}

// DerivedUnit is a product of factors. A DerivedUnit without factors is
// dimensionless.
type DerivedUnit struct {
	id      string
	factors []Factor
}

// NewDerived builds a derived unit from factors. Factors over the same
// base are combined and zero powers are dropped.
func NewDerived(factors ...Factor) *DerivedUnit {
	return &DerivedUnit{factors: normalize(factors)}
}

// Identifier returns the unit's name, or "".
func (d *DerivedUnit) Identifier() string { return d.id }

// Definition formats the factors as "kg.m2.s-2". A dimensionless unit has
// an empty definition.
func (d *DerivedUnit) Definition() string {
	var sb strings.Builder
	for i, f := range d.factors {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(f.Base.symbol)
		if f.Power != 1 {
			sb.WriteString(strconv.Itoa(f.Power))
		}
	}
	return sb.String()
}

func (d *DerivedUnit) String() string {
	if d.id != "" {
		return d.id
	}
	return d.Definition()
}

// Factors returns a copy of the unit's factors in registry order.
func (d *DerivedUnit) Factors() []Factor {
	return slices.Clone(d.factors)
}

func (d *DerivedUnit) canonical() (form, bool) {
	return form{factors: d.factors, scale: 1}, true
}

// normalize merges factors over the same base, drops zero powers and
// orders the result by registry index.
func normalize(in []Factor) []Factor {
	if len(in) == 0 {
		return nil
	}
	out := make([]Factor, 0, len(in))
	for _, f := range in {
		if f.Base == nil || f.Power == 0 {
			continue
		}
		merged := false
		for i := range out {
			if out[i].Base == f.Base {
				out[i].Power += f.Power
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, f)
		}
	}
	out = slices.DeleteFunc(out, func(f Factor) bool { return f.Power == 0 })
	slices.SortFunc(out, func(a, b Factor) int { return a.Base.index - b.Base.index })
	if len(out) == 0 {
		return nil
	}
	return out
}

func mulFactors(a, b []Factor) []Factor {
	all := make([]Factor, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return normalize(all)
}

func powFactors(a []Factor, n int) []Factor {
	if n == 0 {
		return nil
	}
	out := make([]Factor, len(a))
	for i, f := range a {
		out[i] = Factor{Base: f.Base, Power: f.Power * n}
	}
	return out
}

// rootFactors returns nil, false when any power is not divisible by n.
func rootFactors(a []Factor, n int) ([]Factor, bool) {
	out := make([]Factor, len(a))
	for i, f := range a {
		if f.Power%n != 0 {
			return nil, false
		}
		out[i] = Factor{Base: f.Base, Power: f.Power / n}
	}
	return out, true
}

// sameFactors is a bijective match; both inputs are normalized.
func sameFactors(a, b []Factor) bool {
	return slices.Equal(a, b)
}

// dimensional drops factors of dimensionless base units.
func dimensional(a []Factor) []Factor {
	out := make([]Factor, 0, len(a))
	for _, f := range a {
		if !f.Base.dimensionless {
			out = append(out, f)
		}
	}
	return out
}

type relation int

const (
	unrelated relation = iota
	same
	reciprocal
)

// relate compares the dimensionality of two factor lists.
func relate(a, b []Factor) relation {
	da, db := dimensional(a), dimensional(b)
	if slices.Equal(da, db) {
		return same
	}
	if len(da) != len(db) {
		return unrelated
	}
	for i := range da {
		if da[i].Base != db[i].Base || da[i].Power != -db[i].Power {
			return unrelated
		}
	}
	return reciprocal
}
