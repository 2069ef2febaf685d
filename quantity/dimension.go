// Package quantity describes physical dimensions independent of scale and
// offset.
//
// A Dimension is a vector of integer exponents with one slot per registered
// base quantity (see unit.BaseUnits). Two units are convertible exactly when
// their dimensions are equal or reciprocal.
package quantity

import (
	"strconv"
	"strings"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/unit"
)

// Dimension is an immutable exponent vector indexed by base-quantity slot.
// Trailing zeros are insignificant.
type Dimension []int

// DimensionOf returns the dimension of u. Dimensionless base quantities
// such as angles contribute nothing. It returns false for nil and
// promiscuous units.
func DimensionOf(u unit.Unit) (Dimension, bool) {
	d := unit.DerivedOf(u)
	if d == nil {
		return nil, false
	}
	var dim Dimension
	for _, f := range d.Factors() {
		if f.Base.IsDimensionless() {
			continue
		}
		idx := f.Base.Index()
		for len(dim) <= idx {
			dim = append(dim, 0)
		}
		dim[idx] = f.Power
	}
	return dim.trim(), true
}

func (d Dimension) trim() Dimension {
	n := len(d)
	for n > 0 && d[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return d[:n:n]
}

func (d Dimension) at(i int) int {
	if i < len(d) {
		return d[i]
	}
	return 0
}

func combine(a, b Dimension, fn func(x, y int) int) Dimension {
	n := max(len(a), len(b))
	out := make(Dimension, n)
	for i := range out {
		out[i] = fn(a.at(i), b.at(i))
	}
	return out.trim()
}

// Multiply returns a+b elementwise.
func Multiply(a, b Dimension) Dimension {
	return combine(a, b, func(x, y int) int { return x + y })
}

// Divide returns a-b elementwise.
func Divide(a, b Dimension) Dimension {
	return combine(a, b, func(x, y int) int { return x - y })
}

// Pow scales every exponent by n.
func Pow(d Dimension, n int) Dimension {
	out := make(Dimension, len(d))
	for i, e := range d {
		out[i] = e * n
	}
	return out.trim()
}

// Root divides every exponent by n. It fails when n is zero or any exponent
// is not divisible by n.
func Root(d Dimension, n int) (Dimension, error) {
	if n == 0 {
		return nil, &errdefs.IllegalExponentError{Unit: d.String()}
	}
	out := make(Dimension, len(d))
	for i, e := range d {
		if e%n != 0 {
			return nil, &errdefs.IllegalExponentError{Unit: d.String(), Root: n}
		}
		out[i] = e / n
	}
	return out.trim(), nil
}

// Compare orders dimensions lexicographically. The shorter vector is
// padded with zeros.
func Compare(a, b Dimension) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		x, y := a.at(i), b.at(i)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// Equal reports whether a and b have the same exponents.
func Equal(a, b Dimension) bool {
	return Compare(a, b) == 0
}

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return len(d.trim()) == 0
}

// IsReciprocal reports whether a == -b and both are non-trivial.
func IsReciprocal(a, b Dimension) bool {
	if a.IsDimensionless() {
		return false
	}
	return Equal(a, Pow(b, -1))
}

// String formats the dimension using base unit symbols, e.g. "m.s-1".
// The dimensionless vector formats as "1".
func (d Dimension) String() string {
	bases := unit.BaseUnits()
	var parts []string
	for i, e := range d {
		if e == 0 {
			continue
		}
		name := "q" + strconv.Itoa(i)
		if i < len(bases) {
			name = bases[i].Symbol()
		}
		if e != 1 {
			name += strconv.Itoa(e)
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, ".")
}
