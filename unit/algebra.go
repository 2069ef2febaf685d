package unit

import (
	"fmt"
	"math"

	"github.com/hupe1980/quanta/errdefs"
)

// absoluteForm returns the canonical form of u with any offset removed.
func absoluteForm(u Unit) (form, bool) {
	f, ok := u.canonical()
	f.offset = 0
	return f, ok
}

// Multiply returns a*b. Offset operands are replaced by their absolute
// unit. A promiscuous operand yields the other operand; a nil operand
// yields nil.
func Multiply(a, b Unit) Unit {
	if a == nil || b == nil {
		return nil
	}
	fa, oka := absoluteForm(a)
	fb, okb := absoluteForm(b)
	switch {
	case !oka:
		return b
	case !okb:
		return a
	}
	return build(form{
		factors: mulFactors(fa.factors, fb.factors),
		scale:   fa.scale * fb.scale,
	})
}

// Divide returns a/b with the same operand rules as Multiply.
func Divide(a, b Unit) Unit {
	if a == nil || b == nil {
		return nil
	}
	fa, oka := absoluteForm(a)
	fb, okb := absoluteForm(b)
	switch {
	case !oka && !okb:
		return a
	case !oka:
		return build(form{factors: powFactors(fb.factors, -1), scale: 1 / fb.scale})
	case !okb:
		return a
	}
	return build(form{
		factors: mulFactors(fa.factors, powFactors(fb.factors, -1)),
		scale:   fa.scale / fb.scale,
	})
}

// Pow returns u raised to an integer power. Pow(u, 0) is dimensionless.
func Pow(u Unit, n int) Unit {
	if u == nil {
		return nil
	}
	f, ok := absoluteForm(u)
	if !ok {
		return u
	}
	return build(form{
		factors: powFactors(f.factors, n),
		scale:   math.Pow(f.scale, float64(n)),
	})
}

// Root returns the n-th root of u. It fails with an IllegalExponentError
// when n is zero or any power is not divisible by n.
func Root(u Unit, n int) (Unit, error) {
	if u == nil {
		return nil, nil
	}
	if n == 0 {
		return nil, &errdefs.IllegalExponentError{Unit: u.String()}
	}
	f, ok := absoluteForm(u)
	if !ok {
		return u, nil
	}
	factors, ok := rootFactors(f.factors, n)
	if !ok {
		return nil, &errdefs.IllegalExponentError{Unit: u.String(), Root: n}
	}
	return build(form{
		factors: factors,
		scale:   math.Pow(f.scale, 1/float64(n)),
	}), nil
}

// Sqrt is Root(u, 2).
func Sqrt(u Unit) (Unit, error) {
	return Root(u, 2)
}

// Scale returns a unit amount times larger than u: one of the new unit is
// amount of u. Scaling an offset unit yields an offset unit around the
// scaled absolute unit. A zero or non-finite amount is rejected.
func Scale(u Unit, amount float64) (Unit, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: cannot scale a nil unit", errdefs.ErrIllegalOperation)
	}
	if amount == 0 || !validAmount(amount) {
		return nil, fmt.Errorf("%w: invalid scale amount %g", errdefs.ErrIllegalOperation, amount)
	}
	if amount == 1 {
		return u, nil
	}
	f, ok := u.canonical()
	if !ok {
		return u, nil
	}
	f.scale *= amount
	f.offset /= amount
	return build(f), nil
}

// Shift returns u with its zero moved: a value v in the new unit is
// v+offset in u. A non-finite offset is rejected.
func Shift(u Unit, offset float64) (Unit, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: cannot shift a nil unit", errdefs.ErrIllegalOperation)
	}
	if !validAmount(offset) {
		return nil, fmt.Errorf("%w: invalid offset %g", errdefs.ErrIllegalOperation, offset)
	}
	if offset == 0 {
		return u, nil
	}
	f, ok := u.canonical()
	if !ok {
		return u, nil
	}
	f.offset += offset
	return build(f), nil
}

func mustScale(u Unit, amount float64) Unit {
	s, err := Scale(u, amount)
	if err != nil {
		panic(err)
	}
	return s
}

func mustShift(u Unit, offset float64) Unit {
	s, err := Shift(u, offset)
	if err != nil {
		panic(err)
	}
	return s
}
