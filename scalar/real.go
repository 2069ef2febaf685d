// Package scalar provides Real, an immutable number with a type, a unit and
// an optional error estimate, and Tuple, a fixed group of reals that may
// carry a coordinate system.
//
// Arithmetic never fails on unit trouble: a result whose unit cannot be
// determined gets a nil unit, and a missing (NaN) operand yields a missing
// result without an estimate.
package scalar

import (
	"cmp"
	"math"
	"strconv"

	"github.com/hupe1980/quanta/arith"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Real is an immutable scalar value.
type Real struct {
	typ   *realtype.RealType
	value float64
	unit  unit.Unit
	err   *errest.Estimate
}

// Option configures New.
type Option func(*options)

type options struct {
	unit     unit.Unit
	unitSet  bool
	err      *errest.Estimate
	errValue float64
	hasValue bool
}

// WithUnit sets the unit of the value. Without it the type's default unit
// is used.
func WithUnit(u unit.Unit) Option {
	return func(o *options) {
		o.unit = u
		o.unitSet = true
	}
}

// WithError attaches an existing estimate.
func WithError(e *errest.Estimate) Option {
	return func(o *options) { o.err = e }
}

// WithErrorValue attaches an estimate of magnitude e around the value.
func WithErrorValue(e float64) Option {
	return func(o *options) {
		o.errValue = e
		o.hasValue = true
	}
}

// New returns a Real of type t. A nil t means realtype.Generic. The unit
// must be convertible with the type's default unit. Interval types store
// the absolute form of the unit.
func New(t *realtype.RealType, value float64, opts ...Option) (*Real, error) {
	if t == nil {
		t = realtype.Generic
	}
	o := options{unit: t.DefaultUnit()}
	for _, opt := range opts {
		opt(&o)
	}

	if !unit.CanConvert(o.unit, t.DefaultUnit()) {
		return nil, &errdefs.UnitMismatchError{From: unitName(o.unit), To: unitName(t.DefaultUnit())}
	}

	e := o.err
	if o.hasValue {
		e = errest.New(value, o.errValue, o.unit)
	}
	return newReal(t, value, o.unit, e), nil
}

// MustNew is New that panics on error.
func MustNew(t *realtype.RealType, value float64, opts ...Option) *Real {
	r, err := New(t, value, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// newReal skips the unit check. Arithmetic results use it.
func newReal(t *realtype.RealType, value float64, u unit.Unit, e *errest.Estimate) *Real {
	if t.IsInterval() && u != nil {
		u = unit.Absolute(u)
	}
	if math.IsNaN(value) || (e != nil && e.IsMissing()) {
		e = nil
	}
	return &Real{typ: t, value: value, unit: u, err: e}
}

// Type returns the real type.
func (r *Real) Type() *realtype.RealType { return r.typ }

// Value returns the value in the Real's own unit.
func (r *Real) Value() float64 { return r.value }

// Unit returns the unit, or nil when unknown.
func (r *Real) Unit() unit.Unit { return r.unit }

// Error returns the error estimate, or nil.
func (r *Real) Error() *errest.Estimate { return r.err }

// IsMissing reports whether the value is NaN.
func (r *Real) IsMissing() bool { return math.IsNaN(r.value) }

// ValueIn returns the value converted to u. A nil u returns the raw value.
func (r *Real) ValueIn(u unit.Unit) (float64, error) {
	return unit.ConvertValue(u, r.value, r.unit)
}

// CloneButValue returns a copy with a different value.
func (r *Real) CloneButValue(value float64) *Real {
	return newReal(r.typ, value, r.unit, r.err)
}

// CloneButUnit returns a copy that reinterprets the value in u.
func (r *Real) CloneButUnit(u unit.Unit) (*Real, error) {
	return New(r.typ, r.value, WithUnit(u), WithError(r.err))
}

// AdjustSamplingError folds a sampling error into the estimate. Nothing
// changes when either side is missing or carries no estimate.
func (r *Real) AdjustSamplingError(sampling *Real, mode arith.ErrorMode) *Real {
	if r.IsMissing() || r.err == nil || sampling == nil || sampling.IsMissing() {
		return r
	}
	a := sampling.value
	b := r.err.Error()
	var e float64
	if mode == arith.Independent {
		e = math.Sqrt(a*a + b*b)
	} else {
		e = math.Abs(a) + math.Abs(b)
	}
	return newReal(r.typ, r.value, r.unit, errest.New(r.value, e, r.unit))
}

func (r *Real) String() string {
	if r.IsMissing() {
		return "missing"
	}
	return strconv.FormatFloat(r.value, 'g', -1, 64)
}

// ValueString formats the value with its unit, falling back to the type's
// default unit.
func (r *Real) ValueString() string {
	if r.IsMissing() {
		return "missing"
	}
	s := strconv.FormatFloat(r.value, 'g', -1, 32)
	u := r.unit
	if u == nil {
		u = r.typ.DefaultUnit()
	}
	if u == nil || unit.IsPromiscuous(u) {
		return s
	}
	return s + " " + u.String()
}

// Compare orders reals by value in the type's default unit. Missing values
// sort first. Ties are broken by the estimates, absence before presence.
// Reals that cannot be expressed in the default unit sort last.
func (r *Real) Compare(other *Real) int {
	du := r.typ.DefaultUnit()
	a, errA := r.ValueIn(du)
	b, errB := other.ValueIn(du)
	if errA != nil || errB != nil {
		return 1
	}
	if c := cmp.Compare(a, b); c != 0 {
		return c
	}
	return errest.Compare(r.err, other.err)
}

// Equal reports whether other has the same type and compares equal.
func (r *Real) Equal(other *Real) bool {
	if other == nil {
		return false
	}
	return r.typ.Equal(other.typ) && r.Compare(other) == 0
}

func unitName(u unit.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.String()
}

