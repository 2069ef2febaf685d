package scalar

import (
	"fmt"
	"math"

	"github.com/hupe1980/quanta/arith"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// OpOption configures Binary and Unary.
type OpOption func(*opOptions)

type opOptions struct {
	mode       arith.ErrorMode
	resultType *realtype.RealType
}

// WithErrorMode selects how estimates combine. The default is
// arith.NoErrors, which drops them.
func WithErrorMode(mode arith.ErrorMode) OpOption {
	return func(o *opOptions) { o.mode = mode }
}

// WithResultType sets the type of the result. Its default unit must accept
// the result unit.
func WithResultType(t *realtype.RealType) OpOption {
	return func(o *opOptions) { o.resultType = t }
}

func applyOpOptions(opts []OpOption) opOptions {
	o := opOptions{mode: arith.NoErrors}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// working returns the absolute unit arithmetic is carried out in and v
// expressed in it. nil and promiscuous units pass through.
func working(u unit.Unit, v float64) (unit.Unit, float64) {
	if u == nil || unit.IsPromiscuous(u) {
		return u, v
	}
	abs := unit.Absolute(u)
	w, err := unit.ConvertValue(abs, v, u)
	if err != nil {
		return u, v
	}
	return abs, w
}

// estimateIn re-expresses e in u. The estimate is returned unchanged when
// either unit is unknown or the conversion fails.
func estimateIn(u unit.Unit, e *errest.Estimate) *errest.Estimate {
	if e == nil || u == nil || e.Unit() == nil || unit.IsPromiscuous(u) || unit.Equal(u, e.Unit()) {
		return e
	}
	_, out, err := errest.TransformUnits(u, e.Unit(), e, []float64{e.Mean()})
	if err != nil {
		return e
	}
	return out
}

// Binary returns r op other.
//
// Unit rules by family:
//   - additive, modular and angular: a nil unit on either side gives a nil
//     result unit; a promiscuous unit adopts the other side's; otherwise
//     other is converted into r's absolute unit, and an unconvertible pair
//     gives a nil unit while the raw values are still combined. Angular
//     results are in radians, or degrees for the Degrees variants;
//   - multiplicative: product or quotient of the absolute units;
//   - power: the base's unit survives only if it is exactly dimensionless
//     or promiscuous.
//
// A missing operand gives a missing result. Estimates combine only when
// both operands have one and the mode is not arith.NoErrors.
func (r *Real) Binary(other *Real, op arith.BinaryOp, opts ...OpOption) (*Real, error) {
	if err := op.Check(); err != nil {
		return nil, err
	}
	if other == nil {
		return nil, fmt.Errorf("%w: %s with nil operand", errdefs.ErrIllegalOperation, op)
	}
	o := applyOpOptions(opts)

	ua, va := working(r.unit, r.value)
	ub, vb := working(other.unit, other.value)

	var u unit.Unit
	switch op.Family() {
	case arith.Additive, arith.Modular, arith.Angular:
		switch {
		case ua == nil || ub == nil:
			u = nil
		case unit.IsPromiscuous(ua):
			u = ub
		case unit.IsPromiscuous(ub):
			u = ua
		default:
			if conv, err := unit.ConvertValue(ua, vb, ub); err == nil {
				vb = conv
				u = ua
			}
		}
		if op.Family() == arith.Angular {
			u = unit.Radian
			if op.Degrees() {
				u = unit.Degree
			}
		}
	case arith.Multiplicative:
		switch op {
		case arith.Multiply:
			u = unit.Multiply(ua, ub)
		case arith.Divide:
			u = unit.Divide(ua, ub)
		default:
			u = unit.Divide(ub, ua)
		}
	case arith.Power:
		base := ua
		if op == arith.InvPow {
			base = ub
		}
		if unit.IsPromiscuous(base) || unit.Equal(base, unit.Dimensionless) {
			u = base
		}
	}

	value := op.Apply(va, vb)
	if math.IsNaN(va) || math.IsNaN(vb) {
		value = math.NaN()
	}

	t, err := resultType(o.resultType, r.typ, u)
	if err != nil {
		return nil, err
	}

	var e *errest.Estimate
	if !math.IsNaN(value) {
		e = errest.Binary(value, u, op, estimateIn(ua, r.err), estimateIn(ub, other.err), o.mode)
	}
	return newReal(t, value, u, e), nil
}

// Unary returns op(r).
//
// Sign and rounding operations keep the unit. Inverse trig results are in
// radians, or degrees for the Degrees variants. Trig operations read the
// argument as radians unless the unit is exactly degree; the Degrees
// variants read it as degrees unless the unit is exactly radian. Trig, exp
// and log keep a dimensionless unit and drop any other. Sqrt takes the
// square root of the absolute unit when it has one.
func (r *Real) Unary(op arith.UnaryOp, opts ...OpOption) (*Real, error) {
	if err := op.Check(); err != nil {
		return nil, err
	}
	o := applyOpOptions(opts)

	var (
		u     unit.Unit
		value float64
		in    = r.err
	)
	switch op.Kind() {
	case arith.Preserving:
		u = r.unit
		value = op.Apply(r.value)

	case arith.InverseTrig:
		u = unit.Radian
		if op.Degrees() {
			u = unit.Degree
		}
		value = op.Apply(r.value)

	case arith.Trig:
		v := r.value
		switch {
		case op.Degrees() && unit.Equal(r.unit, unit.Radian):
			v *= arith.RadiansToDegrees
			in = estimateIn(unit.Degree, r.err)
		case !op.Degrees() && unit.Equal(r.unit, unit.Degree):
			v *= arith.DegreesToRadians
			in = estimateIn(unit.Radian, r.err)
		}
		if unit.IsDimensionless(r.unit) {
			u = unit.Dimensionless
		}
		value = op.Apply(v)

	case arith.Transcendental:
		v := r.value
		if unit.IsDimensionless(r.unit) {
			if conv, err := unit.ConvertValue(unit.Dimensionless, v, r.unit); err == nil {
				v = conv
				in = estimateIn(unit.Dimensionless, r.err)
			}
			u = unit.Dimensionless
		}
		value = op.Apply(v)

	case arith.Root:
		ua, v := working(r.unit, r.value)
		if root, err := unit.Sqrt(ua); err == nil {
			u = root
		}
		in = estimateIn(ua, r.err)
		value = op.Apply(v)
	}

	t, err := resultType(o.resultType, r.typ, u)
	if err != nil {
		return nil, err
	}

	var e *errest.Estimate
	if !math.IsNaN(value) {
		e = errest.Unary(value, u, op, in, o.mode)
	}
	return newReal(t, value, u, e), nil
}

// resultType picks the type of an arithmetic result. Without an explicit
// type the left operand's type is kept when it accepts u, otherwise the
// result is Generic.
func resultType(explicit, left *realtype.RealType, u unit.Unit) (*realtype.RealType, error) {
	if explicit != nil {
		if !unit.CanConvert(u, explicit.DefaultUnit()) {
			return nil, &errdefs.UnitMismatchError{From: unitName(u), To: unitName(explicit.DefaultUnit())}
		}
		return explicit, nil
	}
	if unit.CanConvert(u, left.DefaultUnit()) {
		return left, nil
	}
	return realtype.Generic, nil
}

// Add returns r + other.
func (r *Real) Add(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Add, opts...)
}

// Subtract returns r - other.
func (r *Real) Subtract(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Subtract, opts...)
}

// Multiply returns r * other.
func (r *Real) Multiply(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Multiply, opts...)
}

// Divide returns r / other.
func (r *Real) Divide(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Divide, opts...)
}

// Pow returns r raised to other.
func (r *Real) Pow(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Pow, opts...)
}

// Max returns the larger of r and other.
func (r *Real) Max(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Max, opts...)
}

// Min returns the smaller of r and other.
func (r *Real) Min(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Min, opts...)
}

// Atan2 returns atan2(r, other) in radians.
func (r *Real) Atan2(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Atan2, opts...)
}

// Atan2Degrees returns atan2(r, other) in degrees.
func (r *Real) Atan2Degrees(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Atan2Degrees, opts...)
}

// Remainder returns r mod other.
func (r *Real) Remainder(other *Real, opts ...OpOption) (*Real, error) {
	return r.Binary(other, arith.Remainder, opts...)
}

func (r *Real) Abs(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Abs, opts...) }
func (r *Real) Negate(opts ...OpOption) (*Real, error) { return r.Unary(arith.Negate, opts...) }
func (r *Real) Sqrt(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Sqrt, opts...) }
func (r *Real) Exp(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Exp, opts...) }
func (r *Real) Log(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Log, opts...) }
func (r *Real) Ceil(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Ceil, opts...) }
func (r *Real) Floor(opts ...OpOption) (*Real, error)  { return r.Unary(arith.Floor, opts...) }
func (r *Real) Round(opts ...OpOption) (*Real, error)  { return r.Unary(arith.Round, opts...) }
func (r *Real) Rint(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Rint, opts...) }
func (r *Real) Sin(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Sin, opts...) }
func (r *Real) Cos(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Cos, opts...) }
func (r *Real) Tan(opts ...OpOption) (*Real, error)    { return r.Unary(arith.Tan, opts...) }
func (r *Real) Asin(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Asin, opts...) }
func (r *Real) Acos(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Acos, opts...) }
func (r *Real) Atan(opts ...OpOption) (*Real, error)   { return r.Unary(arith.Atan, opts...) }

func (r *Real) SinDegrees(opts ...OpOption) (*Real, error)  { return r.Unary(arith.SinDegrees, opts...) }
func (r *Real) CosDegrees(opts ...OpOption) (*Real, error)  { return r.Unary(arith.CosDegrees, opts...) }
func (r *Real) TanDegrees(opts ...OpOption) (*Real, error)  { return r.Unary(arith.TanDegrees, opts...) }
func (r *Real) AsinDegrees(opts ...OpOption) (*Real, error) { return r.Unary(arith.AsinDegrees, opts...) }
func (r *Real) AcosDegrees(opts ...OpOption) (*Real, error) { return r.Unary(arith.AcosDegrees, opts...) }
func (r *Real) AtanDegrees(opts ...OpOption) (*Real, error) { return r.Unary(arith.AtanDegrees, opts...) }
