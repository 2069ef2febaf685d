package errest

import (
	"math"

	"github.com/hupe1980/quanta/arith"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/unit"
)

// Binary returns the estimate for value = a op b. It returns nil when
// either operand has no estimate or mode is NoErrors. Except for the
// multiplicative and power families, b is first expressed in a's unit;
// if that fails the estimate is missing.
func Binary(value float64, u unit.Unit, op arith.BinaryOp, a, b *Estimate, mode arith.ErrorMode) *Estimate {
	if a == nil || b == nil || mode == arith.NoErrors {
		return nil
	}
	if math.IsNaN(value) || a.IsMissing() || b.IsMissing() {
		return missing(u)
	}

	bMean, bErr := b.mean, b.err
	family := op.Family()
	common := family != arith.Multiplicative && family != arith.Power
	if common && a.unit != nil && b.unit != nil && !unit.Equal(a.unit, b.unit) {
		var err error
		bMean, bErr, err = rescale(a.unit, b.unit, b.mean, b.err)
		if err != nil {
			telemetry.Logger().Warn("dropping error estimate", "op", op.String(), "error", err)
			return missing(u)
		}
	}

	am, bm, ok := binaryTerms(op, value, a.mean, a.err, bMean, bErr)
	if !ok {
		return missing(u)
	}
	return &Estimate{err: mode.Combine(am, bm), mean: value, count: 1, unit: u}
}

// binaryTerms returns the error contributions of each operand.
func binaryTerms(op arith.BinaryOp, mean, aMean, aErr, bMean, bErr float64) (am, bm float64, ok bool) {
	switch op {
	case arith.Add, arith.Subtract, arith.InvSubtract, arith.Max, arith.Min:
		return aErr, bErr, true

	case arith.Multiply:
		return aErr * bMean, bErr * aMean, true

	case arith.Divide:
		f := math.Max(DerivativeLow, math.Abs(bMean))
		return aErr / f, bErr * mean / f, true

	case arith.InvDivide:
		f := math.Max(DerivativeLow, math.Abs(aMean))
		return aErr * mean / f, bErr / f, true

	case arith.Pow:
		am = aErr * math.Abs(mean) * (bMean / math.Max(DerivativeLow, math.Abs(aMean)))
		bm = bErr * math.Abs(mean) * clamp(logFactor(aMean))
		return am, bm, true

	case arith.InvPow:
		am = aErr * math.Abs(mean) * clamp(logFactor(bMean))
		bm = bErr * math.Abs(mean) * (aMean / math.Max(DerivativeLow, math.Abs(bMean)))
		return am, bm, true

	case arith.Atan2, arith.Atan2Degrees:
		f := math.Min(DerivativeHigh, 1+mean*mean) / math.Max(DerivativeLow, math.Abs(bMean))
		return aErr * f, bErr * mean * f, true

	case arith.InvAtan2, arith.InvAtan2Degrees:
		f := math.Min(DerivativeHigh, 1+mean*mean) / math.Max(DerivativeLow, math.Abs(aMean))
		return aErr * mean * f, bErr * f, true

	case arith.Remainder:
		return aErr, bErr * aMean / math.Max(DerivativeLow, math.Abs(bMean)), true

	case arith.InvRemainder:
		return aErr * bMean / math.Max(DerivativeLow, math.Abs(aMean)), bErr, true

	default:
		return 0, 0, false
	}
}

func logFactor(v float64) float64 {
	f := math.Log(math.Abs(v))
	if math.IsNaN(f) {
		return 1
	}
	return f
}

// Unary returns the estimate for value = op(a). It returns nil when a is
// nil or mode is NoErrors. Independent and Dependent behave the same.
func Unary(value float64, u unit.Unit, op arith.UnaryOp, a *Estimate, mode arith.ErrorMode) *Estimate {
	if a == nil || mode == arith.NoErrors {
		return nil
	}
	if math.IsNaN(value) || a.IsMissing() {
		return missing(u)
	}
	e, ok := unaryError(op, value, a.mean, a.err)
	if !ok {
		return missing(u)
	}
	return &Estimate{err: e, mean: value, count: 1, unit: u}
}

func unaryError(op arith.UnaryOp, mean, aMean, aErr float64) (float64, bool) {
	trigFactor := func(x float64) float64 {
		f := math.Sqrt(1 - x*x)
		if math.IsNaN(f) {
			f = 1
		}
		return clamp(f)
	}

	switch op {
	case arith.Abs, arith.Ceil, arith.Floor, arith.Rint, arith.Round, arith.Negate, arith.Nop:
		return aErr, true
	case arith.Acos, arith.Asin:
		return aErr / trigFactor(aMean), true
	case arith.AcosDegrees, arith.AsinDegrees:
		return aErr * arith.RadiansToDegrees / trigFactor(aMean), true
	case arith.Atan:
		return aErr / math.Min(DerivativeHigh, 1+aMean*aMean), true
	case arith.AtanDegrees:
		return aErr * arith.RadiansToDegrees / math.Min(DerivativeHigh, 1+aMean*aMean), true
	case arith.Cos, arith.Sin:
		return aErr * trigFactor(mean), true
	case arith.CosDegrees, arith.SinDegrees:
		return aErr * arith.DegreesToRadians * trigFactor(mean), true
	case arith.Exp:
		return aErr * math.Abs(mean), true
	case arith.Log:
		return aErr / clamp(math.Abs(aMean)), true
	case arith.Sqrt:
		return aErr / clamp(2*math.Abs(mean)), true
	case arith.Tan:
		return aErr * math.Min(DerivativeHigh, 1+mean*mean), true
	case arith.TanDegrees:
		return aErr * arith.DegreesToRadians * math.Min(DerivativeHigh, 1+mean*mean), true
	default:
		return 0, false
	}
}

// rescale expresses a mean and error given in from in the unit to, using a
// centred finite difference for the error.
func rescale(to, from unit.Unit, mean, err float64) (float64, float64, error) {
	m, cerr := unit.ConvertValue(to, mean, from)
	if cerr != nil {
		return 0, 0, cerr
	}
	hi, _ := unit.ConvertValue(to, mean+0.5*err, from)
	lo, _ := unit.ConvertValue(to, mean-0.5*err, from)
	return m, math.Abs(hi - lo), nil
}

// TransformUnits converts values from unit in to unit out and rescales the
// estimate by finite differences around its mean. A nil out leaves values
// and estimate unchanged.
func TransformUnits(out, in unit.Unit, est *Estimate, values []float64) ([]float64, *Estimate, error) {
	if out == nil {
		return values, est, nil
	}
	converted, err := unit.Convert(out, values, in, true)
	if err != nil {
		return nil, nil, err
	}
	if est == nil {
		return converted, nil, nil
	}
	_, e, err := rescale(out, in, est.mean, est.err)
	if err != nil {
		return nil, nil, err
	}
	return converted, FromSamples(converted, e, out), nil
}

// InitErrorValues builds the probe matrix used to push estimates through a
// vector transform. Row j holds 2n values: column pair (2i, 2i+1) is
// (mean-e/2, mean+e/2) when i == j and (mean, mean) otherwise. Passing the
// rows through a transform and differencing each column pair yields the
// per-axis response to each input error.
func InitErrorValues(estimates []*Estimate, means []float64) [][]float64 {
	n := len(estimates)
	if means == nil {
		means = make([]float64, n)
		for j, e := range estimates {
			means[j] = e.mean
		}
	}
	out := make([][]float64, n)
	for j := range out {
		row := make([]float64, 2*n)
		mean := means[j]
		half := 0.5 * estimates[j].err
		for i := 0; i < n; i++ {
			if i == j {
				row[2*i] = mean - half
				row[2*i+1] = mean + half
			} else {
				row[2*i] = mean
				row[2*i+1] = mean
			}
		}
		out[j] = row
	}
	return out
}
