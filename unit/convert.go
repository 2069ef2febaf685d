package unit

import (
	"math"

	"github.com/hupe1980/quanta/errdefs"
)

// converter maps a value in one unit to a value in another.
type converter func(float64) float64

func identity(v float64) float64 { return v }

// converterFor returns the conversion from -> to. Nil or promiscuous units
// on either side yield the identity.
func converterFor(to, from Unit) (converter, error) {
	if to == nil || from == nil {
		return identity, nil
	}
	ft, okt := to.canonical()
	ff, okf := from.canonical()
	if !okt || !okf {
		return identity, nil
	}

	switch relate(ff.factors, ft.factors) {
	case same:
		if ff.scale == ft.scale && ff.offset == ft.offset {
			return identity, nil
		}
		return func(v float64) float64 {
			return (v+ff.offset)*ff.scale/ft.scale - ft.offset
		}, nil
	case reciprocal:
		return func(v float64) float64 {
			d := (v + ff.offset) * ff.scale
			if d == 0 || math.IsNaN(d) {
				return math.NaN()
			}
			return 1/d/ft.scale - ft.offset
		}, nil
	default:
		return nil, &errdefs.UnitMismatchError{From: from.String(), To: to.String()}
	}
}

// Convert converts values expressed in from into to. Reciprocal units
// convert elementwise by 1/x, with zero mapping to NaN. When copy is false
// the input slice may be modified and returned.
func Convert(to Unit, values []float64, from Unit, copy bool) ([]float64, error) {
	conv, err := converterFor(to, from)
	if err != nil {
		return nil, err
	}
	out := values
	if copy {
		out = make([]float64, len(values))
	}
	if isIdentity(to, from) {
		if copy {
			return append(out[:0], values...), nil
		}
		return values, nil
	}
	for i, v := range values {
		out[i] = conv(v)
	}
	return out, nil
}

// Convert32 is the float32 form of Convert. Arithmetic is done in float64.
func Convert32(to Unit, values []float32, from Unit, copy bool) ([]float32, error) {
	conv, err := converterFor(to, from)
	if err != nil {
		return nil, err
	}
	out := values
	if copy {
		out = make([]float32, len(values))
	}
	if isIdentity(to, from) {
		if copy {
			return append(out[:0], values...), nil
		}
		return values, nil
	}
	for i, v := range values {
		out[i] = float32(conv(float64(v)))
	}
	return out, nil
}

// ConvertValue converts a single value from one unit to another.
func ConvertValue(to Unit, value float64, from Unit) (float64, error) {
	conv, err := converterFor(to, from)
	if err != nil {
		return 0, err
	}
	return conv(value), nil
}

// ConvertTuple converts each axis of a dimension-major array. A nil unit on
// either side leaves that axis unchanged; nil slices mean all nil.
func ConvertTuple(values [][]float64, in, out []Unit, copy bool) ([][]float64, error) {
	n := len(values)
	if in != nil && len(in) != n {
		return nil, errdefs.NewDimensionError("convert tuple (input units)", n, len(in))
	}
	if out != nil && len(out) != n {
		return nil, errdefs.NewDimensionError("convert tuple (output units)", n, len(out))
	}

	result := make([][]float64, n)
	for i := range values {
		var from, to Unit
		if in != nil {
			from = in[i]
		}
		if out != nil {
			to = out[i]
		}
		axis, err := Convert(to, values[i], from, copy)
		if err != nil {
			return nil, err
		}
		result[i] = axis
	}
	return result, nil
}

// isIdentity reports whether converting from -> to leaves values unchanged.
func isIdentity(to, from Unit) bool {
	if to == nil || from == nil || IsPromiscuous(to) || IsPromiscuous(from) {
		return true
	}
	return Equal(to, from)
}
