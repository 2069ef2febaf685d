package arith

import "math"

const (
	// DegreesToRadians converts degrees to radians.
	DegreesToRadians = math.Pi / 180
	// RadiansToDegrees converts radians to degrees.
	RadiansToDegrees = 180 / math.Pi
)

// Apply evaluates op on two values. Unknown operations return NaN.
func (op BinaryOp) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case InvSubtract:
		return b - a
	case Multiply:
		return a * b
	case Divide:
		return a / b
	case InvDivide:
		return b / a
	case Pow:
		return math.Pow(a, b)
	case InvPow:
		return math.Pow(b, a)
	case Max:
		return math.Max(a, b)
	case Min:
		return math.Min(a, b)
	case Atan2:
		return math.Atan2(a, b)
	case Atan2Degrees:
		return RadiansToDegrees * math.Atan2(a, b)
	case InvAtan2:
		return math.Atan2(b, a)
	case InvAtan2Degrees:
		return RadiansToDegrees * math.Atan2(b, a)
	case Remainder:
		return math.Mod(a, b)
	case InvRemainder:
		return math.Mod(b, a)
	default:
		return math.NaN()
	}
}

// Apply evaluates op on a value. Trig variants named Degrees take their
// argument in degrees; inverse-trig Degrees variants return degrees.
// Unknown operations return NaN.
func (op UnaryOp) Apply(v float64) float64 {
	switch op {
	case Abs:
		return math.Abs(v)
	case Acos:
		return math.Acos(v)
	case AcosDegrees:
		return RadiansToDegrees * math.Acos(v)
	case Asin:
		return math.Asin(v)
	case AsinDegrees:
		return RadiansToDegrees * math.Asin(v)
	case Atan:
		return math.Atan(v)
	case AtanDegrees:
		return RadiansToDegrees * math.Atan(v)
	case Ceil:
		return math.Ceil(v)
	case Cos:
		return math.Cos(v)
	case CosDegrees:
		return math.Cos(DegreesToRadians * v)
	case Exp:
		return math.Exp(v)
	case Floor:
		return math.Floor(v)
	case Log:
		return math.Log(v)
	case Rint:
		return math.RoundToEven(v)
	case Round:
		return math.Floor(v + 0.5)
	case Sin:
		return math.Sin(v)
	case SinDegrees:
		return math.Sin(DegreesToRadians * v)
	case Sqrt:
		return math.Sqrt(v)
	case Tan:
		return math.Tan(v)
	case TanDegrees:
		return math.Tan(DegreesToRadians * v)
	case Negate:
		return -v
	case Nop:
		return v
	default:
		return math.NaN()
	}
}
