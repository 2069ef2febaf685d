// Package arith enumerates the arithmetic operations understood by scalar
// values and error estimates.
//
// Every operation belongs to a Family that selects its unit rule; the error
// rules live in package errest. The enumerations are closed: callers switch
// over them exhaustively and Valid rejects anything else.
package arith

import (
	"fmt"
	"math"

	"github.com/hupe1980/quanta/errdefs"
)

// BinaryOp is a two-operand operation. The Inv variants swap operands:
// a.InvSubtract(b) is b - a.
type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	InvSubtract
	Multiply
	Divide
	InvDivide
	Pow
	InvPow
	Max
	Min
	Atan2
	Atan2Degrees
	InvAtan2
	InvAtan2Degrees
	Remainder
	InvRemainder

	numBinaryOps
)

var binaryNames = [...]string{
	Add:             "Add",
	Subtract:        "Subtract",
	InvSubtract:     "InvSubtract",
	Multiply:        "Multiply",
	Divide:          "Divide",
	InvDivide:       "InvDivide",
	Pow:             "Pow",
	InvPow:          "InvPow",
	Max:             "Max",
	Min:             "Min",
	Atan2:           "Atan2",
	Atan2Degrees:    "Atan2Degrees",
	InvAtan2:        "InvAtan2",
	InvAtan2Degrees: "InvAtan2Degrees",
	Remainder:       "Remainder",
	InvRemainder:    "InvRemainder",
}

func (op BinaryOp) String() string {
	if op.Valid() {
		return binaryNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Valid reports whether op is a known operation.
func (op BinaryOp) Valid() bool {
	return op >= 0 && op < numBinaryOps
}

// Check returns ErrIllegalOperation for unknown operations.
func (op BinaryOp) Check() error {
	if !op.Valid() {
		return fmt.Errorf("%w: %s", errdefs.ErrIllegalOperation, op)
	}
	return nil
}

// Family groups operations that share a unit rule.
type Family int

const (
	// Additive operations convert both operands to a common unit.
	Additive Family = iota
	// Multiplicative operations combine units by product or quotient.
	Multiplicative
	// Power operations keep a unit only for dimensionless bases.
	Power
	// Angular operations produce an angle in radians or degrees.
	Angular
	// Modular operations keep the left operand's unit.
	Modular
)

func (f Family) String() string {
	switch f {
	case Additive:
		return "Additive"
	case Multiplicative:
		return "Multiplicative"
	case Power:
		return "Power"
	case Angular:
		return "Angular"
	case Modular:
		return "Modular"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Family returns the unit-rule family of op.
func (op BinaryOp) Family() Family {
	switch op {
	case Add, Subtract, InvSubtract, Max, Min:
		return Additive
	case Multiply, Divide, InvDivide:
		return Multiplicative
	case Pow, InvPow:
		return Power
	case Atan2, Atan2Degrees, InvAtan2, InvAtan2Degrees:
		return Angular
	case Remainder, InvRemainder:
		return Modular
	default:
		return Family(-1)
	}
}

// Invert returns the operation with swapped operands: a op b equals
// b op.Invert() a.
func (op BinaryOp) Invert() BinaryOp {
	switch op {
	case Subtract:
		return InvSubtract
	case InvSubtract:
		return Subtract
	case Divide:
		return InvDivide
	case InvDivide:
		return Divide
	case Pow:
		return InvPow
	case InvPow:
		return Pow
	case Atan2:
		return InvAtan2
	case InvAtan2:
		return Atan2
	case Atan2Degrees:
		return InvAtan2Degrees
	case InvAtan2Degrees:
		return Atan2Degrees
	case Remainder:
		return InvRemainder
	case InvRemainder:
		return Remainder
	default:
		return op
	}
}

// Degrees reports whether op produces degrees.
func (op BinaryOp) Degrees() bool {
	return op == Atan2Degrees || op == InvAtan2Degrees
}

// UnaryOp is a single-operand operation.
type UnaryOp int

const (
	Abs UnaryOp = iota
	Acos
	AcosDegrees
	Asin
	AsinDegrees
	Atan
	AtanDegrees
	Ceil
	Cos
	CosDegrees
	Exp
	Floor
	Log
	Rint
	Round
	Sin
	SinDegrees
	Sqrt
	Tan
	TanDegrees
	Negate
	Nop

	numUnaryOps
)

var unaryNames = [...]string{
	Abs:         "Abs",
	Acos:        "Acos",
	AcosDegrees: "AcosDegrees",
	Asin:        "Asin",
	AsinDegrees: "AsinDegrees",
	Atan:        "Atan",
	AtanDegrees: "AtanDegrees",
	Ceil:        "Ceil",
	Cos:         "Cos",
	CosDegrees:  "CosDegrees",
	Exp:         "Exp",
	Floor:       "Floor",
	Log:         "Log",
	Rint:        "Rint",
	Round:       "Round",
	Sin:         "Sin",
	SinDegrees:  "SinDegrees",
	Sqrt:        "Sqrt",
	Tan:         "Tan",
	TanDegrees:  "TanDegrees",
	Negate:      "Negate",
	Nop:         "Nop",
}

func (op UnaryOp) String() string {
	if op.Valid() {
		return unaryNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

// Valid reports whether op is a known operation.
func (op UnaryOp) Valid() bool {
	return op >= 0 && op < numUnaryOps
}

// Check returns ErrIllegalOperation for unknown operations.
func (op UnaryOp) Check() error {
	if !op.Valid() {
		return fmt.Errorf("%w: %s", errdefs.ErrIllegalOperation, op)
	}
	return nil
}

// UnaryKind groups unary operations that share a unit rule.
type UnaryKind int

const (
	// Preserving operations keep the operand's unit.
	Preserving UnaryKind = iota
	// InverseTrig operations return an angle.
	InverseTrig
	// Trig operations take an angle and return a pure number.
	Trig
	// Transcendental operations keep the unit only when it is dimensionless.
	Transcendental
	// Root is the square root, which takes the root of the unit.
	Root
)

// Kind returns the unit-rule kind of op.
func (op UnaryOp) Kind() UnaryKind {
	switch op {
	case Abs, Ceil, Floor, Rint, Round, Negate, Nop:
		return Preserving
	case Acos, AcosDegrees, Asin, AsinDegrees, Atan, AtanDegrees:
		return InverseTrig
	case Cos, CosDegrees, Sin, SinDegrees, Tan, TanDegrees:
		return Trig
	case Exp, Log:
		return Transcendental
	case Sqrt:
		return Root
	default:
		return UnaryKind(-1)
	}
}

// Degrees reports whether op works in degrees: trig variants take degree
// arguments and inverse-trig variants return degrees.
func (op UnaryOp) Degrees() bool {
	switch op {
	case AcosDegrees, AsinDegrees, AtanDegrees, CosDegrees, SinDegrees, TanDegrees:
		return true
	default:
		return false
	}
}

// ErrorMode selects how error estimates combine.
type ErrorMode int

const (
	// NoErrors drops error estimates.
	NoErrors ErrorMode = iota
	// Independent combines errors as a root sum of squares.
	Independent
	// Dependent combines errors as a sum of absolute values.
	Dependent
)

func (m ErrorMode) String() string {
	switch m {
	case NoErrors:
		return "NoErrors"
	case Independent:
		return "Independent"
	case Dependent:
		return "Dependent"
	default:
		return fmt.Sprintf("ErrorMode(%d)", int(m))
	}
}

// Combine merges two error contributions according to the mode.
func (m ErrorMode) Combine(a, b float64) float64 {
	switch m {
	case Dependent:
		return math.Abs(a) + math.Abs(b)
	default:
		return math.Sqrt(a*a + b*b)
	}
}
