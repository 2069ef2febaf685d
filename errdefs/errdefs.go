// Package errdefs defines the error taxonomy shared by every quanta package.
//
// Sentinel errors identify the error class and are matched with errors.Is.
// Typed errors carry the details and are matched with errors.As; each typed
// error unwraps to its sentinel.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnitMismatch is returned when a conversion between units with
	// incompatible dimensions is requested.
	ErrUnitMismatch = errors.New("unit mismatch")

	// ErrIllegalExponent is returned when a root or power would produce
	// non-integral dimension exponents.
	ErrIllegalExponent = errors.New("illegal exponent")

	// ErrDimension is returned for malformed coordinate systems and
	// array-length mismatches.
	ErrDimension = errors.New("dimension mismatch")

	// ErrIndexOutOfRange is returned by single-index accessors. Batch lookups
	// never return it; they report the -1 sentinel instead.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidGrid is returned when samples do not form a valid grid.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrUnknownUnit is returned when a unit name or specification cannot be resolved.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownQuantity is returned when a named quantity is not registered.
	ErrUnknownQuantity = errors.New("unknown quantity")

	// ErrIllegalOperation is returned for operations outside the arithmetic tables.
	ErrIllegalOperation = errors.New("illegal operation")

	// ErrReferenceHasCoordinateSystem is returned when a coordinate system is
	// declared over a reference tuple type that has its own coordinate system.
	// It is a malformed system, so it also matches ErrDimension.
	ErrReferenceHasCoordinateSystem = fmt.Errorf("%w: reference may not have a coordinate system", ErrDimension)

	// ErrInconsistentCoordinateSystem is returned when the coordinate systems
	// passed to a transform disagree with the tuple types they describe.
	ErrInconsistentCoordinateSystem = errors.New("inconsistent coordinate system")

	// ErrSingularMatrix is returned when a linear transform cannot be inverted.
	ErrSingularMatrix = errors.New("singular matrix")
)

// UnitMismatchError indicates an attempted conversion between incompatible units.
type UnitMismatchError struct {
	From string
	To   string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit mismatch: cannot convert from %q to %q", e.From, e.To)
}

func (e *UnitMismatchError) Unwrap() error { return ErrUnitMismatch }

// IllegalExponentError indicates a root or power with a non-integral result.
type IllegalExponentError struct {
	Unit  string
	Root  int
	Power float64
}

func (e *IllegalExponentError) Error() string {
	if e.Root == 0 && e.Power != 0 {
		return fmt.Sprintf("illegal exponent: %q raised to %g has non-integral dimension", e.Unit, e.Power)
	}
	if e.Root == 0 {
		return fmt.Sprintf("illegal exponent: zero root of %q", e.Unit)
	}
	return fmt.Sprintf("illegal exponent: root %d of %q has non-integral dimension", e.Root, e.Unit)
}

func (e *IllegalExponentError) Unwrap() error { return ErrIllegalExponent }

// DimensionError indicates an array or tuple of the wrong dimension.
//
// Context names the operation that detected the mismatch.
type DimensionError struct {
	Context  string
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: dimension mismatch: expected %d, got %d", e.Context, e.Expected, e.Actual)
}

func (e *DimensionError) Unwrap() error { return ErrDimension }

// NewDimensionError is a small constructor used by the batch APIs.
func NewDimensionError(context string, expected, actual int) error {
	return &DimensionError{Context: context, Expected: expected, Actual: actual}
}
