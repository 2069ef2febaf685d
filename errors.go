package quanta

import "github.com/hupe1980/quanta/errdefs"

// Sentinel errors, matched with errors.Is. The typed errors in package
// errdefs unwrap to these.
var (
	ErrUnitMismatch                 = errdefs.ErrUnitMismatch
	ErrIllegalExponent              = errdefs.ErrIllegalExponent
	ErrDimension                    = errdefs.ErrDimension
	ErrIndexOutOfRange              = errdefs.ErrIndexOutOfRange
	ErrInvalidGrid                  = errdefs.ErrInvalidGrid
	ErrUnknownUnit                  = errdefs.ErrUnknownUnit
	ErrUnknownQuantity              = errdefs.ErrUnknownQuantity
	ErrIllegalOperation             = errdefs.ErrIllegalOperation
	ErrReferenceHasCoordinateSystem = errdefs.ErrReferenceHasCoordinateSystem
	ErrInconsistentCoordinateSystem = errdefs.ErrInconsistentCoordinateSystem
	ErrSingularMatrix               = errdefs.ErrSingularMatrix
)

type (
	// UnitMismatchError reports an incompatible unit conversion.
	UnitMismatchError = errdefs.UnitMismatchError
	// IllegalExponentError reports a root with non-integral exponents.
	IllegalExponentError = errdefs.IllegalExponentError
	// DimensionError reports an array-length or component-count mismatch.
	DimensionError = errdefs.DimensionError
)
