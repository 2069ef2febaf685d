// Package conv provides conversions between the array shapes and numeric
// widths used across quanta.
//
// Sample arrays are dimension-major: values[axis][sample]. The helpers here
// widen float32 arrays to float64 and narrow them back, validate array
// shapes, and perform bounds-checked integer casts.
//
// Use cases:
//   - float32 overloads of coordinate transforms and unit conversion
//   - validating caller-supplied arrays before a batch operation
//   - converting sample indices to bitmap positions
package conv
