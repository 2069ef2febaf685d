// Package errest implements error estimates and their propagation through
// arithmetic.
//
// An Estimate summarizes the uncertainty of a value or an array of values:
// an error magnitude, the mean of the non-missing values, how many values
// contributed, and the unit of both. Propagation rules are first-order:
// each operation scales the operand errors by a local derivative, clamped
// to [DerivativeLow, DerivativeHigh], and combines them per arith.ErrorMode.
package errest

import (
	"fmt"
	"math"

	"github.com/hupe1980/quanta/unit"
	"gonum.org/v1/gonum/floats"
)

const (
	// DerivativeLow bounds derivative estimates from below.
	DerivativeLow = 0.01
	// DerivativeHigh bounds derivative estimates from above.
	DerivativeHigh = 1 / DerivativeLow
)

// Estimate is an immutable error estimate. A missing estimate has a NaN
// error; it is returned when every contributing value was missing.
type Estimate struct {
	err   float64
	mean  float64
	count int64
	unit  unit.Unit
}

// NewStats builds an estimate from summary statistics. A NaN error or
// mean, or a non-positive count, yields a missing estimate.
func NewStats(err, mean float64, count int64, u unit.Unit) *Estimate {
	if math.IsNaN(err) || math.IsNaN(mean) || count <= 0 {
		return missing(u)
	}
	return &Estimate{err: err, mean: mean, count: count, unit: u}
}

// New builds the estimate of a single value.
func New(value, err float64, u unit.Unit) *Estimate {
	if math.IsNaN(value) {
		return missing(u)
	}
	return &Estimate{err: err, mean: value, count: 1, unit: u}
}

// FromSamples builds an estimate whose mean is taken over the non-missing
// values.
func FromSamples(values []float64, err float64, u unit.Unit) *Estimate {
	mean, n := meanOf(values)
	if n == 0 {
		return missing(u)
	}
	return &Estimate{err: err, mean: mean, count: n, unit: u}
}

// FromSamples32 is FromSamples for float32 values.
func FromSamples32(values []float32, err float64, u unit.Unit) *Estimate {
	var sum float64
	var n int64
	for _, v := range values {
		if !math.IsNaN(float64(v)) {
			sum += float64(v)
			n++
		}
	}
	if n == 0 {
		return missing(u)
	}
	return &Estimate{err: err, mean: sum / float64(n), count: n, unit: u}
}

func missing(u unit.Unit) *Estimate {
	return &Estimate{err: math.NaN(), mean: math.NaN(), unit: u}
}

func meanOf(values []float64) (float64, int64) {
	if len(values) > 0 && !floats.HasNaN(values) {
		return floats.Sum(values) / float64(len(values)), int64(len(values))
	}
	var sum float64
	var n int64
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN(), 0
	}
	return sum / float64(n), n
}

// Error returns the error magnitude.
func (e *Estimate) Error() float64 { return e.err }

// Mean returns the mean of the contributing values.
func (e *Estimate) Mean() float64 { return e.mean }

// Count returns the number of non-missing contributing values.
func (e *Estimate) Count() int64 { return e.count }

// Unit returns the unit of the error and the mean.
func (e *Estimate) Unit() unit.Unit { return e.unit }

// IsMissing reports whether the error is unknown.
func (e *Estimate) IsMissing() bool { return math.IsNaN(e.err) }

func (e *Estimate) String() string {
	format := func(v float64) string {
		if math.IsNaN(v) {
			return "missing"
		}
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("count=%d error=%s mean=%s", e.count, format(e.err), format(e.mean))
}

// Accumulate merges a sample estimate into a running field estimate, as
// when a sample is stored into an array of values. The result has the
// field's unit when the field estimate exists, otherwise the sample's;
// its error and mean are count-weighted averages. inc is the change in
// the number of non-missing values.
func Accumulate(field, sample *Estimate, value float64, inc int) (*Estimate, error) {
	ef, mf := math.NaN(), math.NaN()
	var nf int64
	var uf unit.Unit
	if field != nil {
		ef, mf, nf, uf = field.err, field.mean, field.count, field.unit
	}

	es, ms := math.NaN(), math.NaN()
	var us unit.Unit
	var ns int64
	if !math.IsNaN(value) {
		ns = 1
	}
	if sample != nil {
		us = sample.unit
		es, ms = sample.err, value
		if uf != nil && !unit.Equal(uf, us) {
			var err error
			if es, err = unit.ConvertValue(uf, sample.err, us); err != nil {
				return nil, err
			}
			if ms, err = unit.ConvertValue(uf, value, us); err != nil {
				return nil, err
			}
		}
	}

	u := us
	if field != nil {
		u = uf
	}

	n := nf + int64(inc)
	if n <= 0 {
		return missing(u), nil
	}

	var errSum, meanSum float64
	if !math.IsNaN(ef) {
		errSum += float64(nf) * ef
	}
	if !math.IsNaN(mf) {
		meanSum += float64(nf) * mf
	}
	if !math.IsNaN(es) {
		errSum += float64(ns) * es
	}
	if !math.IsNaN(ms) {
		meanSum += float64(ns) * ms
	}
	return &Estimate{err: errSum / float64(n), mean: meanSum / float64(n), count: n, unit: u}, nil
}

// Compare orders estimates by error, then mean, then count. nil sorts
// before any estimate; missing values sort after present ones.
func Compare(a, b *Estimate) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := compareFloat(a.err, b.err); c != 0 {
		return c
	}
	if c := compareFloat(a.mean, b.mean); c != 0 {
		return c
	}
	switch {
	case a.count < b.count:
		return -1
	case a.count > b.count:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Equal reports whether two estimates have the same statistics and unit.
func Equal(a, b *Estimate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Compare(a, b) == 0 && unit.Equal(a.unit, b.unit)
}

func clamp(v float64) float64 {
	return math.Max(DerivativeLow, math.Min(DerivativeHigh, v))
}
