package arith

import (
	"math"
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/stretchr/testify/assert"
)

func TestBinaryOpTable(t *testing.T) {
	for op := BinaryOp(0); op < numBinaryOps; op++ {
		t.Run(op.String(), func(t *testing.T) {
			assert.True(t, op.Valid())
			assert.NoError(t, op.Check())
			assert.NotEqual(t, Family(-1), op.Family())
			assert.Equal(t, op, op.Invert().Invert())

			a, b := 3.0, 7.0
			assert.Equal(t, op.Apply(a, b), op.Invert().Apply(b, a))
		})
	}

	bogus := BinaryOp(99)
	assert.False(t, bogus.Valid())
	assert.ErrorIs(t, bogus.Check(), errdefs.ErrIllegalOperation)
	assert.Equal(t, "BinaryOp(99)", bogus.String())
	assert.True(t, math.IsNaN(bogus.Apply(1, 2)))
}

func TestBinaryApply(t *testing.T) {
	tests := []struct {
		op   BinaryOp
		want float64
	}{
		{Add, 8},
		{Subtract, 2},
		{InvSubtract, -2},
		{Multiply, 15},
		{Divide, 5.0 / 3.0},
		{Pow, 125},
		{Max, 5},
		{Min, 3},
		{Atan2Degrees, math.Atan2(5, 3) * 180 / math.Pi},
		{Remainder, 2},
		{InvRemainder, 3},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.op.Apply(5, 3), 1e-12)
		})
	}
}

func TestUnaryOpTable(t *testing.T) {
	for op := UnaryOp(0); op < numUnaryOps; op++ {
		t.Run(op.String(), func(t *testing.T) {
			assert.True(t, op.Valid())
			assert.NotEqual(t, UnaryKind(-1), op.Kind())
			assert.False(t, math.IsNaN(op.Apply(0.5)))
		})
	}

	assert.ErrorIs(t, UnaryOp(-1).Check(), errdefs.ErrIllegalOperation)
}

func TestUnaryApply(t *testing.T) {
	assert.InDelta(t, 1.0, SinDegrees.Apply(90), 1e-12)
	assert.InDelta(t, 90.0, AsinDegrees.Apply(1), 1e-12)
	assert.InDelta(t, 3.0, Sqrt.Apply(9), 1e-12)
	assert.Equal(t, 2.0, Rint.Apply(2.5))
	assert.Equal(t, 3.0, Round.Apply(2.5))
	assert.Equal(t, -2.0, Round.Apply(-2.5))
	assert.Equal(t, -4.0, Negate.Apply(4))
	assert.True(t, CosDegrees.Degrees())
	assert.False(t, Cos.Degrees())
}

func TestErrorModeCombine(t *testing.T) {
	assert.InDelta(t, 5.0, Independent.Combine(3, 4), 1e-12)
	assert.InDelta(t, 7.0, Dependent.Combine(3, -4), 1e-12)
	assert.Equal(t, "Dependent", Dependent.String())
}
