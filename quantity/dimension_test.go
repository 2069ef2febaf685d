package quantity

import (
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dimOf(t *testing.T, spec string) Dimension {
	t.Helper()
	d, ok := DimensionOf(unit.MustParse(spec))
	require.True(t, ok)
	return d
}

func TestDimensionOf(t *testing.T) {
	assert.Equal(t, Dimension{1, 0, -1}, dimOf(t, "m/s"))
	assert.Equal(t, Dimension{1}, dimOf(t, "km"))
	assert.Nil(t, dimOf(t, "rad"))
	assert.Nil(t, dimOf(t, "m/m"))
	assert.Equal(t, dimOf(t, "K"), dimOf(t, "degC"))

	_, ok := DimensionOf(nil)
	assert.False(t, ok)
	_, ok = DimensionOf(unit.Promiscuous)
	assert.False(t, ok)
}

func TestDimensionAlgebra(t *testing.T) {
	specs := []string{"m", "kg", "s-2", "N", "Pa", "m/s", "Hz", "degC", "rad"}
	for _, a := range specs {
		for _, b := range specs {
			ua, ub := unit.MustParse(a), unit.MustParse(b)
			da, db := dimOf(t, a), dimOf(t, b)

			prod, ok := DimensionOf(unit.Multiply(ua, ub))
			require.True(t, ok)
			assert.True(t, Equal(Multiply(da, db), prod), "%s * %s", a, b)

			quot, ok := DimensionOf(unit.Divide(ua, ub))
			require.True(t, ok)
			assert.True(t, Equal(Divide(da, db), quot), "%s / %s", a, b)
		}
	}
}

func TestRoot(t *testing.T) {
	r, err := Root(Dimension{2, 0, -4}, 2)
	require.NoError(t, err)
	assert.Equal(t, Dimension{1, 0, -2}, r)

	_, err = Root(Dimension{3}, 2)
	assert.ErrorIs(t, err, errdefs.ErrIllegalExponent)

	_, err = Root(Dimension{2}, 0)
	assert.ErrorIs(t, err, errdefs.ErrIllegalExponent)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Dimension
		want int
	}{
		{"Equal", Dimension{1, 0, -1}, Dimension{1, 0, -1}, 0},
		{"TrailingZeros", Dimension{1, 0, 0}, Dimension{1}, 0},
		{"Less", Dimension{0, 1}, Dimension{1}, -1},
		{"LongerGreater", Dimension{1}, Dimension{1, 0, 2}, -1},
		{"LongerNegative", Dimension{1}, Dimension{1, 0, -2}, 1},
		{"BothEmpty", nil, Dimension{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, Dimension{0, 0}.IsDimensionless())
	assert.False(t, Dimension{1}.IsDimensionless())
	assert.True(t, IsReciprocal(dimOf(t, "Hz"), dimOf(t, "s")))
	assert.False(t, IsReciprocal(dimOf(t, "m"), dimOf(t, "s")))
	assert.False(t, IsReciprocal(nil, nil))
	assert.Equal(t, "m.kg.s-2", dimOf(t, "N").String())
	assert.Equal(t, "1", Dimension(nil).String())
}

func TestRegistry(t *testing.T) {
	q, err := Lookup("Pressure")
	require.NoError(t, err)
	assert.Same(t, Pressure, q)
	assert.True(t, q.Accepts(unit.MustLookup("hPa")))
	assert.False(t, q.Accepts(unit.Meter))

	again, err := Register("Speed", "m/s")
	require.NoError(t, err)
	assert.Same(t, Speed, again)

	_, err = Register("Speed", "s")
	assert.ErrorIs(t, err, errdefs.ErrUnitMismatch)

	_, err = Lookup("Charm")
	assert.ErrorIs(t, err, errdefs.ErrUnknownQuantity)

	_, err = Register("Bogus", "furlong")
	assert.ErrorIs(t, err, errdefs.ErrUnknownUnit)

	matches := Matching(Length.Dimension())
	require.NotEmpty(t, matches)
	assert.Equal(t, "Length", matches[0].Name())
}
