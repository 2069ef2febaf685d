package set

import (
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/testutil"
	"github.com/hupe1980/quanta/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct(t *testing.T) {
	x, err := NewLinear1D(0, 2, 3)
	require.NoError(t, err)
	y, err := NewGridded1D([]float64{10, 20}, WithUnits(unit.Meter))
	require.NoError(t, err)

	p, err := NewProduct([]Set{x, y})
	require.NoError(t, err)

	assert.Equal(t, 2, p.Dimension())
	assert.Equal(t, 2, p.ManifoldDimension())
	assert.Equal(t, 6, p.Length())
	assert.Equal(t, [][]float64{{0, 1, 2, 0, 1, 2}, {10, 10, 10, 20, 20, 20}}, p.Samples())
	assert.Equal(t, unit.Meter, p.Units()[1])

	lo, hi := p.Bounds()
	assert.Equal(t, []float64{0, 10}, lo)
	assert.Equal(t, []float64{2, 20}, hi)

	t.Run("IndexToValue", func(t *testing.T) {
		got := p.IndexToValue([]int{4, -1, 6})
		testutil.InDeltaGrid(t, [][]float64{{1, nan, nan}, {20, nan, nan}}, got, 0)
	})

	t.Run("ValueToIndex", func(t *testing.T) {
		got, err := p.ValueToIndex([][]float64{{1.2, 5, 0}, {19, 15, 30}})
		require.NoError(t, err)
		assert.Equal(t, []int{4, -1, -1}, got)
	})

	t.Run("ValueToInterp", func(t *testing.T) {
		indices, weights, err := p.ValueToInterp([][]float64{{0.5, 0.5}, {15, 40}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1, 3, 4}, indices[0])
		testutil.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, weights[0], 1e-12)
		assert.Nil(t, indices[1])
		assert.Nil(t, weights[1])
	})

	t.Run("Neighbors", func(t *testing.T) {
		nb, err := p.Neighbors(4)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 5, 1}, nb)

		_, err = p.Neighbors(6)
		assert.ErrorIs(t, err, errdefs.ErrIndexOutOfRange)
	})

	t.Run("Flatten", func(t *testing.T) {
		q, err := NewProduct([]Set{p, x})
		require.NoError(t, err)
		assert.Len(t, q.Factors(), 3)
		assert.Equal(t, 3, q.Dimension())
		assert.Equal(t, 18, q.Length())

		wide, err := NewProduct([]Set{p, p})
		require.NoError(t, err)
		assert.Equal(t, 4, wide.Type().Dimension())
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := NewProduct(nil)
		assert.ErrorIs(t, err, errdefs.ErrDimension)

		_, err = NewProduct([]Set{x, nil})
		assert.ErrorIs(t, err, errdefs.ErrIllegalOperation)
	})
}

func TestProductOf(t *testing.T) {
	a, err := NewLinear1D(0, 2, 3)
	require.NoError(t, err)
	b, err := NewLinear1D(5, 6, 2)
	require.NoError(t, err)
	y, err := NewGridded1D([]float64{10, 20})
	require.NoError(t, err)

	u, err := NewUnion([]Set{a, b})
	require.NoError(t, err)

	got, err := ProductOf(u, y)
	require.NoError(t, err)
	require.IsType(t, &Union{}, got)
	assert.Equal(t, 10, got.Length())
	assert.Len(t, got.(*Union).Members(), 2)

	got, err = ProductOf(y, u)
	require.NoError(t, err)
	require.IsType(t, &Union{}, got)
	v, err := got.Sample(6)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 5}, v)

	got, err = ProductOf(a, y)
	require.NoError(t, err)
	assert.IsType(t, &Product{}, got)
}
