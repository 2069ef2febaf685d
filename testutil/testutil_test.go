package testutil

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScatteredPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.ScatteredPoints(8, 3)

	require.Len(t, p, 8)
	for _, point := range p {
		require.Len(t, point, 3)
		for _, v := range point {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestScatteredSamples(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.ScatteredSamples(50, 2, -5, 5)

	require.Len(t, s, 2)
	require.Len(t, s[1], 50)
	for _, v := range s[0] {
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
}

func TestShuffled(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Shuffled(20, 10, 0.5)

	sorted := slices.Sorted(slices.Values(v))
	for i, x := range sorted {
		assert.Equal(t, 10+float64(i)*0.5, x)
	}
}

func TestSparseMissing(t *testing.T) {
	rng := NewRNG(4711)
	s := rng.ScatteredSamples(100, 2, 0, 1)

	cleared := rng.SparseMissing(s, 0.2)

	assert.NotEmpty(t, cleared)
	for _, i := range cleared {
		assert.True(t, math.IsNaN(s[0][i]))
		assert.True(t, math.IsNaN(s[1][i]))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.ScatteredPoints(1, 10)

	rng.Reset()
	v2 := rng.ScatteredPoints(1, 10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestTranspose(t *testing.T) {
	in := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	assert.Equal(t, [][]float64{{1, 3, 5}, {2, 4, 6}}, Transpose(in))
	assert.Equal(t, in, Transpose(Transpose(in)))
	assert.Nil(t, Transpose(nil))
}

func TestInDeltaSlice(t *testing.T) {
	assert.True(t, InDeltaSlice(t, []float64{1, math.NaN()}, []float64{1 + 1e-12, math.NaN()}, 1e-9))

	mock := &testing.T{}
	assert.False(t, InDeltaSlice(mock, []float64{1}, []float64{2}, 1e-9))
	assert.False(t, InDeltaSlice(mock, []float64{1}, []float64{1, 2}, 1e-9))
}

func TestWeightedSum(t *testing.T) {
	assert.InDelta(t, 2.5, WeightedSum([]float64{1, 2, 3}, []int{1, 2}, []float64{0.5, 0.5}), 1e-12)
}
