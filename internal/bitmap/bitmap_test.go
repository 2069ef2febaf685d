package bitmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingOf(t *testing.T) {
	nan := math.NaN()
	samples := [][]float64{
		{1, nan, 3, 4},
		{5, 6, 7, nan},
	}

	m, err := MissingOf(samples)
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())
	assert.Equal(t, uint64(2), m.Cardinality())
	assert.True(t, m.Contains(1))
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(0))
	assert.Equal(t, []int{0, 2}, m.Complement(4))
}

func TestContainsOutOfRange(t *testing.T) {
	m, err := MissingOf([][]float64{{math.NaN()}})
	require.NoError(t, err)
	assert.True(t, m.Contains(0))
	assert.False(t, m.Contains(-1))
	assert.False(t, m.Contains(math.MaxInt))
}

func TestEmptyMask(t *testing.T) {
	m, err := MissingOf([][]float64{{1, 2, 3}})
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, []int{0, 1, 2}, m.Complement(3))

	assert.True(t, New().IsEmpty())
	assert.Empty(t, New().Complement(0))
}
