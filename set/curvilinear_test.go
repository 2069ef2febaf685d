package set

import (
	"math"
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shearedGrid is the image of a 4x3 index grid under (i, j) -> (i+j/2, 2j).
func shearedGrid() [][]float64 {
	out := [][]float64{make([]float64, 12), make([]float64, 12)}
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			out[0][i+4*j] = float64(i) + 0.5*float64(j)
			out[1][i+4*j] = 2 * float64(j)
		}
	}
	return out
}

// ringGrid samples a quarter annulus: radius 1..3 fastest, angle 0..90
// degrees slowest.
func ringGrid() [][]float64 {
	out := [][]float64{make([]float64, 12), make([]float64, 12)}
	for a := 0; a < 4; a++ {
		theta := float64(a) * math.Pi / 6
		for r := 0; r < 3; r++ {
			out[0][r+3*a] = float64(r+1) * math.Cos(theta)
			out[1][r+3*a] = float64(r+1) * math.Sin(theta)
		}
	}
	return out
}

func TestGridded2D(t *testing.T) {
	s, err := NewGridded2D(shearedGrid(), 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 12, s.Length())
	assert.Equal(t, 2, s.Dimension())
	assert.Equal(t, 2, s.ManifoldDimension())
	assert.Equal(t, []int{4, 3}, s.Lengths())

	lo, hi := s.Bounds()
	assert.Equal(t, []float64{0, 0}, lo)
	assert.Equal(t, []float64{4, 4}, hi)

	t.Run("GridToValue", func(t *testing.T) {
		got, err := s.GridToValue([][]float64{{0, 1.5, 3, -0.5, 3.6, nan}, {0, 1, 2, 0, 0, 1}})
		require.NoError(t, err)
		testutil.InDeltaGrid(t, [][]float64{{0, 2, 4, -0.5, nan, nan}, {0, 2, 4, 0, nan, nan}}, got, 1e-12)
	})

	t.Run("ValueToGrid", func(t *testing.T) {
		got, err := s.ValueToGrid([][]float64{{0, 2, 4, -0.5, 100, nan}, {0, 2, 4, 0, 100, 1}})
		require.NoError(t, err)
		testutil.InDeltaGrid(t, [][]float64{{0, 1.5, 3, -0.5, nan, nan}, {0, 1, 2, 0, nan, nan}}, got, 1e-9)
	})

	t.Run("ValueToIndex", func(t *testing.T) {
		got, err := s.ValueToIndex([][]float64{{1.6, 0, 100, nan}, {2.2, 0, 100, 0}})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 0, -1, -1}, got)
	})

	t.Run("ValueToInterp", func(t *testing.T) {
		indices, weights, err := s.ValueToInterp([][]float64{{0.75, 100}, {1, 100}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1, 4, 5}, indices[0])
		testutil.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, weights[0], 1e-9)
		assert.Nil(t, indices[1])
	})

	t.Run("Neighbors", func(t *testing.T) {
		nb, err := s.Neighbors(5)
		require.NoError(t, err)
		assert.Equal(t, []int{4, 6, 1, 9}, nb)

		nb, err = s.Neighbors(0)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4}, nb)

		_, err = s.Neighbors(12)
		assert.ErrorIs(t, err, errdefs.ErrIndexOutOfRange)
	})
}

func TestGridded2DCurved(t *testing.T) {
	s, err := NewGridded2D(ringGrid(), 3, 4)
	require.NoError(t, err)

	coords := [][]float64{{0.3, 1.7, 1, 0.5, 0, -0.4}, {0.2, 2.5, 1.5, 2.9, 0, 3.4}}
	values, err := s.GridToValue(coords)
	require.NoError(t, err)

	back, err := s.ValueToGrid(values)
	require.NoError(t, err)
	testutil.InDeltaGrid(t, coords, back, 1e-9)

	t.Run("SampleRoundTrip", func(t *testing.T) {
		index := make([]int, s.Length())
		for i := range index {
			index[i] = i
		}
		got, err := s.ValueToIndex(s.IndexToValue(index))
		require.NoError(t, err)
		assert.Equal(t, index, got)
	})

	t.Run("OffGrid", func(t *testing.T) {
		got, err := s.ValueToGrid([][]float64{{10, -2}, {10, -2}})
		require.NoError(t, err)
		testutil.InDeltaGrid(t, [][]float64{{nan, nan}, {nan, nan}}, got, 0)
	})

	t.Run("Parallel", func(t *testing.T) {
		par, err := NewGridded2D(ringGrid(), 3, 4, WithParallelism(3, 2))
		require.NoError(t, err)
		queries := testutil.NewRNG(11).ScatteredSamples(41, 2, 0, 3)

		want, err := s.ValueToGrid(queries)
		require.NoError(t, err)
		got, err := par.ValueToGrid(queries)
		require.NoError(t, err)
		testutil.InDeltaGrid(t, want, got, 1e-9)
	})
}

func TestNewGridded2DErrors(t *testing.T) {
	t.Run("Folded", func(t *testing.T) {
		_, err := NewGridded2D([][]float64{{1, 0, 0, 1}, {0, 0, 1, 1}}, 2, 2)
		assert.ErrorIs(t, err, errdefs.ErrInvalidGrid)
	})

	t.Run("Flat", func(t *testing.T) {
		_, err := NewGridded2D([][]float64{{0, 1, 2, 3}, {0, 0, 0, 0}}, 2, 2)
		assert.ErrorIs(t, err, errdefs.ErrInvalidGrid)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := NewGridded2D([][]float64{{0, 1}, {0, 0}}, 2, 1)
		assert.ErrorIs(t, err, errdefs.ErrInvalidGrid)
	})

	t.Run("WrongCount", func(t *testing.T) {
		_, err := NewGridded2D(shearedGrid(), 4, 4)
		assert.ErrorIs(t, err, errdefs.ErrDimension)
	})

	t.Run("NotFinite", func(t *testing.T) {
		samples := shearedGrid()
		samples[1][3] = nan
		_, err := NewGridded2D(samples, 4, 3)
		assert.ErrorIs(t, err, errdefs.ErrInvalidGrid)
	})
}

func TestGridded3D(t *testing.T) {
	// (i, j, k) -> (i, j+i/4, 2k) on a 3x2x2 grid.
	samples := [][]float64{make([]float64, 12), make([]float64, 12), make([]float64, 12)}
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 3; i++ {
				n := i + 3*j + 6*k
				samples[0][n] = float64(i)
				samples[1][n] = float64(j) + 0.25*float64(i)
				samples[2][n] = 2 * float64(k)
			}
		}
	}
	s, err := NewGridded3D(samples, 3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, s.ManifoldDimension())
	assert.Equal(t, []int{3, 2, 2}, s.Lengths())

	coords := [][]float64{{0.5, 1.1, 2.4}, {0.5, 0.025, -0.3}, {0.5, 1.05, 1.2}}
	values, err := s.GridToValue(coords)
	require.NoError(t, err)
	testutil.InDeltaGrid(t, [][]float64{{0.5, 1.1, 2.4}, {0.625, 0.3, 0.3}, {1, 2.1, 2.4}}, values, 1e-12)

	back, err := s.ValueToGrid(values)
	require.NoError(t, err)
	testutil.InDeltaGrid(t, coords, back, 1e-9)

	index, err := s.ValueToIndex(values)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 7, 8}, index)

	nb, err := s.Neighbors(7)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 8, 10, 1}, nb)
}

func TestNewGridded(t *testing.T) {
	g, err := NewGridded([][]float64{{1, 2, 4}}, []int{3})
	require.NoError(t, err)
	assert.IsType(t, &Gridded1D{}, g)

	g, err = NewGridded(shearedGrid(), []int{4, 3})
	require.NoError(t, err)
	assert.IsType(t, &Gridded2D{}, g)

	_, err = NewGridded(shearedGrid(), []int{12})
	assert.ErrorIs(t, err, errdefs.ErrDimension)

	_, err = NewGridded([][]float64{{1, 2, 4}}, []int{2})
	assert.ErrorIs(t, err, errdefs.ErrDimension)

	_, err = NewGridded([][]float64{{0}, {0}, {0}, {0}}, []int{1, 1, 1, 1})
	assert.ErrorIs(t, err, errdefs.ErrDimension)
}
