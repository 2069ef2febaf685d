package delaunay

import (
	"math"
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() [][]float64 {
	return [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}}
}

func TestNew(t *testing.T) {
	tri, err := New(square())
	require.NoError(t, err)
	assert.Equal(t, 2, tri.Dimension())
	assert.Equal(t, 4, tri.Len())

	// The centre is connected to every corner.
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, tri.Adjacent(4))
	for v := 0; v < 5; v++ {
		assert.GreaterOrEqual(t, tri.Incident(v), 0)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		points [][]float64
		err    error
	}{
		{"empty", nil, errdefs.ErrInvalidGrid},
		{"too few", [][]float64{{0, 0}, {1, 0}}, errdefs.ErrInvalidGrid},
		{"duplicate", [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 0}}, errdefs.ErrInvalidGrid},
		{"nan", [][]float64{{0, 0}, {1, 0}, {0, math.NaN()}}, errdefs.ErrInvalidGrid},
		{"collinear", [][]float64{{0, 0}, {1, 1}, {2, 2}}, errdefs.ErrInvalidGrid},
		{"one dimension", [][]float64{{0}, {1}}, errdefs.ErrDimension},
		{"ragged", [][]float64{{0, 0}, {1, 0, 2}, {0, 1}}, errdefs.ErrDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.points)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLocate(t *testing.T) {
	tri, err := New(square())
	require.NoError(t, err)

	t.Run("vertex", func(t *testing.T) {
		s, w := tri.Locate([]float64{1, 0}, -1)
		require.GreaterOrEqual(t, s, 0)
		vs := tri.Vertices(s)
		for k, v := range vs {
			if v == 1 {
				assert.InDelta(t, 1.0, w[k], 1e-12)
			} else {
				assert.InDelta(t, 0.0, w[k], 1e-12)
			}
		}
	})

	t.Run("interior", func(t *testing.T) {
		p := []float64{0.3, 0.1}
		for hint := 0; hint < tri.Len(); hint++ {
			s, w := tri.Locate(p, hint)
			require.GreaterOrEqual(t, s, 0)

			sum := 0.0
			x, y := 0.0, 0.0
			for k, v := range tri.Vertices(s) {
				assert.GreaterOrEqual(t, w[k], 0.0)
				sum += w[k]
				x += w[k] * tri.points[v][0]
				y += w[k] * tri.points[v][1]
			}
			assert.InDelta(t, 1.0, sum, 1e-12)
			assert.InDelta(t, 0.3, x, 1e-12)
			assert.InDelta(t, 0.1, y, 1e-12)
		}
	})

	t.Run("outside", func(t *testing.T) {
		s, w := tri.Locate([]float64{2, 2}, 0)
		assert.Equal(t, -1, s)
		assert.Nil(t, w)

		s, _ = tri.Locate([]float64{math.NaN(), 0}, 0)
		assert.Equal(t, -1, s)

		s, _ = tri.Locate([]float64{0.5}, 0)
		assert.Equal(t, -1, s)
	})
}

func TestNearest(t *testing.T) {
	tri, err := New(square())
	require.NoError(t, err)

	v, s := tri.Nearest([]float64{0.9, 0.05}, 0)
	assert.Equal(t, 1, v)
	assert.GreaterOrEqual(t, s, 0)

	v, _ = tri.Nearest([]float64{0.45, 0.55}, 0)
	assert.Equal(t, 4, v)

	v, s = tri.Nearest([]float64{-1, 0}, 0)
	assert.Equal(t, -1, v)
	assert.Equal(t, -1, s)
}

func TestDelaunayProperty(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.ScatteredPoints(200, 2)

	tri, err := New(points)
	require.NoError(t, err)

	// No point lies strictly inside any circumcircle.
	for s := 0; s < tri.Len(); s++ {
		c := circumsphere(tri.points, tri.Vertices(s))
		require.True(t, c.ok)
		for i, p := range points {
			if !c.contains(p) {
				continue
			}
			d2 := 0.0
			for j := range p {
				d := p[j] - c.center[j]
				d2 += d * d
			}
			assert.InDelta(t, c.r2, d2, 1e-9*c.r2, "point %d inside circumcircle of simplex %d", i, s)
		}
	}

	// Nearest agrees with a linear scan for interior queries.
	for q := 0; q < 100; q++ {
		p := rng.ScatteredPoints(1, 2)[0]
		v, s := tri.Nearest(p, q%tri.Len())
		if s < 0 {
			continue
		}
		bestD := math.Inf(1)
		for i := range points {
			bestD = math.Min(bestD, tri.dist2(i, p))
		}
		assert.InDelta(t, bestD, tri.dist2(v, p), 1e-12, "query %v", p)
	}
}

func TestTetrahedralization(t *testing.T) {
	points := [][]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0.2, 0.25, 0.15}, {0.1, 0.5, 0.3},
	}
	tri, err := New(points)
	require.NoError(t, err)
	assert.Equal(t, 3, tri.Dimension())

	// The simplices tile the hull, which is the unit corner tetrahedron.
	volume := 0.0
	for s := 0; s < tri.Len(); s++ {
		vs := tri.Vertices(s)
		require.Len(t, vs, 4)
		volume += tetVolume(points, vs)
		for _, nb := range tri.Neighbors(s) {
			assert.Less(t, nb, tri.Len())
		}
	}
	assert.InDelta(t, 1.0/6, volume, 1e-9)

	p := []float64{0.15, 0.3, 0.2}
	s, w := tri.Locate(p, 0)
	require.GreaterOrEqual(t, s, 0)
	sum := 0.0
	got := make([]float64, 3)
	for k, v := range tri.Vertices(s) {
		sum += w[k]
		for j := range got {
			got[j] += w[k] * points[v][j]
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	testutil.InDeltaSlice(t, p, got, 1e-12)

	v, _ := tri.Nearest([]float64{0.21, 0.24, 0.16}, 0)
	assert.Equal(t, 4, v)

	s, _ = tri.Locate([]float64{0.6, 0.6, 0.6}, 0)
	assert.Equal(t, -1, s)
}

func tetVolume(p [][]float64, vs []int) float64 {
	a, b, c, d := p[vs[0]], p[vs[1]], p[vs[2]], p[vs[3]]
	u := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	w := [3]float64{d[0] - a[0], d[1] - a[1], d[2] - a[2]}
	det := u[0]*(v[1]*w[2]-v[2]*w[1]) - u[1]*(v[0]*w[2]-v[2]*w[0]) + u[2]*(v[0]*w[1]-v[1]*w[0])
	return math.Abs(det) / 6
}
