package set

import (
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/quanta/coordsys"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/testutil"
	"github.com/hupe1980/quanta/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setRecorder struct {
	mu      sync.Mutex
	builds  map[string]int
	failed  int
	queries int
	misses  int
}

func (r *setRecorder) RecordSetBuild(kind string, _ int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failed++
		return
	}
	r.builds[kind]++
}

func (r *setRecorder) RecordTransform(int, bool, time.Duration, error) {}

func (r *setRecorder) RecordInterp(queries, misses int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries += queries
	r.misses += misses
}

func TestMetrics(t *testing.T) {
	rec := &setRecorder{builds: map[string]int{}}
	telemetry.SetMetrics(rec)
	t.Cleanup(func() { telemetry.SetMetrics(nil) })

	s, err := NewLinear1D(0, 1, 3)
	require.NoError(t, err)
	_, err = NewGridded1D([]float64{2, 1, 3})
	require.Error(t, err)

	_, _, err = s.ValueToInterp([][]float64{{0.5, 7, 0.1}})
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.builds["linear1d"])
	assert.Equal(t, 1, rec.failed)
	assert.Equal(t, 3, rec.queries)
	assert.Equal(t, 1, rec.misses)
}

func TestOptions(t *testing.T) {
	temperature := realtype.Tuple(realtype.MustRealType("SetTestTemperature", unit.Kelvin))

	t.Run("Type", func(t *testing.T) {
		s, err := NewLinear1D(0, 1, 2, WithType(temperature))
		require.NoError(t, err)
		assert.Same(t, temperature, s.Type())
		require.Len(t, s.Units(), 1)
		assert.True(t, unit.Equal(unit.Kelvin, s.Units()[0]))

		_, err = NewLinear1D(0, 1, 2, WithType(realtype.SpatialCartesian2D))
		assert.ErrorIs(t, err, errdefs.ErrDimension)
	})

	t.Run("Units", func(t *testing.T) {
		s, err := NewLinear1D(0, 1, 2, WithType(temperature), WithUnits(unit.Celsius))
		require.NoError(t, err)
		assert.True(t, unit.Equal(unit.Celsius, s.Units()[0]))

		_, err = NewLinear1D(0, 1, 2, WithType(temperature), WithUnits(unit.Second))
		assert.ErrorIs(t, err, errdefs.ErrUnitMismatch)

		_, err = NewLinear1D(0, 1, 2, WithUnits(unit.Meter, unit.Meter))
		assert.ErrorIs(t, err, errdefs.ErrDimension)

		// Without an explicit type any unit describes the samples.
		free, err := NewLinear1D(0, 1, 2, WithUnits(unit.Second))
		require.NoError(t, err)
		assert.True(t, unit.Equal(unit.Second, free.Units()[0]))
	})

	t.Run("Errors", func(t *testing.T) {
		est := errest.New(0.5, 0.1, unit.Kelvin)
		s, err := NewLinear1D(0, 1, 2, WithType(temperature), WithErrors(est))
		require.NoError(t, err)
		assert.Equal(t, []*errest.Estimate{est}, s.Errors())

		plain, err := NewLinear1D(0, 1, 2)
		require.NoError(t, err)
		assert.Nil(t, plain.Errors())

		_, err = NewLinear1D(0, 1, 2, WithErrors(est, est))
		assert.ErrorIs(t, err, errdefs.ErrDimension)
	})

	t.Run("CoordinateSystem", func(t *testing.T) {
		polar, err := coordsys.NewPolar(realtype.SpatialCartesian2D)
		require.NoError(t, err)
		polarType := realtype.MustTupleType([]*realtype.RealType{
			realtype.MustRealType("SetTestRadius", nil),
			realtype.MustRealType("SetTestAzimuth", unit.Radian),
		}, polar, nil)

		s, err := NewIrregular(testutil.NewRNG(1).ScatteredSamples(20, 2, 0, 1), WithType(polarType))
		require.NoError(t, err)
		assert.Same(t, polar, s.CoordinateSystem())

		other, err := coordsys.NewPolar(realtype.SpatialCartesian2D)
		require.NoError(t, err)
		s, err = NewIrregular(testutil.NewRNG(1).ScatteredSamples(20, 2, 0, 1),
			WithType(polarType), WithCoordinateSystem(other))
		require.NoError(t, err)
		assert.Same(t, other, s.CoordinateSystem())

		_, err = NewLinear1D(0, 1, 2, WithCoordinateSystem(other))
		assert.ErrorIs(t, err, errdefs.ErrInconsistentCoordinateSystem)

		spherical, err := coordsys.NewSpherical(realtype.SpatialCartesian3D)
		require.NoError(t, err)
		_, err = NewIrregular(testutil.NewRNG(1).ScatteredSamples(20, 2, 0, 1),
			WithType(polarType), WithCoordinateSystem(spherical))
		assert.ErrorIs(t, err, errdefs.ErrInconsistentCoordinateSystem)
	})

	t.Run("NoCopy", func(t *testing.T) {
		samples := []float64{1, 2, 3}
		s, err := NewGridded1D(samples, WithCopy(false))
		require.NoError(t, err)
		samples[2] = 4
		assert.Equal(t, [][]float64{{1, 2, 4}}, s.Samples())
	})
}

func TestParallelLookupsMatchSequential(t *testing.T) {
	x, err := NewLinear1D(-1, 1, 21)
	require.NoError(t, err)
	y, err := NewLinear1D(0, 5, 11, WithParallelism(3, 2))
	require.NoError(t, err)

	seq, err := NewLinearND([]*Linear1D{x, y})
	require.NoError(t, err)
	par, err := NewLinearND([]*Linear1D{x, y}, WithParallelism(3, 2))
	require.NoError(t, err)

	queries := testutil.NewRNG(5).ScatteredSamples(97, 2, -1.5, 5.5)

	wantIdx, err := seq.ValueToIndex(queries)
	require.NoError(t, err)
	gotIdx, err := par.ValueToIndex(queries)
	require.NoError(t, err)
	assert.Equal(t, wantIdx, gotIdx)

	wantI, wantW, err := seq.ValueToInterp(queries)
	require.NoError(t, err)
	gotI, gotW, err := par.ValueToInterp(queries)
	require.NoError(t, err)
	assert.Equal(t, wantI, gotI)
	assert.Equal(t, wantW, gotW)
}

func TestSetInterface(t *testing.T) {
	lin, err := NewLinear1D(0, 1, 2)
	require.NoError(t, err)
	grd, err := NewGridded1D([]float64{0, 1})
	require.NoError(t, err)
	irr1, err := NewIrregular1D([]float64{1, 0})
	require.NoError(t, err)
	irr, err := NewIrregular([][]float64{{0, 1, 0}, {0, 0, 1}})
	require.NoError(t, err)
	x, err := NewLinearND([]*Linear1D{lin, lin})
	require.NoError(t, err)
	curved, err := NewGridded2D([][]float64{{0, 1, 0, 1.5}, {0, 0, 1, 1.5}}, 2, 2)
	require.NoError(t, err)
	prod, err := NewProduct([]Set{irr1, grd})
	require.NoError(t, err)
	union, err := NewUnion([]Set{lin, grd})
	require.NoError(t, err)
	point, err := NewSingleton([]float64{4, 2})
	require.NoError(t, err)

	for _, s := range []Set{lin, grd, irr1, irr, x, curved, prod, union, point} {
		samples := s.Samples()
		require.Len(t, samples, s.Dimension())
		for i := 0; i < s.Length(); i++ {
			v, err := s.Sample(i)
			require.NoError(t, err)
			for j := range v {
				assert.Equal(t, samples[j][i], v[j])
			}
		}
		_, err := s.Sample(-1)
		assert.ErrorIs(t, err, errdefs.ErrIndexOutOfRange)
		assert.False(t, s.IsMissing(-1))
		assert.Zero(t, s.MissingCount())

		// Adjacency is symmetric.
		for i := 0; i < s.Length(); i++ {
			nb, err := s.Neighbors(i)
			require.NoError(t, err)
			for _, j := range nb {
				back, err := s.Neighbors(j)
				require.NoError(t, err)
				assert.Contains(t, back, i)
			}
		}
		_, err = s.Neighbors(s.Length())
		assert.ErrorIs(t, err, errdefs.ErrIndexOutOfRange)
	}

	for _, g := range []Gridded{lin, grd, x, curved} {
		assert.NotEmpty(t, g.Lengths())
	}
}
