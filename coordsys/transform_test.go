package coordsys

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transformRecorder struct {
	mu      sync.Mutex
	calls   int
	noops   int
	samples int
}

func (r *transformRecorder) RecordSetBuild(string, int, time.Duration, error) {}
func (r *transformRecorder) RecordInterp(int, int, time.Duration)             {}

func (r *transformRecorder) RecordTransform(samples int, noop bool, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.samples += samples
	if noop {
		r.noops++
	}
}

type fixtures struct {
	polarCS   *Polar
	linearCS  *Linear
	polarType *realtype.TupleType
	lineType  *realtype.TupleType
	earthType *realtype.TupleType
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	polar, err := NewPolar(realtype.SpatialCartesian2D)
	require.NoError(t, err)
	linear, err := NewLinear(realtype.SpatialCartesian2D, [][]float64{{2, 0}, {0, 2}}, nil)
	require.NoError(t, err)
	sph, err := NewSpherical(realtype.SpatialCartesian3D)
	require.NoError(t, err)

	return fixtures{
		polarCS:  polar,
		linearCS: linear,
		polarType: realtype.MustTupleType([]*realtype.RealType{
			realtype.MustRealType("TransformTestR", nil),
			realtype.MustRealType("TransformTestTheta", nil),
		}, polar, nil),
		lineType: realtype.MustTupleType([]*realtype.RealType{
			realtype.MustRealType("TransformTestU", nil),
			realtype.MustRealType("TransformTestV", nil),
		}, linear, nil),
		earthType: realtype.MustTupleType([]*realtype.RealType{
			realtype.Latitude, realtype.Longitude, realtype.Radius,
		}, sph, nil),
	}
}

func TestTransformCoordinates(t *testing.T) {
	f := newFixtures(t)

	t.Run("ToReference", func(t *testing.T) {
		res, err := TransformCoordinates(Request{
			In:     f.polarType,
			Out:    realtype.SpatialCartesian2D,
			Values: [][]float64{{1}, {math.Pi / 2}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{0}, {1}}, res.Values)
		assert.Len(t, res.Units, 2)
		assert.False(t, res.NoOp)
		assert.Nil(t, res.Errors)
	})

	t.Run("FromReference", func(t *testing.T) {
		res, err := TransformCoordinates(Request{
			In:     realtype.SpatialCartesian2D,
			Out:    f.polarType,
			Values: [][]float64{{0}, {2}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{2}, {math.Pi / 2}}, res.Values)
	})

	t.Run("SharedReference", func(t *testing.T) {
		res, err := TransformCoordinates(Request{
			In:     f.polarType,
			Out:    f.lineType,
			Values: [][]float64{{1, 4}, {0, math.Pi}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{0.5, -2}, {0, 0}}, res.Values)
	})

	t.Run("SameTypePassesThrough", func(t *testing.T) {
		in := [][]float64{{1, 2}, {3, 4}}
		errs := []*errest.Estimate{errest.New(1, 0.1, nil), errest.New(3, 0.2, nil)}
		res, err := TransformCoordinates(Request{
			In:       realtype.SpatialCartesian2D,
			Out:      realtype.SpatialCartesian2D,
			InErrors: errs,
			Values:   in,
		})
		require.NoError(t, err)
		assert.Equal(t, in, res.Values)
		res.Values[0][0] = 42
		assert.Equal(t, 1.0, in[0][0])
		require.Len(t, res.Errors, 2)
		assert.Same(t, errs[1], res.Errors[1])
	})

	t.Run("SameTypeDifferentSystems", func(t *testing.T) {
		res, err := TransformCoordinates(Request{
			In:     f.polarType,
			Out:    f.polarType,
			OutCS:  f.linearCS,
			Values: [][]float64{{1}, {math.Pi / 2}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{0}, {0.5}}, res.Values)
	})

	t.Run("OneSidedSystemConvertsUnitsOnly", func(t *testing.T) {
		bare := realtype.MustTupleType([]*realtype.RealType{
			realtype.MustRealType("TransformTestBareR", unit.Meter),
			realtype.MustRealType("TransformTestBareT", unit.Meter),
		}, nil, nil)
		res, err := TransformCoordinates(Request{
			In:       bare,
			Out:      bare,
			OutCS:    f.polarCS,
			InUnits:  []unit.Unit{unit.Meter, unit.Meter},
			OutUnits: []unit.Unit{unit.MustLookup("km"), nil},
			Values:   [][]float64{{1500}, {2}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{1.5}, {2}}, res.Values)
		assert.False(t, res.NoOp)

		id, err := NewIdentity(realtype.SpatialCartesian2D)
		require.NoError(t, err)
		res, err = TransformCoordinates(Request{
			In:     realtype.SpatialCartesian2D,
			Out:    realtype.SpatialCartesian2D,
			InCS:   id,
			Values: [][]float64{{1}, {1}},
		})
		require.NoError(t, err)
		assertBatch(t, [][]float64{{1}, {1}}, res.Values)
	})

	t.Run("OverrideMustAgreeWithDeclaredReference", func(t *testing.T) {
		other, err := NewIdentity(realtype.LatitudeLongitude)
		require.NoError(t, err)
		_, err = TransformCoordinates(Request{
			In:     f.polarType,
			InCS:   other,
			Out:    realtype.SpatialCartesian2D,
			Values: [][]float64{{1}, {1}},
		})
		assert.ErrorIs(t, err, errdefs.ErrInconsistentCoordinateSystem)
	})

	t.Run("ShapeErrors", func(t *testing.T) {
		_, err := TransformCoordinates(Request{
			In:     f.polarType,
			Out:    realtype.SpatialCartesian3D,
			Values: [][]float64{{1}, {1}},
		})
		assert.ErrorIs(t, err, errdefs.ErrDimension)

		_, err = TransformCoordinates(Request{
			In:     f.polarType,
			Out:    realtype.SpatialCartesian2D,
			Values: [][]float64{{1}},
		})
		assert.ErrorIs(t, err, errdefs.ErrDimension)

		_, err = TransformCoordinates(Request{In: f.polarType})
		assert.ErrorIs(t, err, errdefs.ErrIllegalOperation)
	})
}

func TestTransformCoordinatesUnrelatedReferences(t *testing.T) {
	rec := &transformRecorder{}
	telemetry.SetMetrics(rec)
	t.Cleanup(func() { telemetry.SetMetrics(nil) })

	in := [][]float64{{10, 20}, {30, 40}}
	res, err := TransformCoordinates(Request{
		In:     realtype.SpatialCartesian2D,
		Out:    realtype.LatitudeLongitude,
		Values: in,
	})
	require.NoError(t, err)
	assert.True(t, res.NoOp)
	assert.Equal(t, in, res.Values)

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 1, rec.noops)
	assert.Equal(t, 2, rec.samples)

	t.Run("OutUnitsIgnored", func(t *testing.T) {
		deg := unit.MustLookup("deg")
		res, err := TransformCoordinates(Request{
			In:       realtype.LatitudeLongitude,
			InUnits:  []unit.Unit{deg, deg},
			Out:      realtype.SpatialCartesian2D,
			OutUnits: []unit.Unit{unit.Meter, unit.Meter},
			Values:   [][]float64{{10}, {20}},
		})
		require.NoError(t, err)
		assert.True(t, res.NoOp)
		assert.Equal(t, [][]float64{{10}, {20}}, res.Values)
		require.Len(t, res.Units, 2)
		assert.True(t, unit.Equal(deg, res.Units[0]))
		assert.True(t, unit.Equal(deg, res.Units[1]))
	})
}

func TestTransformCoordinatesErrors(t *testing.T) {
	f := newFixtures(t)

	res, err := TransformCoordinates(Request{
		In:       f.lineType,
		Out:      realtype.SpatialCartesian2D,
		InErrors: []*errest.Estimate{errest.New(1, 0.1, nil), errest.New(2, 0.2, nil)},
		Values:   [][]float64{{1}, {2}},
	})
	require.NoError(t, err)
	assertBatch(t, [][]float64{{2}, {4}}, res.Values)
	require.Len(t, res.Errors, 2)
	assert.InDelta(t, 0.2, res.Errors[0].Error(), eps)
	assert.InDelta(t, 0.4, res.Errors[1].Error(), eps)
	assert.InDelta(t, 4.0, res.Errors[1].Mean(), eps)

	// Errors follow the local slope of the transform.
	res, err = TransformCoordinates(Request{
		In:       f.polarType,
		Out:      realtype.SpatialCartesian2D,
		InErrors: []*errest.Estimate{errest.New(1, 0.3, nil), errest.New(0, 0.4, nil)},
		Values:   [][]float64{{1}, {0}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.Errors[0].Error(), eps)
	assert.InDelta(t, 2*math.Sin(0.2), res.Errors[1].Error(), eps)

	partial, err := TransformCoordinates(Request{
		In:       f.lineType,
		Out:      realtype.SpatialCartesian2D,
		InErrors: []*errest.Estimate{errest.New(1, 0.1, nil), nil},
		Values:   [][]float64{{1}, {2}},
	})
	require.NoError(t, err)
	assert.Nil(t, partial.Errors)
}

func TestTransformCoordinatesUnits(t *testing.T) {
	km := unit.MustLookup("km")
	alt := realtype.Tuple(realtype.Altitude)

	res, err := TransformCoordinates(Request{
		In:       alt,
		Out:      alt,
		InUnits:  []unit.Unit{km},
		OutUnits: []unit.Unit{unit.Meter},
		InErrors: []*errest.Estimate{errest.New(1, 0.5, km)},
		Values:   [][]float64{{1, 2}},
	})
	require.NoError(t, err)
	assertBatch(t, [][]float64{{1000, 2000}}, res.Values)
	assert.True(t, unit.Equal(unit.Meter, res.Units[0]))
	assert.InDelta(t, 500.0, res.Errors[0].Error(), 1e-6)

	_, err = TransformCoordinates(Request{
		In:       alt,
		Out:      alt,
		InUnits:  []unit.Unit{km},
		OutUnits: []unit.Unit{unit.Second},
		Values:   [][]float64{{1}},
	})
	assert.ErrorIs(t, err, errdefs.ErrUnitMismatch)
}

func TestTransformCoordinatesFreeUnits(t *testing.T) {
	f := newFixtures(t)

	res, err := TransformCoordinatesFreeUnits(Request{
		In:       realtype.SpatialCartesian3D,
		Out:      f.earthType,
		OutUnits: []unit.Unit{unit.Radian, unit.Radian, nil},
		Values:   [][]float64{{0}, {0}, {3}},
	})
	require.NoError(t, err)
	assertBatch(t, [][]float64{{90}, {0}, {3}}, res.Values)
	assert.True(t, unit.Equal(unit.Degree, res.Units[0]))
	assert.Nil(t, res.Units[2])

	converted, err := TransformCoordinates(Request{
		In:       realtype.SpatialCartesian3D,
		Out:      f.earthType,
		OutUnits: []unit.Unit{unit.Radian, unit.Radian, nil},
		Values:   [][]float64{{0}, {0}, {3}},
	})
	require.NoError(t, err)
	assertBatch(t, [][]float64{{math.Pi / 2}, {0}, {3}}, converted.Values)
	assert.True(t, unit.Equal(unit.Radian, converted.Units[0]))
}

func TestTransformCoordinates32(t *testing.T) {
	f := newFixtures(t)

	out, res, err := TransformCoordinates32(Request{
		In:  f.lineType,
		Out: realtype.SpatialCartesian2D,
	}, [][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2, 4}, {6, 8}}, out)
	assert.Len(t, res.Units, 2)
}
