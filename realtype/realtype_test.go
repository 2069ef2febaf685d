package realtype

import (
	"testing"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scaleCS doubles every coordinate on the way to the reference.
type scaleCS struct {
	ref   *TupleType
	units []unit.Unit
}

func (s *scaleCS) Reference() *TupleType { return s.ref }
func (s *scaleCS) Dimension() int        { return s.ref.Dimension() }
func (s *scaleCS) Units() []unit.Unit    { return s.units }

func (s *scaleCS) ToReference(values [][]float64) ([][]float64, error) {
	return apply(values, func(v float64) float64 { return 2 * v }), nil
}

func (s *scaleCS) FromReference(values [][]float64) ([][]float64, error) {
	return apply(values, func(v float64) float64 { return v / 2 }), nil
}

func (s *scaleCS) Equal(other CoordinateSystem) bool {
	o, ok := other.(*scaleCS)
	return ok && o.ref.Equal(s.ref)
}

func apply(values [][]float64, fn func(float64) float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, axis := range values {
		out[i] = make([]float64, len(axis))
		for j, v := range axis {
			out[i][j] = fn(v)
		}
	}
	return out
}

func TestGetRealType(t *testing.T) {
	speed, err := GetRealType("TestSpeed", unit.MustParse("m/s"))
	require.NoError(t, err)
	assert.Equal(t, "TestSpeed", speed.Name())

	again, err := GetRealType("TestSpeed", unit.MustLookup("knot"))
	require.NoError(t, err)
	assert.Same(t, speed, again)

	_, err = GetRealType("TestSpeed", unit.Second)
	assert.ErrorIs(t, err, errdefs.ErrUnitMismatch)

	delta, err := GetRealType("TestTemperatureChange", unit.Celsius, Interval())
	require.NoError(t, err)
	assert.True(t, delta.IsInterval())
	assert.True(t, unit.Equal(unit.Kelvin, delta.DefaultUnit()))

	got, ok := LookupRealType("Latitude")
	require.True(t, ok)
	assert.Same(t, Latitude, got)

	_, err = GetRealType("", nil)
	assert.ErrorIs(t, err, errdefs.ErrIllegalOperation)
}

func TestTupleType(t *testing.T) {
	tt := Tuple(Latitude, Longitude)
	assert.Equal(t, 2, tt.Dimension())
	assert.Equal(t, "(Latitude, Longitude)", tt.String())
	assert.True(t, tt.Equal(LatitudeLongitude))
	assert.False(t, tt.Equal(SpatialCartesian2D))
	assert.Equal(t, 1, tt.Index(Longitude))
	assert.Equal(t, -1, tt.Index(Altitude))
	assert.Nil(t, tt.Reference())

	units := tt.DefaultUnits()
	require.Len(t, units, 2)
	assert.True(t, unit.Equal(unit.Degree, units[0]))

	_, err := NewTupleType(nil, nil, nil)
	assert.ErrorIs(t, err, errdefs.ErrDimension)

	_, err = NewTupleType([]*RealType{XAxis}, nil, []unit.Unit{nil, nil})
	assert.ErrorIs(t, err, errdefs.ErrDimension)
}

func TestTupleTypeWithCoordinateSystem(t *testing.T) {
	cs := &scaleCS{ref: SpatialCartesian2D}
	u := MustRealType("TestU", nil)
	v := MustRealType("TestV", nil)

	tt, err := NewTupleType([]*RealType{u, v}, cs, nil)
	require.NoError(t, err)
	assert.Same(t, SpatialCartesian2D, tt.Reference())

	_, err = NewTupleType([]*RealType{u}, cs, nil)
	assert.ErrorIs(t, err, errdefs.ErrDimension)

	withUnits := &scaleCS{ref: SpatialCartesian2D, units: []unit.Unit{unit.Meter, unit.Meter}}
	_, err = NewTupleType([]*RealType{Altitude, Altitude}, withUnits, nil)
	require.NoError(t, err)
	_, err = NewTupleType([]*RealType{Time, Time}, withUnits, nil)
	assert.ErrorIs(t, err, errdefs.ErrUnitMismatch)
}

func TestReference32(t *testing.T) {
	cs := &scaleCS{ref: SpatialCartesian2D}
	out, err := ToReference32(cs, [][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2, 4}, {6, 8}}, out)

	back, err := FromReference32(cs, out)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 2}, {3, 4}}, back)
}
