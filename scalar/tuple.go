package scalar

import (
	"fmt"
	"strings"

	"github.com/hupe1980/quanta/coordsys"
	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// Tuple is an immutable vector of reals described by a tuple type.
type Tuple struct {
	typ   *realtype.TupleType
	reals []*Real
	cs    realtype.CoordinateSystem
}

// NewTuple groups reals under t. Each real must have the matching
// component type. cs overrides the type's coordinate system and must share
// its reference.
func NewTuple(t *realtype.TupleType, reals []*Real, cs realtype.CoordinateSystem) (*Tuple, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: tuple requires a type", errdefs.ErrIllegalOperation)
	}
	if len(reals) != t.Dimension() {
		return nil, errdefs.NewDimensionError("tuple", t.Dimension(), len(reals))
	}
	for i, r := range reals {
		if r == nil || !r.typ.Equal(t.Component(i)) {
			return nil, fmt.Errorf("%w: tuple component %d is not %s", errdefs.ErrIllegalOperation, i, t.Component(i))
		}
	}
	if cs == nil {
		cs = t.CoordinateSystem()
	} else {
		if t.CoordinateSystem() == nil {
			return nil, fmt.Errorf("%w: %s declares no coordinate system", errdefs.ErrInconsistentCoordinateSystem, t)
		}
		if !cs.Reference().Equal(t.Reference()) {
			return nil, fmt.Errorf("%w: %s references %s", errdefs.ErrInconsistentCoordinateSystem, t, t.Reference())
		}
	}
	return &Tuple{typ: t, reals: append([]*Real(nil), reals...), cs: cs}, nil
}

// TupleOf builds a tuple from raw values in the type's default units.
func TupleOf(t *realtype.TupleType, values ...float64) (*Tuple, error) {
	if len(values) != t.Dimension() {
		return nil, errdefs.NewDimensionError("tuple", t.Dimension(), len(values))
	}
	units := t.DefaultUnits()
	reals := make([]*Real, len(values))
	for i, v := range values {
		r, err := New(t.Component(i), v, WithUnit(units[i]))
		if err != nil {
			return nil, err
		}
		reals[i] = r
	}
	return NewTuple(t, reals, nil)
}

// Type returns the tuple type.
func (t *Tuple) Type() *realtype.TupleType { return t.typ }

// Dimension returns the number of components.
func (t *Tuple) Dimension() int { return len(t.reals) }

// Component returns the i-th real.
func (t *Tuple) Component(i int) *Real { return t.reals[i] }

// CoordinateSystem returns the effective coordinate system, or nil.
func (t *Tuple) CoordinateSystem() realtype.CoordinateSystem { return t.cs }

// Values returns the raw component values.
func (t *Tuple) Values() []float64 {
	out := make([]float64, len(t.reals))
	for i, r := range t.reals {
		out[i] = r.value
	}
	return out
}

// Units returns the component units.
func (t *Tuple) Units() []unit.Unit {
	out := make([]unit.Unit, len(t.reals))
	for i, r := range t.reals {
		out[i] = r.unit
	}
	return out
}

// Errors returns the component estimates; entries may be nil.
func (t *Tuple) Errors() []*errest.Estimate {
	out := make([]*errest.Estimate, len(t.reals))
	for i, r := range t.reals {
		out[i] = r.err
	}
	return out
}

// IsMissing reports whether any component is missing.
func (t *Tuple) IsMissing() bool {
	for _, r := range t.reals {
		if r.IsMissing() {
			return true
		}
	}
	return false
}

// ToReference expresses the tuple in the reference type of its coordinate
// system. A tuple without one is returned unchanged.
func (t *Tuple) ToReference() (*Tuple, error) {
	if t.cs == nil {
		return t, nil
	}
	ref := t.cs.Reference()

	values := make([][]float64, len(t.reals))
	for i, r := range t.reals {
		values[i] = []float64{r.value}
	}
	res, err := coordsys.TransformCoordinates(coordsys.Request{
		Out:      ref,
		In:       t.typ,
		InCS:     t.cs,
		InUnits:  t.Units(),
		InErrors: t.Errors(),
		Values:   values,
	})
	if err != nil {
		return nil, err
	}

	reals := make([]*Real, ref.Dimension())
	for i := range reals {
		var e *errest.Estimate
		if res.Errors != nil {
			e = res.Errors[i]
		}
		r, err := New(ref.Component(i), res.Values[i][0], WithUnit(res.Units[i]), WithError(e))
		if err != nil {
			return nil, err
		}
		reals[i] = r
	}
	return NewTuple(ref, reals, nil)
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.reals))
	for i, r := range t.reals {
		parts[i] = r.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
