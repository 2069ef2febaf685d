package coordsys

import (
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/quanta/errdefs"
	"github.com/hupe1980/quanta/errest"
	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// ToReferenceUnits converts values from units into the units cs expects,
// maps them to the reference and returns the reference default units
// alongside. units may be nil or contain nil entries for unknown units.
func ToReferenceUnits(cs CoordinateSystem, values [][]float64, units []unit.Unit) ([][]float64, []unit.Unit, error) {
	in, err := unit.ConvertTuple(values, units, cs.Units(), true)
	if err != nil {
		return nil, nil, err
	}
	out, err := cs.ToReference(in)
	if err != nil {
		return nil, nil, err
	}
	return out, cs.Reference().DefaultUnits(), nil
}

// FromReferenceUnits converts values from units into the reference default
// units, maps them out of the reference and returns the units of cs.
func FromReferenceUnits(cs CoordinateSystem, values [][]float64, units []unit.Unit) ([][]float64, []unit.Unit, error) {
	in, err := unit.ConvertTuple(values, units, cs.Reference().DefaultUnits(), true)
	if err != nil {
		return nil, nil, err
	}
	out, err := cs.FromReference(in)
	if err != nil {
		return nil, nil, err
	}
	u := cs.Units()
	if u == nil {
		u = make([]unit.Unit, cs.Dimension())
	}
	return out, u, nil
}

// Request describes one batch transform from tuple type In to tuple type
// Out.
type Request struct {
	// Out is the target tuple type.
	Out *realtype.TupleType
	// OutCS overrides Out's declared coordinate system.
	OutCS CoordinateSystem
	// OutUnits are the requested result units. nil, or a nil entry, keeps
	// whatever unit the transform produced for that axis.
	OutUnits []unit.Unit

	// In is the source tuple type.
	In *realtype.TupleType
	// InCS overrides In's declared coordinate system.
	InCS CoordinateSystem
	// InUnits are the units Values are expressed in.
	InUnits []unit.Unit
	// InErrors holds one estimate per axis, or nil.
	InErrors []*errest.Estimate

	// Values is the dimension-major batch. It is never modified.
	Values [][]float64
}

// Result is the outcome of TransformCoordinates.
type Result struct {
	// Values holds the transformed batch.
	Values [][]float64
	// Units holds the unit of each result axis. It is always populated,
	// with nil entries where the unit is unknown.
	Units []unit.Unit
	// Errors holds the propagated estimates, or nil when the request had
	// none.
	Errors []*errest.Estimate
	// NoOp reports that In and Out live on unrelated references and the
	// values were passed through untransformed.
	NoOp bool
}

// TransformCoordinates moves a batch from In to Out. The path is chosen
// from the two tuple types:
//
//   - equal types: the batch passes through, unless both sides carry
//     different coordinate systems, in which case it goes to the shared
//     reference and back out again. A system on one side only is ignored;
//   - shared reference: the batch goes to the reference through In's
//     system and out through Out's system, skipping a side that is the
//     reference itself;
//   - unrelated references: nothing is applied and Result.NoOp is set.
//     OutUnits are ignored and Result.Units reports the input units.
//
// Error estimates follow the same path as probe batches and are rebuilt
// from the spread of the transformed probes. Finally every axis is
// converted into OutUnits.
func TransformCoordinates(req Request) (res *Result, err error) {
	start := time.Now()
	samples := 0
	if len(req.Values) > 0 {
		samples = len(req.Values[0])
	}
	defer func() {
		noop := res != nil && res.NoOp
		telemetry.Metrics().RecordTransform(samples, noop, time.Since(start), err)
	}()

	res, err = transformFree(req)
	if err != nil {
		return nil, err
	}
	if req.OutUnits == nil || res.NoOp {
		return res, nil
	}

	for i, to := range req.OutUnits {
		if to == nil {
			continue
		}
		var est *errest.Estimate
		if res.Errors != nil {
			est = res.Errors[i]
		}
		values, converted, err := errest.TransformUnits(to, res.Units[i], est, res.Values[i])
		if err != nil {
			return nil, fmt.Errorf("transform coordinates axis %d: %w", i, err)
		}
		res.Values[i] = values
		res.Units[i] = to
		if res.Errors != nil {
			res.Errors[i] = converted
		}
	}
	return res, nil
}

// TransformCoordinates32 runs TransformCoordinates on a float32 batch.
// req.Values is ignored.
func TransformCoordinates32(req Request, values [][]float32) ([][]float32, *Result, error) {
	req.Values = conv.Widen(values)
	res, err := TransformCoordinates(req)
	if err != nil {
		return nil, nil, err
	}
	return conv.Narrow(res.Values), res, nil
}

// TransformCoordinatesFreeUnits is TransformCoordinates without the final
// unit conversion: Result.Units reports whatever units the transform chain
// produced. req.OutUnits is ignored.
func TransformCoordinatesFreeUnits(req Request) (*Result, error) {
	req.OutUnits = nil
	return TransformCoordinates(req)
}

// batch carries values and error probes through a chain of systems.
type batch struct {
	values  [][]float64
	probes  [][]float64
	units   []unit.Unit
	touched bool
}

func (b *batch) step(cs CoordinateSystem, fn func(CoordinateSystem, [][]float64, []unit.Unit) ([][]float64, []unit.Unit, error)) error {
	values, units, err := fn(cs, b.values, b.units)
	if err != nil {
		return err
	}
	if b.probes != nil {
		probes, _, err := fn(cs, b.probes, b.units)
		if err != nil {
			return err
		}
		b.probes = probes
	}
	b.values = values
	b.units = units
	b.touched = true
	return nil
}

func transformFree(req Request) (*Result, error) {
	in, out := req.In, req.Out
	if in == nil || out == nil {
		return nil, fmt.Errorf("%w: transform requires both tuple types", errdefs.ErrIllegalOperation)
	}
	dim := in.Dimension()
	if out.Dimension() != dim {
		return nil, errdefs.NewDimensionError("transform coordinates", dim, out.Dimension())
	}
	if _, err := conv.CheckShape("transform coordinates", req.Values, dim); err != nil {
		return nil, err
	}
	if req.InUnits != nil && len(req.InUnits) != dim {
		return nil, errdefs.NewDimensionError("transform coordinates input units", dim, len(req.InUnits))
	}
	if req.OutUnits != nil && len(req.OutUnits) != dim {
		return nil, errdefs.NewDimensionError("transform coordinates output units", dim, len(req.OutUnits))
	}
	if req.InErrors != nil && len(req.InErrors) != dim {
		return nil, errdefs.NewDimensionError("transform coordinates input errors", dim, len(req.InErrors))
	}

	b := &batch{
		values: conv.Clone(req.Values),
		units:  make([]unit.Unit, dim),
	}
	if req.InUnits != nil {
		copy(b.units, req.InUnits)
	}
	withErrors := req.InErrors != nil
	for _, e := range req.InErrors {
		if e == nil {
			withErrors = false
		}
	}
	if withErrors {
		b.probes = errest.InitErrorValues(req.InErrors, nil)
	}

	coordIn := req.InCS
	if coordIn == nil {
		coordIn = in.CoordinateSystem()
	}
	coordOut := req.OutCS
	if coordOut == nil {
		coordOut = out.CoordinateSystem()
	}

	noop := false
	if out.Equal(in) {
		switch {
		case coordIn == nil || coordOut == nil:
			// A system on one side only leaves nothing to undo.
		case !coordIn.Equal(coordOut):
			if err := b.step(coordIn, ToReferenceUnits); err != nil {
				return nil, err
			}
			if err := b.step(coordOut, FromReferenceUnits); err != nil {
				return nil, err
			}
		}
	} else {
		refIn, err := resolveReference(in, coordIn)
		if err != nil {
			return nil, err
		}
		refOut, err := resolveReference(out, coordOut)
		if err != nil {
			return nil, err
		}

		if refOut.Equal(refIn) {
			if coordIn != nil {
				if err := b.step(coordIn, ToReferenceUnits); err != nil {
					return nil, err
				}
			}
			if coordOut != nil {
				if err := b.step(coordOut, FromReferenceUnits); err != nil {
					return nil, err
				}
			}
		} else {
			noop = true
			telemetry.Logger().Warn("coordinate transform between unrelated references left values unchanged",
				"in", in.String(), "out", out.String(),
				"in_reference", refIn.String(), "out_reference", refOut.String())
		}
	}

	res := &Result{Values: b.values, Units: b.units, NoOp: noop}
	switch {
	case !withErrors:
	case b.touched:
		res.Errors = probeErrors(b)
	default:
		res.Errors = append([]*errest.Estimate(nil), req.InErrors...)
	}
	return res, nil
}

// resolveReference returns the reference tuple type reached through cs, or
// t itself when there is no system. A declared system on t must agree with
// cs about the reference.
func resolveReference(t *realtype.TupleType, cs CoordinateSystem) (*realtype.TupleType, error) {
	if cs == nil {
		return t, nil
	}
	ref := cs.Reference()
	if t.CoordinateSystem() != nil && !ref.Equal(t.Reference()) {
		return nil, fmt.Errorf("%w: %s references %s but the system references %s",
			errdefs.ErrInconsistentCoordinateSystem, t, t.Reference(), ref)
	}
	return ref, nil
}

// probeErrors rebuilds per-axis estimates from transformed probes. The
// error of output axis k combines its responses to every input axis in
// quadrature.
func probeErrors(b *batch) []*errest.Estimate {
	dim := len(b.values)
	out := make([]*errest.Estimate, dim)
	for k := 0; k < dim; k++ {
		row := b.probes[k]
		sum := 0.0
		for i := 0; i < dim; i++ {
			d := row[2*i+1] - row[2*i]
			sum += d * d
		}
		out[k] = errest.FromSamples(b.values[k], math.Sqrt(sum), b.units[k])
	}
	return out
}
