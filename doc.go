// Package quanta is a numeric core for physical data: units and their
// algebra, quantity dimensions, values with error estimates, coordinate
// system transforms and spatial sample sets.
//
// # Quick Start
//
// Converting between units:
//
//	kmh, _ := quanta.Convert(ctx, []float64{10}, "m/s", "km/h")
//
// Arithmetic on measured values:
//
//	a, _ := scalar.New(realtype.Altitude, 1200, scalar.WithErrorValue(5))
//	b, _ := scalar.New(realtype.Altitude, 3, scalar.WithUnit(unit.MustLookup("km")))
//	sum, _ := a.Add(b, scalar.WithErrorMode(arith.Independent))
//
// Locating values in scattered samples:
//
//	s, _ := set.NewIrregular(samples)
//	indices, weights, _ := s.ValueToInterp(queries)
//
// # Packages
//
//   - unit: base, derived, scaled, offset and promiscuous units
//   - quantity: dimension vectors and named quantities
//   - errest: error estimates and their propagation
//   - realtype: real and tuple types
//   - coordsys: coordinate systems and TransformCoordinates
//   - scalar: Real values with arithmetic
//   - set: linear, gridded and irregular sample sets
//
// # Observability
//
// Every package logs through a shared slog logger and reports to a shared
// MetricsCollector. Both default to no-ops:
//
//	stats := &quanta.BasicMetricsCollector{}
//	quanta.Configure(
//	    quanta.WithLogger(quanta.NewJSONLogger(slog.LevelDebug)),
//	    quanta.WithMetricsCollector(stats),
//	)
package quanta
