// Package testutil provides testing utilities for quanta.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible scattered samples and
// for comparing float slices within a tolerance.
//
// # Random Samples
//
//	rng := testutil.NewRNG(seed)
//	points := rng.ScatteredPoints(200, 2)          // point-major, [0, 1)
//	samples := rng.ScatteredSamples(200, 2, -1, 1) // dimension-major
//	values := rng.Shuffled(10, 0, 1)               // distinct, unordered
//
// # Tolerances
//
//	testutil.InDeltaSlice(t, want, got, 1e-9)
//	testutil.InDeltaGrid(t, wantValues, gotValues, 1e-9)
package testutil
