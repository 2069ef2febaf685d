package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [lo, hi).
// Locks only once per call.
func (r *RNG) FillUniform(dst []float64, lo, hi float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := hi - lo
	for i := range dst {
		dst[i] = lo + r.rand.Float64()*span
	}
}

// ScatteredPoints generates num points in [0, 1)^dim, point-major.
// Uses a single backing array.
func (r *RNG) ScatteredPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// ScatteredSamples generates num samples in [lo, hi)^dim, dimension-major
// as sample sets expect them.
func (r *RNG) ScatteredSamples(num, dim int, lo, hi float64) [][]float64 {
	samples := make([][]float64, dim)
	for j := range samples {
		samples[j] = make([]float64, num)
		r.FillUniform(samples[j], lo, hi)
	}
	return samples
}

// Permutation returns a random permutation of [0, n).
func (r *RNG) Permutation(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Shuffled returns the values lo, lo+step, ... (n of them) in random order.
// The values are distinct, which irregular 1-D sets require.
func (r *RNG) Shuffled(n int, lo, step float64) []float64 {
	out := make([]float64, n)
	for i, k := range r.Permutation(n) {
		out[i] = lo + float64(k)*step
	}
	return out
}

// SparseMissing sets each sample of the dimension-major array to NaN on
// every axis with probability rate. It returns the positions it cleared.
func (r *RNG) SparseMissing(samples [][]float64, rate float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(samples) == 0 {
		return nil
	}
	var cleared []int
	for i := range samples[0] {
		if r.rand.Float64() >= rate {
			continue
		}
		for j := range samples {
			samples[j][i] = math.NaN()
		}
		cleared = append(cleared, i)
	}
	return cleared
}

// Transpose converts between point-major and dimension-major arrays.
func Transpose(values [][]float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([][]float64, len(values[0]))
	for j := range out {
		out[j] = make([]float64, len(values))
		for i := range values {
			out[j][i] = values[i][j]
		}
	}
	return out
}

// InDeltaSlice asserts that expected and actual have the same length and
// agree elementwise within delta. NaN matches NaN.
func InDeltaSlice(t testing.TB, expected, actual []float64, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	if floats.EqualApprox(expected, actual, delta) {
		return true
	}
	for i := range expected {
		if math.IsNaN(expected[i]) && math.IsNaN(actual[i]) {
			continue
		}
		if !assert.InDelta(t, expected[i], actual[i], delta, msgAndArgs...) {
			return false
		}
	}
	return true
}

// InDeltaGrid is InDeltaSlice for dimension-major arrays.
func InDeltaGrid(t testing.TB, expected, actual [][]float64, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	ok := true
	for j := range expected {
		ok = InDeltaSlice(t, expected[j], actual[j], delta, msgAndArgs...) && ok
	}
	return ok
}

// WeightedSum returns sum(weights[k] * values[indices[k]]) for one axis.
func WeightedSum(values []float64, indices []int, weights []float64) float64 {
	sum := 0.0
	for k, i := range indices {
		sum += weights[k] * values[i]
	}
	return sum
}
