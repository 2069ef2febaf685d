package set

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/quanta/errdefs"
)

// Gridded1D is a set of strictly monotonic 1-D samples. Lookups bisect the
// samples and accept queries up to half a cell beyond either end.
type Gridded1D struct {
	*grid
}

// NewGridded1D builds a set from at least two strictly ascending or strictly
// descending samples.
func NewGridded1D(samples []float64, opts ...Option) (s *Gridded1D, err error) {
	start := time.Now()
	defer func() { recordBuild("gridded1d", len(samples), start, err) }()

	o := applyOptions(opts)
	ax, err := newSampledAxis(samples, o.copy)
	if err != nil {
		return nil, err
	}
	b, err := newBase("gridded1d", 1, 1, len(samples), o)
	if err != nil {
		return nil, err
	}
	return &Gridded1D{grid: newGrid(b, []axis{ax})}, nil
}

func newSampledAxis(samples []float64, copy bool) (sampledAxis, error) {
	n := len(samples)
	if n < 2 {
		return sampledAxis{}, fmt.Errorf("%w: gridded set needs at least two samples, got %d", errdefs.ErrInvalidGrid, n)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return sampledAxis{}, fmt.Errorf("%w: gridded sample %d is not finite", errdefs.ErrInvalidGrid, i)
		}
	}

	ascending := samples[1] > samples[0]
	for i := 1; i < n; i++ {
		if (samples[i] > samples[i-1]) != ascending || samples[i] == samples[i-1] {
			return sampledAxis{}, fmt.Errorf("%w: gridded samples are not strictly monotonic at %d", errdefs.ErrInvalidGrid, i)
		}
	}

	if copy {
		samples = slices.Clone(samples)
	}
	return sampledAxis{samples: samples, ascending: ascending}, nil
}

// Ascending reports the sample order.
func (s *Gridded1D) Ascending() bool { return s.axes[0].(sampledAxis).ascending }
