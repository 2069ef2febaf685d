package coordsys

import (
	"context"
	"time"

	"github.com/hupe1980/quanta/internal/conv"
	"github.com/hupe1980/quanta/internal/parallel"
	"github.com/hupe1980/quanta/internal/telemetry"
	"github.com/hupe1980/quanta/realtype"
	"github.com/hupe1980/quanta/unit"
)

// ChunkedOption configures a Chunked system.
type ChunkedOption func(*chunkedOptions)

type chunkedOptions struct {
	workers  int
	minChunk int
}

// WithWorkers bounds the number of concurrent chunks. Zero means
// GOMAXPROCS.
func WithWorkers(n int) ChunkedOption {
	return func(o *chunkedOptions) { o.workers = n }
}

// WithMinChunk sets the smallest batch handed to a single goroutine.
func WithMinChunk(n int) ChunkedOption {
	return func(o *chunkedOptions) { o.minChunk = n }
}

// Chunked splits large batches across goroutines and runs the wrapped
// system on each chunk. Results are identical to the wrapped system's.
type Chunked struct {
	inner CoordinateSystem
	opts  chunkedOptions
}

// NewChunked wraps inner.
func NewChunked(inner CoordinateSystem, opts ...ChunkedOption) *Chunked {
	o := chunkedOptions{minChunk: parallel.DefaultMinChunk}
	for _, opt := range opts {
		opt(&o)
	}
	return &Chunked{inner: inner, opts: o}
}

func (c *Chunked) Reference() *realtype.TupleType { return c.inner.Reference() }
func (c *Chunked) Dimension() int                 { return c.inner.Dimension() }
func (c *Chunked) Units() []unit.Unit             { return c.inner.Units() }

// Unwrap returns the wrapped system.
func (c *Chunked) Unwrap() CoordinateSystem { return c.inner }

func (c *Chunked) ToReference(values [][]float64) ([][]float64, error) {
	return c.run("chunked to reference", values, c.inner.ToReference)
}

func (c *Chunked) FromReference(values [][]float64) ([][]float64, error) {
	return c.run("chunked from reference", values, c.inner.FromReference)
}

func (c *Chunked) run(label string, values [][]float64, fn func([][]float64) ([][]float64, error)) ([][]float64, error) {
	dim := c.inner.Dimension()
	n, err := conv.CheckShape(label, values, dim)
	if err != nil {
		return nil, err
	}

	ranges := parallel.Split(n, c.opts.workers, c.opts.minChunk)
	if len(ranges) <= 1 {
		return fn(values)
	}

	start := time.Now()
	out := alloc(dim, n)
	err = parallel.For(context.Background(), n, c.opts.workers, c.opts.minChunk, func(_ context.Context, r parallel.Range) error {
		chunk := make([][]float64, dim)
		for i := range values {
			chunk[i] = values[i][r.Start:r.End]
		}
		res, err := fn(chunk)
		if err != nil {
			return err
		}
		for i := range res {
			copy(out[i][r.Start:r.End], res[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	telemetry.Logger().Debug("chunked transform", "samples", n, "chunks", len(ranges), "elapsed", time.Since(start))
	return out, nil
}

func (c *Chunked) Equal(other CoordinateSystem) bool {
	return c.inner.Equal(unwrap(other))
}

// unwrap strips Chunked and Caching wrappers.
func unwrap(cs CoordinateSystem) CoordinateSystem {
	for {
		w, ok := cs.(interface{ Unwrap() CoordinateSystem })
		if !ok {
			return cs
		}
		cs = w.Unwrap()
	}
}
