// Package parallel runs batch work over contiguous index ranges.
//
// Batch transforms and interpolation lookups are embarrassingly parallel
// over samples. For batches above a threshold the range is split into
// chunks and processed with a bounded errgroup; the first error cancels
// the remaining chunks.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest chunk worth handing to a goroutine.
const DefaultMinChunk = 4096

// Range describes a half-open chunk [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Split divides [0, n) into at most workers chunks of at least minChunk
// indices. It always returns at least one range when n > 0.
func Split(n, workers, minChunk int) []Range {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minChunk <= 0 {
		minChunk = DefaultMinChunk
	}
	chunks := n / minChunk
	if chunks < 1 {
		chunks = 1
	}
	if chunks > workers {
		chunks = workers
	}
	size := (n + chunks - 1) / chunks
	out := make([]Range, 0, chunks)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}

// For calls fn for every chunk of [0, n). With a single chunk fn runs on the
// calling goroutine.
func For(ctx context.Context, n, workers, minChunk int, fn func(ctx context.Context, r Range) error) error {
	ranges := Split(n, workers, minChunk)
	if len(ranges) == 0 {
		return nil
	}
	if len(ranges) == 1 {
		return fn(ctx, ranges[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(ranges))
	for _, r := range ranges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, r)
		})
	}
	return g.Wait()
}
