package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		workers  int
		minChunk int
		want     int
	}{
		{"Empty", 0, 4, 10, 0},
		{"Small", 5, 4, 10, 1},
		{"Even", 100, 4, 10, 4},
		{"WorkerBound", 1000, 2, 10, 2},
		{"ChunkBound", 30, 8, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Split(tt.n, tt.workers, tt.minChunk)
			require.Len(t, ranges, tt.want)

			covered := 0
			for i, r := range ranges {
				if i > 0 {
					assert.Equal(t, ranges[i-1].End, r.Start)
				}
				covered += r.Len()
			}
			assert.Equal(t, tt.n, covered)
		})
	}
}

func TestFor(t *testing.T) {
	out := make([]int, 1000)
	err := For(context.Background(), len(out), 4, 100, func(_ context.Context, r Range) error {
		for i := r.Start; i < r.End; i++ {
			out[i] = i * 2
		}
		return nil
	})
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, i*2, v)
	}
}

func TestForError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	err := For(context.Background(), 1000, 4, 100, func(_ context.Context, r Range) error {
		calls.Add(1)
		if r.Start == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Positive(t, calls.Load())
}
