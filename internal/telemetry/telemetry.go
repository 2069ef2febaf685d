// Package telemetry holds the process-wide logger and metrics collector used
// by every quanta package.
//
// Both slots are accessed atomically so the public setters in the root
// package can be called concurrently with logging from any goroutine.
package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Collector receives operational metrics.
type Collector interface {
	// RecordSetBuild is called after a sample set has been constructed.
	RecordSetBuild(kind string, samples int, duration time.Duration, err error)

	// RecordTransform is called after each coordinate transform batch.
	// noop reports whether the reference types diverged and nothing was applied.
	RecordTransform(samples int, noop bool, duration time.Duration, err error)

	// RecordInterp is called after each ValueToInterp batch.
	// misses is the number of queries that fell outside the set.
	RecordInterp(queries, misses int, duration time.Duration)
}

type nopCollector struct{}

func (nopCollector) RecordSetBuild(string, int, time.Duration, error) {}
func (nopCollector) RecordTransform(int, bool, time.Duration, error)  {}
func (nopCollector) RecordInterp(int, int, time.Duration)             {}

type collectorSlot struct {
	c Collector
}

var (
	loggerPtr    atomic.Pointer[slog.Logger]
	collectorPtr atomic.Pointer[collectorSlot]
)

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
	collectorPtr.Store(&collectorSlot{c: nopCollector{}})
}

// Logger returns the active logger. It never returns nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// SetLogger replaces the active logger. nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Metrics returns the active collector. It never returns nil.
func Metrics() Collector {
	return collectorPtr.Load().c
}

// SetMetrics replaces the active collector. nil restores the no-op default.
func SetMetrics(c Collector) {
	if c == nil {
		c = nopCollector{}
	}
	collectorPtr.Store(&collectorSlot{c: c})
}
