package quanta

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/quanta/internal/telemetry"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter   *prometheus.CounterVec
//	    interpMisses   prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordSetBuild(kind string, samples int, d time.Duration, err error) {
//	    p.buildCounter.WithLabelValues(kind).Inc()
//	}
type MetricsCollector interface {
	// RecordSetBuild is called after each sample set construction.
	// kind names the set variant, samples is its length, err is nil if
	// successful.
	RecordSetBuild(kind string, samples int, duration time.Duration, err error)

	// RecordTransform is called after each coordinate transform batch.
	// noop reports that the reference types diverged and values passed
	// through unchanged.
	RecordTransform(samples int, noop bool, duration time.Duration, err error)

	// RecordInterp is called after each interpolation batch.
	// misses is the number of queries that fell outside the set.
	RecordInterp(queries, misses int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSetBuild(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordTransform(int, bool, time.Duration, error)  {}
func (NoopMetricsCollector) RecordInterp(int, int, time.Duration)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetBuildCount       atomic.Int64
	SetBuildErrors      atomic.Int64
	SetBuildSamples     atomic.Int64
	SetBuildTotalNanos  atomic.Int64
	TransformCount      atomic.Int64
	TransformErrors     atomic.Int64
	TransformNoops      atomic.Int64
	TransformSamples    atomic.Int64
	TransformTotalNanos atomic.Int64
	InterpCount         atomic.Int64
	InterpQueries       atomic.Int64
	InterpMisses        atomic.Int64
	InterpTotalNanos    atomic.Int64
}

// RecordSetBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetBuild(_ string, samples int, duration time.Duration, err error) {
	b.SetBuildCount.Add(1)
	b.SetBuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SetBuildErrors.Add(1)
		return
	}
	b.SetBuildSamples.Add(int64(samples))
}

// RecordTransform implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTransform(samples int, noop bool, duration time.Duration, err error) {
	b.TransformCount.Add(1)
	b.TransformTotalNanos.Add(duration.Nanoseconds())
	b.TransformSamples.Add(int64(samples))
	if noop {
		b.TransformNoops.Add(1)
	}
	if err != nil {
		b.TransformErrors.Add(1)
	}
}

// RecordInterp implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInterp(queries, misses int, duration time.Duration) {
	b.InterpCount.Add(1)
	b.InterpQueries.Add(int64(queries))
	b.InterpMisses.Add(int64(misses))
	b.InterpTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetBuildCount:     b.SetBuildCount.Load(),
		SetBuildErrors:    b.SetBuildErrors.Load(),
		SetBuildSamples:   b.SetBuildSamples.Load(),
		SetBuildAvgNanos:  avg(b.SetBuildTotalNanos.Load(), b.SetBuildCount.Load()),
		TransformCount:    b.TransformCount.Load(),
		TransformErrors:   b.TransformErrors.Load(),
		TransformNoops:    b.TransformNoops.Load(),
		TransformSamples:  b.TransformSamples.Load(),
		TransformAvgNanos: avg(b.TransformTotalNanos.Load(), b.TransformCount.Load()),
		InterpCount:       b.InterpCount.Load(),
		InterpQueries:     b.InterpQueries.Load(),
		InterpMisses:      b.InterpMisses.Load(),
		InterpAvgNanos:    avg(b.InterpTotalNanos.Load(), b.InterpCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetBuildCount     int64
	SetBuildErrors    int64
	SetBuildSamples   int64
	SetBuildAvgNanos  int64
	TransformCount    int64
	TransformErrors   int64
	TransformNoops    int64
	TransformSamples  int64
	TransformAvgNanos int64
	InterpCount       int64
	InterpQueries     int64
	InterpMisses      int64
	InterpAvgNanos    int64
}

// SetMetricsCollector installs m as the collector every quanta package
// reports to. nil restores the no-op default.
func SetMetricsCollector(m MetricsCollector) {
	if m == nil {
		telemetry.SetMetrics(nil)
		return
	}
	telemetry.SetMetrics(m)
}
