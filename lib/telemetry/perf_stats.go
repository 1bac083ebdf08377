package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	apimetric "go.opentelemetry.io/otel/metric"
)

// PerfStats records process statistics as gauges.
type PerfStats struct {
	cpu         apimetric.Float64Gauge
	memory      apimetric.Int64Gauge
	liveObjects apimetric.Int64Gauge
	goroutines  apimetric.Int64Gauge
}

func NewPerfStats(provider apimetric.MeterProvider) (PerfStats, error) {
	meter := provider.Meter("statcharts/perf_stats")

	var stats PerfStats
	var err error
	stats.cpu, err = meter.Float64Gauge("cpu_usage", apimetric.WithUnit("%"))
	if err != nil {
		return PerfStats{}, err
	}
	stats.memory, err = meter.Int64Gauge("allocated_mb", apimetric.WithUnit("MB"))
	if err != nil {
		return PerfStats{}, err
	}
	stats.liveObjects, err = meter.Int64Gauge("live_objects")
	if err != nil {
		return PerfStats{}, err
	}
	stats.goroutines, err = meter.Int64Gauge("goroutine_count")
	if err != nil {
		return PerfStats{}, err
	}
	return stats, nil
}

// Record takes one sample, cpu usage is measured since the previous
// sample.
func (s PerfStats) Record(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	usage, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(usage) > 0 {
		s.cpu.Record(ctx, usage[0])
	} else if err != nil {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
	}

	s.memory.Record(ctx, int64(memStats.Alloc/1_000_000))
	s.liveObjects.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
	s.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}

// Run samples every interval until ctx is done, then once more.
func (s PerfStats) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Record(ctx)
		case <-ctx.Done():
			s.Record(context.WithoutCancel(ctx))
			return
		}
	}
}

// StartPerfStats samples process statistics in the background when
// metrics are exported. The returned function stops sampling after a
// last sample and must be called before Shutdown.
func (t Telemetry) StartPerfStats(ctx context.Context, interval time.Duration) func() {
	if t.MeterProvider == nil {
		return func() {}
	}
	stats, err := NewPerfStats(t.MeterProvider)
	if err != nil {
		slog.WarnContext(ctx, "failed to create perf stats gauges", "err", err)
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stats.Run(ctx, interval)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
