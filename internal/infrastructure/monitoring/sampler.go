package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSampler takes one snapshot of memory and CPU usage
type SystemSampler interface {
	Sample(ctx context.Context) (SystemMetrics, error)
}

type hostSampler struct{}

// NewHostSampler returns a sampler backed by gopsutil and the Go runtime
func NewHostSampler() SystemSampler {
	return &hostSampler{}
}

func (s *hostSampler) Sample(ctx context.Context) (SystemMetrics, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to read memory usage: %w", err)
	}

	// zero interval compares against the previous call
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	var cpuUsage float64
	if len(percents) > 0 {
		cpuUsage = percents[0]
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return SystemMetrics{
		MemoryUsage: round2(vm.UsedPercent),
		CPUUsage:    round2(cpuUsage),
		Goroutines:  runtime.NumGoroutine(),
		HeapMB:      round2(float64(ms.HeapAlloc) / (1024 * 1024)),
		Timestamp:   time.Now().UTC(),
	}, nil
}
