package batch

import (
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultMinAvailableBytes is the memory floor below which batches run
// sequentially.
const DefaultMinAvailableBytes = 512 * 1024 * 1024

// DefaultMaxCPUPercent is the CPU utilization ceiling above which batches run
// sequentially.
const DefaultMaxCPUPercent = 85.0

// ResourceMonitor samples system load to size the worker pool before each
// batch. The zero value is a disabled monitor.
type ResourceMonitor struct {
	Enabled           bool
	MinAvailableBytes uint64
	MaxCPUPercent     float64

	// memFn and cpuFn are swappable for tests.
	memFn  func() (uint64, error)
	cpuFn  func() (float64, error)
	logger *slog.Logger
}

// NewResourceMonitor creates an enabled monitor with default thresholds.
func NewResourceMonitor() *ResourceMonitor {
	return &ResourceMonitor{
		Enabled:           true,
		MinAvailableBytes: DefaultMinAvailableBytes,
		MaxCPUPercent:     DefaultMaxCPUPercent,
	}
}

func availableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

func cpuUtilization() (float64, error) {
	// Zero interval compares against the previous sample instead of blocking.
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

// Recommend returns the worker count to use for a batch given the configured
// maximum. Under memory or CPU pressure it returns 1; otherwise it caps the
// maximum at half the visible CPU count to leave headroom for collaborator
// processes. A disabled monitor passes the maximum through unchanged.
func (m *ResourceMonitor) Recommend(maxWorkers int) int {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if m == nil || !m.Enabled {
		return maxWorkers
	}

	logger := m.logger
	if logger == nil {
		logger = slog.Default()
	}
	memFn := m.memFn
	if memFn == nil {
		memFn = availableMemory
	}
	cpuFn := m.cpuFn
	if cpuFn == nil {
		cpuFn = cpuUtilization
	}

	available, err := memFn()
	if err != nil {
		logger.Warn("memory sampling failed, keeping configured workers", "error", err)
	} else if available < m.MinAvailableBytes {
		logger.Info("low memory, forcing sequential batch",
			"availableBytes", available, "minBytes", m.MinAvailableBytes)
		return 1
	}

	utilization, err := cpuFn()
	if err != nil {
		logger.Warn("cpu sampling failed, keeping configured workers", "error", err)
	} else if utilization > m.MaxCPUPercent {
		logger.Info("high cpu, forcing sequential batch",
			"cpuPercent", utilization, "maxPercent", m.MaxCPUPercent)
		return 1
	}

	headroom := max(runtime.NumCPU()/2, 1)
	return min(maxWorkers, headroom)
}
