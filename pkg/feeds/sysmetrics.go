package feeds

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// SysMetricsFetcher samples local CPU, memory, and load via gopsutil.
// No network I/O, but sampling CPU percent blocks briefly, so it runs
// through the scheduler like the remote fetchers.
type SysMetricsFetcher struct {
	// SampleWindow is how long the CPU percent sample observes. Short
	// enough to stay well inside the fetch timeout.
	SampleWindow time.Duration
}

// NewSysMetricsFetcher returns a fetcher with a 500ms CPU sample window.
func NewSysMetricsFetcher() *SysMetricsFetcher {
	return &SysMetricsFetcher{SampleWindow: 500 * time.Millisecond}
}

// Fetch implements Fetcher. Returns *SysSnapshot.
func (f *SysMetricsFetcher) Fetch(ctx context.Context) (any, error) {
	snap := &SysSnapshot{}

	pcts, err := cpu.PercentWithContext(ctx, f.SampleWindow, false)
	if err != nil {
		return nil, fmt.Errorf("sysmetrics: cpu: %w", err)
	}
	if len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("sysmetrics: memory: %w", err)
	}
	snap.MemPercent = vm.UsedPercent
	snap.MemUsed = vm.Used
	snap.MemTotal = vm.Total

	// Load and uptime are best-effort (unavailable on some platforms).
	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.Load1 = avg.Load1
		snap.Load5 = avg.Load5
		snap.Load15 = avg.Load15
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		snap.Uptime = time.Duration(up) * time.Second
	}
	snap.Hostname, _ = os.Hostname()

	return snap, nil
}
