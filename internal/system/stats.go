package system

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

var startedAt = time.Now()

// Stats is the process and host snapshot reported by the health endpoint
type Stats struct {
	Goroutines    int         `json:"goroutines"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Memory        MemoryStats `json:"memory"`
	Timestamp     time.Time   `json:"timestamp"`
}

// MemoryStats represents host memory usage statistics
type MemoryStats struct {
	Total        uint64  `json:"total_bytes"`
	Available    uint64  `json:"available_bytes"`
	UsagePercent float64 `json:"usage_percent"`
	HeapAlloc    uint64  `json:"heap_alloc_bytes"`
}

// Collect gathers a Stats snapshot. Host memory comes from gopsutil; when the
// host cannot be queried the host fields stay zero and the error is returned
// alongside the partial snapshot.
func Collect() (*Stats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	stats := &Stats{
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
		Memory:        MemoryStats{HeapAlloc: ms.HeapAlloc},
		Timestamp:     time.Now().UTC(),
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, err
	}
	stats.Memory.Total = vm.Total
	stats.Memory.Available = vm.Available
	stats.Memory.UsagePercent = vm.UsedPercent

	return stats, nil
}
