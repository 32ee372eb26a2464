package metrics

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats 系统状态快照
type SystemStats struct {
	Timestamp time.Time    `json:"timestamp"`
	CPU       CPUStats     `json:"cpu"`
	Memory    MemoryStats  `json:"memory"`
	Runtime   RuntimeStats `json:"runtime"`
	Host      HostStats    `json:"host"`
}

// CPUStats CPU使用情况
type CPUStats struct {
	UsagePercent float64 `json:"usage_percent"`
	Cores        int     `json:"cores"`
}

// MemoryStats 内存使用情况
type MemoryStats struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// RuntimeStats Go运行时状态
type RuntimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	NumGC      uint32 `json:"num_gc"`
}

// HostStats 主机信息
type HostStats struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Uptime   uint64 `json:"uptime"`
}

// CollectSystemStats 采集一次系统状态
func CollectSystemStats() *SystemStats {
	stats := &SystemStats{Timestamp: time.Now()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPU.UsagePercent = percents[0]
	}
	stats.CPU.Cores = runtime.NumCPU()

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.Memory = MemoryStats{
			Total:       vm.Total,
			Used:        vm.Used,
			UsedPercent: vm.UsedPercent,
		}
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	stats.Runtime = RuntimeStats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		NumGC:      ms.NumGC,
	}

	if info, err := host.Info(); err == nil {
		stats.Host = HostStats{
			Hostname: info.Hostname,
			OS:       info.OS,
			Uptime:   info.Uptime,
		}
	}
	return stats
}
