// Package hostinfo collects basic host metadata: operating system,
// kernel release, architecture, CPU and memory. It backs both the
// get_host_info tool and the standalone sidecar server.
package hostinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info is the host snapshot returned to callers. Field order matches
// the JSON document the agent receives.
type Info struct {
	System            string  `json:"system"`
	Release           string  `json:"release"`
	Machine           string  `json:"machine"`
	Processor         string  `json:"processor"`
	MemoryGB          float64 `json:"memory_gb"`
	AvailableMemoryGB float64 `json:"available_memory_gb"`
	CPUCount          int     `json:"cpu_count"`
}

// JSON renders the snapshot as a compact JSON document.
func (i Info) JSON() (string, error) {
	b, err := json.Marshal(i)
	if err != nil {
		return "", fmt.Errorf("marshal host info: %w", err)
	}
	return string(b), nil
}

// Collector gathers the snapshot. The probe functions default to
// gopsutil and are swapped in tests.
type Collector struct {
	hostInfo      func(ctx context.Context) (*host.InfoStat, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	cpuInfo       func(ctx context.Context) ([]cpu.InfoStat, error)
	cpuCounts     func(ctx context.Context, logical bool) (int, error)
}

// NewCollector builds a collector backed by the real host probes.
func NewCollector() *Collector {
	return &Collector{
		hostInfo:      host.InfoWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		cpuInfo:       cpu.InfoWithContext,
		cpuCounts:     cpu.CountsWithContext,
	}
}

// Collect gathers a snapshot of the current host.
func Collect(ctx context.Context) (Info, error) {
	return NewCollector().Collect(ctx)
}

// Collect probes the host. A missing CPU model is tolerated and left
// empty; any other probe failure aborts the snapshot.
func (c *Collector) Collect(ctx context.Context) (Info, error) {
	hostStat, err := c.hostInfo(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("read host info: %w", err)
	}
	memStat, err := c.virtualMemory(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("read virtual memory: %w", err)
	}
	count, err := c.cpuCounts(ctx, true)
	if err != nil {
		return Info{}, fmt.Errorf("count cpus: %w", err)
	}

	processor := ""
	if cpus, err := c.cpuInfo(ctx); err == nil && len(cpus) > 0 {
		processor = cpus[0].ModelName
	}

	return Info{
		System:            systemName(hostStat.OS),
		Release:           hostStat.KernelVersion,
		Machine:           hostStat.KernelArch,
		Processor:         processor,
		MemoryGB:          roundGB(memStat.Total),
		AvailableMemoryGB: roundGB(memStat.Available),
		CPUCount:          count,
	}, nil
}

// systemName maps a GOOS-style identifier to the conventional platform
// name.
func systemName(os string) string {
	switch os {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	default:
		return os
	}
}

// roundGB converts bytes to gibibytes rounded to two decimal places.
func roundGB(bytes uint64) float64 {
	gb := float64(bytes) / (1 << 30)
	return math.Round(gb*100) / 100
}
