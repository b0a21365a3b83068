// Package metrics reads CPU, memory and disk utilization from the OS.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Usage is a utilization snapshot in percent.
type Usage struct {
	CPU    float64
	Memory float64
	Disk   float64
}

// Provider returns the current host utilization.
type Provider interface {
	Usage(ctx context.Context) (Usage, error)
}

// ProviderError reports which metric could not be read.
type ProviderError struct {
	Metric string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("read %s usage: %v", e.Metric, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Host reads utilization with gopsutil. CPU is averaged over CPUWindow,
// so Usage blocks for at least that long.
type Host struct {
	CPUWindow time.Duration
	DiskPath  string
}

// NewHost returns a provider sampling CPU over window and disk usage of path.
func NewHost(window time.Duration, path string) *Host {
	if path == "" {
		path = "/"
	}
	return &Host{CPUWindow: window, DiskPath: path}
}

func (h *Host) Usage(ctx context.Context) (Usage, error) {
	var u Usage

	c, err := cpu.PercentWithContext(ctx, h.CPUWindow, false)
	if err != nil {
		return u, &ProviderError{Metric: "cpu", Err: err}
	}
	if len(c) == 0 {
		return u, &ProviderError{Metric: "cpu", Err: fmt.Errorf("no samples")}
	}
	u.CPU = c[0]

	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return u, &ProviderError{Metric: "memory", Err: err}
	}
	u.Memory = v.UsedPercent

	d, err := disk.UsageWithContext(ctx, h.DiskPath)
	if err != nil {
		return u, &ProviderError{Metric: "disk", Err: err}
	}
	u.Disk = d.UsedPercent

	return u, nil
}
