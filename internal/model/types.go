package model

import (
	"fmt"
	"time"
)

// TimestampLayout is the second-precision layout used for sample timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// PingStatus is the reachability classification of a probe.
type PingStatus string

const (
	PingUp   PingStatus = "UP"
	PingDown PingStatus = "DOWN"
)

// DownLatency is the latency reported for an unreachable target.
const DownLatency = -1.0

// SystemSample holds one point-in-time measurement bundle
type SystemSample struct {
	Timestamp     string
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	PingStatus    PingStatus
	PingTimeMs    float64
}

// NewTimestamp formats t the way samples are stored.
func NewTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// String renders the sample as a tuple, matching the console log line.
func (s SystemSample) String() string {
	return fmt.Sprintf("('%s', %.1f, %.1f, %.1f, '%s', %s)",
		s.Timestamp, s.CPUPercent, s.MemoryPercent, s.DiskPercent, s.PingStatus, formatLatency(s.PingTimeMs))
}

func formatLatency(ms float64) string {
	if ms == DownLatency {
		return "-1"
	}
	return fmt.Sprintf("%.1f", ms)
}

// Metric names used by alert events
const (
	MetricCPU    = "cpu"
	MetricMemory = "memory"
	MetricDisk   = "disk"
)

// AlertEvent is a threshold crossing for a single metric
type AlertEvent struct {
	Metric    string
	Value     float64
	Threshold float64
}

// Record is a persisted sample with its store-assigned identity
type Record struct {
	ID        int64
	Sample    SystemSample
	CreatedAt string
}
