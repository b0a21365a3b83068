package collector

import (
	"context"
	"time"

	"hostlog/internal/metrics"
	"hostlog/internal/model"
)

// Prober reports reachability of a host. It must not fail.
type Prober interface {
	Probe(ctx context.Context, host string) (model.PingStatus, float64)
}

// Collector assembles one SystemSample per call.
type Collector struct {
	Metrics metrics.Provider
	Prober  Prober
	Target  string
	Now     func() time.Time
}

func New(p metrics.Provider, pr Prober, target string) *Collector {
	return &Collector{Metrics: p, Prober: pr, Target: target, Now: time.Now}
}

// Collect captures the timestamp first, then reads metrics and probes the
// target. Provider failures are returned unchanged.
func (c *Collector) Collect(ctx context.Context) (model.SystemSample, error) {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	s := model.SystemSample{Timestamp: model.NewTimestamp(now())}

	u, err := c.Metrics.Usage(ctx)
	if err != nil {
		return model.SystemSample{}, err
	}
	s.CPUPercent = u.CPU
	s.MemoryPercent = u.Memory
	s.DiskPercent = u.Disk

	s.PingStatus, s.PingTimeMs = c.Prober.Probe(ctx, c.Target)
	return s, nil
}
