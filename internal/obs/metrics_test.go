package obs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostlog/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	m := New()

	m.CycleStarted()
	m.CycleStarted()
	m.CycleFailed(StagePersist)
	m.Persisted()
	m.Alert(model.AlertEvent{Metric: model.MetricDisk, Value: 95, Threshold: 90})
	m.Sampled(model.SystemSample{CPUPercent: 12, MemoryPercent: 34, DiskPercent: 56, PingTimeMs: 7})

	if got := testutil.ToFloat64(m.cycles); got != 2 {
		t.Fatalf("cycles = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues(StagePersist)); got != 1 {
		t.Fatalf("persist failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.persisted); got != 1 {
		t.Fatalf("persisted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.alerts.WithLabelValues(model.MetricDisk)); got != 1 {
		t.Fatalf("disk alerts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.last.WithLabelValues(model.MetricMemory)); got != 34 {
		t.Fatalf("last memory = %v, want 34", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.CycleStarted()

	path := filepath.Join(t.TempDir(), "hostlog.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(b), "hostlog_cycles_total 1") {
		t.Fatalf("textfile missing cycles counter:\n%s", b)
	}
}
