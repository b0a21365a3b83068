// Package obs records run counters in a Prometheus registry.
//
// Nothing listens on the network: the registry is written once as a
// node_exporter textfile when the run finishes.
package obs

import (
	"hostlog/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages for hostlog_cycle_failures_total.
const (
	StageCollect = "collect"
	StagePersist = "persist"
	StagePanic   = "panic"
)

type Metrics struct {
	reg       *prometheus.Registry
	cycles    prometheus.Counter
	failures  *prometheus.CounterVec
	persisted prometheus.Counter
	alerts    *prometheus.CounterVec
	last      *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostlog_cycles_total",
			Help: "Sampling cycles attempted.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostlog_cycle_failures_total",
			Help: "Cycles that failed, by stage.",
		}, []string{"stage"}),
		persisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostlog_samples_persisted_total",
			Help: "Samples committed to the store.",
		}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostlog_alerts_total",
			Help: "Threshold alerts raised, by metric.",
		}, []string{"metric"}),
		last: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hostlog_last_sample",
			Help: "Most recent collected value, by metric.",
		}, []string{"metric"}),
	}
	m.reg.MustRegister(m.cycles, m.failures, m.persisted, m.alerts, m.last)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) CycleStarted() { m.cycles.Inc() }

func (m *Metrics) CycleFailed(stage string) { m.failures.WithLabelValues(stage).Inc() }

func (m *Metrics) Persisted() { m.persisted.Inc() }

func (m *Metrics) Alert(ev model.AlertEvent) { m.alerts.WithLabelValues(ev.Metric).Inc() }

// Sampled records the values of a collected sample.
func (m *Metrics) Sampled(s model.SystemSample) {
	m.last.WithLabelValues(model.MetricCPU).Set(s.CPUPercent)
	m.last.WithLabelValues(model.MetricMemory).Set(s.MemoryPercent)
	m.last.WithLabelValues(model.MetricDisk).Set(s.DiskPercent)
	m.last.WithLabelValues("ping_ms").Set(s.PingTimeMs)
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
