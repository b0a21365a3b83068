// Package alert compares samples against static utilization thresholds.
package alert

import "hostlog/internal/model"

// Thresholds are percentages a metric must strictly exceed to alert.
type Thresholds struct {
	CPU    float64 `json:"cpu" yaml:"cpu"`
	Memory float64 `json:"memory" yaml:"memory"`
	Disk   float64 `json:"disk" yaml:"disk"`
}

// DefaultThresholds returns CPU 80, memory 85, disk 90.
func DefaultThresholds() Thresholds {
	return Thresholds{CPU: 80.0, Memory: 85.0, Disk: 90.0}
}

// Notifier reports an alert to a user-visible channel.
type Notifier interface {
	Notify(ev model.AlertEvent)
}

// Evaluator produces and reports alert events.
type Evaluator struct {
	thresholds Thresholds
	notifier   Notifier
}

func NewEvaluator(t Thresholds, n Notifier) *Evaluator {
	return &Evaluator{thresholds: t, notifier: n}
}

func (e *Evaluator) Thresholds() Thresholds { return e.thresholds }

// Evaluate returns up to three events, always ordered CPU, memory, disk.
// Each event is passed to the notifier before Evaluate returns.
func (e *Evaluator) Evaluate(cpu, memory, disk float64) []model.AlertEvent {
	var events []model.AlertEvent
	if cpu > e.thresholds.CPU {
		events = append(events, model.AlertEvent{Metric: model.MetricCPU, Value: cpu, Threshold: e.thresholds.CPU})
	}
	if memory > e.thresholds.Memory {
		events = append(events, model.AlertEvent{Metric: model.MetricMemory, Value: memory, Threshold: e.thresholds.Memory})
	}
	if disk > e.thresholds.Disk {
		events = append(events, model.AlertEvent{Metric: model.MetricDisk, Value: disk, Threshold: e.thresholds.Disk})
	}

	if e.notifier != nil {
		for _, ev := range events {
			e.notifier.Notify(ev)
		}
	}
	return events
}
