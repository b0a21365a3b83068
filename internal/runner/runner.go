// Package runner drives a bounded number of collect, persist and evaluate
// cycles at a fixed spacing.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"hostlog/internal/format"
	"hostlog/internal/model"
	"hostlog/internal/obs"
	"hostlog/internal/store"
)

type Collector interface {
	Collect(ctx context.Context) (model.SystemSample, error)
}

type Appender interface {
	Append(ctx context.Context, s model.SystemSample) (int64, error)
}

type Evaluator interface {
	Evaluate(cpu, memory, disk float64) []model.AlertEvent
}

// Recorder receives run counters. *obs.Metrics implements it.
type Recorder interface {
	CycleStarted()
	CycleFailed(stage string)
	Persisted()
	Alert(ev model.AlertEvent)
	Sampled(s model.SystemSample)
}

// Default run shape.
const (
	DefaultCycles   = 5
	DefaultInterval = 10 * time.Second
)

// Controller runs cycles strictly one after another on the calling goroutine.
type Controller struct {
	Cycles    int
	Interval  time.Duration
	Collector Collector
	Store     Appender
	Evaluator Evaluator

	Out     io.Writer
	Log     *slog.Logger
	Metrics Recorder
	RunID   string

	// Sleep blocks between cycles. It returns early with an error only
	// when ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State, cycle int)

	state State
}

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Cycles    int
	Persisted int
	Failed    int
	Alerts    int
	Elapsed   time.Duration
}

type cycleResult struct {
	persisted bool
	alerts    int
}

// cycleError tags a cycle failure with the stage that raised it.
type cycleError struct {
	stage string
	err   error
	stack []byte
}

func (e *cycleError) Error() string { return fmt.Sprintf("%s: %v", e.stage, e.err) }

func (e *cycleError) Unwrap() error { return e.err }

// State returns the controller's current phase.
func (c *Controller) State() State { return c.state }

// Run executes every cycle and always ends in Done. A cycle's failure is
// reported and the run moves on. Cancelling ctx only cuts a Waiting phase
// short: the cycle in flight completes uncancelled first.
func (c *Controller) Run(ctx context.Context) Summary {
	start := time.Now()
	sum := Summary{RunID: c.RunID}
	logger := c.logger()
	out := c.Out
	if out == nil {
		out = io.Discard
	}
	cycleCtx := context.WithoutCancel(ctx)

	c.state = Idle
	for i := 0; i < c.Cycles; i++ {
		sum.Cycles++
		if c.Metrics != nil {
			c.Metrics.CycleStarted()
		}

		res, cerr := c.runCycle(cycleCtx, i, out)
		sum.Alerts += res.alerts
		if res.persisted {
			sum.Persisted++
		}
		if cerr != nil {
			sum.Failed++
			c.report(out, logger, i, cerr)
		}

		fmt.Fprintln(out, format.Rule("-"))

		if i == c.Cycles-1 {
			break
		}
		c.transition(Waiting, i)
		fmt.Fprintf(out, "Waiting %s before next record...\n", format.FormatPeriod(c.Interval))
		if err := c.sleep(ctx, c.Interval); err != nil {
			logger.Warn("Run stopped while waiting", "completed_cycles", i+1, "err", err)
			break
		}
	}

	c.transition(Done, sum.Cycles-1)
	sum.Elapsed = time.Since(start)
	fmt.Fprintln(out, "Monitoring complete!")
	logger.Info("Monitoring complete",
		"cycles", sum.Cycles,
		"persisted", sum.Persisted,
		"failed", sum.Failed,
		"alerts", sum.Alerts,
		"elapsed", format.FormatDuration(sum.Elapsed))
	return sum
}

// runCycle performs one collect, persist, evaluate sequence. A panic at any
// point is returned as a cycleError; res keeps what completed before it.
func (c *Controller) runCycle(ctx context.Context, i int, out io.Writer) (res cycleResult, err *cycleError) {
	defer func() {
		if r := recover(); r != nil {
			err = &cycleError{stage: obs.StagePanic, err: fmt.Errorf("%v", r), stack: debug.Stack()}
		}
	}()

	c.transition(Collecting, i)
	sample, cerr := c.Collector.Collect(ctx)
	if cerr != nil {
		return res, &cycleError{stage: obs.StageCollect, err: cerr}
	}
	if c.Metrics != nil {
		c.Metrics.Sampled(sample)
	}

	c.transition(Persisting, i)
	id, perr := c.Store.Append(ctx, sample)
	if perr != nil {
		return res, &cycleError{stage: obs.StagePersist, err: perr}
	}
	res.persisted = true
	if c.Metrics != nil {
		c.Metrics.Persisted()
	}
	fmt.Fprintf(out, "Logged: %s\n", sample)
	c.logger().Info("Sample logged", "cycle", i+1, "id", id, "ping", sample.PingStatus)

	c.transition(Evaluating, i)
	events := c.Evaluator.Evaluate(sample.CPUPercent, sample.MemoryPercent, sample.DiskPercent)
	if c.Metrics != nil {
		for _, ev := range events {
			c.Metrics.Alert(ev)
		}
	}
	res.alerts = len(events)
	return res, nil
}

func (c *Controller) report(out io.Writer, logger *slog.Logger, i int, ce *cycleError) {
	switch ce.stage {
	case obs.StagePersist:
		cause := ce.err
		var se *store.StoreError
		if errors.As(cause, &se) {
			cause = se.Err
		}
		fmt.Fprintf(out, "Error inserting log: %v\n", cause)
		logger.Error("Cycle failed", "cycle", i+1, "stage", ce.stage, "err", ce.err)
	case obs.StagePanic:
		fmt.Fprintf(out, "Error: %v\n", ce.err)
		logger.Error("Cycle panicked", "cycle", i+1, "state", c.state.String(), "err", ce.err, "stack", string(ce.stack))
	default:
		fmt.Fprintf(out, "Error: %v\n", ce.err)
		logger.Error("Cycle failed", "cycle", i+1, "stage", ce.stage, "err", ce.err)
	}
	if c.Metrics != nil {
		c.Metrics.CycleFailed(ce.stage)
	}
}

func (c *Controller) transition(to State, cycle int) {
	from := c.state
	c.state = to
	if c.OnTransition != nil {
		c.OnTransition(from, to, cycle)
	}
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	return SleepContext(ctx, d)
}

func (c *Controller) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
