// Package probe checks network reachability with the platform ping utility.
package probe

import (
	"context"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"hostlog/internal/cmdexec"
	"hostlog/internal/model"
)

// DefaultTimeout bounds a single probe, including process startup.
const DefaultTimeout = 5 * time.Second

// Pinger sends one echo request to a host.
type Pinger struct {
	Timeout time.Duration
	GOOS    string
	Runner  cmdexec.Runner
}

// New returns a Pinger using the active command runner.
func New(timeout time.Duration) *Pinger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pinger{Timeout: timeout, GOOS: runtime.GOOS}
}

// Probe pings host once. Every failure (timeout, unreachable host, missing
// binary) collapses to DOWN with latency -1; it never returns an error.
func (p *Pinger) Probe(ctx context.Context, host string) (model.PingStatus, float64) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	r := p.Runner
	if r == nil {
		r = cmdexec.Default()
	}
	out, err := r.Output(ctx, "ping", pingArgs(p.GOOS, host)...)
	if err != nil {
		return model.PingDown, model.DownLatency
	}
	return model.PingUp, ParseLatency(string(out))
}

func pingArgs(goos, host string) []string {
	if goos == "windows" {
		return []string{"-n", "1", host}
	}
	return []string{"-c", "1", host}
}

// Matches "time=23.4 ms" (Linux/macOS), "time=15ms" and "time<1ms" (Windows).
var latencyRe = regexp.MustCompile(`time[=<]\s*([0-9]+(?:\.[0-9]+)?)`)

// ParseLatency extracts the round-trip time in milliseconds from ping output.
// Output without a recognizable time token yields 0.
//
// This is text scraping of a tool meant for humans; localized ping builds
// print other shapes and will read as 0.
func ParseLatency(output string) float64 {
	m := latencyRe.FindStringSubmatch(output)
	if m == nil {
		return 0.0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.0
	}
	return v
}
