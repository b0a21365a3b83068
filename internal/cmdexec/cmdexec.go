package cmdexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

var ErrNotFound = errors.New("command not found")

// Runner abstracts external command execution.
type Runner interface {
	Exists(name string) bool
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type defaultRunner struct{}

func (defaultRunner) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Output runs name and returns its stdout. A non-zero exit status is
// reported as *exec.ExitError alongside whatever stdout was produced.
func (defaultRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

var runner Runner = defaultRunner{}

// Default returns the active runner.
func Default() Runner {
	return runner
}

// SetRunner swaps the active runner. Returns a restore func.
func SetRunner(r Runner) (restore func()) {
	prev := runner
	runner = r
	return func() { runner = prev }
}

func Exists(name string) bool {
	return runner.Exists(name)
}

func Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return runner.Output(ctx, name, args...)
}
