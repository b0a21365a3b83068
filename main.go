package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"hostlog/internal/alert"
	"hostlog/internal/cmdexec"
	"hostlog/internal/format"

	"github.com/google/uuid"
)

func printBanner(w io.Writer, t alert.Thresholds) {
	fmt.Fprintln(w, "Starting system monitoring and alert system...")
	fmt.Fprintf(w, "Thresholds - CPU: %s, Memory: %s, Disk: %s\n",
		format.Percent(t.CPU), format.Percent(t.Memory), format.Percent(t.Disk))
	fmt.Fprintln(w, format.Rule("="))
}

func run(ctx context.Context, cfg *Config, runID string, out io.Writer, logger *slog.Logger) error {
	app, err := InitApp(ctx, cfg, runID, out, logger)
	if err != nil {
		return err
	}

	if !cmdexec.Exists("ping") {
		logger.Warn("ping not found in PATH, every probe will report DOWN")
	}

	logger.Info("Sampling run starting",
		"host", app.Hostname,
		"db", cfg.Database,
		"target", cfg.Target,
		"cycles", cfg.Cycles,
		"interval", cfg.Interval.String())
	printBanner(out, app.Evaluator.Thresholds())

	sum := app.Controller.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := app.Metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("Metrics textfile not written", "file", cfg.MetricsTextfile, "err", err)
		}
	}
	logger.Info("Sampling run finished", "persisted", sum.Persisted, "failed", sum.Failed)
	return nil
}

func main() {
	runID := uuid.NewString()
	bootLogger := setupLogger("", runID)

	path := findConfigFile()
	cfg, err := loadConfig(path)
	if err != nil {
		bootLogger.Error("Config error", "err", err)
		os.Exit(1)
	}
	if path != "" {
		bootLogger.Info("Config loaded", "file", path)
	}

	logger := setupLogger(cfg.LogFile, runID)
	defer closeLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic recovered", "err", r, "stack", string(debug.Stack()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runID, os.Stdout, logger); err != nil {
		logger.Error("Run aborted", "err", err)
		closeLogger()
		os.Exit(1)
	}
}
