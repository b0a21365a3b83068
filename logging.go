package main

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	persistentLogFile *os.File
	loggingMu         sync.Mutex
)

// setupLogger installs the default structured logger. Records go to
// stdout and, when logPath is set, are also appended to that file.
func setupLogger(logPath, runID string) *slog.Logger {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	closeLoggerLocked()

	var out io.Writer = os.Stdout
	var openErr error
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			openErr = err
		} else {
			persistentLogFile = logFile
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler).With("app", "hostlog", "run_id", runID)
	slog.SetDefault(logger)

	switch {
	case openErr != nil:
		slog.Error("Persistent logging disabled: failed to open log file", "file", logPath, "err", openErr)
	case persistentLogFile != nil:
		slog.Info("Persistent logging enabled", "file", logPath)
	}
	return logger
}

func closeLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	closeLoggerLocked()
}

func closeLoggerLocked() {
	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}
