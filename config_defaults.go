package main

import (
	"time"

	"hostlog/internal/alert"
	"hostlog/internal/probe"
	"hostlog/internal/runner"
)

const (
	defaultDatabase = "log.db"
	defaultTarget   = "8.8.8.8"
)

func defaultConfigTemplate() Config {
	return Config{
		Database:     defaultDatabase,
		Target:       defaultTarget,
		Cycles:       runner.DefaultCycles,
		Interval:     Duration{runner.DefaultInterval},
		ProbeTimeout: Duration{probe.DefaultTimeout},
		CPUWindow:    Duration{time.Second},
		DiskPath:     "/",
		Thresholds:   alert.DefaultThresholds(),
	}
}
