package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hostlog/internal/alert"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database        string           `json:"database" yaml:"database"`
	Target          string           `json:"target" yaml:"target"`
	Cycles          int              `json:"cycles" yaml:"cycles"`
	Interval        Duration         `json:"interval" yaml:"interval"`
	ProbeTimeout    Duration         `json:"probe_timeout" yaml:"probe_timeout"`
	CPUWindow       Duration         `json:"cpu_window" yaml:"cpu_window"`
	DiskPath        string           `json:"disk_path" yaml:"disk_path"`
	Thresholds      alert.Thresholds `json:"thresholds" yaml:"thresholds"`
	LogFile         string           `json:"log_file" yaml:"log_file"`
	MetricsTextfile string           `json:"metrics_textfile" yaml:"metrics_textfile"`
	Telegram        TelegramConfig   `json:"telegram" yaml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	BotToken string `json:"bot_token" yaml:"bot_token"`
	ChatID   int64  `json:"chat_id" yaml:"chat_id"`
}

// Duration is a time.Duration written as a string like "10s".
type Duration struct {
	time.Duration
}

func parseDuration(s string) (Duration, error) {
	v, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if v < 0 {
		return Duration{}, errors.New("duration must be >= 0")
	}
	return Duration{Duration: v}, nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New(`duration must be a string like "10s"`)
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.New(`duration must be a string like "10s"`)
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
