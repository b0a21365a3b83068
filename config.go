package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFiles are tried in order; the first one present wins.
var configFiles = []string{"hostlog.json", "hostlog.yaml", "hostlog.yml"}

// findConfigFile returns the first existing candidate, or "" for none.
func findConfigFile() string {
	for _, p := range configFiles {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfigTemplate()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Database) == "" {
		errs = append(errs, errors.New("database is empty"))
	}
	if strings.TrimSpace(c.Target) == "" {
		errs = append(errs, errors.New("target is empty"))
	}
	if c.Cycles < 0 {
		errs = append(errs, fmt.Errorf("cycles must be >= 0, got %d", c.Cycles))
	}
	for name, v := range map[string]float64{
		"cpu":    c.Thresholds.CPU,
		"memory": c.Thresholds.Memory,
		"disk":   c.Thresholds.Disk,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("thresholds.%s must be within [0,100], got %.1f", name, v))
		}
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			errs = append(errs, errors.New("telegram.bot_token empty with telegram enabled"))
		}
		if c.Telegram.ChatID == 0 {
			errs = append(errs, errors.New("telegram.chat_id empty with telegram enabled"))
		}
	}
	return errors.Join(errs...)
}
