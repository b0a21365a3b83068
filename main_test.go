package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostlog/internal/alert"
	"hostlog/internal/model"
	"hostlog/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, alert.DefaultThresholds())

	want := "Starting system monitoring and alert system...\n" +
		"Thresholds - CPU: 80.0%, Memory: 85.0%, Disk: 90.0%\n" +
		strings.Repeat("=", 60) + "\n"
	if buf.String() != want {
		t.Fatalf("banner = %q, want %q", buf.String(), want)
	}
}

func TestInitAppWiresTelegram(t *testing.T) {
	bot := &fakeBot{}
	prev := newBot
	newBot = func(token string) (notify.BotAPI, error) { return bot, nil }
	t.Cleanup(func() { newBot = prev })

	cfg := defaultConfigTemplate()
	cfg.Database = filepath.Join(t.TempDir(), "log.db")
	cfg.Telegram = TelegramConfig{Enabled: true, BotToken: "t", ChatID: 7}

	var out bytes.Buffer
	app, err := InitApp(context.Background(), &cfg, "run-1", &out, quietLogger())
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	events := app.Evaluator.Evaluate(99, 10, 10)
	if len(events) != 1 || events[0].Metric != model.MetricCPU {
		t.Fatalf("unexpected events %+v", events)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected telegram alert, got %d messages", len(bot.sent))
	}
	if !strings.Contains(out.String(), "⚠️ ALERT: High CPU usage!") {
		t.Fatalf("expected console alert, got %q", out.String())
	}
	if _, err := os.Stat(cfg.Database); err != nil {
		t.Fatalf("expected store file to be created: %v", err)
	}
}

func TestInitAppTelegramFailure(t *testing.T) {
	prev := newBot
	newBot = func(token string) (notify.BotAPI, error) { return nil, errors.New("unauthorized") }
	t.Cleanup(func() { newBot = prev })

	cfg := defaultConfigTemplate()
	cfg.Database = filepath.Join(t.TempDir(), "log.db")
	cfg.Telegram = TelegramConfig{Enabled: true, BotToken: "bad", ChatID: 7}

	if _, err := InitApp(context.Background(), &cfg, "run-1", io.Discard, quietLogger()); err == nil {
		t.Fatalf("expected telegram start error")
	}
}

func TestRunZeroCyclesWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfigTemplate()
	cfg.Database = filepath.Join(dir, "log.db")
	cfg.Cycles = 0
	cfg.MetricsTextfile = filepath.Join(dir, "hostlog.prom")

	var out bytes.Buffer
	if err := run(context.Background(), &cfg, "run-1", &out, quietLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Starting system monitoring and alert system...") {
		t.Fatalf("missing banner:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Monitoring complete!\n") {
		t.Fatalf("missing completion notice:\n%s", out.String())
	}
	b, err := os.ReadFile(cfg.MetricsTextfile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(b), "hostlog_cycles_total 0") {
		t.Fatalf("unexpected metrics textfile:\n%s", b)
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostlog.log")
	prev := slog.Default()
	t.Cleanup(func() {
		closeLogger()
		slog.SetDefault(prev)
	})

	logger := setupLogger(path, "run-42")
	logger.Info("hello")
	closeLogger()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "run_id=run-42") || !strings.Contains(string(b), "msg=hello") {
		t.Fatalf("unexpected log contents:\n%s", b)
	}
}
