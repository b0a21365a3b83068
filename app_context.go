package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"hostlog/internal/alert"
	"hostlog/internal/collector"
	"hostlog/internal/metrics"
	"hostlog/internal/notify"
	"hostlog/internal/obs"
	"hostlog/internal/probe"
	"hostlog/internal/runner"
	"hostlog/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shirou/gopsutil/v3/host"
)

// AppContext holds everything wired for one sampling run.
type AppContext struct {
	Config     *Config
	RunID      string
	Hostname   string
	Out        io.Writer
	Log        *slog.Logger
	Metrics    *obs.Metrics
	Store      *store.Store
	Evaluator  *alert.Evaluator
	Controller *runner.Controller
}

// newBot is swapped in tests to avoid contacting Telegram.
var newBot = func(token string) (notify.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

func hostname(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Hostname == "" {
		return "unknown"
	}
	return info.Hostname
}

// InitApp wires the collector, store, evaluator and controller from cfg.
// Only an unusable Telegram setup is fatal; a store that cannot be
// initialised up front is retried on every append.
func InitApp(ctx context.Context, cfg *Config, runID string, out io.Writer, logger *slog.Logger) (*AppContext, error) {
	app := &AppContext{
		Config:   cfg,
		RunID:    runID,
		Hostname: hostname(ctx),
		Out:      out,
		Log:      logger,
		Metrics:  obs.New(),
	}

	notifiers := notify.Multi{notify.Console{W: out}}
	if cfg.Telegram.Enabled {
		bot, err := newBot(cfg.Telegram.BotToken)
		if err != nil {
			return nil, fmt.Errorf("start telegram bot: %w", err)
		}
		notifiers = append(notifiers, &notify.Telegram{Bot: bot, ChatID: cfg.Telegram.ChatID, Host: app.Hostname, Log: logger})
		logger.Info("Telegram alerts enabled", "chat_id", cfg.Telegram.ChatID)
	}
	app.Evaluator = alert.NewEvaluator(cfg.Thresholds, notifiers)

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("Store not initialised, will retry on append", "db", cfg.Database, "err", err)
		st = store.New(store.FileOpener(cfg.Database))
	}
	app.Store = st

	col := collector.New(
		metrics.NewHost(cfg.CPUWindow.Duration, cfg.DiskPath),
		probe.New(cfg.ProbeTimeout.Duration),
		cfg.Target,
	)

	app.Controller = &runner.Controller{
		Cycles:    cfg.Cycles,
		Interval:  cfg.Interval.Duration,
		Collector: col,
		Store:     st,
		Evaluator: app.Evaluator,
		Out:       out,
		Log:       logger,
		Metrics:   app.Metrics,
		RunID:     runID,
	}
	return app, nil
}
