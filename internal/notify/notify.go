// Package notify delivers alert events to people.
package notify

import (
	"fmt"
	"io"
	"log/slog"

	"hostlog/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertPrefix marks alert lines on the console.
const AlertPrefix = "⚠️ ALERT:"

// Message is the human text of an alert, without the prefix.
func Message(ev model.AlertEvent) string {
	switch ev.Metric {
	case model.MetricCPU:
		return fmt.Sprintf("High CPU usage! (%.1f%%)", ev.Value)
	case model.MetricMemory:
		return fmt.Sprintf("High Memory usage! (%.1f%%)", ev.Value)
	case model.MetricDisk:
		return fmt.Sprintf("Low Disk Space! (%.1f%%)", ev.Value)
	}
	return fmt.Sprintf("%s above %.1f%%! (%.1f%%)", ev.Metric, ev.Threshold, ev.Value)
}

// Console prints alerts to a writer.
type Console struct {
	W io.Writer
}

func (c Console) Notify(ev model.AlertEvent) {
	fmt.Fprintf(c.W, "%s %s\n", AlertPrefix, Message(ev))
}

// BotAPI abstracts the Telegram bot methods used for alerts.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends alerts to a single chat. Send errors are logged only.
type Telegram struct {
	Bot    BotAPI
	ChatID int64
	Host   string
	Log    *slog.Logger
}

func (t *Telegram) Notify(ev model.AlertEvent) {
	text := fmt.Sprintf("⚠️ *ALERT* `%s`\n%s\nThreshold: `%.1f%%`", t.Host, Message(ev), ev.Threshold)
	m := tgbotapi.NewMessage(t.ChatID, text)
	m.ParseMode = "Markdown"
	if _, err := t.Bot.Send(m); err != nil {
		logger := t.Log
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Telegram alert failed", "metric", ev.Metric, "err", err)
	}
}

// Notifier delivers one alert.
type Notifier interface {
	Notify(ev model.AlertEvent)
}

// Multi fans an alert out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ev model.AlertEvent) {
	for _, n := range m {
		n.Notify(ev)
	}
}
