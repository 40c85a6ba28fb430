// Package tasks implements scheduled tasks for the bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/hysteriabot/internal/config"
	"github.com/edgard/hysteriabot/internal/host"
)

// Notifier sends messages to Telegram. *bot.Bot implements it.
type Notifier interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Host     host.Controller
	Notifier Notifier
}
