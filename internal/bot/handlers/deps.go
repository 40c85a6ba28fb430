package handlers

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/hysteriabot/internal/config"
	"github.com/edgard/hysteriabot/internal/host"
	"github.com/edgard/hysteriabot/internal/vpn"
)

// HandlerDeps provides dependencies for Telegram command and callback handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Host   host.Controller
	VPN    *vpn.Reader
}

// Messenger is the part of the Telegram API the handlers use.
// *tgbot.Bot implements it.
type Messenger interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error)
}

var _ Messenger = (*tgbot.Bot)(nil)

// handleFunc is a handler body that talks to Telegram through a Messenger.
type handleFunc func(ctx context.Context, api Messenger, update *models.Update)

// adapt turns a handler body into a go-telegram HandlerFunc.
func adapt(h handleFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		h(ctx, b, update)
	}
}
