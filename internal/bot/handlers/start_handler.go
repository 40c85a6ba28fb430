package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(startHandler{deps}.handle)
}

// startHandler greets the operator and shows the action menu.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) handle(ctx context.Context, api Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", update.Message.From.ID)

	_, err := api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        renderGreeting(update.Message.From.FirstName),
		ReplyMarkup: MenuKeyboard(),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send menu", "error", err, "chat_id", chatID)
		return
	}
	log.DebugContext(ctx, "Successfully sent menu", "chat_id", chatID)
}
