// Package handlers contains the Telegram command and callback handlers,
// their registration and the operator-only middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// OperatorOnly creates a middleware that lets only the configured operator
// through. Other senders of a message get the access denied reply. Callback
// queries from other senders are acknowledged and dropped without a reply,
// so the bot does not disclose anything to them.
func OperatorOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if rejectNonOperator(ctx, deps, b, update) {
				return
			}
			next(ctx, b, update)
		}
	}
}

// rejectNonOperator reports whether the update was rejected, replying to
// the sender where that is appropriate.
func rejectNonOperator(ctx context.Context, deps HandlerDeps, api Messenger, update *models.Update) bool {
	log := deps.Logger.With("middleware", "OperatorOnly")
	operatorID := deps.Config.Telegram.OperatorID

	switch {
	case update.Message != nil:
		if update.Message.From == nil {
			log.WarnContext(ctx, "Dropping message without sender", "update_id", update.ID)
			return true
		}

		userID := update.Message.From.ID
		if userID == operatorID {
			return false
		}

		chatID := update.Message.Chat.ID
		log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)
		_, err := api.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: chatID,
			Text:   msgAccessDenied,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send access denied message", "error", err, "chat_id", chatID)
		}
		return true

	case update.CallbackQuery != nil:
		userID := update.CallbackQuery.From.ID
		if userID == operatorID {
			return false
		}

		log.DebugContext(ctx, "Ignoring callback from non-operator", "user_id", userID)
		answerCallback(ctx, log, api, update.CallbackQuery)
		return true

	default:
		return true
	}
}
