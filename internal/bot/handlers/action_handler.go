package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/hysteriabot/internal/vpn"
)

// NewActionHandler returns a handler for menu button presses.
func NewActionHandler(deps HandlerDeps) bot.HandlerFunc {
	return adapt(actionHandler{deps}.handle)
}

// actionHandler runs the host operation behind a menu button and replaces
// the menu message with the result.
type actionHandler struct {
	deps HandlerDeps
}

// actionFunc produces the reply for an action and the parse mode to send it with.
type actionFunc func(ctx context.Context) (string, models.ParseMode, error)

func (h actionHandler) handle(ctx context.Context, api Messenger, update *models.Update) {
	log := h.deps.Logger.With("handler", "action")

	query := update.CallbackQuery
	if query == nil {
		log.WarnContext(ctx, "Action handler received update without callback query", "update_id", update.ID)
		return
	}

	// Always answer first, otherwise the client keeps the button spinning.
	answerCallback(ctx, log, api, query)

	var action actionFunc
	switch query.Data {
	case ActionGetConfig:
		action = h.getConfig
	case ActionStatus:
		action = h.status
	case ActionRestart:
		action = h.restart
	default:
		log.WarnContext(ctx, "Unknown action", "data", query.Data, "user_id", query.From.ID)
		return
	}

	log = log.With("action", query.Data)
	log.InfoContext(ctx, "Handling action", "user_id", query.From.ID)

	text, mode, err := action(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Action failed", "error", err)
		text, mode = RenderError(err), ""
	}

	if _, err := api.EditMessageText(ctx, editParams(query, text, mode)); err != nil {
		log.ErrorContext(ctx, "Failed to edit menu message", "error", err)
	}
}

func (h actionHandler) getConfig(ctx context.Context) (string, models.ParseMode, error) {
	password, err := h.deps.VPN.ReadPassword()
	if err != nil {
		return "", "", err
	}

	ip, err := h.deps.Host.QueryPublicIP(ctx)
	if err != nil {
		return "", "", err
	}

	cfg := h.deps.Config.VPN
	info := vpn.NewConnectionInfo(password, ip, cfg.SNI, cfg.Port)
	return renderConfig(info), models.ParseModeMarkdownV1, nil
}

func (h actionHandler) status(ctx context.Context) (string, models.ParseMode, error) {
	state, err := h.deps.Host.QueryServiceActive(ctx)
	if err != nil {
		return "", "", err
	}

	ip, err := h.deps.Host.QueryPublicIP(ctx)
	if err != nil {
		return "", "", err
	}

	uptime, err := h.deps.Host.QueryUptime(ctx)
	if err != nil {
		return "", "", err
	}

	return renderStatus(state, ip, uptime), models.ParseModeMarkdownV1, nil
}

func (h actionHandler) restart(ctx context.Context) (string, models.ParseMode, error) {
	if err := h.deps.Host.RestartService(ctx); err != nil {
		return "", "", err
	}
	return msgRestarted, "", nil
}

// answerCallback acknowledges a callback query without showing anything.
func answerCallback(ctx context.Context, log *slog.Logger, api Messenger, query *models.CallbackQuery) {
	_, err := api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: query.ID})
	if err != nil {
		log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", query.ID)
	}
}

// editParams targets the message the pressed button belongs to.
func editParams(query *models.CallbackQuery, text string, mode models.ParseMode) *bot.EditMessageTextParams {
	params := &bot.EditMessageTextParams{Text: text, ParseMode: mode}

	switch msg := query.Message; {
	case msg.Message != nil:
		params.ChatID = msg.Message.Chat.ID
		params.MessageID = msg.Message.ID
	case msg.InaccessibleMessage != nil:
		params.ChatID = msg.InaccessibleMessage.Chat.ID
		params.MessageID = msg.InaccessibleMessage.MessageID
	default:
		params.InlineMessageID = query.InlineMessageID
	}
	return params
}
