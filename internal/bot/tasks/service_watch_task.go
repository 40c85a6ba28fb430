package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"

	"github.com/edgard/hysteriabot/internal/bot/handlers"
	"github.com/edgard/hysteriabot/internal/host"
)

// newServiceWatchTask creates a task that checks the VPN unit and alerts
// the operator whenever it is not active. It keeps no state between runs,
// so an outage is reported on every run until the unit is back.
func newServiceWatchTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "service_watch")

	return func(ctx context.Context) error {
		startTime := time.Now()
		service := deps.Config.VPN.Service

		state, err := deps.Host.QueryServiceActive(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to query service state", "error", err)
			if notifyErr := notify(ctx, deps, handlers.RenderError(err)); notifyErr != nil {
				log.ErrorContext(ctx, "Failed to notify operator", "error", notifyErr)
			}
			return fmt.Errorf("service watch failed: %w", err)
		}

		if host.IsActive(state) {
			log.DebugContext(ctx, "Service is active", "duration", time.Since(startTime))
			return nil
		}

		log.WarnContext(ctx, "Service is not active", "state", state)
		text := fmt.Sprintf("🔴 %s is not active (state: %s)", service, state)
		if err := notify(ctx, deps, text); err != nil {
			log.ErrorContext(ctx, "Failed to notify operator", "error", err)
			return fmt.Errorf("failed to send service alert: %w", err)
		}

		log.InfoContext(ctx, "Operator notified about inactive service", "state", state, "duration", time.Since(startTime))
		return nil
	}
}

// notify sends text to the operator's private chat.
func notify(ctx context.Context, deps TaskDeps, text string) error {
	_, err := deps.Notifier.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: deps.Config.Telegram.OperatorID,
		Text:   text,
	})
	return err
}
