// Package main contains the entrypoint for the Hysteria operator bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/edgard/hysteriabot/internal/bot"
	"github.com/edgard/hysteriabot/internal/bot/handlers"
	"github.com/edgard/hysteriabot/internal/bot/tasks"
	"github.com/edgard/hysteriabot/internal/config"
	"github.com/edgard/hysteriabot/internal/host"
	"github.com/edgard/hysteriabot/internal/logger"
	"github.com/edgard/hysteriabot/internal/telegram"
	"github.com/edgard/hysteriabot/internal/vpn"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, host controller,
// bot, scheduler), handles graceful shutdown, and returns an exit code.
func run(ctx context.Context) int {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	configPath := flags.String("config", "./config.yaml", "Path to configuration file")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("log-json", config.DefaultLogJSON, "Log in JSON format")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(*configPath, flags)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	hostCtl := host.NewSystemd(host.Options{
		Service:     cfg.VPN.Service,
		UseSudo:     cfg.Host.UseSudo,
		IPLookupURL: cfg.Host.IPLookupURL,
		Timeout:     cfg.Host.CommandTimeout,
		HTTPClient:  &http.Client{Timeout: cfg.Host.CommandTimeout},
		Logger:      log,
	})

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Host:   hostCtl,
		VPN:    vpn.NewReader(afero.NewReadOnlyFs(afero.NewOsFs()), cfg.VPN.ConfigPath),
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithErrorsHandler(func(err error) {
			log.Error("Telegram client error", "error", err)
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, cfg.Telegram.StartDescription); err != nil {
		// The menu is cosmetic; /start still works without it.
		log.Warn("Failed to publish command menu", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Config:   cfg,
		Host:     hostCtl,
		Notifier: tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
