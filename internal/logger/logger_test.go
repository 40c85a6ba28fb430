package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact", input: "hello", maxLen: 5, want: "hello"},
		{name: "long", input: "hello world", maxLen: 8, want: "hello..."},
		{name: "tiny limit", input: "hello", maxLen: 2, want: "..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		update   *models.Update
		wantType string
	}{
		{
			name: "message",
			update: &models.Update{
				ID: 1,
				Message: &models.Message{
					ID:   10,
					Chat: models.Chat{ID: 100},
					From: &models.User{ID: 42},
					Text: "/start",
				},
			},
			wantType: "message",
		},
		{
			name: "callback with inaccessible message",
			update: &models.Update{
				ID: 2,
				CallbackQuery: &models.CallbackQuery{
					ID:   "cb",
					From: models.User{ID: 42},
					Data: "status",
					Message: models.MaybeInaccessibleMessage{
						InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: 100}},
					},
				},
			},
			wantType: "callback_query",
		},
		{
			name: "inline callback without message",
			update: &models.Update{
				ID:            3,
				CallbackQuery: &models.CallbackQuery{ID: "cb", From: models.User{ID: 42}, InlineMessageID: "inline"},
			},
			wantType: "callback_query",
		},
		{
			name:     "other",
			update:   &models.Update{ID: 4},
			wantType: "other",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := newLogger(&buf, "debug", false)

			called := false
			handler := Middleware(log)(func(context.Context, *bot.Bot, *models.Update) {
				called = true
			})
			handler(context.Background(), nil, tt.update)

			if !called {
				t.Fatal("middleware did not call next handler")
			}
			if !strings.Contains(buf.String(), "update_type="+tt.wantType) {
				t.Errorf("log output %q does not contain update_type=%s", buf.String(), tt.wantType)
			}
		})
	}
}

func TestGocronLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewGocronLogger(newLogger(&buf, "debug", false))

	l.Debug("debug message", "job", "service_watch")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", "error", "boom")

	out := buf.String()
	for _, want := range []string{"debug message", "job=service_watch", "info message", "warn message", "error message", "component=gocron"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
