package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/polkiloo/webstudio/internal/config"
	"go.uber.org/fx/fxevent"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New(&config.Config{})
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}

func TestNewHonoursConfiguredLevel(t *testing.T) {
	l := New(&config.Config{LogLevel: "debug"})
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("expected debug level to be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := newJSON(&buf, slog.LevelInfo)

	if FromContext(context.Background(), base) != base {
		t.Fatalf("expected base logger without request id")
	}

	ctx := WithRequestID(context.Background(), "req-1")
	if RequestIDFrom(ctx) != "req-1" {
		t.Fatalf("unexpected request id: %q", RequestIDFrom(ctx))
	}
	FromContext(ctx, base).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Fatalf("expected request_id in entry, got %v", entry)
	}
}

func TestNewZapAndEventLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		zl, err := NewZap(env)
		if err != nil {
			t.Fatalf("NewZap(%q): %v", env, err)
		}
		if _, ok := FxEventLogger(zl).(*fxevent.ZapLogger); !ok {
			t.Fatalf("expected zap event logger")
		}
	}
}
