package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/webstudio/internal/config"
	"github.com/polkiloo/webstudio/internal/di"
	"github.com/polkiloo/webstudio/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := fx.New(
		fx.WithLogger(newEventLogger),
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	code := run(ctx, app, os.Stderr)
	stop()
	os.Exit(code)
}

func newEventLogger(cfg *config.Config) (fxevent.Logger, error) {
	zl, err := logger.NewZap(cfg.AppEnv)
	if err != nil {
		return nil, err
	}
	return logger.FxEventLogger(zl), nil
}
