package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/webstudio/internal/adapter/kafka"
	"github.com/polkiloo/webstudio/internal/config"
	"github.com/polkiloo/webstudio/internal/storage/postgres"
	"github.com/polkiloo/webstudio/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewWebstudioFacade,
		func(f *WebstudioFacade) AdminBootstrapper { return f },
		func(p kafka.Publisher) EventPublisher { return p },
		func(s *postgres.Storage) HealthChecker { return s },
		newHTTPServer,
		newOutboxRelay,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *WebstudioFacade
	Config *config.Config
	Logger *slog.Logger
}

func newOutboxRelay(p workerParams) *worker.OutboxRelay {
	return worker.NewOutboxRelay(p.Facade, worker.RelayOptions{
		PollInterval: p.Config.OutboxPollInterval,
		BatchSize:    p.Config.OutboxBatchSize,
		Workers:      p.Config.OutboxWorkers,
		MaxAttempts:  p.Config.OutboxMaxAttempts,
	}, p.Logger)
}

// AdminBootstrapper creates the configured admin account on start.
type AdminBootstrapper interface {
	EnsureAdmin(ctx context.Context, login, password string) (bool, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.OutboxRelay
	Admins     AdminBootstrapper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ensureAdmin(ctx, p); err != nil {
				return err
			}

			p.Logger.Info("starting webstudio", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Worker.Stop()
			p.Logger.Info("webstudio stopped")
			return nil
		},
	})
}

func ensureAdmin(ctx context.Context, p lifecycleParams) error {
	if p.Config.AdminLogin == "" {
		return nil
	}
	created, err := p.Admins.EnsureAdmin(ctx, p.Config.AdminLogin, p.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		p.Logger.Info("admin account created", slog.String("login", p.Config.AdminLogin))
	}
	return nil
}
