package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/webstudio/internal/app"
	"github.com/polkiloo/webstudio/internal/config"
	"github.com/polkiloo/webstudio/internal/domain/repository"
	"github.com/polkiloo/webstudio/internal/server/http/handlers"
	"github.com/polkiloo/webstudio/internal/storage/postgres"
	"github.com/polkiloo/webstudio/internal/test"
	"github.com/polkiloo/webstudio/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		AuthSecret:         "secret",
		AuthStrategy:       config.AuthStrategyJWT,
		TokenTTL:           time.Hour,
		ShutdownTimeout:    time.Millisecond,
		OrderEventsTopic:   "orders",
		OutboxPollInterval: time.Millisecond,
		OutboxBatchSize:    1,
		OutboxWorkers:      1,
		OutboxMaxAttempts:  1,
		RateLimitRPS:       1,
		RateLimitBurst:     1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var (
		facade  *app.WebstudioFacade
		handler handlers.WebstudioFacade
		relay   *worker.OutboxRelay
		storage *postgres.Storage
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Factory)))),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Transactor)))),
			fx.Replace(fx.Annotate(store.Users(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(store.Orders(), fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(store.Notifications(), fx.As(new(repository.NotificationRepository)))),
			fx.Replace(fx.Annotate(store.Events(), fx.As(new(repository.EventRepository)))),
		),
		fx.Populate(&facade, &handler, &relay, &storage),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || relay == nil || storage == nil {
		t.Fatal("expected facade, relay and storage instances")
	}
	if handler != handlers.WebstudioFacade(facade) {
		t.Fatal("expected handler facade to be the application facade")
	}
}
