package kafka

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/webstudio/internal/config"
)

// Module provides the order event publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if !p.Config.KafkaEnabled() {
		p.Logger.Info("kafka brokers not configured, order events go to the log")
		return NewLogPublisher(p.Logger), nil
	}
	return Dial(p.Config.KafkaBrokers, p.Config.OrderEventsTopic, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
