package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/webstudio/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewLifecycleUseCase,
	NewNotificationUseCase,
	newLifecycleOptions,
)

func newLifecycleOptions(cfg *config.Config) LifecycleOptions {
	return LifecycleOptions{NotifyOnDeliveryUpdate: cfg.NotifyOnDeliveryUpdate}
}
