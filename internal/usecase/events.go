package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/repository"
)

// recordEvent appends an outbox entry describing the mutation of order.
func recordEvent(ctx context.Context, events repository.EventRepository, eventType model.OrderEventType, order *model.Order, previous model.OrderStatus, now time.Time) error {
	event, err := model.NewOrderEvent(eventType, order, previous, now)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	if err := events.Append(ctx, event); err != nil {
		return fmt.Errorf("append %s event: %w", eventType, err)
	}
	return nil
}
