package repository

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// EventRepository stores the order event outbox.
type EventRepository interface {
	Append(ctx context.Context, event *model.OrderEvent) error
	// ClaimPending returns up to limit pending events, counting the claim as an attempt.
	ClaimPending(ctx context.Context, limit int) ([]model.OrderEvent, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string, final bool) error
}
