package repository

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
