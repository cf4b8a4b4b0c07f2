package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/policy"
	"github.com/polkiloo/webstudio/internal/domain/repository"
	"github.com/polkiloo/webstudio/internal/logger"
)

// NotificationUseCase creates notifications and serves their read state.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	orders        repository.OrderRepository
	logger        *slog.Logger
	now           func() time.Time
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
) *NotificationUseCase {
	return &NotificationUseCase{
		notifications: notifications,
		users:         users,
		orders:        orders,
		logger:        logger,
		now:           time.Now,
	}
}

// Emit persists an unread notification.
func (u *NotificationUseCase) Emit(ctx context.Context, draft model.NotificationDraft) (*model.Notification, error) {
	return emitNotification(ctx, u.notifications, draft, u.now())
}

// ListForUser returns notifications addressed to userID, newest first.
func (u *NotificationUseCase) ListForUser(ctx context.Context, actor model.Actor, userID string) ([]model.Notification, error) {
	if err := policy.Check(policy.ActionReadNotifications, actor, userID); err != nil {
		return nil, err
	}
	return u.notifications.ListByUser(ctx, userID)
}

// UnreadCount returns how many notifications of the actor are still unread.
func (u *NotificationUseCase) UnreadCount(ctx context.Context, actor model.Actor) (int, error) {
	if err := policy.Check(policy.ActionReadNotifications, actor, actor.UserID); err != nil {
		return 0, err
	}
	return u.notifications.CountUnread(ctx, actor.UserID)
}

// MarkRead acknowledges a notification. Acknowledging it twice is not an error.
func (u *NotificationUseCase) MarkRead(ctx context.Context, actor model.Actor, id string) (*model.Notification, error) {
	n, err := u.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ActionMarkRead, actor, n.UserID); err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	return u.notifications.MarkRead(ctx, id)
}

// MarkAllRead acknowledges every notification of the actor and returns how many changed.
func (u *NotificationUseCase) MarkAllRead(ctx context.Context, actor model.Actor) (int64, error) {
	if err := policy.Check(policy.ActionMarkRead, actor, actor.UserID); err != nil {
		return 0, err
	}
	return u.notifications.MarkAllRead(ctx, actor.UserID)
}

// Announce lets an admin send a free-form message to a user.
func (u *NotificationUseCase) Announce(ctx context.Context, actor model.Actor, draft model.NotificationDraft) (*model.Notification, error) {
	if err := policy.Check(policy.ActionAnnounce, actor, draft.UserID); err != nil {
		return nil, err
	}
	draft.UserID = strings.TrimSpace(draft.UserID)
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Message = strings.TrimSpace(draft.Message)
	if draft.Category == "" {
		draft.Category = model.NotificationInfo
	}
	if err := validateAnnouncement(draft); err != nil {
		return nil, err
	}

	if _, err := u.users.GetByID(ctx, draft.UserID); err != nil {
		return nil, fmt.Errorf("announce to user %s: %w", draft.UserID, err)
	}
	if draft.OrderID != nil {
		order, err := u.orders.GetByID(ctx, *draft.OrderID)
		if err != nil {
			return nil, fmt.Errorf("announce about order %s: %w", *draft.OrderID, err)
		}
		if order.OwnerID != draft.UserID {
			return nil, fmt.Errorf("%w: order %s does not belong to user %s", domainErrors.ErrValidation, order.ID, draft.UserID)
		}
	}

	n, err := u.Emit(ctx, draft)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, u.logger).Info("announcement sent",
		slog.String("notification_id", n.ID),
		slog.String("user_id", n.UserID),
		slog.String("actor_id", actor.UserID),
	)
	return n, nil
}

// emitNotification persists draft through repo, which may be bound to a transaction.
func emitNotification(ctx context.Context, repo repository.NotificationRepository, draft model.NotificationDraft, now time.Time) (*model.Notification, error) {
	if draft.UserID == "" {
		return nil, fmt.Errorf("%w: notification target is required", domainErrors.ErrValidation)
	}
	if !draft.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domainErrors.ErrValidation, draft.Category)
	}

	n := model.NewNotification(draft, now)
	if err := repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("emit notification: %w", err)
	}
	return n, nil
}
