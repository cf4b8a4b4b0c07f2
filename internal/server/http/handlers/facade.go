package handlers

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, name string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
	Profile(ctx context.Context, actor model.Actor) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error)
	Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrderDetails(ctx context.Context, actor model.Actor, id string, update model.DetailsUpdate) (*model.Order, error)
	AttachPaymentEvidence(ctx context.Context, actor model.Actor, id, evidence string) (*model.Order, error)
	TransitionOrder(ctx context.Context, actor model.Actor, id string, status model.OrderStatus) (*model.Order, error)
	SetDeliveryMetadata(ctx context.Context, actor model.Actor, id string, update model.DeliveryUpdate) (*model.Order, error)
}

// NotificationFacade provides notification related operations.
type NotificationFacade interface {
	Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error)
	UnreadCount(ctx context.Context, actor model.Actor) (int, error)
	MarkNotificationRead(ctx context.Context, actor model.Actor, id string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int64, error)
	Announce(ctx context.Context, actor model.Actor, draft model.NotificationDraft) (*model.Notification, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// WebstudioFacade aggregates the full set of operations used across handlers.
type WebstudioFacade interface {
	AuthFacade
	OrderFacade
	NotificationFacade
	HealthFacade
}
