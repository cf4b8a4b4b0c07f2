package app

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/repository"
	"github.com/polkiloo/webstudio/internal/usecase"
)

// EventPublisher delivers order events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// WebstudioFacade is the single entry point used by HTTP handlers and the outbox relay.
type WebstudioFacade struct {
	auth          *usecase.AuthUseCase
	orders        *usecase.OrderUseCase
	lifecycle     *usecase.LifecycleUseCase
	notifications *usecase.NotificationUseCase
	events        repository.EventRepository
	publisher     EventPublisher
	health        HealthChecker
}

func NewWebstudioFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	lifecycle *usecase.LifecycleUseCase,
	notifications *usecase.NotificationUseCase,
	events repository.EventRepository,
	publisher EventPublisher,
	health HealthChecker,
) *WebstudioFacade {
	return &WebstudioFacade{
		auth:          auth,
		orders:        orders,
		lifecycle:     lifecycle,
		notifications: notifications,
		events:        events,
		publisher:     publisher,
		health:        health,
	}
}

func (f *WebstudioFacade) Register(ctx context.Context, login, password, name string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, name)
	return token, err
}

func (f *WebstudioFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *WebstudioFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *WebstudioFacade) Profile(ctx context.Context, actor model.Actor) (*model.User, error) {
	return f.auth.GetByID(ctx, actor.UserID)
}

func (f *WebstudioFacade) CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, actor, draft)
}

func (f *WebstudioFacade) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *WebstudioFacade) Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, actor, filter)
}

func (f *WebstudioFacade) UpdateOrderDetails(ctx context.Context, actor model.Actor, id string, update model.DetailsUpdate) (*model.Order, error) {
	return f.orders.UpdateDetails(ctx, actor, id, update)
}

func (f *WebstudioFacade) AttachPaymentEvidence(ctx context.Context, actor model.Actor, id, evidence string) (*model.Order, error) {
	return f.orders.AttachPaymentEvidence(ctx, actor, id, evidence)
}

func (f *WebstudioFacade) TransitionOrder(ctx context.Context, actor model.Actor, id string, status model.OrderStatus) (*model.Order, error) {
	return f.lifecycle.Transition(ctx, actor, id, status)
}

func (f *WebstudioFacade) SetDeliveryMetadata(ctx context.Context, actor model.Actor, id string, update model.DeliveryUpdate) (*model.Order, error) {
	return f.lifecycle.SetDeliveryMetadata(ctx, actor, id, update)
}

func (f *WebstudioFacade) Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	return f.notifications.ListForUser(ctx, actor, actor.UserID)
}

func (f *WebstudioFacade) UnreadCount(ctx context.Context, actor model.Actor) (int, error) {
	return f.notifications.UnreadCount(ctx, actor)
}

func (f *WebstudioFacade) MarkNotificationRead(ctx context.Context, actor model.Actor, id string) (*model.Notification, error) {
	return f.notifications.MarkRead(ctx, actor, id)
}

func (f *WebstudioFacade) MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int64, error) {
	return f.notifications.MarkAllRead(ctx, actor)
}

func (f *WebstudioFacade) Announce(ctx context.Context, actor model.Actor, draft model.NotificationDraft) (*model.Notification, error) {
	return f.notifications.Announce(ctx, actor, draft)
}

func (f *WebstudioFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *WebstudioFacade) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	return f.auth.EnsureAdmin(ctx, login, password)
}

func (f *WebstudioFacade) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	return f.events.ClaimPending(ctx, limit)
}

func (f *WebstudioFacade) PublishEvent(ctx context.Context, event model.OrderEvent) error {
	return f.publisher.Publish(ctx, event)
}

func (f *WebstudioFacade) MarkEventPublished(ctx context.Context, id string) error {
	return f.events.MarkPublished(ctx, id)
}

func (f *WebstudioFacade) MarkEventFailed(ctx context.Context, id string, reason string, final bool) error {
	return f.events.MarkFailed(ctx, id, reason, final)
}
