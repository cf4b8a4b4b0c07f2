package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Actor, error)
	ProfileFn      func(context.Context, model.Actor) (*model.User, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, name string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, name)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken resolves every token to a customer unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{UserID: "u1", Role: model.RoleCustomer}, nil
}

// Profile returns a user built from the actor.
func (s AuthFacadeStub) Profile(ctx context.Context, actor model.Actor) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, actor)
	}
	return &model.User{ID: actor.UserID, Login: actor.UserID + "@example.com", Name: actor.UserID, Role: actor.Role}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, model.Actor, model.OrderDraft) (*model.Order, error)
	GetFn        func(context.Context, model.Actor, string) (*model.Order, error)
	ListFn       func(context.Context, model.Actor, model.OrderFilter) ([]model.Order, error)
	DetailsFn    func(context.Context, model.Actor, string, model.DetailsUpdate) (*model.Order, error)
	PaymentFn    func(context.Context, model.Actor, string, string) (*model.Order, error)
	TransitionFn func(context.Context, model.Actor, string, model.OrderStatus) (*model.Order, error)
	DeliveryFn   func(context.Context, model.Actor, string, model.DeliveryUpdate) (*model.Order, error)
}

// SampleOrder returns a pending order owned by ownerID.
func SampleOrder(id, ownerID string) *model.Order {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &model.Order{
		ID:            id,
		OwnerID:       ownerID,
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
		WebsiteType:   "Landing Page",
		Requirements:  "Hero section",
		Status:        model.OrderStatusPending,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

// CreateOrder delegates to provided function or echoes the draft back.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, draft)
	}
	draft.OwnerID = actor.UserID
	return model.NewOrder(draft, time.Now()), nil
}

// Order returns a sample order with the requested id.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return SampleOrder(id, actor.UserID), nil
}

// Orders returns predefined orders for given actor.
func (s OrderFacadeStub) Orders(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor, filter)
	}
	return []model.Order{*SampleOrder("o1", actor.UserID)}, nil
}

// UpdateOrderDetails applies the update to a sample order.
func (s OrderFacadeStub) UpdateOrderDetails(ctx context.Context, actor model.Actor, id string, update model.DetailsUpdate) (*model.Order, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, actor, id, update)
	}
	order := SampleOrder(id, actor.UserID)
	model.OrderPatch{Details: update}.Apply(order, order.UpdatedAt)
	return order, nil
}

// AttachPaymentEvidence stores evidence on a sample order.
func (s OrderFacadeStub) AttachPaymentEvidence(ctx context.Context, actor model.Actor, id, evidence string) (*model.Order, error) {
	if s.PaymentFn != nil {
		return s.PaymentFn(ctx, actor, id, evidence)
	}
	order := SampleOrder(id, actor.UserID)
	order.PaymentEvidence = evidence
	return order, nil
}

// TransitionOrder returns a sample order in the requested status.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, actor model.Actor, id string, status model.OrderStatus) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, id, status)
	}
	order := SampleOrder(id, "u1")
	order.Status = status
	return order, nil
}

// SetDeliveryMetadata applies the update to a sample order.
func (s OrderFacadeStub) SetDeliveryMetadata(ctx context.Context, actor model.Actor, id string, update model.DeliveryUpdate) (*model.Order, error) {
	if s.DeliveryFn != nil {
		return s.DeliveryFn(ctx, actor, id, update)
	}
	order := SampleOrder(id, "u1")
	model.OrderPatch{Delivery: update.WithoutBlank()}.Apply(order, order.UpdatedAt)
	return order, nil
}

// NotificationFacadeStub simulates notification operations.
type NotificationFacadeStub struct {
	ListFn     func(context.Context, model.Actor) ([]model.Notification, error)
	UnreadFn   func(context.Context, model.Actor) (int, error)
	MarkFn     func(context.Context, model.Actor, string) (*model.Notification, error)
	MarkAllFn  func(context.Context, model.Actor) (int64, error)
	AnnounceFn func(context.Context, model.Actor, model.NotificationDraft) (*model.Notification, error)
}

// Notifications returns a single unread notification by default.
func (s NotificationFacadeStub) Notifications(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return []model.Notification{{ID: "n1", UserID: actor.UserID, Title: "Order confirmed!", Category: model.NotificationSuccess}}, nil
}

// UnreadCount returns configured count or one.
func (s NotificationFacadeStub) UnreadCount(ctx context.Context, actor model.Actor) (int, error) {
	if s.UnreadFn != nil {
		return s.UnreadFn(ctx, actor)
	}
	return 1, nil
}

// MarkNotificationRead returns a read notification.
func (s NotificationFacadeStub) MarkNotificationRead(ctx context.Context, actor model.Actor, id string) (*model.Notification, error) {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, actor, id)
	}
	return &model.Notification{ID: id, UserID: actor.UserID, Category: model.NotificationInfo, Read: true}, nil
}

// MarkAllNotificationsRead returns configured count or zero.
func (s NotificationFacadeStub) MarkAllNotificationsRead(ctx context.Context, actor model.Actor) (int64, error) {
	if s.MarkAllFn != nil {
		return s.MarkAllFn(ctx, actor)
	}
	return 0, nil
}

// Announce builds the notification from draft.
func (s NotificationFacadeStub) Announce(ctx context.Context, actor model.Actor, draft model.NotificationDraft) (*model.Notification, error) {
	if s.AnnounceFn != nil {
		return s.AnnounceFn(ctx, actor, draft)
	}
	return model.NewNotification(draft, time.Now()), nil
}

// HealthFacadeStub reports configured health.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// WebstudioFacadeStub aggregates facade dependencies for HTTP layer tests.
type WebstudioFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	NotificationFacadeStub
	HealthFacadeStub
}

// FailedEventCall records MarkEventFailed invocations.
type FailedEventCall struct {
	ID     string
	Reason string
	Final  bool
}

// OutboxFacadeStub mimics relay interactions with the application facade.
type OutboxFacadeStub struct {
	Batches   [][]model.OrderEvent
	PendingFn func(context.Context, int) ([]model.OrderEvent, error)
	PublishFn func(context.Context, model.OrderEvent) error

	mu        sync.Mutex
	calls     int
	Published []string
	Failed    []FailedEventCall
}

// PendingEvents returns queued batches one per call, then nothing.
func (s *OutboxFacadeStub) PendingEvents(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= len(s.Batches) {
		return s.Batches[s.calls-1], nil
	}
	return nil, nil
}

// PublishEvent succeeds unless overridden.
func (s *OutboxFacadeStub) PublishEvent(ctx context.Context, event model.OrderEvent) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, event)
	}
	return nil
}

// MarkEventPublished records the published id.
func (s *OutboxFacadeStub) MarkEventPublished(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, id)
	return nil
}

// MarkEventFailed records the failure.
func (s *OutboxFacadeStub) MarkEventFailed(ctx context.Context, id string, reason string, final bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, FailedEventCall{ID: id, Reason: reason, Final: final})
	return nil
}

// Snapshot returns copies of recorded published ids and failures.
func (s *OutboxFacadeStub) Snapshot() ([]string, []FailedEventCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Published...), append([]FailedEventCall(nil), s.Failed...)
}

// AdminBootstrapperStub records EnsureAdmin calls.
type AdminBootstrapperStub struct {
	Created bool
	Err     error
	Calls   int
}

// EnsureAdmin returns the configured result.
func (s *AdminBootstrapperStub) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	s.Calls++
	return s.Created, s.Err
}
