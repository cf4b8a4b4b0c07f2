package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/webstudio/internal/domain/model"
	testhelpers "github.com/polkiloo/webstudio/internal/test"
)

var (
	customer      = model.Actor{UserID: "u1", Role: model.RoleCustomer}
	otherCustomer = model.Actor{UserID: "u2", Role: model.RoleCustomer}
	admin         = model.Actor{UserID: "a1", Role: model.RoleAdmin}
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	store         *testhelpers.MemoryStore
	orders        *OrderUseCase
	lifecycle     *LifecycleUseCase
	notifications *NotificationUseCase
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testhelpers.NewMemoryStore()
	clock := &stepClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	log := discardLogger()

	f := &fixture{
		store:         store,
		orders:        NewOrderUseCase(store.Orders(), store, log),
		lifecycle:     NewLifecycleUseCase(store, LifecycleOptions{}, log),
		notifications: NewNotificationUseCase(store.Notifications(), store.Users(), store.Orders(), log),
	}
	f.orders.now = clock.Now
	f.lifecycle.now = clock.Now
	f.notifications.now = clock.Now

	for _, actor := range []model.Actor{customer, otherCustomer, admin} {
		store.SeedUser(model.User{ID: actor.UserID, Login: actor.UserID + "@example.com", Role: actor.Role})
	}
	return f
}

func (f *fixture) placeOrder(t *testing.T, actor model.Actor, websiteType string) *model.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), actor, model.OrderDraft{
		CustomerName:  "Ann Customer",
		CustomerEmail: "ann@example.com",
		WebsiteType:   websiteType,
		Requirements:  "Five pages and a contact form",
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) stored(t *testing.T, id string) *model.Order {
	t.Helper()
	order, err := f.store.Orders().GetByID(context.Background(), id)
	require.NoError(t, err)
	return order
}

func strPtr(s string) *string { return &s }
