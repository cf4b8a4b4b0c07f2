package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	testhelpers "github.com/polkiloo/webstudio/internal/test"
)

func TestOrderUseCaseCreate(t *testing.T) {
	f := newFixture(t)

	order, err := f.orders.Create(context.Background(), customer, model.OrderDraft{
		OwnerID:       "someone-else",
		CustomerName:  "  Ann  ",
		CustomerEmail: "ann@example.com",
		WebsiteType:   "Landing Page",
		Requirements:  "Hero section",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, customer.UserID, order.OwnerID)
	assert.Equal(t, "Ann", order.CustomerName)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	events := f.store.EventsFor(order.ID)
	require.Len(t, events, 1)
	assert.Equal(t, model.OrderEventCreated, events[0].Type)
}

func TestOrderUseCaseCreateRandomDrafts(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 20; i++ {
		draft := testhelpers.RandomOrderDraft()
		order, err := f.orders.Create(context.Background(), customer, draft)
		require.NoError(t, err, "draft %+v", draft)
		assert.Equal(t, draft.WebsiteType, order.WebsiteType)
	}
	orders, err := f.orders.List(context.Background(), customer, model.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 20)
}

func TestOrderUseCaseCreateValidation(t *testing.T) {
	valid := model.OrderDraft{
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
		WebsiteType:   "Blog",
		Requirements:  "Dark theme",
	}
	cases := map[string]func(d *model.OrderDraft){
		"missing name":         func(d *model.OrderDraft) { d.CustomerName = "" },
		"blank website type":   func(d *model.OrderDraft) { d.WebsiteType = "   " },
		"missing requirements": func(d *model.OrderDraft) { d.Requirements = "" },
		"missing email":        func(d *model.OrderDraft) { d.CustomerEmail = "" },
		"malformed email":      func(d *model.OrderDraft) { d.CustomerEmail = "not-an-email" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			draft := valid
			mutate(&draft)

			_, err := f.orders.Create(context.Background(), customer, draft)
			assert.ErrorIs(t, err, domainErrors.ErrValidation)

			list, err := f.orders.List(context.Background(), admin, model.OrderFilter{})
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestOrderUseCaseCreateByAdminForbidden(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.Create(context.Background(), admin, model.OrderDraft{
		CustomerName: "Ann", CustomerEmail: "ann@example.com", WebsiteType: "Blog", Requirements: "x",
	})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestOrderUseCaseCreateRollsBackWithoutEvent(t *testing.T) {
	f := newFixture(t)
	f.store.Faults.AppendEvent = errors.New("outbox down")

	_, err := f.orders.Create(context.Background(), customer, model.OrderDraft{
		CustomerName: "Ann", CustomerEmail: "ann@example.com", WebsiteType: "Blog", Requirements: "x",
	})
	require.Error(t, err)

	list, err := f.orders.List(context.Background(), customer, model.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderUseCaseGetAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")

	got, err := f.orders.Get(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.orders.Get(ctx, otherCustomer, order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	got, err = f.orders.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.orders.Get(ctx, admin, "missing")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestOrderUseCaseDeliveryHiddenUntilConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")

	_, err := f.lifecycle.SetDeliveryMetadata(ctx, admin, order.ID, model.DeliveryUpdate{RepoURL: strPtr("https://git.example.com/blog")})
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Delivery.IsEmpty())

	got, err = f.orders.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.com/blog", got.Delivery.RepoURL)

	_, err = f.lifecycle.Transition(ctx, admin, order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	got, err = f.orders.Get(ctx, customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.com/blog", got.Delivery.RepoURL)
}

func TestOrderUseCaseList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.placeOrder(t, customer, "Blog")
	second := f.placeOrder(t, customer, "Shop")
	foreign := f.placeOrder(t, otherCustomer, "Portfolio")

	own, err := f.orders.List(ctx, customer, model.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)

	_, err = f.orders.List(ctx, customer, model.OrderFilter{OwnerID: otherCustomer.UserID})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	all, err := f.orders.List(ctx, admin, model.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.lifecycle.Transition(ctx, admin, foreign.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	confirmed := model.OrderStatusConfirmed
	filtered, err := f.orders.List(ctx, admin, model.OrderFilter{Status: &confirmed})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, foreign.ID, filtered[0].ID)

	byOwner, err := f.orders.List(ctx, admin, model.OrderFilter{OwnerID: otherCustomer.UserID})
	require.NoError(t, err)
	assert.Len(t, byOwner, 1)

	unknown := model.OrderStatus("shipped")
	_, err = f.orders.List(ctx, admin, model.OrderFilter{Status: &unknown})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestOrderUseCaseUpdateDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")

	updated, err := f.orders.UpdateDetails(ctx, customer, order.ID, model.DetailsUpdate{
		WebsiteType:  strPtr(" Online Store "),
		Requirements: strPtr("Ten products"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Online Store", updated.WebsiteType)
	assert.Equal(t, "Ten products", updated.Requirements)
	assert.Equal(t, order.CustomerName, updated.CustomerName)
	assert.Equal(t, order.CustomerEmail, updated.CustomerEmail)

	_, err = f.orders.UpdateDetails(ctx, customer, order.ID, model.DetailsUpdate{CustomerName: strPtr("  ")})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = f.orders.UpdateDetails(ctx, customer, order.ID, model.DetailsUpdate{CustomerEmail: strPtr("nope")})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = f.orders.UpdateDetails(ctx, customer, order.ID, model.DetailsUpdate{})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = f.orders.UpdateDetails(ctx, otherCustomer, order.ID, model.DetailsUpdate{CustomerName: strPtr("Eve")})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.orders.UpdateDetails(ctx, admin, order.ID, model.DetailsUpdate{CustomerName: strPtr("Admin")})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.lifecycle.Transition(ctx, admin, order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	_, err = f.orders.UpdateDetails(ctx, customer, order.ID, model.DetailsUpdate{CustomerName: strPtr("Late")})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)

	assert.Equal(t, "Online Store", f.stored(t, order.ID).WebsiteType)
}

func TestOrderUseCaseAttachPaymentEvidence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")

	updated, err := f.orders.AttachPaymentEvidence(ctx, customer, order.ID, "uploads/receipt-1.png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/receipt-1.png", updated.PaymentEvidence)
	assert.Equal(t, model.OrderStatusPending, updated.Status)

	events := f.store.EventsFor(order.ID)
	require.Len(t, events, 2)
	assert.Equal(t, model.OrderEventPaymentAttached, events[1].Type)

	_, err = f.lifecycle.Transition(ctx, admin, order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	_, err = f.orders.AttachPaymentEvidence(ctx, customer, order.ID, "uploads/receipt-2.png")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	assert.Equal(t, "uploads/receipt-1.png", f.stored(t, order.ID).PaymentEvidence)
}

func TestOrderUseCaseAttachPaymentEvidenceRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")

	_, err := f.orders.AttachPaymentEvidence(ctx, otherCustomer, order.ID, "uploads/x.png")
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.orders.AttachPaymentEvidence(ctx, admin, order.ID, "uploads/x.png")
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = f.orders.AttachPaymentEvidence(ctx, customer, order.ID, " ")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = f.orders.AttachPaymentEvidence(ctx, customer, "missing", "uploads/x.png")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	assert.Empty(t, f.stored(t, order.ID).PaymentEvidence)
	assert.Len(t, f.store.EventsFor(order.ID), 1)
}

func TestOrderUseCaseForbiddenCheckedBeforeState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.placeOrder(t, customer, "Blog")
	_, err := f.lifecycle.Transition(ctx, admin, order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	_, err = f.orders.AttachPaymentEvidence(ctx, otherCustomer, order.ID, "uploads/x.png")
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}
