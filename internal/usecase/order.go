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

// OrderUseCase handles customer facing order operations.
type OrderUseCase struct {
	orders repository.OrderRepository
	tx     repository.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, tx repository.Transactor, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, tx: tx, logger: logger, now: time.Now}
}

// Create places a new pending order owned by the actor.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, draft model.OrderDraft) (*model.Order, error) {
	if err := policy.Check(policy.ActionCreateOrder, actor, actor.UserID); err != nil {
		return nil, err
	}
	draft.OwnerID = actor.UserID
	draft, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	now := u.now()
	order := model.NewOrder(draft, now)
	err = u.tx.WithinTx(ctx, func(tx repository.Factory) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return recordEvent(ctx, tx.Events(), model.OrderEventCreated, order, "", now)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, u.logger).Info("order created",
		slog.String("order_id", order.ID),
		slog.String("actor_id", actor.UserID),
		slog.String("website_type", order.WebsiteType),
	)
	return order, nil
}

// Get returns a single order as seen by the actor.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ActionReadOrder, actor, order.OwnerID); err != nil {
		return nil, err
	}
	hideDelivery(actor, order)
	return order, nil
}

// List returns orders newest first. Customers only ever see their own orders.
func (u *OrderUseCase) List(ctx context.Context, actor model.Actor, filter model.OrderFilter) ([]model.Order, error) {
	if actor.IsCustomer() && filter.OwnerID == "" {
		filter.OwnerID = actor.UserID
	}
	if err := policy.Check(policy.ActionListOrders, actor, filter.OwnerID); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, *filter.Status)
	}

	orders, err := u.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		hideDelivery(actor, &orders[i])
	}
	return orders, nil
}

// UpdateDetails changes descriptive fields of a pending order owned by the actor.
func (u *OrderUseCase) UpdateDetails(ctx context.Context, actor model.Actor, id string, update model.DetailsUpdate) (*model.Order, error) {
	var updated *model.Order
	err := u.tx.WithinTx(ctx, func(tx repository.Factory) error {
		order, err := u.lockPending(ctx, tx, actor, id, policy.ActionEditOrderDetails)
		if err != nil {
			return err
		}
		details, err := normalizeDetails(update)
		if err != nil {
			return err
		}
		updated, err = tx.Orders().Update(ctx, order.ID, model.OrderPatch{Details: details})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, u.logger).Info("order details updated",
		slog.String("order_id", updated.ID),
		slog.String("actor_id", actor.UserID),
	)
	hideDelivery(actor, updated)
	return updated, nil
}

// AttachPaymentEvidence stores a reference to the payment proof of a pending order.
// The status is left for an admin to confirm.
func (u *OrderUseCase) AttachPaymentEvidence(ctx context.Context, actor model.Actor, id, evidence string) (*model.Order, error) {
	var updated *model.Order
	err := u.tx.WithinTx(ctx, func(tx repository.Factory) error {
		order, err := u.lockPending(ctx, tx, actor, id, policy.ActionAttachPayment)
		if err != nil {
			return err
		}
		evidence = strings.TrimSpace(evidence)
		if evidence == "" {
			return fmt.Errorf("%w: payment evidence reference is required", domainErrors.ErrValidation)
		}
		updated, err = tx.Orders().Update(ctx, order.ID, model.OrderPatch{PaymentEvidence: &evidence})
		if err != nil {
			return err
		}
		return recordEvent(ctx, tx.Events(), model.OrderEventPaymentAttached, updated, "", u.now())
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, u.logger).Info("payment evidence attached",
		slog.String("order_id", updated.ID),
		slog.String("actor_id", actor.UserID),
	)
	hideDelivery(actor, updated)
	return updated, nil
}

// lockPending loads and locks the order, then checks the actor may run action on it while pending.
func (u *OrderUseCase) lockPending(ctx context.Context, tx repository.Factory, actor model.Actor, id string, action policy.Action) (*model.Order, error) {
	order, err := tx.Orders().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(action, actor, order.OwnerID); err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: order %s is %s, expected %s", domainErrors.ErrInvalidState, order.ID, order.Status, model.OrderStatusPending)
	}
	return order, nil
}

// hideDelivery clears delivery metadata customers may not see yet.
func hideDelivery(actor model.Actor, order *model.Order) {
	if actor.IsAdmin() || order.Status.AtLeast(model.OrderStatusConfirmed) {
		return
	}
	order.Delivery = model.DeliveryMetadata{}
}
