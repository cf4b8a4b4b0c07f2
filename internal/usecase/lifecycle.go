package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/policy"
	"github.com/polkiloo/webstudio/internal/domain/repository"
	"github.com/polkiloo/webstudio/internal/logger"
)

// LifecycleOptions tunes side effects of admin order edits.
type LifecycleOptions struct {
	NotifyOnDeliveryUpdate bool
}

// LifecycleUseCase is the only path that changes order status.
type LifecycleUseCase struct {
	tx      repository.Transactor
	options LifecycleOptions
	logger  *slog.Logger
	now     func() time.Time
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(tx repository.Transactor, options LifecycleOptions, logger *slog.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{tx: tx, options: options, logger: logger, now: time.Now}
}

// Transition moves the order to requested, which must be the immediate successor of
// its current status. The owner is notified in the same transaction.
func (u *LifecycleUseCase) Transition(ctx context.Context, actor model.Actor, id string, requested model.OrderStatus) (*model.Order, error) {
	if err := policy.Check(policy.ActionTransition, actor, ""); err != nil {
		return nil, err
	}
	if !requested.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, requested)
	}

	var (
		updated  *model.Order
		previous model.OrderStatus
	)
	err := u.tx.WithinTx(ctx, func(tx repository.Factory) error {
		current, err := tx.Orders().GetByID(ctx, id)
		if err != nil {
			return err
		}
		previous = current.Status
		if next, ok := previous.Next(); !ok || next != requested {
			return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, previous, requested)
		}

		// Compare-and-swap on the status read above; a concurrent transition makes it fail.
		updated, err = tx.Orders().TransitionStatus(ctx, id, previous, requested)
		if err != nil {
			return err
		}
		now := u.now()
		if _, err := emitNotification(ctx, tx.Notifications(), statusNotification(updated), now); err != nil {
			return err
		}
		return recordEvent(ctx, tx.Events(), model.OrderEventStatusChanged, updated, previous, now)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, u.logger).Info("order transitioned",
		slog.String("order_id", updated.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(updated.Status)),
		slog.String("actor_id", actor.UserID),
	)
	return updated, nil
}

// SetDeliveryMetadata writes the present, non-empty delivery fields. Status is unchanged.
// An update with nothing to write returns the stored order as is.
func (u *LifecycleUseCase) SetDeliveryMetadata(ctx context.Context, actor model.Actor, id string, update model.DeliveryUpdate) (*model.Order, error) {
	if err := policy.Check(policy.ActionSetDelivery, actor, ""); err != nil {
		return nil, err
	}
	update = update.WithoutBlank()

	var updated *model.Order
	err := u.tx.WithinTx(ctx, func(tx repository.Factory) error {
		var err error
		if update.IsEmpty() {
			updated, err = tx.Orders().GetByID(ctx, id)
			return err
		}
		updated, err = tx.Orders().Update(ctx, id, model.OrderPatch{Delivery: update})
		if err != nil {
			return err
		}
		now := u.now()
		if u.options.NotifyOnDeliveryUpdate {
			if _, err := emitNotification(ctx, tx.Notifications(), deliveryNotification(updated), now); err != nil {
				return err
			}
		}
		return recordEvent(ctx, tx.Events(), model.OrderEventDeliveryUpdated, updated, "", now)
	})
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return updated, nil
	}

	logger.FromContext(ctx, u.logger).Info("delivery metadata updated",
		slog.String("order_id", updated.ID),
		slog.String("actor_id", actor.UserID),
		slog.Bool("notified", u.options.NotifyOnDeliveryUpdate),
	)
	return updated, nil
}
