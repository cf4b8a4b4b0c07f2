package repository

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// GetForUpdate reads the order and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetForUpdate(ctx context.Context, id string) (*model.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	// TransitionStatus moves the order from one status to another only if it is
	// still in from. It returns ErrInvalidTransition when the stored status differs.
	TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
}
