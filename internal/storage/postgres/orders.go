package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

type orderRepository struct {
	db querier
}

const orderColumns = `id, owner_id, customer_name, customer_email, website_type, requirements, status,
payment_evidence, repo_url, demo_url, file_structure, delivery_notes, created_at, updated_at`

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OwnerID, &o.CustomerName, &o.CustomerEmail, &o.WebsiteType, &o.Requirements, &o.Status,
		&o.PaymentEvidence, &o.Delivery.RepoURL, &o.Delivery.DemoURL, &o.Delivery.FileStructure, &o.Delivery.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	const query = `INSERT INTO orders (id, owner_id, customer_name, customer_email, website_type, requirements, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query, o.ID, o.OwnerID, o.CustomerName, o.CustomerEmail, o.WebsiteType, o.Requirements, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return order, nil
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id string) (*model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Order, error) {
	return r.List(ctx, model.OrderFilter{OwnerID: ownerID})
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE ($1::text = '' OR owner_id = $1) AND ($2::text = '' OR status = $2)
                   ORDER BY created_at DESC`
	var status string
	if filter.Status != nil {
		status = string(*filter.Status)
	}

	rows, err := r.db.Query(ctx, query, filter.OwnerID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update merges present patch fields; absent ones keep their stored values.
func (r *orderRepository) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	const query = `UPDATE orders SET customer_name = COALESCE($2, customer_name),
                       customer_email = COALESCE($3, customer_email),
                       website_type = COALESCE($4, website_type),
                       requirements = COALESCE($5, requirements),
                       payment_evidence = COALESCE($6, payment_evidence),
                       repo_url = COALESCE($7, repo_url),
                       demo_url = COALESCE($8, demo_url),
                       file_structure = COALESCE($9, file_structure),
                       delivery_notes = COALESCE($10, delivery_notes),
                       updated_at = NOW()
                   WHERE id = $1
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, id,
		patch.Details.CustomerName, patch.Details.CustomerEmail, patch.Details.WebsiteType, patch.Details.Requirements,
		patch.PaymentEvidence,
		patch.Delivery.RepoURL, patch.Delivery.DemoURL, patch.Delivery.FileStructure, patch.Delivery.Notes,
	))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return order, nil
}

// TransitionStatus is a compare-and-swap on the status column.
func (r *orderRepository) TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status = $3, updated_at = NOW()
                   WHERE id = $1 AND status = $2
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, id, from, to))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var current model.OrderStatus
	if err := r.db.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, id).Scan(&current); err != nil {
		return nil, notFoundOr(err)
	}
	return nil, fmt.Errorf("%w: order is %s, expected %s", domainErrors.ErrInvalidTransition, current, from)
}
