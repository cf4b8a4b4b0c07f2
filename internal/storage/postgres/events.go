package postgres

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

// claimLease hides a claimed event from other relays while it is being published.
const claimLease = 30 * time.Second

type eventRepository struct {
	db querier
}

func (r *eventRepository) Append(ctx context.Context, e *model.OrderEvent) error {
	const query = `INSERT INTO order_events (id, order_id, type, payload, status, attempts, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, e.ID, e.OrderID, e.Type, e.Payload, e.Status, e.Attempts, e.CreatedAt)
	return err
}

func (r *eventRepository) ClaimPending(ctx context.Context, limit int) ([]model.OrderEvent, error) {
	const query = `UPDATE order_events
                   SET attempts = attempts + 1, available_at = NOW() + $2::int * INTERVAL '1 second'
                   WHERE id IN (
                       SELECT id FROM order_events
                       WHERE status = 'pending' AND available_at <= NOW()
                       ORDER BY created_at
                       LIMIT $1
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, order_id, type, payload, status, attempts, last_error, created_at, published_at`
	rows, err := r.db.Query(ctx, query, limit, int(claimLease.Seconds()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.OrderEvent
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Payload, &e.Status, &e.Attempts, &e.LastError, &e.CreatedAt, &e.PublishedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) MarkPublished(ctx context.Context, id string) error {
	const query = `UPDATE order_events SET status = 'published', published_at = NOW(), last_error = NULL WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// MarkFailed records reason. A non-final failure returns the event to the queue
// with a backoff proportional to its attempts.
func (r *eventRepository) MarkFailed(ctx context.Context, id string, reason string, final bool) error {
	status := model.OrderEventPending
	if final {
		status = model.OrderEventFailed
	}
	const query = `UPDATE order_events
                   SET status = $2, last_error = $3, available_at = NOW() + attempts * INTERVAL '2 seconds'
                   WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id, status, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
