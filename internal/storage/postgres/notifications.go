package postgres

import (
	"context"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

type notificationRepository struct {
	db querier
}

const notificationColumns = `id, user_id, title, message, category, order_id, read, created_at`

func scanNotification(row rowScanner) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &n.OrderID, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	const query = `INSERT INTO notifications (id, user_id, title, message, category, order_id, read, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.Category, n.OrderID, n.Read, n.CreatedAt)
	return err
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND NOT read`, userID).Scan(&count)
	return count, err
}

// MarkRead is idempotent: an already read notification is returned unchanged.
func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	const query = `UPDATE notifications SET read = TRUE WHERE id=$1 RETURNING ` + notificationColumns
	n, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return n, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id=$1 AND NOT read`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
