package dto

import "time"

// NotificationResponse represents a notification as returned to its target user.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	OrderID   *string   `json:"order_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse is returned by GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MarkAllReadResponse is returned by POST /api/notifications/read-all.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// AnnounceRequest is the payload of POST /api/admin/notifications.
type AnnounceRequest struct {
	UserID   string  `json:"user_id" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Message  string  `json:"message" binding:"required"`
	Category string  `json:"category"`
	OrderID  *string `json:"order_id"`
}
