package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCategory is the severity tag shown next to a notification.
type NotificationCategory string

const (
	NotificationInfo    NotificationCategory = "info"
	NotificationSuccess NotificationCategory = "success"
	NotificationWarning NotificationCategory = "warning"
	NotificationError   NotificationCategory = "error"
)

// Valid reports whether c is a known category.
func (c NotificationCategory) Valid() bool {
	switch c {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// Notification is a persisted per-user message.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Category  NotificationCategory
	OrderID   *string
	Read      bool
	CreatedAt time.Time
}

// NotificationDraft carries the content of a notification about to be emitted.
type NotificationDraft struct {
	UserID   string
	Title    string
	Message  string
	Category NotificationCategory
	OrderID  *string
}

// NewNotification builds an unread notification from draft.
func NewNotification(draft NotificationDraft, now time.Time) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		UserID:    draft.UserID,
		Title:     draft.Title,
		Message:   draft.Message,
		Category:  draft.Category,
		OrderID:   draft.OrderID,
		CreatedAt: now,
	}
}
