package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderEventType names the mutation recorded in the order event outbox.
type OrderEventType string

const (
	OrderEventCreated         OrderEventType = "order.created"
	OrderEventStatusChanged   OrderEventType = "order.status_changed"
	OrderEventPaymentAttached OrderEventType = "order.payment_attached"
	OrderEventDeliveryUpdated OrderEventType = "order.delivery_updated"
)

// OrderEventStatus tracks publication of an outbox entry.
type OrderEventStatus string

const (
	OrderEventPending   OrderEventStatus = "pending"
	OrderEventPublished OrderEventStatus = "published"
	OrderEventFailed    OrderEventStatus = "failed"
)

// OrderEvent is an outbox entry written in the same transaction as the order mutation.
type OrderEvent struct {
	ID          string
	OrderID     string
	Type        OrderEventType
	Payload     []byte
	Status      OrderEventStatus
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// OrderEventPayload is the JSON body published for every order event.
type OrderEventPayload struct {
	EventID        string         `json:"event_id"`
	Type           OrderEventType `json:"type"`
	OrderID        string         `json:"order_id"`
	OwnerID        string         `json:"owner_id"`
	Status         OrderStatus    `json:"status"`
	PreviousStatus OrderStatus    `json:"previous_status,omitempty"`
	WebsiteType    string         `json:"website_type"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// NewOrderEvent snapshots order into a pending outbox entry.
func NewOrderEvent(eventType OrderEventType, order *Order, previous OrderStatus, now time.Time) (*OrderEvent, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(OrderEventPayload{
		EventID:        id,
		Type:           eventType,
		OrderID:        order.ID,
		OwnerID:        order.OwnerID,
		Status:         order.Status,
		PreviousStatus: previous,
		WebsiteType:    order.WebsiteType,
		OccurredAt:     now.UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &OrderEvent{
		ID:        id,
		OrderID:   order.ID,
		Type:      eventType,
		Payload:   payload,
		Status:    OrderEventPending,
		CreatedAt: now,
	}, nil
}
