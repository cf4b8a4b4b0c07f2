package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the fulfilment lifecycle of a website order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

// orderStatusSequence is the only order in which statuses may be visited.
var orderStatusSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
	OrderStatusCompleted,
}

func (s OrderStatus) rank() int {
	for i, st := range orderStatusSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// Next returns the immediate successor of s. Completed and unknown statuses have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.rank()
	if r < 0 || r == len(orderStatusSequence)-1 {
		return "", false
	}
	return orderStatusSequence[r+1], true
}

// AtLeast reports whether s is at or past other in the lifecycle.
func (s OrderStatus) AtLeast(other OrderStatus) bool {
	return s.Valid() && other.Valid() && s.rank() >= other.rank()
}

// DeliveryMetadata holds admin-authored information about the delivered website.
type DeliveryMetadata struct {
	RepoURL       string
	DemoURL       string
	FileStructure string
	Notes         string
}

// IsEmpty reports whether no delivery field has been written yet.
func (d DeliveryMetadata) IsEmpty() bool {
	return d == DeliveryMetadata{}
}

// Order is a customer's request for a website-building engagement.
type Order struct {
	ID              string
	OwnerID         string
	CustomerName    string
	CustomerEmail   string
	WebsiteType     string
	Requirements    string
	Status          OrderStatus
	PaymentEvidence string
	Delivery        DeliveryMetadata
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderDraft carries customer supplied fields for a new order.
type OrderDraft struct {
	OwnerID       string
	CustomerName  string
	CustomerEmail string
	WebsiteType   string
	Requirements  string
}

// NewOrder builds a pending order from draft with a fresh identifier.
func NewOrder(draft OrderDraft, now time.Time) *Order {
	return &Order{
		ID:            uuid.NewString(),
		OwnerID:       draft.OwnerID,
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		WebsiteType:   draft.WebsiteType,
		Requirements:  draft.Requirements,
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DetailsUpdate lists descriptive fields a customer may change. Nil means untouched.
type DetailsUpdate struct {
	CustomerName  *string
	CustomerEmail *string
	WebsiteType   *string
	Requirements  *string
}

// IsEmpty reports whether the update carries no field.
func (u DetailsUpdate) IsEmpty() bool {
	return u.CustomerName == nil && u.CustomerEmail == nil && u.WebsiteType == nil && u.Requirements == nil
}

// DeliveryUpdate lists delivery fields an admin may set. Nil means untouched.
type DeliveryUpdate struct {
	RepoURL       *string
	DemoURL       *string
	FileStructure *string
	Notes         *string
}

// WithoutBlank drops fields that are present but empty, so they leave the stored value untouched.
func (u DeliveryUpdate) WithoutBlank() DeliveryUpdate {
	keep := func(v *string) *string {
		if v == nil || *v == "" {
			return nil
		}
		return v
	}
	return DeliveryUpdate{
		RepoURL:       keep(u.RepoURL),
		DemoURL:       keep(u.DemoURL),
		FileStructure: keep(u.FileStructure),
		Notes:         keep(u.Notes),
	}
}

// IsEmpty reports whether the update carries no field.
func (u DeliveryUpdate) IsEmpty() bool {
	return u.RepoURL == nil && u.DemoURL == nil && u.FileStructure == nil && u.Notes == nil
}

// OrderPatch is a partial update merged into a stored order. Status changes go
// through the lifecycle transition path instead.
type OrderPatch struct {
	Details         DetailsUpdate
	Delivery        DeliveryUpdate
	PaymentEvidence *string
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return p.Details.IsEmpty() && p.Delivery.IsEmpty() && p.PaymentEvidence == nil
}

// Apply merges present patch fields into o and bumps UpdatedAt.
func (p OrderPatch) Apply(o *Order, now time.Time) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&o.CustomerName, p.Details.CustomerName)
	set(&o.CustomerEmail, p.Details.CustomerEmail)
	set(&o.WebsiteType, p.Details.WebsiteType)
	set(&o.Requirements, p.Details.Requirements)
	set(&o.Delivery.RepoURL, p.Delivery.RepoURL)
	set(&o.Delivery.DemoURL, p.Delivery.DemoURL)
	set(&o.Delivery.FileStructure, p.Delivery.FileStructure)
	set(&o.Delivery.Notes, p.Delivery.Notes)
	set(&o.PaymentEvidence, p.PaymentEvidence)
	o.UpdatedAt = now
}

// OrderFilter narrows administrative listings.
type OrderFilter struct {
	OwnerID string
	Status  *OrderStatus
}
