package dto

import "time"

// CreateOrderRequest is the payload of POST /api/orders.
type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	WebsiteType   string `json:"website_type"`
	Requirements  string `json:"requirements"`
}

// UpdateDetailsRequest is the payload of PATCH /api/orders/{id}. Missing fields stay untouched.
type UpdateDetailsRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	WebsiteType   *string `json:"website_type"`
	Requirements  *string `json:"requirements"`
}

// TransitionRequest is the payload of POST /api/orders/{id}/transition.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentEvidenceRequest is the payload of POST /api/orders/{id}/payment-evidence.
type PaymentEvidenceRequest struct {
	Evidence string `json:"evidence" binding:"required"`
}

// DeliveryRequest is the payload of PATCH /api/orders/{id}/delivery.
// Missing, null and empty fields leave the stored value untouched.
type DeliveryRequest struct {
	RepoURL       *string `json:"repo_url"`
	DemoURL       *string `json:"demo_url"`
	FileStructure *string `json:"file_structure"`
	Notes         *string `json:"notes"`
}

// DeliveryResponse describes delivered website artifacts.
type DeliveryResponse struct {
	RepoURL       string `json:"repo_url,omitempty"`
	DemoURL       string `json:"demo_url,omitempty"`
	FileStructure string `json:"file_structure,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// OrderResponse represents an order as returned to clients.
type OrderResponse struct {
	ID              string            `json:"id"`
	OwnerID         string            `json:"owner_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	WebsiteType     string            `json:"website_type"`
	Requirements    string            `json:"requirements"`
	Status          string            `json:"status"`
	PaymentEvidence string            `json:"payment_evidence,omitempty"`
	Delivery        *DeliveryResponse `json:"delivery,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
