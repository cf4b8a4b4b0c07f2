package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentActor(c), model.OrderDraft{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		WebsiteType:   req.WebsiteType,
		Requirements:  req.Requirements,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/orders?owner=&status=.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{OwnerID: c.Query("owner")}
	if status := c.Query("status"); status != "" {
		s := model.OrderStatus(status)
		filter.Status = &s
	}

	orders, err := h.facade.Orders(c.Request.Context(), CurrentActor(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateDetails handles PATCH /api/orders/{id}.
func (h *OrderHandler) UpdateDetails(c *gin.Context) {
	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.UpdateOrderDetails(c.Request.Context(), CurrentActor(c), c.Param("id"), model.DetailsUpdate{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		WebsiteType:   req.WebsiteType,
		Requirements:  req.Requirements,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AttachPaymentEvidence handles POST /api/orders/{id}/payment-evidence.
func (h *OrderHandler) AttachPaymentEvidence(c *gin.Context) {
	var req dto.PaymentEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.AttachPaymentEvidence(c.Request.Context(), CurrentActor(c), c.Param("id"), req.Evidence)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Transition handles POST /api/orders/{id}/transition.
func (h *OrderHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.TransitionOrder(c.Request.Context(), CurrentActor(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetDelivery handles PATCH /api/orders/{id}/delivery.
func (h *OrderHandler) SetDelivery(c *gin.Context) {
	var req dto.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.facade.SetDeliveryMetadata(c.Request.Context(), CurrentActor(c), c.Param("id"), model.DeliveryUpdate{
		RepoURL:       req.RepoURL,
		DemoURL:       req.DemoURL,
		FileStructure: req.FileStructure,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              order.ID,
		OwnerID:         order.OwnerID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		WebsiteType:     order.WebsiteType,
		Requirements:    order.Requirements,
		Status:          string(order.Status),
		PaymentEvidence: order.PaymentEvidence,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if !order.Delivery.IsEmpty() {
		resp.Delivery = &dto.DeliveryResponse{
			RepoURL:       order.Delivery.RepoURL,
			DemoURL:       order.Delivery.DemoURL,
			FileStructure: order.Delivery.FileStructure,
			Notes:         order.Delivery.Notes,
		}
	}
	return resp
}
