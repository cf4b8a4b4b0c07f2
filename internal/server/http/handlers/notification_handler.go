package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/server/http/dto"
)

// NotificationHandler serves the notification inbox and admin announcements.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.facade.Notifications(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		response = append(response, toNotificationResponse(n))
	}
	c.JSON(http.StatusOK, response)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.facade.UnreadCount(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: count})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.facade.MarkNotificationRead(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationResponse(*n))
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.facade.MarkAllNotificationsRead(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// Announce handles POST /api/admin/notifications.
func (h *NotificationHandler) Announce(c *gin.Context) {
	var req dto.AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	n, err := h.facade.Announce(c.Request.Context(), CurrentActor(c), model.NotificationDraft{
		UserID:   req.UserID,
		Title:    req.Title,
		Message:  req.Message,
		Category: model.NotificationCategory(req.Category),
		OrderID:  req.OrderID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNotificationResponse(*n))
}

func toNotificationResponse(n model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Category:  string(n.Category),
		OrderID:   n.OrderID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
