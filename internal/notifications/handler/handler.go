package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agentportal_backend/internal/notifications/service"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the notification center.
type Handler struct {
	svc *service.Service
}

const msgInvalidNotificationID = "invalid notification ID"

// New creates a new notifications handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the notification routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/unread-count", h.UnreadCount)
	group.POST("/:id/read", h.MarkRead)
	group.PUT("/read-all", h.MarkAllRead)
	group.DELETE("/:id", h.Clear)
}

// List returns the agent's notifications, newest first.
// GET /api/v1/notifications
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.List(c.Request.Context(), identity.AgentID()))
}

// UnreadCount returns the number of unread notifications.
// GET /api/v1/notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, gin.H{"unread": h.svc.UnreadCount(c.Request.Context(), identity.AgentID())})
}

// MarkRead marks one notification as read; repeats are no-ops.
// POST /api/v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	id, identity := h.notificationScope(c)
	if identity == nil {
		return
	}
	h.svc.MarkRead(c.Request.Context(), identity.AgentID(), id)
	c.Status(http.StatusNoContent)
}

// MarkAllRead marks the whole mailbox as read.
// PUT /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	h.svc.MarkAllRead(c.Request.Context(), identity.AgentID())
	c.Status(http.StatusNoContent)
}

// Clear removes a notification; clearing an unknown id is a no-op.
// DELETE /api/v1/notifications/:id
func (h *Handler) Clear(c *gin.Context) {
	id, identity := h.notificationScope(c)
	if identity == nil {
		return
	}
	h.svc.Clear(c.Request.Context(), identity.AgentID(), id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) notificationScope(c *gin.Context) (uuid.UUID, httpkit.Identity) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidNotificationID, nil)
		return uuid.Nil, nil
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, nil
	}
	return id, identity
}
