package handler

import (
	"github.com/gin-gonic/gin"

	"agentportal_backend/internal/feed/service"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the activity feed.
type Handler struct {
	svc *service.Service
}

// New creates a new feed handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the feed routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
}

// List returns the feed, newest first.
// GET /api/v1/feed
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.List(c.Request.Context()))
}
