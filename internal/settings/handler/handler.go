package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentportal_backend/internal/settings/service"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for agent settings.
type Handler struct {
	svc *service.Service
}

// New creates a new settings handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// onboardingRequest sets the onboarding flag.
type onboardingRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// RegisterRoutes mounts the settings routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.Get)
	group.PUT("/onboarding", h.SetOnboarding)
}

// Get returns the agent's settings.
// GET /api/v1/settings
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	settings, err := h.svc.Get(c.Request.Context(), identity.AgentID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settings)
}

// SetOnboarding stores the onboarding-completed flag.
// PUT /api/v1/settings/onboarding
func (h *Handler) SetOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.SetOnboardingCompleted(c.Request.Context(), identity.AgentID(), *req.Completed)) {
		return
	}
	c.Status(http.StatusNoContent)
}
