package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentportal_backend/internal/gamification/service"
	"agentportal_backend/internal/gamification/transport"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for gamification state.
type Handler struct {
	svc *service.Service
}

const msgInvalidRequest = "invalid request"

// New creates a new gamification handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the gamification routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/performance", h.Performance)
	group.GET("/stats", h.Stats)
	group.GET("/achievements", h.Achievements)
	group.POST("/toast/consume", h.ConsumeToast)
	group.POST("/trainings/complete", h.CompleteTraining)
}

// Performance returns the agent's XP, level, and streaks.
// GET /api/v1/gamification/performance
func (h *Handler) Performance(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.Performance(c.Request.Context(), identity.AgentID()))
}

// Stats returns the aggregate counters behind achievement predicates.
// GET /api/v1/gamification/stats
func (h *Handler) Stats(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.Stats(c.Request.Context(), identity.AgentID()))
}

// Achievements returns every achievement with its unlock state.
// GET /api/v1/gamification/achievements
func (h *Handler) Achievements(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.Achievements(c.Request.Context(), identity.AgentID()))
}

// ConsumeToast pops the pending XP toast. Responds 204 when none is pending.
// POST /api/v1/gamification/toast/consume
func (h *Handler) ConsumeToast(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	toast, ok := h.svc.ConsumeToast(c.Request.Context(), identity.AgentID())
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	httpkit.OK(c, toast)
}

// CompleteTraining records a finished training module.
// POST /api/v1/gamification/trainings/complete
func (h *Handler) CompleteTraining(c *gin.Context) {
	var req transport.CompleteTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	perf, err := h.svc.CompleteTraining(c.Request.Context(), identity.AgentID(), req.TrainingID, req.XPReward)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, perf)
}
