package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentportal_backend/internal/leaderboard/service"
	"agentportal_backend/internal/leaderboard/transport"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the leaderboard.
type Handler struct {
	svc *service.Service
}

const msgInvalidRequest = "invalid request"

// New creates a new leaderboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the leaderboard routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/:period", h.Rank)
	group.PUT("/ap", h.SetAP)
	group.POST("/ap", h.AddAP)
}

// Rank returns the ranked entries for one period.
// GET /api/v1/leaderboard/:period
func (h *Handler) Rank(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	entries, err := h.svc.Rank(c.Request.Context(), c.Param("period"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, entries)
}

// SetAP overwrites the caller's AP figure for one period.
// PUT /api/v1/leaderboard/ap
func (h *Handler) SetAP(c *gin.Context) {
	var req transport.SetAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.SetAP(c.Request.Context(), identity.AgentID(), req.Period, req.Amount)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAP increments the caller's AP figure for one period.
// POST /api/v1/leaderboard/ap
func (h *Handler) AddAP(c *gin.Context) {
	var req transport.AddAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	total, err := h.svc.AddAP(c.Request.Context(), identity.AgentID(), req.Period, req.Delta)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"period": req.Period, "ap": total})
}
