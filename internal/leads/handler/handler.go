package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agentportal_backend/internal/leads/service"
	"agentportal_backend/internal/leads/transport"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the lead pipeline.
type Handler struct {
	svc *service.Service
}

const (
	msgInvalidRequest    = "invalid request"
	msgInvalidLeadID     = "invalid lead ID"
	msgInvalidReminderID = "invalid reminder ID"
)

// New creates a new leads handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the lead routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id/status", h.UpdateStatus)
	group.POST("/:id/activities", h.AddActivity)
	group.POST("/:id/tags", h.AddTag)
	group.DELETE("/:id/tags/:tag", h.RemoveTag)
	group.POST("/:id/reminders", h.AddReminder)
	group.POST("/:id/reminders/:reminderId/complete", h.CompleteReminder)
}

// Create creates a new lead.
// POST /api/v1/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	lead, err := h.svc.CreateLead(c.Request.Context(), identity.AgentID(), service.CreateLeadParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		State:   req.State,
		Product: req.Product,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, lead)
}

// List returns the agent's leads, newest first.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.ListLeads(c.Request.Context(), identity.AgentID()))
}

// Get returns one lead.
// GET /api/v1/leads/:id
func (h *Handler) Get(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), identity.AgentID(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// UpdateStatus moves a lead to another pipeline column.
// PUT /api/v1/leads/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	lead, err := h.svc.UpdateStatus(c.Request.Context(), identity.AgentID(), leadID, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// AddActivity logs a call/text/email/meeting/note on a lead.
// POST /api/v1/leads/:id/activities
func (h *Handler) AddActivity(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	var req transport.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	entry, err := h.svc.AddActivity(c.Request.Context(), identity.AgentID(), leadID, service.AddActivityParams{
		Type:        req.Type,
		Disposition: req.Disposition,
		Notes:       req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, entry)
}

// AddTag adds a tag to a lead.
// POST /api/v1/leads/:id/tags
func (h *Handler) AddTag(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	var req transport.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.AddTag(c.Request.Context(), identity.AgentID(), leadID, req.Tag)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveTag removes a tag from a lead; removing an absent tag is a no-op.
// DELETE /api/v1/leads/:id/tags/:tag
func (h *Handler) RemoveTag(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.svc.RemoveTag(c.Request.Context(), identity.AgentID(), leadID, c.Param("tag"))) {
		return
	}
	c.Status(http.StatusNoContent)
}

// AddReminder attaches a dated follow-up to a lead.
// POST /api/v1/leads/:id/reminders
func (h *Handler) AddReminder(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	var req transport.AddReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	rem, err := h.svc.AddReminder(c.Request.Context(), identity.AgentID(), leadID, service.AddReminderParams{
		Date:    req.Date,
		Time:    req.Time,
		Message: req.Message,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, rem)
}

// CompleteReminder marks a reminder completed; retries are no-ops.
// POST /api/v1/leads/:id/reminders/:reminderId/complete
func (h *Handler) CompleteReminder(c *gin.Context) {
	leadID, identity := h.leadScope(c)
	if identity == nil {
		return
	}

	reminderID, err := uuid.Parse(c.Param("reminderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidReminderID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.CompleteReminder(c.Request.Context(), identity.AgentID(), leadID, reminderID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// leadScope parses the :id param and the identity; on failure it writes the
// error response and returns a nil identity.
func (h *Handler) leadScope(c *gin.Context) (uuid.UUID, httpkit.Identity) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return uuid.Nil, nil
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, nil
	}
	return leadID, identity
}
