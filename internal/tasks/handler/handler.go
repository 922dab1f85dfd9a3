package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agentportal_backend/internal/tasks/service"
	"agentportal_backend/internal/tasks/transport"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for tasks.
type Handler struct {
	svc *service.Service
}

const (
	msgInvalidRequest = "invalid request"
	msgInvalidTaskID  = "invalid task ID"
)

// New creates a new tasks handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the task routes on an authenticated group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Add)
	group.GET("", h.List)
	group.PUT("/:id/completed", h.SetCompleted)
	group.POST("/:id/complete", h.Complete)
}

// Add creates a task.
// POST /api/v1/tasks
func (h *Handler) Add(c *gin.Context) {
	var req transport.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	task, err := h.svc.AddTask(c.Request.Context(), identity.AgentID(), service.AddTaskParams{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		DueDate:           req.DueDate,
		PerformanceImpact: req.PerformanceImpact,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, task)
}

// List returns the agent's tasks, newest first.
// GET /api/v1/tasks
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	httpkit.OK(c, h.svc.ListTasks(c.Request.Context(), identity.AgentID()))
}

// SetCompleted toggles completion in either direction.
// PUT /api/v1/tasks/:id/completed
func (h *Handler) SetCompleted(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	task, err := h.svc.SetCompleted(c.Request.Context(), identity.AgentID(), taskID, *req.Completed)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, task)
}

// Complete marks a task completed.
// POST /api/v1/tasks/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	task, err := h.svc.CompleteTask(c.Request.Context(), identity.AgentID(), taskID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, task)
}
