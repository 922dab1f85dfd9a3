package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agentportal_backend/internal/auth/service"
	"agentportal_backend/internal/auth/transport"
	"agentportal_backend/platform/httpkit"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	svc *service.Service
}

const msgInvalidRequest = "invalid request"

// New creates a new auth handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(group *gin.RouterGroup) {
	group.POST("/register", h.Register)
	group.POST("/login", h.Login)
}

// RegisterProtectedRoutes mounts the authenticated auth routes.
func (h *Handler) RegisterProtectedRoutes(group *gin.RouterGroup) {
	group.GET("/me", h.Me)
}

// Register creates an account and signs the agent in.
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	agent, token, err := h.svc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.AuthResponse{Agent: agent, AccessToken: token})
}

// Login verifies credentials and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	agent, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AuthResponse{Agent: agent, AccessToken: token})
}

// Me returns the caller's account.
// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	agent, err := h.svc.Me(c.Request.Context(), identity.AgentID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, agent)
}
