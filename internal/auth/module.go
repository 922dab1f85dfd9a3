// Package auth provides the agent account bounded context module.
package auth

import (
	"agentportal_backend/internal/auth/handler"
	"agentportal_backend/internal/auth/repository"
	"agentportal_backend/internal/auth/service"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/platform/logger"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the auth module.
func NewModule(cfg service.Config, log *logger.Logger) *Module {
	repo := repository.New()
	svc := service.New(repo, cfg, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts the public auth routes behind the stricter auth
// rate limiter and the /me route behind authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	if ctx.AuthRateLimiter != nil {
		public.Use(ctx.AuthRateLimiter.RateLimit())
	}
	m.handler.RegisterPublicRoutes(public)

	m.handler.RegisterProtectedRoutes(ctx.Protected.Group("/auth"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
