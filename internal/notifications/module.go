// Package notifications provides the notification center bounded context
// module.
package notifications

import (
	"agentportal_backend/internal/events"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/notifications/handler"
	"agentportal_backend/internal/notifications/repository"
	"agentportal_backend/internal/notifications/service"
	"agentportal_backend/platform/logger"
)

// Module is the notifications bounded context module implementing
// http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates the notifications module and subscribes it to the
// domain events that produce alerts.
func NewModule(bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New()
	svc := service.New(repo, log)
	svc.RegisterSubscriptions(bus)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notifications"
}

// Service returns the notification service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/notifications"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
