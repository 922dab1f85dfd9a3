// Package leads provides the lead registry bounded context module.
package leads

import (
	"agentportal_backend/internal/events"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/leads/handler"
	"agentportal_backend/internal/leads/repository"
	"agentportal_backend/internal/leads/service"
	"agentportal_backend/internal/scheduler"
	"agentportal_backend/platform/logger"
	"agentportal_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
// reminders may be nil when no Redis is configured; reminders then simply
// never fire notifications.
func NewModule(bus events.Bus, reminders scheduler.ReminderScheduler, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New()
	svc := service.New(repo, bus, reminders, val, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
