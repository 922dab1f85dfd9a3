// Package tasks provides the daily task list bounded context module.
package tasks

import (
	"agentportal_backend/internal/events"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/tasks/handler"
	"agentportal_backend/internal/tasks/repository"
	"agentportal_backend/internal/tasks/service"
	"agentportal_backend/platform/logger"
)

// Module is the tasks bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the tasks module with all its dependencies.
func NewModule(bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New()
	svc := service.New(repo, bus, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tasks"
}

// Service returns the task service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts task routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/tasks"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
