// Package gamification provides the XP, levels, streaks, and achievements
// bounded context module.
package gamification

import (
	"agentportal_backend/internal/events"
	"agentportal_backend/internal/gamification/handler"
	"agentportal_backend/internal/gamification/repository"
	"agentportal_backend/internal/gamification/rules"
	"agentportal_backend/internal/gamification/service"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/platform/logger"
)

// Module is the gamification bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates the gamification module and subscribes it to the domain
// events that feed the engine. directory may be nil; event payloads then
// carry empty agent names.
func NewModule(bus events.Bus, r rules.Rules, directory service.AgentDirectory, log *logger.Logger) *Module {
	repo := repository.New()
	svc := service.New(repo, r, bus, directory, log)
	svc.RegisterSubscriptions(bus)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "gamification"
}

// Service returns the gamification service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts gamification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/gamification"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
