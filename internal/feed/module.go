// Package feed provides the activity feed bounded context module.
package feed

import (
	"agentportal_backend/internal/events"
	"agentportal_backend/internal/feed/handler"
	"agentportal_backend/internal/feed/repository"
	"agentportal_backend/internal/feed/service"
	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/platform/clock"
	"agentportal_backend/platform/config"
	"agentportal_backend/platform/logger"
)

// Module is the feed bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates the feed module, subscribes it to domain events, and
// starts the simulated generator when enabled.
func NewModule(cfg config.FeedConfig, clk clock.Clock, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(service.DefaultCapacity)
	svc := service.New(repo, clk, cfg.GetFeedBadgeTTL(), log)
	svc.RegisterSubscriptions(bus)

	if cfg.IsFeedSimulatorEnabled() {
		svc.StartSimulator(cfg.GetFeedSimulatorInterval())
	}

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "feed"
}

// Service returns the feed service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// Stop cancels the simulator and any pending highlight timers.
func (m *Module) Stop() {
	m.svc.Stop()
}

// RegisterRoutes mounts feed routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/feed"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
