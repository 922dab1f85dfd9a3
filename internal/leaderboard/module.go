// Package leaderboard provides the AP ranking bounded context module.
package leaderboard

import (
	"github.com/redis/go-redis/v9"

	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/leaderboard/handler"
	"agentportal_backend/internal/leaderboard/repository"
	"agentportal_backend/internal/leaderboard/service"
	"agentportal_backend/platform/logger"
)

// Module is the leaderboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leaderboard module. directory and
// performance may be nil; entries then carry empty display fields.
func NewModule(rdb *redis.Client, directory service.AgentDirectory, performance service.PerformanceSource, log *logger.Logger) *Module {
	repo := repository.New(rdb)
	svc := service.New(repo, directory, performance, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leaderboard"
}

// Service returns the leaderboard service for external use.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts leaderboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leaderboard"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
