// Package settings provides the per-agent settings bounded context module.
package settings

import (
	"github.com/redis/go-redis/v9"

	apphttp "agentportal_backend/internal/http"
	"agentportal_backend/internal/settings/handler"
	"agentportal_backend/internal/settings/repository"
	"agentportal_backend/internal/settings/service"
	"agentportal_backend/platform/logger"
)

// Module is the settings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the settings module.
func NewModule(rdb *redis.Client, log *logger.Logger) *Module {
	repo := repository.New(rdb)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "settings"
}

// RegisterRoutes mounts settings routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/settings"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
