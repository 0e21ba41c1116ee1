// Package discovery provides the discovery questionnaire bounded context.
package discovery

import (
	"agency_portal_backend/internal/discovery/handler"
	"agency_portal_backend/internal/discovery/repository"
	"agency_portal_backend/internal/discovery/service"
	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
)

// Module is the discovery bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the discovery context.
func NewModule(store tabular.Store, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(store, log)
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the discovery service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts discovery routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/discovery-sessions"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
