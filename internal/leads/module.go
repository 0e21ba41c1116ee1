// Package leads provides the lead intake and qualification bounded context.
// This file defines the module that encapsulates all leads setup and route
// registration.
package leads

import (
	"agency_portal_backend/internal/events"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/internal/leads/handler"
	"agency_portal_backend/internal/leads/management"
	"agency_portal_backend/internal/leads/repository"
	"agency_portal_backend/internal/leads/scoring"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
	"agency_portal_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	management    *management.Service
	repo          *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(store tabular.Store, c cache.Cache, bus events.Bus, val *validator.Validator, cfg config.ScoringConfig, log *logger.Logger) (*Module, error) {
	scoringCfg, err := scoring.LoadConfig(cfg.GetScoringOverridesPath())
	if err != nil {
		return nil, err
	}

	repo := repository.New(store, c, log)
	svc := management.NewService(repo, scoring.New(scoringCfg), val, bus, log)

	return &Module{
		handler:       handler.New(svc),
		publicHandler: handler.NewPublicHandler(svc),
		management:    svc,
		repo:          repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// ManagementService returns the lead management service for external use.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// Repository returns the lead repository for modules that link leads.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/leads"))

	public := ctx.Public.Group("")
	public.Use(ctx.IntakeRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(public)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
