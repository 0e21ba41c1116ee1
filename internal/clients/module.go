// Package clients provides the client accounts bounded context.
package clients

import (
	"net/http"

	"agency_portal_backend/internal/clients/repository"
	"agency_portal_backend/internal/clients/service"
	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/platform/httpkit"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Module is the clients bounded context module implementing http.Module.
type Module struct {
	service *service.Service
}

// NewModule wires the clients context.
func NewModule(store tabular.Store, log *logger.Logger) *Module {
	return &Module{service: service.New(repository.New(store, log), log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "clients"
}

// Service returns the client service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts client routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/clients")
	rg.GET("", m.list)
	rg.GET("/:id", m.get)
}

func (m *Module) list(c *gin.Context) {
	clients, err := m.service.List(c.Request.Context())
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, gin.H{"clients": clients, "total": len(clients)})
}

func (m *Module) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	client, err := m.service.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, client)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
