// Package projects provides the projects bounded context.
package projects

import (
	"net/http"

	apphttp "agency_portal_backend/internal/http"
	"agency_portal_backend/internal/projects/repository"
	"agency_portal_backend/internal/projects/service"
	"agency_portal_backend/platform/httpkit"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Module is the projects bounded context module implementing http.Module.
type Module struct {
	service *service.Service
}

// NewModule wires the projects context.
func NewModule(store tabular.Store, log *logger.Logger) *Module {
	return &Module{service: service.New(repository.New(store, log), log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "projects"
}

// Service returns the project service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts project routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/projects")
	rg.GET("", m.list)
	rg.GET("/:id", m.get)
}

func (m *Module) list(c *gin.Context) {
	projects, err := m.service.List(c.Request.Context())
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, gin.H{"projects": projects, "total": len(projects)})
}

func (m *Module) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	project, err := m.service.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, project)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
