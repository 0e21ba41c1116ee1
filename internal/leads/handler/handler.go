// Package handler exposes the leads context over HTTP.
package handler

import (
	"net/http"

	"agency_portal_backend/internal/leads/management"
	"agency_portal_backend/internal/leads/transport"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler serves the internal dashboard surface of the leads context.
type Handler struct {
	svc *management.Service
}

func New(svc *management.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/stats", h.Stats)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
}

func (h *Handler) Create(c *gin.Context) {
	var req management.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if apperr.Is(err, apperr.KindPersistence) {
			// The lead was scored and built but could not be durably stored.
			httpkit.JSON(c, http.StatusCreated, transport.CreatedLeadResponse{Lead: lead, Degraded: true})
			return
		}
		httpkit.Err(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.CreatedLeadResponse{Lead: lead})
}

func (h *Handler) List(c *gin.Context) {
	var query transport.ListLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	leads, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, gin.H{"leads": leads, "total": len(leads)})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, stats)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, lead)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req management.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if apperr.Is(err, apperr.KindPersistence) {
			httpkit.JSON(c, http.StatusOK, transport.CreatedLeadResponse{Lead: lead, Degraded: true})
			return
		}
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, lead)
}
