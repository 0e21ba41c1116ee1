// Package handler exposes discovery sessions over HTTP.
package handler

import (
	"net/http"

	"agency_portal_backend/internal/discovery/service"
	"agency_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Start)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.GET("/:id/analytics", h.Analytics)
	rg.GET("/by-lead/:leadId", h.GetByLead)
}

type startSessionRequest struct {
	LeadID uuid.UUID `json:"leadId" binding:"required"`
}

func (h *Handler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	session, err := h.svc.Start(c.Request.Context(), req.LeadID)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, session)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	session, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, session)
}

func (h *Handler) GetByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	session, err := h.svc.GetByLead(c.Request.Context(), leadID)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, session)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req service.UpdateSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	session, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, session)
}

func (h *Handler) Analytics(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Analytics(c.Request.Context(), id)
	if err != nil {
		httpkit.Err(c, err)
		return
	}
	httpkit.OK(c, result)
}
