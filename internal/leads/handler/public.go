package handler

import (
	"net/http"

	"agency_portal_backend/internal/leads/management"
	"agency_portal_backend/internal/leads/transport"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated intake form endpoint.
type PublicHandler struct {
	svc *management.Service
}

func NewPublicHandler(svc *management.Service) *PublicHandler {
	return &PublicHandler{svc: svc}
}

func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.SubmitLead)
}

// SubmitLead captures a form submission. Unlike the dashboard surface, the
// response exposes no internal scoring detail beyond the confirmation.
func (h *PublicHandler) SubmitLead(c *gin.Context) {
	var req management.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), req)
	if err != nil && !apperr.Is(err, apperr.KindPersistence) {
		httpkit.Err(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.PublicSubmissionResponse{
		ID:      lead.ID,
		Message: "Thanks! We received your inquiry and will be in touch shortly.",
	})
}
