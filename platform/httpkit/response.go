package httpkit

import (
	"errors"
	"net/http"

	"agency_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// Err maps a domain error onto its HTTP status. Validation details, when
// present, are included in the envelope.
func Err(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}
