package transport

import "github.com/google/uuid"

// PublicSubmissionResponse is the intake form confirmation.
type PublicSubmissionResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}
