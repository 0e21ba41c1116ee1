// Package domain holds the client account model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the client account state.
type Status string

const (
	StatusOnboarding Status = "onboarding"
	StatusActive     Status = "active"
	StatusPaused     Status = "paused"
	StatusInactive   Status = "inactive"
)

// Client is a won lead re-shaped into a persistent account.
type Client struct {
	ID uuid.UUID `json:"id"`

	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"companySize,omitempty"`

	Status Status `json:"status"`

	// LeadID links back to the originating lead.
	LeadID *uuid.UUID `json:"leadId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
