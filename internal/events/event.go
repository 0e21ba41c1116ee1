// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"agency_portal_backend/platform/events"
	"agency_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is captured from the intake form.
type LeadCreated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Company   string    `json:"company"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LeadScore int       `json:"leadScore"`
	Priority  string    `json:"priority"`
	Source    string    `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when a lead's lifecycle status changes.
// Carries both old and new status so subscribers can react to edges,
// not levels (the provisioning pipeline depends on this).
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadRescored is published when a lead's score is recomputed after an update
// touching scoring-relevant fields.
type LeadRescored struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	OldScore    int       `json:"oldScore"`
	NewScore    int       `json:"newScore"`
	NewPriority string    `json:"newPriority"`
}

func (e LeadRescored) EventName() string { return "leads.lead.rescored" }

// =============================================================================
// Provisioning Domain Events
// =============================================================================

// LeadProvisioned is published when the provisioning pipeline has created
// (or reused) the client and project records for a lead.
type LeadProvisioned struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	ClientID  uuid.UUID `json:"clientId"`
	ProjectID uuid.UUID `json:"projectId"`
}

func (e LeadProvisioned) EventName() string { return "provisioning.lead.provisioned" }

// ProvisioningFailed is published when a provisioning step fails.
// The lead status change that triggered the pipeline is already committed;
// subscribers handle alerting and retry scheduling.
type ProvisioningFailed struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Step   string    `json:"step"` // "create_client", "create_project", "link_lead"
	Reason string    `json:"reason"`
}

func (e ProvisioningFailed) EventName() string { return "provisioning.lead.failed" }

// =============================================================================
// Discovery Domain Events
// =============================================================================

// DiscoverySessionCompleted is published when a discovery session reaches
// completed status.
type DiscoverySessionCompleted struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	LeadID    uuid.UUID `json:"leadId"`
}

func (e DiscoverySessionCompleted) EventName() string { return "discovery.session.completed" }
