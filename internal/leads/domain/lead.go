// Package domain holds the lead model and its lifecycle rules.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lead lifecycle state.
type Status string

const (
	StatusNew                Status = "new"
	StatusContacted          Status = "contacted"
	StatusQualified          Status = "qualified"
	StatusDiscoveryScheduled Status = "discovery_scheduled"
	StatusDiscoveryCompleted Status = "discovery_completed"
	StatusProposalSent       Status = "proposal_sent"
	StatusNegotiating        Status = "negotiating"
	StatusWon                Status = "won"
	StatusLost               Status = "lost"
	StatusArchived           Status = "archived"
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusDiscoveryScheduled,
		StatusDiscoveryCompleted, StatusProposalSent, StatusNegotiating,
		StatusWon, StatusLost, StatusArchived:
		return true
	}
	return false
}

// Priority is the qualification tier derived from the lead score.
type Priority string

const (
	PriorityHot  Priority = "hot"
	PriorityWarm Priority = "warm"
	PriorityCool Priority = "cool"
	PriorityCold Priority = "cold"
)

// Source is the acquisition channel of a lead.
type Source string

const (
	SourceWebsite   Source = "website"
	SourceReferral  Source = "referral"
	SourceSocial    Source = "social_media"
	SourceEmail     Source = "email_campaign"
	SourceEvent     Source = "event"
	SourceColdReach Source = "cold_outreach"
	SourceOther     Source = "other"
)

// CompanySize classifies the prospect's organization.
type CompanySize string

const (
	CompanySizeEnterprise    CompanySize = "enterprise"
	CompanySizeMedium        CompanySize = "medium_business"
	CompanySizeAgency        CompanySize = "agency"
	CompanySizeSmallBusiness CompanySize = "small_business"
	CompanySizeStartup       CompanySize = "startup"
	CompanySizeNonprofit     CompanySize = "nonprofit"
	CompanySizeIndividual    CompanySize = "individual"
)

// ProjectType is the service line the prospect is asking for.
type ProjectType string

const (
	ProjectTypeSocialMedia      ProjectType = "social_media_marketing"
	ProjectTypeWebDevelopment   ProjectType = "web_development"
	ProjectTypeBranding         ProjectType = "branding"
	ProjectTypeSEO              ProjectType = "seo_optimization"
	ProjectTypePaidAdvertising  ProjectType = "paid_advertising"
	ProjectTypeContentMarketing ProjectType = "content_marketing"
	ProjectTypeFullService      ProjectType = "full_service"
)

// BudgetRange is the prospect's stated budget bracket (INR).
type BudgetRange string

const (
	BudgetUnder10K BudgetRange = "under_10k"
	Budget10K25K   BudgetRange = "10k_25k"
	Budget25K50K   BudgetRange = "25k_50k"
	Budget50K100K  BudgetRange = "50k_100k"
	Budget100K250K BudgetRange = "100k_250k"
	BudgetOver250K BudgetRange = "over_250k"
)

// Timeline is the prospect's desired delivery window.
type Timeline string

const (
	TimelineASAP     Timeline = "asap"
	TimelineOneMonth Timeline = "1_month"
	TimelineTwoThree Timeline = "2_3_months"
	TimelineThreeSix Timeline = "3_6_months"
	TimelineSixPlus  Timeline = "6_months_plus"
	TimelineFlexible Timeline = "flexible"
)

// Lead is a prospect captured from the intake form.
// LeadScore is always recomputed from scoring-relevant fields, never
// hand-edited; Priority is a pure function of LeadScore.
type Lead struct {
	ID uuid.UUID `json:"id"`

	// Contact
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company"`
	Website  string `json:"website,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`

	// Classification
	CompanySize CompanySize `json:"companySize,omitempty"`
	Industry    string      `json:"industry,omitempty"`
	ProjectType ProjectType `json:"projectType,omitempty"`
	BudgetRange BudgetRange `json:"budgetRange,omitempty"`
	Timeline    Timeline    `json:"timeline,omitempty"`

	// Free text
	ProjectDescription   string   `json:"projectDescription"`
	PrimaryChallenge     string   `json:"primaryChallenge"`
	AdditionalChallenges []string `json:"additionalChallenges,omitempty"`
	SpecificRequirements string   `json:"specificRequirements,omitempty"`

	// Lifecycle
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
	Source   Source   `json:"source,omitempty"`

	// Computed
	LeadScore int `json:"leadScore"`

	// Assignment / follow-up
	AssignedTo string     `json:"assignedTo,omitempty"`
	FollowUpAt *time.Time `json:"followUpAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Tags       []string   `json:"tags,omitempty"`

	// Timestamps
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastContactAt *time.Time `json:"lastContactAt,omitempty"`

	// Linkage set by the provisioning pipeline
	DiscoveryCompletedAt *time.Time `json:"discoveryCompletedAt,omitempty"`
	ProposalSentAt       *time.Time `json:"proposalSentAt,omitempty"`
	ConvertedToClientAt  *time.Time `json:"convertedToClientAt,omitempty"`
	ClientID             *uuid.UUID `json:"clientId,omitempty"`
	ProjectID            *uuid.UUID `json:"projectId,omitempty"`
}
