// Package domain holds the discovery session model: the structured
// questionnaire a qualified lead completes before provisioning.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the questionnaire lifecycle state.
type SessionStatus string

const (
	SessionDraft      SessionStatus = "draft"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionArchived   SessionStatus = "archived"
)

// Valid reports whether the status is a known state.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionDraft, SessionInProgress, SessionCompleted, SessionArchived:
		return true
	}
	return false
}

// ProjectType is the discovery questionnaire's project classification.
// It is finer-grained than the intake form's service lines.
type ProjectType string

const (
	ProjectWebsite   ProjectType = "website"
	ProjectApp       ProjectType = "app"
	ProjectCampaign  ProjectType = "marketing_campaign"
	ProjectRebrand   ProjectType = "rebrand"
	ProjectEcommerce ProjectType = "ecommerce"
	ProjectOther     ProjectType = "other"
)

// SectionCount is the fixed number of questionnaire sections.
const SectionCount = 10

// Section keys, in questionnaire order.
const (
	SectionCompanyFundamentals = "company_fundamentals"
	SectionProjectOverview     = "project_overview"
	SectionTargetAudience      = "target_audience"
	SectionCurrentState        = "current_state"
	SectionGoalsKPIs           = "goals_kpis"
	SectionCompetition         = "competition"
	SectionBudgetResources     = "budget_resources"
	SectionTechnical           = "technical_requirements"
	SectionContentStrategy     = "content_strategy"
	SectionNextSteps           = "next_steps"
)

// SectionKeys lists every section key in questionnaire order.
var SectionKeys = []string{
	SectionCompanyFundamentals,
	SectionProjectOverview,
	SectionTargetAudience,
	SectionCurrentState,
	SectionGoalsKPIs,
	SectionCompetition,
	SectionBudgetResources,
	SectionTechnical,
	SectionContentStrategy,
	SectionNextSteps,
}

// CompanyFundamentals is section 1.
type CompanyFundamentals struct {
	CompanyName     string `json:"companyName,omitempty"`
	Industry        string `json:"industry,omitempty"`
	YearsInBusiness int    `json:"yearsInBusiness,omitempty"`
	TeamSize        int    `json:"teamSize,omitempty"`
	Mission         string `json:"mission,omitempty"`
}

// ProjectTimeline is the desired delivery window inside the project overview.
type ProjectTimeline struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	DesiredLaunch *time.Time `json:"desiredLaunch,omitempty"`
}

// ProjectOverview is section 2.
type ProjectOverview struct {
	ProjectType  ProjectType     `json:"projectType,omitempty"`
	ProjectScope []string        `json:"projectScope,omitempty"`
	Objectives   []string        `json:"objectives,omitempty"`
	Timeline     ProjectTimeline `json:"timeline"`
}

// TargetAudience is section 3.
type TargetAudience struct {
	Demographics string   `json:"demographics,omitempty"`
	Segments     []string `json:"segments,omitempty"`
	Regions      []string `json:"regions,omitempty"`
}

// CurrentState is section 4.
type CurrentState struct {
	ExistingAssets []string `json:"existingAssets,omitempty"`
	PainPoints     []string `json:"painPoints,omitempty"`
}

// GoalsKPIs is section 5.
type GoalsKPIs struct {
	Goals []string `json:"goals,omitempty"`
	KPIs  []string `json:"kpis,omitempty"`
}

// Competition is section 6.
type Competition struct {
	Competitors     []string `json:"competitors,omitempty"`
	Differentiators []string `json:"differentiators,omitempty"`
}

// Money is an amount with its currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// BudgetResources is section 7.
type BudgetResources struct {
	TotalBudget       Money    `json:"totalBudget"`
	InternalResources []string `json:"internalResources,omitempty"`
}

// Integration is one external system the project must talk to.
type Integration struct {
	System  string `json:"system"`
	Purpose string `json:"purpose,omitempty"`
}

// TechnicalRequirements is section 8.
type TechnicalRequirements struct {
	PlatformPreferences     []string      `json:"platformPreferences,omitempty"`
	Integrations            []Integration `json:"integrations,omitempty"`
	PerformanceRequirements []string      `json:"performanceRequirements,omitempty"`
}

// VisualStyle captures design direction inside the content strategy section.
type VisualStyle struct {
	DesignInspiration []string `json:"designInspiration,omitempty"`
	BrandGuidelines   bool     `json:"brandGuidelines,omitempty"`
}

// ContentStrategy is section 9.
type ContentStrategy struct {
	ContentTypes []string    `json:"contentTypes,omitempty"`
	VisualStyle  VisualStyle `json:"visualStyle"`
}

// NextSteps is section 10.
type NextSteps struct {
	Actions      []string   `json:"actions,omitempty"`
	DecisionDate *time.Time `json:"decisionDate,omitempty"`
}

// DiscoverySession is the full questionnaire for one lead.
type DiscoverySession struct {
	ID       uuid.UUID  `json:"id"`
	LeadID   uuid.UUID  `json:"leadId"`
	ClientID *uuid.UUID `json:"clientId,omitempty"`

	Status SessionStatus `json:"status"`

	CompanyFundamentals   CompanyFundamentals   `json:"companyFundamentals"`
	ProjectOverview       ProjectOverview       `json:"projectOverview"`
	TargetAudience        TargetAudience        `json:"targetAudience"`
	CurrentState          CurrentState          `json:"currentState"`
	GoalsKPIs             GoalsKPIs             `json:"goalsKpis"`
	Competition           Competition           `json:"competition"`
	BudgetResources       BudgetResources       `json:"budgetResources"`
	TechnicalRequirements TechnicalRequirements `json:"technicalRequirements"`
	ContentStrategy       ContentStrategy       `json:"contentStrategy"`
	NextSteps             NextSteps             `json:"nextSteps"`

	// CompletedSections holds the keys of sections marked complete.
	CompletedSections []string `json:"completedSections,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompletionRate is the completed share of the questionnaire as a percentage.
func (s DiscoverySession) CompletionRate() float64 {
	return float64(len(s.CompletedSections)) / SectionCount * 100
}

// MarkCompleted records a section as complete. Unknown keys and repeats are
// ignored so the rate can never exceed 100.
func (s *DiscoverySession) MarkCompleted(section string) {
	known := false
	for _, key := range SectionKeys {
		if key == section {
			known = true
			break
		}
	}
	if !known {
		return
	}
	for _, done := range s.CompletedSections {
		if done == section {
			return
		}
	}
	s.CompletedSections = append(s.CompletedSections, section)
}
