// Package domain holds the project model and the content templates
// provisioning stamps onto new projects.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Type is the project's service line.
type Type string

const (
	TypeSocialMedia      Type = "social_media"
	TypeWebDevelopment   Type = "web_development"
	TypeBranding         Type = "branding"
	TypeSEO              Type = "seo"
	TypePaidAds          Type = "paid_ads"
	TypeContentMarketing Type = "content_marketing"
	TypeFullService      Type = "full_service"
)

// Priority is the delivery priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the project lifecycle state.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

// ContentRequirements is the per-type content production template.
type ContentRequirements struct {
	PostsPerWeek int      `json:"postsPerWeek"`
	Platforms    []string `json:"platforms"`
	ContentTypes []string `json:"contentTypes"`
}

// contentTemplates maps each project type to its default content plan.
var contentTemplates = map[Type]ContentRequirements{
	TypeSocialMedia: {
		PostsPerWeek: 5,
		Platforms:    []string{"Instagram", "Facebook", "LinkedIn"},
		ContentTypes: []string{"posts", "stories", "reels"},
	},
	TypeWebDevelopment: {
		PostsPerWeek: 0,
		Platforms:    []string{"Website"},
		ContentTypes: []string{"page copy", "product imagery"},
	},
	TypeBranding: {
		PostsPerWeek: 1,
		Platforms:    []string{"Website", "Print"},
		ContentTypes: []string{"brand assets", "guidelines"},
	},
	TypeSEO: {
		PostsPerWeek: 2,
		Platforms:    []string{"Website", "Blog"},
		ContentTypes: []string{"articles", "landing pages"},
	},
	TypePaidAds: {
		PostsPerWeek: 3,
		Platforms:    []string{"Google Ads", "Meta Ads"},
		ContentTypes: []string{"ad creatives", "copy variants"},
	},
	TypeContentMarketing: {
		PostsPerWeek: 4,
		Platforms:    []string{"Blog", "Newsletter", "LinkedIn"},
		ContentTypes: []string{"articles", "newsletters", "posts"},
	},
	TypeFullService: {
		PostsPerWeek: 7,
		Platforms:    []string{"Instagram", "Facebook", "LinkedIn", "Website", "Blog"},
		ContentTypes: []string{"posts", "stories", "articles", "ad creatives"},
	},
}

// TemplateFor returns the content template of the given type; unknown types
// fall back to the full service template.
func TemplateFor(t Type) ContentRequirements {
	if tmpl, ok := contentTemplates[t]; ok {
		return tmpl
	}
	return contentTemplates[TypeFullService]
}

// Project is one engagement created for a client.
type Project struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"clientId"`

	// LeadID and DiscoveryRecordID trace the project back to its origin.
	LeadID            *uuid.UUID `json:"leadId,omitempty"`
	DiscoveryRecordID string     `json:"discoveryRecordId,omitempty"`

	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	EstimatedBudget float64 `json:"estimatedBudget"`
	EstimatedHours  float64 `json:"estimatedHours"`

	ContentRequirements ContentRequirements `json:"contentRequirements"`

	Tags []string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
