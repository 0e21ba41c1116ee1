// Package analytics derives staffing and complexity insights from a
// completed discovery session. Everything here is pure computation: no
// storage, no network, so each rule is independently testable.
package analytics

import (
	"agency_portal_backend/internal/discovery/domain"
)

// RequirementPriority tells how negotiable a talent requirement is.
type RequirementPriority string

const (
	MustHave   RequirementPriority = "must_have"
	NiceToHave RequirementPriority = "nice_to_have"
)

// TalentRequirement is one recommended role for the project.
type TalentRequirement struct {
	Role            string              `json:"role"`
	Skills          []string            `json:"skills"`
	ExperienceLevel string              `json:"experienceLevel"`
	EstimatedHours  int                 `json:"estimatedHours"`
	Priority        RequirementPriority `json:"priority"`
}

// Complexity is the banded project complexity.
type Complexity string

const (
	ComplexityLow      Complexity = "low"
	ComplexityMedium   Complexity = "medium"
	ComplexityHigh     Complexity = "high"
	ComplexityVeryHigh Complexity = "very_high"
)

// Analytics is the derived view of one discovery session.
type Analytics struct {
	CompletionRate      float64             `json:"completionRate"`
	TimeSpentMinutes    int                 `json:"timeSpentMinutes"`
	TalentRequirements  []TalentRequirement `json:"talentRequirements"`
	ProjectComplexity   Complexity          `json:"projectComplexity"`
	ComplexityScore     int                 `json:"complexityScore"`
	EstimatedBudget     float64             `json:"estimatedBudget"`
	RecommendedTeamSize int                 `json:"recommendedTeamSize"`
	SkillsRequired      []string            `json:"skillsRequired"`
	TimelineAssessment  string              `json:"timelineAssessment"`
}

// Analyze derives the analytics from the session.
func Analyze(session domain.DiscoverySession) Analytics {
	talent := talentRequirements(session)
	score := complexityScore(session)

	return Analytics{
		CompletionRate:      session.CompletionRate(),
		TimeSpentMinutes:    int(session.UpdatedAt.Sub(session.CreatedAt).Minutes()),
		TalentRequirements:  talent,
		ProjectComplexity:   complexityBand(score),
		ComplexityScore:     score,
		EstimatedBudget:     session.BudgetResources.TotalBudget.Amount,
		RecommendedTeamSize: clamp(len(talent), 2, 8),
		SkillsRequired:      skillsRequired(session),
		TimelineAssessment:  timelineAssessment(session.ProjectOverview.Timeline),
	}
}

// talentRequirements applies the staffing rules in fixed order: the
// project-type rule first, then design, then content. Rebrand, ecommerce and
// other project types currently add no base role.
func talentRequirements(session domain.DiscoverySession) []TalentRequirement {
	var reqs []TalentRequirement

	switch session.ProjectOverview.ProjectType {
	case domain.ProjectWebsite:
		reqs = append(reqs, TalentRequirement{
			Role:            "Web Developer",
			Skills:          []string{"HTML/CSS", "JavaScript", "React", "Responsive Design"},
			ExperienceLevel: "mid",
			EstimatedHours:  80,
			Priority:        MustHave,
		})
	case domain.ProjectApp:
		reqs = append(reqs, TalentRequirement{
			Role:            "Mobile Developer",
			Skills:          []string{"React Native", "iOS", "Android", "API Integration"},
			ExperienceLevel: "senior",
			EstimatedHours:  120,
			Priority:        MustHave,
		})
	case domain.ProjectCampaign:
		reqs = append(reqs, TalentRequirement{
			Role:            "Digital Marketing Specialist",
			Skills:          []string{"Campaign Management", "Analytics", "Ad Platforms"},
			ExperienceLevel: "mid",
			EstimatedHours:  60,
			Priority:        MustHave,
		})
	}

	if len(session.ContentStrategy.VisualStyle.DesignInspiration) > 0 {
		reqs = append(reqs, TalentRequirement{
			Role:            "UI/UX Designer",
			Skills:          []string{"Figma", "Design Systems", "Prototyping"},
			ExperienceLevel: "mid",
			EstimatedHours:  40,
			Priority:        MustHave,
		})
	}
	if len(session.ContentStrategy.ContentTypes) > 0 {
		reqs = append(reqs, TalentRequirement{
			Role:            "Content Creator",
			Skills:          []string{"Copywriting", "Content Planning", "SEO Writing"},
			ExperienceLevel: "mid",
			EstimatedHours:  30,
			Priority:        NiceToHave,
		})
	}
	return reqs
}

// complexityScore weighs the session's scope signals. Integrations count
// triple because they dominate delivery risk.
func complexityScore(session domain.DiscoverySession) int {
	return 2*len(session.ProjectOverview.ProjectScope) +
		3*len(session.TechnicalRequirements.Integrations) +
		2*len(session.TechnicalRequirements.PerformanceRequirements) +
		len(session.ContentStrategy.ContentTypes)
}

func complexityBand(score int) Complexity {
	switch {
	case score <= 10:
		return ComplexityLow
	case score <= 20:
		return ComplexityMedium
	case score <= 35:
		return ComplexityHigh
	default:
		return ComplexityVeryHigh
	}
}

// skillsRequired unions platform preferences, integration systems and content
// types, deduplicated in first-seen order.
func skillsRequired(session domain.DiscoverySession) []string {
	seen := make(map[string]bool)
	var skills []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		skills = append(skills, s)
	}

	for _, p := range session.TechnicalRequirements.PlatformPreferences {
		add(p)
	}
	for _, integ := range session.TechnicalRequirements.Integrations {
		add(integ.System)
	}
	for _, c := range session.ContentStrategy.ContentTypes {
		add(c)
	}
	return skills
}

// timelineAssessment labels the window between start and desired launch.
// Downstream consumers substring-match on the leading marker words.
func timelineAssessment(timeline domain.ProjectTimeline) string {
	if timeline.StartDate == nil || timeline.DesiredLaunch == nil {
		return "Unknown - timeline dates not provided yet"
	}

	days := int(timeline.DesiredLaunch.Sub(*timeline.StartDate).Hours() / 24)
	switch {
	case days < 30:
		return "Very Tight - consider reducing scope or moving the launch date"
	case days < 60:
		return "Tight - achievable with a focused team and frozen scope"
	case days < 120:
		return "Reasonable - leaves room for revisions"
	default:
		return "Comfortable - allows phased delivery"
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
