// Package scoring computes the deterministic weighted lead score and its
// priority tier. All thresholds and weights live in Config as data.
package scoring

import (
	"math"

	"agency_portal_backend/internal/leads/domain"
)

// Scorer computes lead scores from the configured tables.
type Scorer struct {
	cfg Config
}

// New creates a scorer with the given configuration.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Version returns the scoring model version string.
func (s *Scorer) Version() string {
	return scoreVersion
}

// Score combines the five primitives with the configured weights,
// rounds to the nearest integer and clamps to [0,100].
func (s *Scorer) Score(lead domain.Lead) int {
	w := s.cfg.Weights

	total := float64(s.BudgetScore(lead.BudgetRange))*w.Budget +
		float64(s.TimelineScore(lead.Timeline))*w.Timeline +
		float64(s.CompanySizeScore(lead.CompanySize))*w.CompanySize +
		float64(s.IndustryFitScore(lead.Industry))*w.IndustryFit +
		float64(s.UrgencyScore(lead.Timeline, lead.PrimaryChallenge))*w.Urgency

	return clampScore(total)
}

// PriorityForScore maps a final score onto the priority tier ladder.
// Two leads with the same score always get the same priority.
func (s *Scorer) PriorityForScore(score int) domain.Priority {
	for _, t := range s.cfg.PriorityThresholds {
		if score >= t.MinScore {
			return t.Priority
		}
	}
	return domain.PriorityCold
}

// Apply recomputes the score and priority on the lead in place.
func (s *Scorer) Apply(lead *domain.Lead) {
	lead.LeadScore = s.Score(*lead)
	lead.Priority = s.PriorityForScore(lead.LeadScore)
}

// relevantFields is the allow-list of update fields that can change the
// score. Callers rescore only when an update touches one of these, so
// cosmetic edits can never cause score drift.
var relevantFields = map[string]bool{
	"budgetRange":      true,
	"timeline":         true,
	"companySize":      true,
	"industry":         true,
	"primaryChallenge": true,
	"status":           true,
}

// TouchesScore reports whether any changed field is scoring-relevant.
func TouchesScore(changedFields []string) bool {
	for _, f := range changedFields {
		if relevantFields[f] {
			return true
		}
	}
	return false
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
