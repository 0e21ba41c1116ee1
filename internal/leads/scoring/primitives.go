package scoring

import (
	"strings"

	"agency_portal_backend/internal/leads/domain"
)

// The five scoring primitives. Each is a pure function of the lead's
// classification signals returning a 0-100 sub-score from the config tables.

// BudgetScore maps the budget bracket midpoint onto a threshold ladder.
func (s *Scorer) BudgetScore(budget domain.BudgetRange) int {
	r, ok := s.cfg.BudgetRanges[budget]
	if !ok {
		return 20
	}

	mid := r.Midpoint()
	switch {
	case mid >= 100000:
		return 100
	case mid >= 50000:
		return 80
	case mid >= 25000:
		return 60
	case mid >= 10000:
		return 40
	default:
		return 20
	}
}

// TimelineScore maps the desired delivery window, expressed as days, onto a
// threshold ladder. Shorter windows score higher.
func (s *Scorer) TimelineScore(timeline domain.Timeline) int {
	days, ok := s.cfg.TimelineDays[timeline]
	if !ok {
		days = s.cfg.DefaultTimelineDays
	}

	switch {
	case days <= 30:
		return 100
	case days <= 90:
		return 80
	case days <= 180:
		return 60
	case days <= 365:
		return 40
	default:
		return 20
	}
}

// CompanySizeScore is a fixed lookup; unknown sizes score the neutral default.
func (s *Scorer) CompanySizeScore(size domain.CompanySize) int {
	if score, ok := s.cfg.CompanySizeScores[size]; ok {
		return score
	}
	return s.cfg.DefaultCompanySizeScore
}

// IndustryFitScore rewards the verticals the agency has a track record in.
func (s *Scorer) IndustryFitScore(industry string) int {
	for _, fit := range s.cfg.HighFitIndustries {
		if strings.EqualFold(industry, fit) {
			return s.cfg.IndustryFitHigh
		}
	}
	return s.cfg.IndustryFitOther
}

// UrgencyScore starts from a neutral base and adds timeline pressure plus
// urgency keywords found in the prospect's primary challenge. ASAP and
// one-month bonuses are mutually exclusive; ASAP wins.
func (s *Scorer) UrgencyScore(timeline domain.Timeline, primaryChallenge string) int {
	score := s.cfg.UrgencyBase

	switch timeline {
	case domain.TimelineASAP:
		score += s.cfg.UrgencyASAPBonus
	case domain.TimelineOneMonth:
		score += s.cfg.UrgencyOneMonthBonus
	}

	lower := strings.ToLower(primaryChallenge)
	for _, kw := range s.cfg.UrgentKeywords {
		if strings.Contains(lower, kw) {
			score += s.cfg.UrgencyKeywordBonus
			break // Only count once
		}
	}

	if score > 100 {
		return 100
	}
	return score
}
