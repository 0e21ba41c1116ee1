// Package analytics aggregates lead collections into dashboard statistics.
// Everything here is pure computation over the input slice.
package analytics

import (
	"math"
	"time"

	"agency_portal_backend/internal/leads/domain"
)

// MonthlyTrend is one month of the trailing trend, oldest first.
type MonthlyTrend struct {
	Month       string `json:"month"`
	Leads       int    `json:"leads"`
	Conversions int    `json:"conversions"`
}

// Stats is the aggregate view of a lead collection.
type Stats struct {
	Total      int                     `json:"total"`
	ByStatus   map[domain.Status]int   `json:"byStatus"`
	BySource   map[domain.Source]int   `json:"bySource"`
	ByPriority map[domain.Priority]int `json:"byPriority"`

	// ConversionRate is won leads as a percentage of total. 0 when empty.
	ConversionRate float64 `json:"conversionRate"`

	AverageScore float64 `json:"averageScore"`

	// AverageDaysToConversion averages over leads that carry both a creation
	// and a conversion timestamp. 0 when none qualify.
	AverageDaysToConversion float64 `json:"averageDaysToConversion"`

	// MonthlyTrends covers the trailing 6 calendar months ending at now.
	MonthlyTrends []MonthlyTrend `json:"monthlyTrends"`
}

// Compute aggregates the leads relative to now. The input is not mutated.
func Compute(leads []domain.Lead, now time.Time) Stats {
	stats := Stats{
		Total:      len(leads),
		ByStatus:   make(map[domain.Status]int),
		BySource:   make(map[domain.Source]int),
		ByPriority: make(map[domain.Priority]int),
	}

	won := 0
	scoreSum := 0
	conversionDays := 0.0
	conversions := 0

	for _, lead := range leads {
		stats.ByStatus[lead.Status]++
		if lead.Source != "" {
			stats.BySource[lead.Source]++
		}
		stats.ByPriority[lead.Priority]++
		scoreSum += lead.LeadScore

		if lead.Status == domain.StatusWon {
			won++
		}
		if lead.ConvertedToClientAt != nil && !lead.CreatedAt.IsZero() {
			conversionDays += lead.ConvertedToClientAt.Sub(lead.CreatedAt).Hours() / 24
			conversions++
		}
	}

	if stats.Total > 0 {
		stats.ConversionRate = round2(float64(won) / float64(stats.Total) * 100)
		stats.AverageScore = round2(float64(scoreSum) / float64(stats.Total))
	}
	if conversions > 0 {
		stats.AverageDaysToConversion = round2(conversionDays / float64(conversions))
	}

	stats.MonthlyTrends = monthlyTrends(leads, now)
	return stats
}

// monthlyTrends counts leads created and converted per calendar month for the
// trailing 6 months, current month last.
func monthlyTrends(leads []domain.Lead, now time.Time) []MonthlyTrend {
	trends := make([]MonthlyTrend, 0, 6)

	for offset := 5; offset >= 0; offset-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -offset, 0)
		next := month.AddDate(0, 1, 0)

		trend := MonthlyTrend{Month: month.Format("Jan 2006")}
		for _, lead := range leads {
			if inMonth(lead.CreatedAt, month, next) {
				trend.Leads++
			}
			if lead.ConvertedToClientAt != nil && inMonth(*lead.ConvertedToClientAt, month, next) {
				trend.Conversions++
			}
		}
		trends = append(trends, trend)
	}
	return trends
}

func inMonth(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
