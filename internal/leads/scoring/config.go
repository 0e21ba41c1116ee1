package scoring

import (
	"os"

	"agency_portal_backend/internal/leads/domain"

	"gopkg.in/yaml.v3"
)

// scoreVersion tracks the scoring model for debugging and analysis.
// Bump this when changing scoring logic significantly.
const scoreVersion = "2026-v1"

// AmountRange is a budget bracket in INR.
type AmountRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Midpoint returns the center of the bracket.
func (r AmountRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// Weights are the fixed factor weights of the composite score. They sum to 1.
type Weights struct {
	Budget      float64 `yaml:"budget"`
	Timeline    float64 `yaml:"timeline"`
	CompanySize float64 `yaml:"companySize"`
	IndustryFit float64 `yaml:"industryFit"`
	Urgency     float64 `yaml:"urgency"`
}

// PriorityThreshold maps a minimum score to a priority tier.
type PriorityThreshold struct {
	MinScore int             `yaml:"minScore"`
	Priority domain.Priority `yaml:"priority"`
}

// Config holds every scoring table as data so weights and thresholds are
// tunable without touching scoring code.
type Config struct {
	Weights Weights `yaml:"weights"`

	BudgetRanges map[domain.BudgetRange]AmountRange `yaml:"budgetRanges"`

	TimelineDays        map[domain.Timeline]int `yaml:"timelineDays"`
	DefaultTimelineDays int                     `yaml:"defaultTimelineDays"`

	CompanySizeScores       map[domain.CompanySize]int `yaml:"companySizeScores"`
	DefaultCompanySizeScore int                        `yaml:"defaultCompanySizeScore"`

	HighFitIndustries []string `yaml:"highFitIndustries"`
	IndustryFitHigh   int      `yaml:"industryFitHigh"`
	IndustryFitOther  int      `yaml:"industryFitOther"`

	UrgencyBase          int      `yaml:"urgencyBase"`
	UrgencyASAPBonus     int      `yaml:"urgencyAsapBonus"`
	UrgencyOneMonthBonus int      `yaml:"urgencyOneMonthBonus"`
	UrgencyKeywordBonus  int      `yaml:"urgencyKeywordBonus"`
	UrgentKeywords       []string `yaml:"urgentKeywords"`

	// PriorityThresholds must be sorted by MinScore descending.
	PriorityThresholds []PriorityThreshold `yaml:"priorityThresholds"`
}

// DefaultConfig returns the production scoring tables.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Budget:      0.40,
			Timeline:    0.20,
			CompanySize: 0.20,
			IndustryFit: 0.10,
			Urgency:     0.10,
		},
		BudgetRanges: map[domain.BudgetRange]AmountRange{
			domain.BudgetUnder10K: {Min: 0, Max: 10000},
			domain.Budget10K25K:   {Min: 10000, Max: 25000},
			domain.Budget25K50K:   {Min: 25000, Max: 50000},
			domain.Budget50K100K:  {Min: 50000, Max: 100000},
			domain.Budget100K250K: {Min: 100000, Max: 250000},
			domain.BudgetOver250K: {Min: 250000, Max: 1000000},
		},
		TimelineDays: map[domain.Timeline]int{
			domain.TimelineASAP:     7,
			domain.TimelineOneMonth: 30,
			domain.TimelineTwoThree: 75,
			domain.TimelineThreeSix: 135,
			domain.TimelineSixPlus:  365,
			domain.TimelineFlexible: 180,
		},
		DefaultTimelineDays: 180,
		CompanySizeScores: map[domain.CompanySize]int{
			domain.CompanySizeEnterprise:    100,
			domain.CompanySizeMedium:        80,
			domain.CompanySizeAgency:        70,
			domain.CompanySizeSmallBusiness: 60,
			domain.CompanySizeStartup:       50,
			domain.CompanySizeNonprofit:     40,
			domain.CompanySizeIndividual:    30,
		},
		DefaultCompanySizeScore: 50,
		HighFitIndustries:       []string{"Technology", "E-commerce", "Healthcare", "Finance"},
		IndustryFitHigh:         100,
		IndustryFitOther:        70,
		UrgencyBase:             50,
		UrgencyASAPBonus:        30,
		UrgencyOneMonthBonus:    20,
		UrgencyKeywordBonus:     20,
		UrgentKeywords:          []string{"urgent", "asap", "immediately", "crisis", "critical", "deadline"},
		PriorityThresholds: []PriorityThreshold{
			{MinScore: 80, Priority: domain.PriorityHot},
			{MinScore: 60, Priority: domain.PriorityWarm},
			{MinScore: 40, Priority: domain.PriorityCool},
			{MinScore: 0, Priority: domain.PriorityCold},
		},
	}
}

// LoadConfig returns the default tables, overlaid with a YAML overrides file
// when path is non-empty. The file only needs to contain the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
