package provisioning

import (
	leaddomain "agency_portal_backend/internal/leads/domain"
	projdomain "agency_portal_backend/internal/projects/domain"
)

// projectTypes maps the intake service line to the project type.
var projectTypes = map[leaddomain.ProjectType]projdomain.Type{
	leaddomain.ProjectTypeSocialMedia:      projdomain.TypeSocialMedia,
	leaddomain.ProjectTypeWebDevelopment:   projdomain.TypeWebDevelopment,
	leaddomain.ProjectTypeBranding:         projdomain.TypeBranding,
	leaddomain.ProjectTypeSEO:              projdomain.TypeSEO,
	leaddomain.ProjectTypePaidAdvertising:  projdomain.TypePaidAds,
	leaddomain.ProjectTypeContentMarketing: projdomain.TypeContentMarketing,
	leaddomain.ProjectTypeFullService:      projdomain.TypeFullService,
}

func projectTypeFor(t leaddomain.ProjectType) projdomain.Type {
	if mapped, ok := projectTypes[t]; ok {
		return mapped
	}
	return projdomain.TypeFullService
}

func priorityFor(p leaddomain.Priority) projdomain.Priority {
	switch p {
	case leaddomain.PriorityHot:
		return projdomain.PriorityHigh
	case leaddomain.PriorityWarm:
		return projdomain.PriorityMedium
	default:
		return projdomain.PriorityLow
	}
}

// projectDurations maps the stated timeline to a delivery window in days.
// The keys mirror the discovery form's options, which are coarser than the
// intake enum; anything unrecognized gets the 90 day default.
var projectDurations = map[leaddomain.Timeline]int{
	leaddomain.TimelineASAP:     30,
	leaddomain.TimelineOneMonth: 30,
	"3_months":                  90,
	"6_months":                  180,
	"1_year":                    365,
	"1_plus_years":              365,
}

func durationDays(t leaddomain.Timeline) int {
	if days, ok := projectDurations[t]; ok {
		return days
	}
	return 90
}

// budgetMidpoints estimates a project budget from the stated range. The
// brackets predate the current intake enum, so newer ranges fall through to
// the default.
var budgetMidpoints = map[leaddomain.BudgetRange]float64{
	leaddomain.BudgetUnder10K: 8000,
	leaddomain.Budget10K25K:   17500,
	leaddomain.Budget25K50K:   37500,
	leaddomain.Budget50K100K:  75000,
	"over_100k":               150000,
}

func budgetMidpoint(b leaddomain.BudgetRange) float64 {
	if mid, ok := budgetMidpoints[b]; ok {
		return mid
	}
	return 150000
}
