// Package transport holds the HTTP-facing DTOs of the leads context.
package transport

import (
	"fmt"
	"strings"
	"time"

	"agency_portal_backend/internal/leads/domain"
	"agency_portal_backend/internal/leads/repository"
)

// ListLeadsQuery is the query-string shape of the lead listing endpoint.
// Multi-value filters are comma-separated.
type ListLeadsQuery struct {
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	Source      string `form:"source"`
	ProjectType string `form:"projectType"`
	BudgetRange string `form:"budgetRange"`
	CompanySize string `form:"companySize"`
	AssignedTo  string `form:"assignedTo"`
	CreatedFrom string `form:"createdFrom"`
	CreatedTo   string `form:"createdTo"`
	Tags        string `form:"tags"`
	Search      string `form:"search"`
	SortBy      string `form:"sortBy"`
	SortOrder   string `form:"sortOrder"`
}

// ToFilter converts the query into a repository filter.
func (q ListLeadsQuery) ToFilter() (repository.ListFilter, error) {
	filter := repository.ListFilter{
		Search:   q.Search,
		SortBy:   q.SortBy,
		SortDesc: strings.EqualFold(q.SortOrder, "desc"),
	}

	for _, v := range splitCSV(q.Status) {
		filter.Statuses = append(filter.Statuses, domain.Status(v))
	}
	for _, v := range splitCSV(q.Priority) {
		filter.Priorities = append(filter.Priorities, domain.Priority(v))
	}
	for _, v := range splitCSV(q.Source) {
		filter.Sources = append(filter.Sources, domain.Source(v))
	}
	for _, v := range splitCSV(q.ProjectType) {
		filter.ProjectTypes = append(filter.ProjectTypes, domain.ProjectType(v))
	}
	for _, v := range splitCSV(q.BudgetRange) {
		filter.BudgetRanges = append(filter.BudgetRanges, domain.BudgetRange(v))
	}
	for _, v := range splitCSV(q.CompanySize) {
		filter.CompanySizes = append(filter.CompanySizes, domain.CompanySize(v))
	}
	filter.AssignedTo = splitCSV(q.AssignedTo)
	filter.Tags = splitCSV(q.Tags)

	if q.CreatedFrom != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedFrom)
		if err != nil {
			return repository.ListFilter{}, fmt.Errorf("invalid createdFrom: %w", err)
		}
		filter.CreatedFrom = &t
	}
	if q.CreatedTo != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedTo)
		if err != nil {
			return repository.ListFilter{}, fmt.Errorf("invalid createdTo: %w", err)
		}
		filter.CreatedTo = &t
	}
	return filter, nil
}

// CreatedLeadResponse wraps a created lead with the persistence status so
// intake clients can tell a durable write from a degraded one.
type CreatedLeadResponse struct {
	Lead     domain.Lead `json:"lead"`
	Degraded bool        `json:"degraded,omitempty"`
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
