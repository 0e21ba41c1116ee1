package repository

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"agency_portal_backend/internal/leads/domain"
)

// ListFilter narrows and orders a lead listing. Every multi-value filter is
// match-any within itself; filters combine with AND across fields.
type ListFilter struct {
	Statuses     []domain.Status      `json:"statuses,omitempty"`
	Priorities   []domain.Priority    `json:"priorities,omitempty"`
	Sources      []domain.Source      `json:"sources,omitempty"`
	ProjectTypes []domain.ProjectType `json:"projectTypes,omitempty"`
	BudgetRanges []domain.BudgetRange `json:"budgetRanges,omitempty"`
	CompanySizes []domain.CompanySize `json:"companySizes,omitempty"`
	AssignedTo   []string             `json:"assignedTo,omitempty"`

	CreatedFrom *time.Time `json:"createdFrom,omitempty"`
	CreatedTo   *time.Time `json:"createdTo,omitempty"`

	// Tags matches leads carrying at least one of the given tags.
	Tags []string `json:"tags,omitempty"`

	// Search is a case-insensitive substring match across name, email,
	// company, project description, primary challenge and notes.
	Search string `json:"search,omitempty"`

	SortBy   string `json:"sortBy,omitempty"`
	SortDesc bool   `json:"sortDesc,omitempty"`
}

// CacheKey serializes the filter into the read-cache key.
func (f ListFilter) CacheKey() string {
	data, err := json.Marshal(f)
	if err != nil {
		return "list:unkeyed"
	}
	return "list:" + string(data)
}

// Matches reports whether the lead passes every set filter.
func (f ListFilter) Matches(lead domain.Lead) bool {
	if !matchAny(f.Statuses, lead.Status) {
		return false
	}
	if !matchAny(f.Priorities, lead.Priority) {
		return false
	}
	if !matchAny(f.Sources, lead.Source) {
		return false
	}
	if !matchAny(f.ProjectTypes, lead.ProjectType) {
		return false
	}
	if !matchAny(f.BudgetRanges, lead.BudgetRange) {
		return false
	}
	if !matchAny(f.CompanySizes, lead.CompanySize) {
		return false
	}
	if !matchAny(f.AssignedTo, lead.AssignedTo) {
		return false
	}

	if f.CreatedFrom != nil && lead.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && lead.CreatedAt.After(*f.CreatedTo) {
		return false
	}

	if len(f.Tags) > 0 && !anyTagMatch(f.Tags, lead.Tags) {
		return false
	}

	if f.Search != "" && !searchMatch(f.Search, lead) {
		return false
	}
	return true
}

func matchAny[T comparable](wanted []T, value T) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if w == value {
			return true
		}
	}
	return false
}

func anyTagMatch(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

func searchMatch(query string, lead domain.Lead) bool {
	q := strings.ToLower(query)
	for _, field := range []string{
		lead.Name, lead.Email, lead.Company,
		lead.ProjectDescription, lead.PrimaryChallenge, lead.Notes,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// sortLeads orders leads by an arbitrary JSON field name. Missing or null
// values sort as minimal. The sort is stable so equal keys keep store order.
func sortLeads(leads []domain.Lead, field string, desc bool) {
	if field == "" {
		return
	}

	keys := make([]interface{}, len(leads))
	for i, lead := range leads {
		keys[i] = fieldValue(lead, field)
	}

	indices := make([]int, len(leads))
	for i := range indices {
		indices[i] = i
	}

	sort.SliceStable(indices, func(a, b int) bool {
		less := compareValues(keys[indices[a]], keys[indices[b]]) < 0
		if desc {
			return !less && compareValues(keys[indices[a]], keys[indices[b]]) != 0
		}
		return less
	})

	out := make([]domain.Lead, len(leads))
	for i, idx := range indices {
		out[i] = leads[idx]
	}
	copy(leads, out)
}

// fieldValue extracts a lead field by its JSON name via the wire encoding,
// so sorting sees the same values the store and API do.
func fieldValue(lead domain.Lead, field string) interface{} {
	data, err := json.Marshal(lead)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m[field]
}

// compareValues orders two JSON values. nil is minimal; numbers compare
// numerically, everything else by string form (RFC 3339 timestamps order
// correctly as strings).
func compareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := stringify(a)
	bs := stringify(b)
	return strings.Compare(as, bs)
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
