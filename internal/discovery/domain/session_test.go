package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSectionEncoding_NestedStructsAlwaysPresent(t *testing.T) {
	// Struct-valued section fields carry no omitempty (it is a no-op on
	// structs); a blank section still serializes its nested objects so the
	// wire shape is stable for incremental form saves.
	cases := []struct {
		name    string
		value   interface{}
		wantKey string
	}{
		{"project overview timeline", ProjectOverview{}, `"timeline"`},
		{"content strategy visual style", ContentStrategy{}, `"visualStyle"`},
		{"budget resources total", BudgetResources{}, `"totalBudget"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.value)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if !strings.Contains(string(raw), tc.wantKey) {
				t.Errorf("encoded %s = %s, missing %s", tc.name, raw, tc.wantKey)
			}
		})
	}
}

func TestMarkCompleted_IgnoresUnknownAndRepeatedKeys(t *testing.T) {
	var s DiscoverySession

	s.MarkCompleted(SectionCompanyFundamentals)
	s.MarkCompleted(SectionCompanyFundamentals)
	s.MarkCompleted("not-a-section")
	s.MarkCompleted(SectionProjectOverview)

	if len(s.CompletedSections) != 2 {
		t.Fatalf("completed = %v, want the two known sections once each", s.CompletedSections)
	}
	if got := s.CompletionRate(); got != 20 {
		t.Errorf("completion rate = %f, want 20", got)
	}
}
