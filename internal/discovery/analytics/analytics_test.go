package analytics

import (
	"strings"
	"testing"
	"time"

	"agency_portal_backend/internal/discovery/domain"
)

func TestAnalyze_WebsiteWithDesignAndContent(t *testing.T) {
	session := domain.DiscoverySession{
		ProjectOverview: domain.ProjectOverview{ProjectType: domain.ProjectWebsite},
		ContentStrategy: domain.ContentStrategy{
			ContentTypes: []string{"blog"},
			VisualStyle:  domain.VisualStyle{DesignInspiration: []string{"Apple.com"}},
		},
	}

	got := Analyze(session)

	wantRoles := []string{"Web Developer", "UI/UX Designer", "Content Creator"}
	if len(got.TalentRequirements) != len(wantRoles) {
		t.Fatalf("expected %d requirements, got %d", len(wantRoles), len(got.TalentRequirements))
	}
	for i, want := range wantRoles {
		if got.TalentRequirements[i].Role != want {
			t.Errorf("requirement %d = %s, want %s", i, got.TalentRequirements[i].Role, want)
		}
	}
	if got.TalentRequirements[2].Priority != NiceToHave {
		t.Errorf("content creator priority = %s, want nice_to_have", got.TalentRequirements[2].Priority)
	}
}

func TestAnalyze_AppProjectType(t *testing.T) {
	session := domain.DiscoverySession{
		ProjectOverview: domain.ProjectOverview{ProjectType: domain.ProjectApp},
	}

	got := Analyze(session)
	if len(got.TalentRequirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(got.TalentRequirements))
	}
	req := got.TalentRequirements[0]
	if req.Role != "Mobile Developer" || req.ExperienceLevel != "senior" || req.EstimatedHours != 120 {
		t.Errorf("unexpected requirement: %+v", req)
	}
}

func TestAnalyze_RebrandAddsNoBaseRole(t *testing.T) {
	session := domain.DiscoverySession{
		ProjectOverview: domain.ProjectOverview{ProjectType: domain.ProjectRebrand},
	}

	got := Analyze(session)
	if len(got.TalentRequirements) != 0 {
		t.Fatalf("expected no requirements for rebrand, got %d", len(got.TalentRequirements))
	}
	// Team size is still clamped to the floor.
	if got.RecommendedTeamSize != 2 {
		t.Errorf("team size = %d, want 2", got.RecommendedTeamSize)
	}
}

func TestAnalyze_TimelineVeryTight(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	launch := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	session := domain.DiscoverySession{
		ProjectOverview: domain.ProjectOverview{
			Timeline: domain.ProjectTimeline{StartDate: &start, DesiredLaunch: &launch},
		},
	}

	got := Analyze(session)
	if !strings.Contains(got.TimelineAssessment, "Very Tight") {
		t.Fatalf("assessment %q must contain \"Very Tight\"", got.TimelineAssessment)
	}
}

func TestTimelineAssessment_Bands(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		days   int
		marker string
	}{
		{10, "Very Tight"},
		{45, "Tight"},
		{90, "Reasonable"},
		{200, "Comfortable"},
	}

	for _, tt := range tests {
		launch := start.AddDate(0, 0, tt.days)
		got := timelineAssessment(domain.ProjectTimeline{StartDate: &start, DesiredLaunch: &launch})
		if !strings.Contains(got, tt.marker) {
			t.Errorf("%d days: %q must contain %q", tt.days, got, tt.marker)
		}
	}
}

func TestAnalyze_ComplexityHigh(t *testing.T) {
	session := domain.DiscoverySession{
		ProjectOverview: domain.ProjectOverview{
			ProjectScope: []string{"a", "b", "c", "d", "e", "f"},
		},
		TechnicalRequirements: domain.TechnicalRequirements{
			Integrations: []domain.Integration{
				{System: "Stripe"}, {System: "Salesforce"}, {System: "Mailchimp"}, {System: "GA4"},
			},
			PerformanceRequirements: []string{"p95 < 200ms", "99.9% uptime", "mobile-first"},
		},
	}

	got := Analyze(session)
	if got.ComplexityScore != 30 {
		t.Fatalf("complexity score = %d, want 30", got.ComplexityScore)
	}
	if got.ProjectComplexity != ComplexityHigh {
		t.Fatalf("complexity = %s, want high", got.ProjectComplexity)
	}
}

func TestComplexityBands(t *testing.T) {
	tests := []struct {
		score int
		want  Complexity
	}{
		{0, ComplexityLow},
		{10, ComplexityLow},
		{11, ComplexityMedium},
		{20, ComplexityMedium},
		{21, ComplexityHigh},
		{35, ComplexityHigh},
		{36, ComplexityVeryHigh},
	}
	for _, tt := range tests {
		if got := complexityBand(tt.score); got != tt.want {
			t.Errorf("band(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAnalyze_SkillsUnionDeduplicated(t *testing.T) {
	session := domain.DiscoverySession{
		TechnicalRequirements: domain.TechnicalRequirements{
			PlatformPreferences: []string{"Shopify", "Instagram"},
			Integrations:        []domain.Integration{{System: "Stripe"}, {System: "Shopify"}},
		},
		ContentStrategy: domain.ContentStrategy{ContentTypes: []string{"video", "Instagram"}},
	}

	got := Analyze(session)
	want := []string{"Shopify", "Instagram", "Stripe", "video"}
	if len(got.SkillsRequired) != len(want) {
		t.Fatalf("skills = %v, want %v", got.SkillsRequired, want)
	}
	for i, skill := range want {
		if got.SkillsRequired[i] != skill {
			t.Errorf("skill %d = %s, want %s", i, got.SkillsRequired[i], skill)
		}
	}
}

func TestAnalyze_TeamSizeClamp(t *testing.T) {
	if got := clamp(0, 2, 8); got != 2 {
		t.Errorf("clamp(0) = %d, want 2", got)
	}
	if got := clamp(20, 2, 8); got != 8 {
		t.Errorf("clamp(20) = %d, want 8", got)
	}
	if got := clamp(5, 2, 8); got != 5 {
		t.Errorf("clamp(5) = %d, want 5", got)
	}
}

func TestAnalyze_CompletionRateAndTimeSpent(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	session := domain.DiscoverySession{
		CreatedAt: created,
		UpdatedAt: created.Add(45 * time.Minute),
	}

	got := Analyze(session)
	if got.CompletionRate != 0 {
		t.Errorf("empty completion rate = %f, want 0", got.CompletionRate)
	}
	if got.TimeSpentMinutes != 45 {
		t.Errorf("time spent = %d, want 45", got.TimeSpentMinutes)
	}

	for _, key := range domain.SectionKeys {
		session.MarkCompleted(key)
	}
	if rate := session.CompletionRate(); rate != 100 {
		t.Errorf("full completion rate = %f, want 100", rate)
	}
}

func TestAnalyze_BudgetPassThrough(t *testing.T) {
	session := domain.DiscoverySession{
		BudgetResources: domain.BudgetResources{
			TotalBudget: domain.Money{Amount: 250000, Currency: "INR"},
		},
	}
	if got := Analyze(session); got.EstimatedBudget != 250000 {
		t.Fatalf("budget = %f, want 250000", got.EstimatedBudget)
	}
}
