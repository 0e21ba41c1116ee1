package management

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/internal/leads/domain"
	"agency_portal_backend/internal/leads/repository"
	"agency_portal_backend/internal/leads/scoring"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"
	"agency_portal_backend/platform/validator"
)

// recordingBus captures published events synchronously for assertions.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}

func newTestService() (*Service, *recordingBus, *tabular.MemoryStore) {
	store := tabular.NewMemoryStore()
	repo := repository.New(store, cache.NewMemoryCache(5*time.Minute), logger.New("development"))
	bus := &recordingBus{}
	svc := NewService(repo, scoring.New(scoring.DefaultConfig()), validator.New(), bus, logger.New("development"))
	return svc, bus, store
}

func validCreateRequest() CreateLeadRequest {
	return CreateLeadRequest{
		Name:               "Priya Sharma",
		Email:              "Priya@Example.com",
		Company:            "Sharma Textiles",
		CompanySize:        domain.CompanySizeEnterprise,
		Industry:           "Technology",
		ProjectType:        domain.ProjectTypeWebDevelopment,
		BudgetRange:        domain.BudgetOver250K,
		Timeline:           domain.TimelineASAP,
		ProjectDescription: "Complete rebuild of the storefront",
		PrimaryChallenge:   "urgent launch before the festival season",
		Source:             domain.SourceWebsite,
	}
}

func TestCreate_ScoresAndPersists(t *testing.T) {
	svc, bus, _ := newTestService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if lead.Status != domain.StatusNew {
		t.Errorf("status = %s, want new", lead.Status)
	}
	if lead.LeadScore != 100 || lead.Priority != domain.PriorityHot {
		t.Errorf("score/priority = %d/%s, want 100/hot", lead.LeadScore, lead.Priority)
	}
	if lead.Email != "priya@example.com" {
		t.Errorf("email not normalized: %s", lead.Email)
	}

	got, err := svc.Get(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != lead.ID {
		t.Fatal("persisted lead not retrievable")
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	created, ok := bus.published[0].(events.LeadCreated)
	if !ok {
		t.Fatalf("expected LeadCreated, got %T", bus.published[0])
	}
	if created.LeadID != lead.ID || created.LeadScore != 100 {
		t.Errorf("event payload mismatch: %+v", created)
	}
}

func TestCreate_AggregatedValidation(t *testing.T) {
	svc, bus, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateLeadRequest{
		Name:               "A",
		Email:              "not-an-email",
		Company:            "B",
		ProjectDescription: "short",
		PrimaryChallenge:   "hm",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"name", "email", "company", "projectDescription", "primaryChallenge"} {
		if !strings.Contains(msg, want) {
			t.Errorf("aggregated message missing %q: %s", want, msg)
		}
	}
	if len(bus.published) != 0 {
		t.Fatal("no event may be published for a rejected create")
	}
}

func TestCreate_DegradedPersistenceReturnsLead(t *testing.T) {
	svc, bus, store := newTestService()
	store.FailWrites = errors.New("store offline")

	lead, err := svc.Create(context.Background(), validCreateRequest())
	if apperr.GetKind(err) != apperr.KindPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if lead.LeadScore != 100 {
		t.Fatal("degraded create must still return the scored lead")
	}
	if len(bus.published) != 0 {
		t.Fatal("no event may be published for a non-durable create")
	}
}

func TestUpdate_StatusTransition(t *testing.T) {
	svc, bus, _ := newTestService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bus.published = nil

	contacted := domain.StatusContacted
	updated, err := svc.Update(ctx, lead.ID, UpdateLeadRequest{Status: &contacted})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusContacted {
		t.Errorf("status = %s, want contacted", updated.Status)
	}
	if updated.LastContactAt == nil {
		t.Error("contacted status must stamp lastContactAt")
	}

	var change events.LeadStatusChanged
	found := false
	for _, e := range bus.published {
		if sc, ok := e.(events.LeadStatusChanged); ok {
			change = sc
			found = true
		}
	}
	if !found {
		t.Fatal("expected LeadStatusChanged event")
	}
	if change.OldStatus != "new" || change.NewStatus != "contacted" {
		t.Errorf("event edge %s->%s, want new->contacted", change.OldStatus, change.NewStatus)
	}
}

func TestUpdate_InvalidTransitionRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	won := domain.StatusWon
	_, err = svc.Update(ctx, lead.ID, UpdateLeadRequest{Status: &won})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for new->won, got %v", err)
	}

	got, _ := svc.Get(ctx, lead.ID)
	if got.Status != domain.StatusNew {
		t.Fatalf("rejected transition must not persist, status = %s", got.Status)
	}
}

func TestUpdate_CosmeticEditDoesNotRescore(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notes := "spoke on the phone, very interested"
	updated, err := svc.Update(ctx, lead.ID, UpdateLeadRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.LeadScore != lead.LeadScore {
		t.Fatalf("cosmetic edit changed score: %d -> %d", lead.LeadScore, updated.LeadScore)
	}
}

func TestUpdate_BudgetChangeRescores(t *testing.T) {
	svc, bus, _ := newTestService()
	ctx := context.Background()

	lead, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bus.published = nil

	small := domain.BudgetUnder10K
	updated, err := svc.Update(ctx, lead.ID, UpdateLeadRequest{BudgetRange: &small})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.LeadScore >= lead.LeadScore {
		t.Fatalf("expected lower score after budget downgrade, got %d", updated.LeadScore)
	}

	found := false
	for _, e := range bus.published {
		if _, ok := e.(events.LeadRescored); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected LeadRescored event")
	}
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 1 || stats.ByStatus[domain.StatusNew] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRescore_Backfill(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Same tables, so a backfill changes nothing.
	updated, err := svc.Rescore(ctx)
	if err != nil {
		t.Fatalf("rescore failed: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected 0 updates with unchanged tables, got %d", updated)
	}
}
