package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"agency_portal_backend/internal/leads/domain"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/google/uuid"
)

func newTestRepo() (*Repository, *tabular.MemoryStore) {
	store := tabular.NewMemoryStore()
	c := cache.NewMemoryCache(5 * time.Minute)
	return New(store, c, logger.New("development")), store
}

func makeLead(name, company string) domain.Lead {
	return domain.Lead{
		ID:        uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		Company:   company,
		Status:    domain.StatusNew,
		Priority:  domain.PriorityCold,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	lead := makeLead("alice", "Acme")
	lead.LeadScore = 72
	if err := repo.Create(ctx, lead); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "alice" || got.LeadScore != 72 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepo()

	_, err := repo.GetByID(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_DegradedPersistence(t *testing.T) {
	repo, store := newTestRepo()
	store.FailWrites = errors.New("store offline")

	err := repo.Create(context.Background(), makeLead("bob", "Beta"))
	if apperr.GetKind(err) != apperr.KindPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	hot := makeLead("carol", "Gamma Corp")
	hot.Status = domain.StatusQualified
	hot.Priority = domain.PriorityHot
	hot.Tags = []string{"enterprise", "inbound"}

	cold := makeLead("dave", "Delta LLC")
	cold.Status = domain.StatusNew
	cold.Priority = domain.PriorityCold
	cold.Notes = "mentioned a tight deadline"

	for _, l := range []domain.Lead{hot, cold} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, ListFilter{Statuses: []domain.Status{domain.StatusQualified}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != hot.ID {
		t.Fatalf("status filter returned %d leads", len(got))
	}

	got, err = repo.List(ctx, ListFilter{Tags: []string{"inbound", "outbound"}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != hot.ID {
		t.Fatalf("tag filter returned %d leads", len(got))
	}

	// Free text search is case-insensitive and spans notes.
	got, err = repo.List(ctx, ListFilter{Search: "DEADLINE"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != cold.ID {
		t.Fatalf("search returned %d leads", len(got))
	}

	got, err = repo.List(ctx, ListFilter{
		Statuses:   []domain.Status{domain.StatusQualified},
		Priorities: []domain.Priority{domain.PriorityCold},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("conjunction of disjoint filters returned %d leads", len(got))
	}
}

func TestList_DateRange(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	old := makeLead("erin", "Epsilon")
	old.CreatedAt = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	recent := makeLead("frank", "Zeta")
	recent.CreatedAt = time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, l := range []domain.Lead{old, recent} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.List(ctx, ListFilter{CreatedFrom: &from})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Fatalf("date filter returned %d leads", len(got))
	}
}

func TestList_SortNullsMinimal(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	low := makeLead("gina", "Eta")
	low.LeadScore = 20
	high := makeLead("hank", "Theta")
	high.LeadScore = 90
	unassigned := makeLead("ivy", "Iota")
	assigned := makeLead("jack", "Kappa")
	assigned.AssignedTo = "sam"

	for _, l := range []domain.Lead{high, low, assigned, unassigned} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, ListFilter{SortBy: "leadScore", SortDesc: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got[0].ID != high.ID {
		t.Fatalf("expected highest score first, got %s", got[0].Name)
	}

	// Ascending sort on an omitempty field puts leads without it first.
	got, err = repo.List(ctx, ListFilter{SortBy: "assignedTo"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got[len(got)-1].ID != assigned.ID {
		t.Fatalf("expected assigned lead last, got %s", got[len(got)-1].Name)
	}
}

func TestList_CacheAndInvalidation(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()

	first := makeLead("kate", "Lambda")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.List(ctx, ListFilter{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// A row added behind the repository's back stays invisible while cached.
	row := tabular.Row{"id": uuid.New().String(), "name": "sneaky", "email": "s@example.com", "company": "X"}
	if err := store.Append(ctx, tabular.TableLeads, row); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected cached view of 1 lead, got %d", len(got))
	}

	// Any repository write invalidates every cached view.
	if err := repo.Create(ctx, makeLead("liam", "Mu")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err = repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected fresh view of 3 leads, got %d", len(got))
	}
}

func TestList_StoreFailureIsExplicit(t *testing.T) {
	repo, store := newTestRepo()
	ctx := context.Background()

	store.FailReads = errors.New("store offline")
	_, err := repo.List(ctx, ListFilter{})
	if apperr.GetKind(err) != apperr.KindPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	lead := makeLead("mona", "Nu")
	if err := repo.Create(ctx, lead); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	lead.Status = domain.StatusContacted
	lead.Notes = "left voicemail"
	if err := repo.Update(ctx, lead); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != domain.StatusContacted || got.Notes != "left voicemail" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, _ := newTestRepo()

	err := repo.Update(context.Background(), makeLead("nina", "Xi"))
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
