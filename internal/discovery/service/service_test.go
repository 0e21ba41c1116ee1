package service

import (
	"context"
	"testing"

	"agency_portal_backend/internal/discovery/domain"
	"agency_portal_backend/internal/discovery/repository"
	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/google/uuid"
)

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

func newTestService() (*Service, *recordingBus) {
	log := logger.New("development")
	bus := &recordingBus{}
	return New(repository.New(tabular.NewMemoryStore(), log), bus, log), bus
}

func TestUpdate_IncrementalCompletion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	session, err := svc.Start(ctx, uuid.New())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if session.Status != domain.SessionDraft {
		t.Fatalf("new session status = %s, want draft", session.Status)
	}

	updated, err := svc.Update(ctx, session.ID, UpdateSectionsRequest{
		CompanyFundamentals: &domain.CompanyFundamentals{CompanyName: "Acme"},
		ProjectOverview:     &domain.ProjectOverview{ProjectType: domain.ProjectWebsite},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.SessionInProgress {
		t.Errorf("status = %s, want in_progress", updated.Status)
	}
	if rate := updated.CompletionRate(); rate != 20 {
		t.Errorf("completion rate = %f, want 20", rate)
	}

	// Re-saving the same section does not double count.
	updated, err = svc.Update(ctx, session.ID, UpdateSectionsRequest{
		CompanyFundamentals: &domain.CompanyFundamentals{CompanyName: "Acme Corp"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rate := updated.CompletionRate(); rate != 20 {
		t.Errorf("completion rate after repeat = %f, want 20", rate)
	}
	if updated.CompanyFundamentals.CompanyName != "Acme Corp" {
		t.Error("section content not updated")
	}
}

func TestUpdate_CompletionPublishesEvent(t *testing.T) {
	svc, bus := newTestService()
	ctx := context.Background()

	leadID := uuid.New()
	session, err := svc.Start(ctx, leadID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	completed := domain.SessionCompleted
	if _, err := svc.Update(ctx, session.ID, UpdateSectionsRequest{Status: &completed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	e, ok := bus.published[0].(events.DiscoverySessionCompleted)
	if !ok {
		t.Fatalf("expected DiscoverySessionCompleted, got %T", bus.published[0])
	}
	if e.LeadID != leadID || e.SessionID != session.ID {
		t.Errorf("event payload mismatch: %+v", e)
	}

	// Saving completed again is not a new completion.
	if _, err := svc.Update(ctx, session.ID, UpdateSectionsRequest{Status: &completed}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected still 1 event, got %d", len(bus.published))
	}
}

func TestUpdate_ArchivedIsReadOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	session, err := svc.Start(ctx, uuid.New())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	archived := domain.SessionArchived
	if _, err := svc.Update(ctx, session.ID, UpdateSectionsRequest{Status: &archived}); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	_, err = svc.Update(ctx, session.ID, UpdateSectionsRequest{
		NextSteps: &domain.NextSteps{Actions: []string{"call"}},
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for archived session, got %v", err)
	}
}
