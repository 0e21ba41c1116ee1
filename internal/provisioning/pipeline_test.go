package provisioning

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	clientsvc "agency_portal_backend/internal/clients/service"
	"agency_portal_backend/internal/events"
	leaddomain "agency_portal_backend/internal/leads/domain"
	leadrepo "agency_portal_backend/internal/leads/repository"
	projdomain "agency_portal_backend/internal/projects/domain"
	projsvc "agency_portal_backend/internal/projects/service"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/google/uuid"
)

type fakeClientCreator struct {
	calls  int
	inputs []clientsvc.CreateClientInput
	err    error
}

func (f *fakeClientCreator) Create(_ context.Context, input clientsvc.CreateClientInput) (uuid.UUID, error) {
	f.calls++
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return uuid.New(), nil
}

type fakeProjectCreator struct {
	calls  int
	inputs []projsvc.CreateProjectInput
	err    error
}

func (f *fakeProjectCreator) Create(_ context.Context, input projsvc.CreateProjectInput) (uuid.UUID, error) {
	f.calls++
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return uuid.New(), nil
}

type fakeBackfill struct {
	leadIDs []uuid.UUID
}

func (f *fakeBackfill) EnqueueBackfill(_ context.Context, leadID uuid.UUID) error {
	f.leadIDs = append(f.leadIDs, leadID)
	return nil
}

type recordingBus struct {
	published []events.Event
	handlers  map[string][]events.Handler
}

func newRecordingBus() *recordingBus {
	return &recordingBus{handlers: make(map[string][]events.Handler)}
}

func (b *recordingBus) Subscribe(name string, h events.Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) {
	b.published = append(b.published, e)
	for _, h := range b.handlers[e.EventName()] {
		_ = h.Handle(ctx, e)
	}
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

type fixture struct {
	pipeline *Pipeline
	clients  *fakeClientCreator
	projects *fakeProjectCreator
	leads    *leadrepo.Repository
	bus      *recordingBus
	backfill *fakeBackfill
}

func newFixture() *fixture {
	log := logger.New("development")
	leads := leadrepo.New(tabular.NewMemoryStore(), cache.NewMemoryCache(time.Minute), log)
	clients := &fakeClientCreator{}
	projects := &fakeProjectCreator{}
	bus := newRecordingBus()
	backfill := &fakeBackfill{}
	return &fixture{
		pipeline: New(clients, projects, leads, bus, backfill, log),
		clients:  clients,
		projects: projects,
		leads:    leads,
		bus:      bus,
		backfill: backfill,
	}
}

func seedLead(t *testing.T, f *fixture) leaddomain.Lead {
	t.Helper()
	lead := leaddomain.Lead{
		ID:          uuid.New(),
		Name:        "Ravi Kumar",
		Email:       "ravi@globex.example",
		Company:     "Globex",
		Industry:    "E-commerce",
		CompanySize: leaddomain.CompanySizeMedium,
		ProjectType: leaddomain.ProjectTypeSocialMedia,
		BudgetRange: leaddomain.BudgetUnder10K,
		Timeline:    leaddomain.TimelineASAP,
		Status:      leaddomain.StatusDiscoveryCompleted,
		Priority:    leaddomain.PriorityHot,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := f.leads.Create(context.Background(), lead); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return lead
}

func TestProvision_CreatesClientAndProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	lead := seedLead(t, f)

	if err := f.pipeline.Provision(ctx, lead.ID); err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	if f.clients.calls != 1 || f.projects.calls != 1 {
		t.Fatalf("calls: clients=%d projects=%d, want 1/1", f.clients.calls, f.projects.calls)
	}

	clientInput := f.clients.inputs[0]
	if clientInput.CompanyName != "Globex" || clientInput.ContactName != "Ravi Kumar" {
		t.Errorf("client input mismatch: %+v", clientInput)
	}

	projInput := f.projects.inputs[0]
	if projInput.Name != "Globex - social_media_marketing" {
		t.Errorf("project name = %q", projInput.Name)
	}
	if projInput.Type != projdomain.TypeSocialMedia {
		t.Errorf("project type = %s, want social_media", projInput.Type)
	}
	if projInput.Priority != projdomain.PriorityHigh {
		t.Errorf("priority = %s, want high", projInput.Priority)
	}
	if projInput.EstimatedBudget != 8000 || projInput.EstimatedHours != 80 {
		t.Errorf("budget/hours = %f/%f, want 8000/80", projInput.EstimatedBudget, projInput.EstimatedHours)
	}
	if days := projInput.EndDate.Sub(projInput.StartDate).Hours() / 24; days != 30 {
		t.Errorf("duration = %f days, want 30", days)
	}
	wantTags := []string{"auto-created", "from-discovery", "social_media"}
	for i, tag := range wantTags {
		if projInput.Tags[i] != tag {
			t.Errorf("tag %d = %s, want %s", i, projInput.Tags[i], tag)
		}
	}
	if !strings.HasPrefix(projInput.DiscoveryRecordID, "disc-") {
		t.Errorf("discovery record id = %q", projInput.DiscoveryRecordID)
	}

	got, err := f.leads.GetByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ClientID == nil || got.ProjectID == nil || got.ConvertedToClientAt == nil {
		t.Fatalf("lead linkage incomplete: %+v", got)
	}

	var provisioned bool
	for _, e := range f.bus.published {
		if _, ok := e.(events.LeadProvisioned); ok {
			provisioned = true
		}
	}
	if !provisioned {
		t.Fatal("expected LeadProvisioned event")
	}
}

func TestProvision_IdempotentByInspection(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	lead := seedLead(t, f)

	if err := f.pipeline.Provision(ctx, lead.ID); err != nil {
		t.Fatalf("first provision failed: %v", err)
	}
	if err := f.pipeline.Provision(ctx, lead.ID); err != nil {
		t.Fatalf("second provision failed: %v", err)
	}

	if f.clients.calls != 1 {
		t.Errorf("client created %d times, want 1", f.clients.calls)
	}
	if f.projects.calls != 1 {
		t.Errorf("project created %d times, want 1", f.projects.calls)
	}
}

func TestProvision_ReusesExistingClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	lead := seedLead(t, f)
	existingClient := uuid.New()
	stored, _ := f.leads.GetByID(ctx, lead.ID)
	stored.ClientID = &existingClient
	if err := f.leads.Update(ctx, stored); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := f.pipeline.Provision(ctx, lead.ID); err != nil {
		t.Fatalf("provision failed: %v", err)
	}

	if f.clients.calls != 0 {
		t.Errorf("client creator called %d times for lead with clientId, want 0", f.clients.calls)
	}
	if f.projects.calls != 1 {
		t.Errorf("project created %d times, want 1", f.projects.calls)
	}
	if f.projects.inputs[0].ClientID != existingClient {
		t.Error("project not attached to the existing client")
	}
}

func TestProvision_ProjectFailureKeepsClientLinkage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	lead := seedLead(t, f)
	f.projects.err = errors.New("projects table locked")

	err := f.pipeline.Provision(ctx, lead.ID)
	if apperr.GetKind(err) != apperr.KindProvisioning {
		t.Fatalf("expected provisioning error, got %v", err)
	}

	// Client creation committed before the project step failed.
	got, _ := f.leads.GetByID(ctx, lead.ID)
	if got.ClientID == nil {
		t.Fatal("client linkage lost after project failure")
	}
	if got.Status != leaddomain.StatusDiscoveryCompleted {
		t.Fatalf("status = %s, must stay discovery_completed", got.Status)
	}

	var failed events.ProvisioningFailed
	foundFailed := false
	for _, e := range f.bus.published {
		if pf, ok := e.(events.ProvisioningFailed); ok {
			failed = pf
			foundFailed = true
		}
	}
	if !foundFailed || failed.Step != "create_project" {
		t.Fatalf("expected ProvisioningFailed at create_project, got %+v", failed)
	}

	if len(f.backfill.leadIDs) != 1 || f.backfill.leadIDs[0] != lead.ID {
		t.Fatalf("expected backfill enqueued for lead, got %v", f.backfill.leadIDs)
	}

	// The retry completes using the preserved client linkage.
	f.projects.err = nil
	if err := f.pipeline.Provision(ctx, lead.ID); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if f.clients.calls != 1 {
		t.Errorf("retry recreated the client: %d calls", f.clients.calls)
	}
}

func TestSubscribe_EdgeTriggered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	lead := seedLead(t, f)
	f.pipeline.Subscribe(f.bus)

	// Level event: already discovery_completed before.
	f.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(leaddomain.StatusDiscoveryCompleted),
		NewStatus: string(leaddomain.StatusDiscoveryCompleted),
	})
	if f.clients.calls != 0 {
		t.Fatal("level-triggered invocation must be a no-op")
	}

	// Unrelated transition.
	f.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(leaddomain.StatusNew),
		NewStatus: string(leaddomain.StatusContacted),
	})
	if f.clients.calls != 0 {
		t.Fatal("unrelated transition must not provision")
	}

	// The edge into discovery_completed fires the pipeline.
	f.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(leaddomain.StatusDiscoveryScheduled),
		NewStatus: string(leaddomain.StatusDiscoveryCompleted),
	})
	if f.clients.calls != 1 || f.projects.calls != 1 {
		t.Fatalf("edge did not provision: clients=%d projects=%d", f.clients.calls, f.projects.calls)
	}
}

// cancelAwareStore refuses work once its context is done, the way the pgx
// store does in production.
type cancelAwareStore struct {
	inner tabular.Store
}

func (s cancelAwareStore) Read(ctx context.Context, table string) ([]tabular.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inner.Read(ctx, table)
}

func (s cancelAwareStore) Append(ctx context.Context, table string, rows ...tabular.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inner.Append(ctx, table, rows...)
}

func (s cancelAwareStore) Write(ctx context.Context, table string, rows []tabular.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inner.Write(ctx, table, rows)
}

func TestSubscribe_OutlivesRequestContext(t *testing.T) {
	log := logger.New("development")
	leads := leadrepo.New(cancelAwareStore{inner: tabular.NewMemoryStore()}, cache.NewMemoryCache(time.Minute), log)
	clientCreator := &fakeClientCreator{}
	projectCreator := &fakeProjectCreator{}
	bus := events.NewInMemoryBus(log)
	p := New(clientCreator, projectCreator, leads, bus, nil, log)
	p.Subscribe(bus)

	lead := leaddomain.Lead{
		ID:          uuid.New(),
		Name:        "Ravi Kumar",
		Email:       "ravi@globex.example",
		Company:     "Globex",
		CompanySize: leaddomain.CompanySizeMedium,
		ProjectType: leaddomain.ProjectTypeSocialMedia,
		BudgetRange: leaddomain.BudgetUnder10K,
		Timeline:    leaddomain.TimelineASAP,
		Status:      leaddomain.StatusDiscoveryCompleted,
		Priority:    leaddomain.PriorityHot,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := leads.Create(context.Background(), lead); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	done := make(chan struct{})
	bus.Subscribe(events.LeadProvisioned{}.EventName(), events.HandlerFunc(
		func(context.Context, events.Event) error {
			close(done)
			return nil
		}))

	// The request that committed the status change is gone before the async
	// pipeline runs; provisioning must not die with its context.
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(reqCtx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(leaddomain.StatusDiscoveryScheduled),
		NewStatus: string(leaddomain.StatusDiscoveryCompleted),
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("provisioning never completed after the request context ended")
	}

	got, err := leads.GetByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ClientID == nil || got.ProjectID == nil {
		t.Fatalf("lead linkage incomplete: %+v", got)
	}
}

func TestMapping_Defaults(t *testing.T) {
	if got := projectTypeFor(leaddomain.ProjectType("unknown")); got != projdomain.TypeFullService {
		t.Errorf("unknown project type = %s, want full_service", got)
	}
	if got := priorityFor(leaddomain.PriorityCool); got != projdomain.PriorityLow {
		t.Errorf("cool priority = %s, want low", got)
	}
	if got := durationDays(leaddomain.TimelineTwoThree); got != 90 {
		t.Errorf("2_3_months duration = %d, want default 90", got)
	}
	if got := budgetMidpoint(leaddomain.BudgetOver250K); got != 150000 {
		t.Errorf("over_250k midpoint = %f, want default 150000", got)
	}
}
