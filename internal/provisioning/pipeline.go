// Package provisioning converts a lead whose discovery phase just finished
// into a client account and a first project. The pipeline is edge-triggered
// off LeadStatusChanged and idempotent by inspection: linkage already present
// on the lead short-circuits the corresponding step.
package provisioning

import (
	"context"
	"fmt"
	"time"

	clientsvc "agency_portal_backend/internal/clients/service"
	"agency_portal_backend/internal/events"
	leaddomain "agency_portal_backend/internal/leads/domain"
	projsvc "agency_portal_backend/internal/projects/service"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// ClientCreator creates client accounts. Implemented by the clients context.
type ClientCreator interface {
	Create(ctx context.Context, input clientsvc.CreateClientInput) (uuid.UUID, error)
}

// ProjectCreator creates projects. Implemented by the projects context.
type ProjectCreator interface {
	Create(ctx context.Context, input projsvc.CreateProjectInput) (uuid.UUID, error)
}

// LeadLinker reads and updates leads. Implemented by the leads repository.
type LeadLinker interface {
	GetByID(ctx context.Context, id uuid.UUID) (leaddomain.Lead, error)
	Update(ctx context.Context, lead leaddomain.Lead) error
}

// BackfillEnqueuer schedules a provisioning retry after a failed step.
type BackfillEnqueuer interface {
	EnqueueBackfill(ctx context.Context, leadID uuid.UUID) error
}

// Pipeline runs the lead-to-client-to-project conversion.
type Pipeline struct {
	clients  ClientCreator
	projects ProjectCreator
	leads    LeadLinker
	bus      events.Bus
	backfill BackfillEnqueuer
	log      *logger.Logger
	now      func() time.Time
}

// New creates the pipeline. backfill may be nil when no retry path exists
// (tests, one-shot commands).
func New(clients ClientCreator, projects ProjectCreator, leads LeadLinker, bus events.Bus, backfill BackfillEnqueuer, log *logger.Logger) *Pipeline {
	return &Pipeline{
		clients:  clients,
		projects: projects,
		leads:    leads,
		bus:      bus,
		backfill: backfill,
		log:      log,
		now:      time.Now,
	}
}

// Subscribe registers the pipeline on the event bus. It fires only on the
// edge into discovery_completed; re-saving the same status does nothing.
func (p *Pipeline) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			e, ok := event.(events.LeadStatusChanged)
			if !ok {
				return nil
			}
			if e.NewStatus != string(leaddomain.StatusDiscoveryCompleted) ||
				e.OldStatus == string(leaddomain.StatusDiscoveryCompleted) {
				return nil
			}
			// Provisioning failure never propagates into the status change:
			// the transition is already committed.
			if err := p.Provision(ctx, e.LeadID); err != nil {
				p.log.ProvisioningError("pipeline", e.LeadID.String(), err)
			}
			return nil
		}))
}

// Provision converts the lead. Safe to call repeatedly: linkage already on
// the lead is reused, so a retried invocation creates at most one client and
// one project.
func (p *Pipeline) Provision(ctx context.Context, leadID uuid.UUID) error {
	lead, err := p.leads.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.ClientID != nil && lead.ProjectID != nil {
		return nil
	}

	clientID, err := p.ensureClient(ctx, &lead)
	if err != nil {
		return err
	}

	projectID, err := p.createProject(ctx, lead, clientID)
	if err != nil {
		return err
	}

	lead.ProjectID = &projectID
	lead.UpdatedAt = p.now().UTC()
	if err := p.leads.Update(ctx, lead); err != nil {
		return p.fail(ctx, lead.ID, "link_lead", err)
	}

	p.bus.Publish(ctx, events.LeadProvisioned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		ClientID:  clientID,
		ProjectID: projectID,
	})
	return nil
}

// ensureClient reuses the lead's client when set, otherwise creates one and
// commits the linkage immediately so a later failure does not lose it.
func (p *Pipeline) ensureClient(ctx context.Context, lead *leaddomain.Lead) (uuid.UUID, error) {
	if lead.ClientID != nil {
		return *lead.ClientID, nil
	}

	clientID, err := p.clients.Create(ctx, clientsvc.CreateClientInput{
		CompanyName: lead.Company,
		ContactName: lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Website:     lead.Website,
		Industry:    lead.Industry,
		CompanySize: string(lead.CompanySize),
		LeadID:      &lead.ID,
	})
	if err != nil {
		return uuid.Nil, p.fail(ctx, lead.ID, "create_client", err)
	}

	now := p.now().UTC()
	lead.ClientID = &clientID
	lead.ConvertedToClientAt = &now
	lead.UpdatedAt = now
	if err := p.leads.Update(ctx, *lead); err != nil {
		return uuid.Nil, p.fail(ctx, lead.ID, "link_lead", err)
	}
	return clientID, nil
}

func (p *Pipeline) createProject(ctx context.Context, lead leaddomain.Lead, clientID uuid.UUID) (uuid.UUID, error) {
	now := p.now().UTC()
	budget := budgetMidpoint(lead.BudgetRange)
	projectType := projectTypeFor(lead.ProjectType)

	projectID, err := p.projects.Create(ctx, projsvc.CreateProjectInput{
		ClientID:          clientID,
		LeadID:            &lead.ID,
		DiscoveryRecordID: discoveryRecordID(lead.ID),
		Name:              fmt.Sprintf("%s - %s", lead.Company, lead.ProjectType),
		Type:              projectType,
		Priority:          priorityFor(lead.Priority),
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, durationDays(lead.Timeline)),
		EstimatedBudget:   budget,
		EstimatedHours:    budget / 100,
		Tags:              []string{"auto-created", "from-discovery", string(projectType)},
	})
	if err != nil {
		return uuid.Nil, p.fail(ctx, lead.ID, "create_project", err)
	}
	return projectID, nil
}

// fail logs the step, announces it and schedules a backfill retry.
func (p *Pipeline) fail(ctx context.Context, leadID uuid.UUID, step string, err error) error {
	p.log.ProvisioningError(step, leadID.String(), err)

	p.bus.Publish(ctx, events.ProvisioningFailed{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Step:      step,
		Reason:    err.Error(),
	})

	if p.backfill != nil {
		if enqErr := p.backfill.EnqueueBackfill(ctx, leadID); enqErr != nil {
			p.log.Error("failed to enqueue provisioning backfill", "lead_id", leadID, "error", enqErr)
		}
	}
	return apperr.Provisioning(fmt.Sprintf("provisioning step %s failed", step), err)
}

// discoveryRecordID synthesizes a traceability id until a full discovery
// record exists for the lead.
func discoveryRecordID(leadID uuid.UUID) string {
	return "disc-" + leadID.String()
}
