// Package service orchestrates discovery session lifecycle and analytics.
package service

import (
	"context"
	"time"

	"agency_portal_backend/internal/discovery/analytics"
	"agency_portal_backend/internal/discovery/domain"
	"agency_portal_backend/internal/discovery/repository"
	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log, now: time.Now}
}

// Start opens a draft session for a lead.
func (s *Service) Start(ctx context.Context, leadID uuid.UUID) (domain.DiscoverySession, error) {
	now := s.now().UTC()
	session := domain.DiscoverySession{
		ID:        uuid.New(),
		LeadID:    leadID,
		Status:    domain.SessionDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return domain.DiscoverySession{}, err
	}
	return session, nil
}

// Get returns one session by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.DiscoverySession, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByLead returns the most recent session of a lead.
func (s *Service) GetByLead(ctx context.Context, leadID uuid.UUID) (domain.DiscoverySession, error) {
	return s.repo.GetByLeadID(ctx, leadID)
}

// UpdateSectionsRequest carries incremental questionnaire updates. Only
// non-nil sections are written; each written section counts as completed.
type UpdateSectionsRequest struct {
	CompanyFundamentals   *domain.CompanyFundamentals   `json:"companyFundamentals"`
	ProjectOverview       *domain.ProjectOverview       `json:"projectOverview"`
	TargetAudience        *domain.TargetAudience        `json:"targetAudience"`
	CurrentState          *domain.CurrentState          `json:"currentState"`
	GoalsKPIs             *domain.GoalsKPIs             `json:"goalsKpis"`
	Competition           *domain.Competition           `json:"competition"`
	BudgetResources       *domain.BudgetResources       `json:"budgetResources"`
	TechnicalRequirements *domain.TechnicalRequirements `json:"technicalRequirements"`
	ContentStrategy       *domain.ContentStrategy       `json:"contentStrategy"`
	NextSteps             *domain.NextSteps             `json:"nextSteps"`

	// Status optionally advances the session lifecycle.
	Status *domain.SessionStatus `json:"status"`
}

// Update applies section updates to a session. Completing the session
// publishes DiscoverySessionCompleted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSectionsRequest) (domain.DiscoverySession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.DiscoverySession{}, err
	}
	if session.Status == domain.SessionArchived {
		return domain.DiscoverySession{}, apperr.Conflict("archived sessions are read-only")
	}

	oldStatus := session.Status
	applySections(&session, req)

	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.DiscoverySession{}, apperr.Validation("unknown session status")
		}
		session.Status = *req.Status
	} else if session.Status == domain.SessionDraft {
		session.Status = domain.SessionInProgress
	}
	session.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, session); err != nil {
		return domain.DiscoverySession{}, err
	}

	if session.Status == domain.SessionCompleted && oldStatus != domain.SessionCompleted {
		s.bus.Publish(ctx, events.DiscoverySessionCompleted{
			BaseEvent: events.NewBaseEvent(),
			SessionID: session.ID,
			LeadID:    session.LeadID,
		})
	}
	return session, nil
}

// Analytics derives the staffing and complexity view of a session.
func (s *Service) Analytics(ctx context.Context, id uuid.UUID) (analytics.Analytics, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return analytics.Analytics{}, err
	}
	return analytics.Analyze(session), nil
}

func applySections(session *domain.DiscoverySession, req UpdateSectionsRequest) {
	if req.CompanyFundamentals != nil {
		session.CompanyFundamentals = *req.CompanyFundamentals
		session.MarkCompleted(domain.SectionCompanyFundamentals)
	}
	if req.ProjectOverview != nil {
		session.ProjectOverview = *req.ProjectOverview
		session.MarkCompleted(domain.SectionProjectOverview)
	}
	if req.TargetAudience != nil {
		session.TargetAudience = *req.TargetAudience
		session.MarkCompleted(domain.SectionTargetAudience)
	}
	if req.CurrentState != nil {
		session.CurrentState = *req.CurrentState
		session.MarkCompleted(domain.SectionCurrentState)
	}
	if req.GoalsKPIs != nil {
		session.GoalsKPIs = *req.GoalsKPIs
		session.MarkCompleted(domain.SectionGoalsKPIs)
	}
	if req.Competition != nil {
		session.Competition = *req.Competition
		session.MarkCompleted(domain.SectionCompetition)
	}
	if req.BudgetResources != nil {
		session.BudgetResources = *req.BudgetResources
		session.MarkCompleted(domain.SectionBudgetResources)
	}
	if req.TechnicalRequirements != nil {
		session.TechnicalRequirements = *req.TechnicalRequirements
		session.MarkCompleted(domain.SectionTechnical)
	}
	if req.ContentStrategy != nil {
		session.ContentStrategy = *req.ContentStrategy
		session.MarkCompleted(domain.SectionContentStrategy)
	}
	if req.NextSteps != nil {
		session.NextSteps = *req.NextSteps
		session.MarkCompleted(domain.SectionNextSteps)
	}
}
