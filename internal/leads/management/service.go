// Package management orchestrates the lead lifecycle: intake validation,
// scoring, persistence and the events other modules react to.
package management

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/internal/leads/analytics"
	"agency_portal_backend/internal/leads/domain"
	"agency_portal_backend/internal/leads/repository"
	"agency_portal_backend/internal/leads/scoring"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/phone"
	"agency_portal_backend/platform/sanitize"
	"agency_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LeadRepository is the persistence contract the service needs.
type LeadRepository interface {
	Create(ctx context.Context, lead domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, filter repository.ListFilter) ([]domain.Lead, error)
	Update(ctx context.Context, lead domain.Lead) error
}

// Service implements lead management use cases.
type Service struct {
	repo      LeadRepository
	scorer    *scoring.Scorer
	validator *validator.Validator
	bus       events.Bus
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates the lead management service.
func NewService(repo LeadRepository, scorer *scoring.Scorer, v *validator.Validator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		scorer:    scorer,
		validator: v,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
}

// CreateLeadRequest is the validated intake form payload.
type CreateLeadRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Company  string `json:"company" validate:"required,min=2"`
	Website  string `json:"website" validate:"omitempty,url"`
	JobTitle string `json:"jobTitle"`

	CompanySize domain.CompanySize `json:"companySize"`
	Industry    string             `json:"industry"`
	ProjectType domain.ProjectType `json:"projectType"`
	BudgetRange domain.BudgetRange `json:"budgetRange"`
	Timeline    domain.Timeline    `json:"timeline"`

	ProjectDescription   string   `json:"projectDescription" validate:"required,min=10"`
	PrimaryChallenge     string   `json:"primaryChallenge" validate:"required,min=5"`
	AdditionalChallenges []string `json:"additionalChallenges"`
	SpecificRequirements string   `json:"specificRequirements"`

	Source domain.Source `json:"source"`
}

// Create validates the intake payload, scores it and persists the new lead.
// On a store failure the returned lead is still fully populated; the
// persistence error tells the caller durability was not achieved.
func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (domain.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		msgs := validationMessages(err)
		return domain.Lead{}, apperr.Validation(strings.Join(msgs, "; ")).WithDetails(msgs)
	}

	now := s.now().UTC()
	lead := domain.Lead{
		ID:                   uuid.New(),
		Name:                 strings.TrimSpace(req.Name),
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                phone.NormalizeE164(req.Phone),
		Company:              strings.TrimSpace(req.Company),
		Website:              req.Website,
		JobTitle:             req.JobTitle,
		CompanySize:          req.CompanySize,
		Industry:             req.Industry,
		ProjectType:          req.ProjectType,
		BudgetRange:          req.BudgetRange,
		Timeline:             req.Timeline,
		ProjectDescription:   sanitize.Text(req.ProjectDescription),
		PrimaryChallenge:     sanitize.Text(req.PrimaryChallenge),
		AdditionalChallenges: req.AdditionalChallenges,
		SpecificRequirements: sanitize.Text(req.SpecificRequirements),
		Status:               domain.StatusNew,
		Source:               req.Source,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	s.scorer.Apply(&lead)

	if err := s.repo.Create(ctx, lead); err != nil {
		if apperr.Is(err, apperr.KindPersistence) {
			// Caller gets the scored lead plus the degradation signal.
			return lead, err
		}
		return domain.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Company:   lead.Company,
		Name:      lead.Name,
		Email:     lead.Email,
		LeadScore: lead.LeadScore,
		Priority:  string(lead.Priority),
		Source:    string(lead.Source),
	})
	return lead, nil
}

// Get returns one lead by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns leads matching the filter.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]domain.Lead, error) {
	return s.repo.List(ctx, filter)
}

// Stats aggregates the full lead collection into dashboard statistics.
func (s *Service) Stats(ctx context.Context) (analytics.Stats, error) {
	leads, err := s.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Compute(leads, s.now().UTC()), nil
}

// UpdateLeadRequest carries a partial update; nil fields are left untouched.
type UpdateLeadRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company" validate:"omitempty,min=2"`
	Website  *string `json:"website" validate:"omitempty,url"`
	JobTitle *string `json:"jobTitle"`

	CompanySize *domain.CompanySize `json:"companySize"`
	Industry    *string             `json:"industry"`
	ProjectType *domain.ProjectType `json:"projectType"`
	BudgetRange *domain.BudgetRange `json:"budgetRange"`
	Timeline    *domain.Timeline    `json:"timeline"`

	ProjectDescription   *string   `json:"projectDescription" validate:"omitempty,min=10"`
	PrimaryChallenge     *string   `json:"primaryChallenge" validate:"omitempty,min=5"`
	AdditionalChallenges *[]string `json:"additionalChallenges"`
	SpecificRequirements *string   `json:"specificRequirements"`

	Status     *domain.Status `json:"status"`
	AssignedTo *string        `json:"assignedTo"`
	FollowUpAt *time.Time     `json:"followUpAt"`
	Notes      *string        `json:"notes"`
	Tags       *[]string      `json:"tags"`
	Source     *domain.Source `json:"source"`
}

// Update applies a partial update. Scoring-relevant changes trigger a
// rescore; a status change is validated against the lifecycle transition
// table and announced on the bus.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateLeadRequest) (domain.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		msgs := validationMessages(err)
		return domain.Lead{}, apperr.Validation(strings.Join(msgs, "; ")).WithDetails(msgs)
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	oldStatus := lead.Status
	oldScore := lead.LeadScore
	changed := s.apply(&lead, req)
	if len(changed) == 0 {
		return lead, nil
	}

	if lead.Status != oldStatus {
		if !lead.Status.Valid() {
			return domain.Lead{}, apperr.Validation(fmt.Sprintf("unknown status %q", lead.Status))
		}
		if !domain.CanTransition(oldStatus, lead.Status) {
			return domain.Lead{}, apperr.Validation(
				fmt.Sprintf("cannot move lead from %s to %s", oldStatus, lead.Status))
		}
		s.stampStatus(&lead)
	}

	if scoring.TouchesScore(changed) {
		s.scorer.Apply(&lead)
	}
	lead.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, lead); err != nil {
		if apperr.Is(err, apperr.KindPersistence) {
			return lead, err
		}
		return domain.Lead{}, err
	}

	if lead.Status != oldStatus {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldStatus: string(oldStatus),
			NewStatus: string(lead.Status),
		})
	}
	if lead.LeadScore != oldScore {
		s.bus.Publish(ctx, events.LeadRescored{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			OldScore:    oldScore,
			NewScore:    lead.LeadScore,
			NewPriority: string(lead.Priority),
		})
	}
	return lead, nil
}

// Rescore recomputes the score of every stored lead with the current tables.
// Used by the backfill command after tuning scoring configuration.
func (s *Service) Rescore(ctx context.Context) (int, error) {
	leads, err := s.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, lead := range leads {
		before := lead.LeadScore
		s.scorer.Apply(&lead)
		if lead.LeadScore == before {
			continue
		}
		lead.UpdatedAt = s.now().UTC()
		if err := s.repo.Update(ctx, lead); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// apply copies set fields onto the lead and returns the JSON names of the
// fields that changed.
func (s *Service) apply(lead *domain.Lead, req UpdateLeadRequest) []string {
	var changed []string
	set := func(name string) { changed = append(changed, name) }

	if req.Name != nil && *req.Name != lead.Name {
		lead.Name = *req.Name
		set("name")
	}
	if req.Email != nil && *req.Email != lead.Email {
		lead.Email = strings.ToLower(*req.Email)
		set("email")
	}
	if req.Phone != nil {
		if normalized := phone.NormalizeE164(*req.Phone); normalized != lead.Phone {
			lead.Phone = normalized
			set("phone")
		}
	}
	if req.Company != nil && *req.Company != lead.Company {
		lead.Company = *req.Company
		set("company")
	}
	if req.Website != nil && *req.Website != lead.Website {
		lead.Website = *req.Website
		set("website")
	}
	if req.JobTitle != nil && *req.JobTitle != lead.JobTitle {
		lead.JobTitle = *req.JobTitle
		set("jobTitle")
	}
	if req.CompanySize != nil && *req.CompanySize != lead.CompanySize {
		lead.CompanySize = *req.CompanySize
		set("companySize")
	}
	if req.Industry != nil && *req.Industry != lead.Industry {
		lead.Industry = *req.Industry
		set("industry")
	}
	if req.ProjectType != nil && *req.ProjectType != lead.ProjectType {
		lead.ProjectType = *req.ProjectType
		set("projectType")
	}
	if req.BudgetRange != nil && *req.BudgetRange != lead.BudgetRange {
		lead.BudgetRange = *req.BudgetRange
		set("budgetRange")
	}
	if req.Timeline != nil && *req.Timeline != lead.Timeline {
		lead.Timeline = *req.Timeline
		set("timeline")
	}
	if req.ProjectDescription != nil && sanitize.Text(*req.ProjectDescription) != lead.ProjectDescription {
		lead.ProjectDescription = sanitize.Text(*req.ProjectDescription)
		set("projectDescription")
	}
	if req.PrimaryChallenge != nil && sanitize.Text(*req.PrimaryChallenge) != lead.PrimaryChallenge {
		lead.PrimaryChallenge = sanitize.Text(*req.PrimaryChallenge)
		set("primaryChallenge")
	}
	if req.AdditionalChallenges != nil {
		lead.AdditionalChallenges = *req.AdditionalChallenges
		set("additionalChallenges")
	}
	if req.SpecificRequirements != nil && sanitize.Text(*req.SpecificRequirements) != lead.SpecificRequirements {
		lead.SpecificRequirements = sanitize.Text(*req.SpecificRequirements)
		set("specificRequirements")
	}
	if req.Status != nil && *req.Status != lead.Status {
		lead.Status = *req.Status
		set("status")
	}
	if req.AssignedTo != nil && *req.AssignedTo != lead.AssignedTo {
		lead.AssignedTo = *req.AssignedTo
		set("assignedTo")
	}
	if req.FollowUpAt != nil {
		lead.FollowUpAt = req.FollowUpAt
		set("followUpAt")
	}
	if req.Notes != nil && sanitize.Text(*req.Notes) != lead.Notes {
		lead.Notes = sanitize.Text(*req.Notes)
		set("notes")
	}
	if req.Tags != nil {
		lead.Tags = *req.Tags
		set("tags")
	}
	if req.Source != nil && *req.Source != lead.Source {
		lead.Source = *req.Source
		set("source")
	}
	return changed
}

// stampStatus records the milestone timestamps implied by a status change.
func (s *Service) stampStatus(lead *domain.Lead) {
	now := s.now().UTC()
	switch lead.Status {
	case domain.StatusContacted:
		lead.LastContactAt = &now
	case domain.StatusDiscoveryCompleted:
		lead.DiscoveryCompletedAt = &now
	case domain.StatusProposalSent:
		lead.ProposalSentAt = &now
	}
}

// validationMessages flattens a validator error into human-readable messages.
func validationMessages(err error) []string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldName(fe)))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fieldName(fe), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fieldName(fe), fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fieldName(fe)))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", fieldName(fe)))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fieldName(fe)))
		}
	}
	return msgs
}

func fieldName(fe playground.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
