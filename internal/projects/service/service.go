// Package service provides project use cases.
package service

import (
	"context"
	"time"

	"agency_portal_backend/internal/projects/domain"
	"agency_portal_backend/internal/projects/repository"
	"agency_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
	now  func() time.Time
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// CreateProjectInput is the data a new project is built from. The content
// template is derived from the type, not supplied by the caller.
type CreateProjectInput struct {
	ClientID          uuid.UUID
	LeadID            *uuid.UUID
	DiscoveryRecordID string

	Name     string
	Type     domain.Type
	Priority domain.Priority

	StartDate time.Time
	EndDate   time.Time

	EstimatedBudget float64
	EstimatedHours  float64

	Tags []string
}

// Create persists a new project in planning state and returns its id.
func (s *Service) Create(ctx context.Context, input CreateProjectInput) (uuid.UUID, error) {
	now := s.now().UTC()
	project := domain.Project{
		ID:                  uuid.New(),
		ClientID:            input.ClientID,
		LeadID:              input.LeadID,
		DiscoveryRecordID:   input.DiscoveryRecordID,
		Name:                input.Name,
		Type:                input.Type,
		Priority:            input.Priority,
		Status:              domain.StatusPlanning,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		EstimatedBudget:     input.EstimatedBudget,
		EstimatedHours:      input.EstimatedHours,
		ContentRequirements: domain.TemplateFor(input.Type),
		Tags:                input.Tags,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return uuid.Nil, err
	}
	return project.ID, nil
}

// Get returns one project.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}
