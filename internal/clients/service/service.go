// Package service provides client account use cases.
package service

import (
	"context"
	"time"

	"agency_portal_backend/internal/clients/domain"
	"agency_portal_backend/internal/clients/repository"
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

// CreateClientInput is the data a new client account is built from.
type CreateClientInput struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Website     string
	Industry    string
	CompanySize string
	LeadID      *uuid.UUID
}

// Create persists a new client in onboarding state and returns its id.
func (s *Service) Create(ctx context.Context, input CreateClientInput) (uuid.UUID, error) {
	now := s.now().UTC()
	client := domain.Client{
		ID:          uuid.New(),
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Website:     input.Website,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		Status:      domain.StatusOnboarding,
		LeadID:      input.LeadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return uuid.Nil, err
	}
	return client.ID, nil
}

// Get returns one client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all clients.
func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}
