// Package repository persists discovery sessions through the tabular store.
package repository

import (
	"context"
	"encoding/json"

	"agency_portal_backend/internal/discovery/domain"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/google/uuid"
)

type Repository struct {
	store tabular.Store
	log   *logger.Logger
}

func New(store tabular.Store, log *logger.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// Create appends a new session.
func (r *Repository) Create(ctx context.Context, session domain.DiscoverySession) error {
	row, err := sessionToRow(session)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode session", err)
	}
	if err := r.store.Append(ctx, tabular.TableDiscoverySessions, row); err != nil {
		r.log.PersistenceError("create", tabular.TableDiscoverySessions, err)
		return apperr.Persistence("session not durably persisted", err)
	}
	return nil
}

// GetByID returns one session.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.DiscoverySession, error) {
	sessions, err := r.readAll(ctx)
	if err != nil {
		return domain.DiscoverySession{}, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.DiscoverySession{}, apperr.NotFound("discovery session not found")
}

// GetByLeadID returns the most recent session of a lead.
func (r *Repository) GetByLeadID(ctx context.Context, leadID uuid.UUID) (domain.DiscoverySession, error) {
	sessions, err := r.readAll(ctx)
	if err != nil {
		return domain.DiscoverySession{}, err
	}

	found := false
	var latest domain.DiscoverySession
	for _, s := range sessions {
		if s.LeadID == leadID && (!found || s.CreatedAt.After(latest.CreatedAt)) {
			latest = s
			found = true
		}
	}
	if !found {
		return domain.DiscoverySession{}, apperr.NotFound("discovery session not found")
	}
	return latest, nil
}

// Update replaces the stored session. Archived sessions are read-only.
func (r *Repository) Update(ctx context.Context, session domain.DiscoverySession) error {
	rows, err := r.store.Read(ctx, tabular.TableDiscoverySessions)
	if err != nil {
		r.log.PersistenceError("update", tabular.TableDiscoverySessions, err)
		return apperr.Persistence("could not read sessions for update", err)
	}

	found := false
	for i, row := range rows {
		existing, err := rowToSession(row)
		if err != nil {
			continue
		}
		if existing.ID == session.ID {
			if existing.Status == domain.SessionArchived {
				return apperr.Conflict("archived sessions are read-only")
			}
			updated, err := sessionToRow(session)
			if err != nil {
				return apperr.Wrap(apperr.KindInternal, "failed to encode session", err)
			}
			rows[i] = updated
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("discovery session not found")
	}

	if err := r.store.Write(ctx, tabular.TableDiscoverySessions, rows); err != nil {
		r.log.PersistenceError("update", tabular.TableDiscoverySessions, err)
		return apperr.Persistence("session update not durably persisted", err)
	}
	return nil
}

func (r *Repository) readAll(ctx context.Context) ([]domain.DiscoverySession, error) {
	rows, err := r.store.Read(ctx, tabular.TableDiscoverySessions)
	if err != nil {
		r.log.PersistenceError("read", tabular.TableDiscoverySessions, err)
		return nil, apperr.Persistence("could not read sessions", err)
	}

	sessions := make([]domain.DiscoverySession, 0, len(rows))
	for _, row := range rows {
		s, err := rowToSession(row)
		if err != nil {
			r.log.Warn("skipping undecodable session row", "error", err)
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func sessionToRow(session domain.DiscoverySession) (tabular.Row, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	var row tabular.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func rowToSession(row tabular.Row) (domain.DiscoverySession, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return domain.DiscoverySession{}, err
	}
	var session domain.DiscoverySession
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.DiscoverySession{}, err
	}
	return session, nil
}
