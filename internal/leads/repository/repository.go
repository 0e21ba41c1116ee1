// Package repository persists leads through the external tabular store.
// Reads go through an injected TTL cache; any write invalidates the whole
// cache rather than tracking which filtered views a row appears in.
package repository

import (
	"context"
	"encoding/json"

	"agency_portal_backend/internal/leads/domain"
	"agency_portal_backend/platform/apperr"
	"agency_portal_backend/platform/cache"
	"agency_portal_backend/platform/logger"
	"agency_portal_backend/platform/tabular"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Repository is the lead persistence adapter.
type Repository struct {
	store tabular.Store
	cache cache.Cache
	log   *logger.Logger
	group singleflight.Group
}

// New creates a lead repository over the given store and cache.
func New(store tabular.Store, c cache.Cache, log *logger.Logger) *Repository {
	return &Repository{store: store, cache: c, log: log}
}

// Create appends the lead to the store. On store failure the lead value the
// caller holds is still complete and usable, but the returned persistence
// error signals that durability was not achieved.
func (r *Repository) Create(ctx context.Context, lead domain.Lead) error {
	row, err := leadToRow(lead)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode lead", err)
	}

	if err := r.store.Append(ctx, tabular.TableLeads, row); err != nil {
		r.log.PersistenceError("create", tabular.TableLeads, err)
		return apperr.Persistence("lead not durably persisted", err)
	}

	r.cache.InvalidateAll(ctx)
	return nil
}

// GetByID returns the lead with the given id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	leads, err := r.readAll(ctx)
	if err != nil {
		return domain.Lead{}, err
	}

	for _, lead := range leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, apperr.NotFound("lead not found")
}

// List returns the leads matching the filter, sorted as requested. Results
// are cached under the serialized filter; concurrent identical requests are
// collapsed into a single store read.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.Lead, error) {
	key := filter.CacheKey()

	if data, ok := r.cache.Get(ctx, key); ok {
		var leads []domain.Lead
		if err := json.Unmarshal(data, &leads); err == nil {
			return leads, nil
		}
		// A corrupt entry falls through to a fresh read.
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		leads, err := r.readAll(ctx)
		if err != nil {
			return nil, err
		}

		matched := make([]domain.Lead, 0, len(leads))
		for _, lead := range leads {
			if filter.Matches(lead) {
				matched = append(matched, lead)
			}
		}
		sortLeads(matched, filter.SortBy, filter.SortDesc)

		if data, err := json.Marshal(matched); err == nil {
			r.cache.Set(ctx, key, data)
		}
		return matched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Lead), nil
}

// Update replaces the stored lead with the same id. The whole table is
// rewritten; the store offers no row-level update.
func (r *Repository) Update(ctx context.Context, lead domain.Lead) error {
	rows, err := r.store.Read(ctx, tabular.TableLeads)
	if err != nil {
		r.log.PersistenceError("update", tabular.TableLeads, err)
		return apperr.Persistence("could not read leads for update", err)
	}

	found := false
	for i, row := range rows {
		existing, err := rowToLead(row)
		if err != nil {
			continue
		}
		if existing.ID == lead.ID {
			updated, err := leadToRow(lead)
			if err != nil {
				return apperr.Wrap(apperr.KindInternal, "failed to encode lead", err)
			}
			rows[i] = updated
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("lead not found")
	}

	if err := r.store.Write(ctx, tabular.TableLeads, rows); err != nil {
		r.log.PersistenceError("update", tabular.TableLeads, err)
		return apperr.Persistence("lead update not durably persisted", err)
	}

	r.cache.InvalidateAll(ctx)
	return nil
}

// readAll decodes every row of the leads table. A store failure is surfaced
// as a persistence error, never silently mapped to an empty list.
func (r *Repository) readAll(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.store.Read(ctx, tabular.TableLeads)
	if err != nil {
		r.log.PersistenceError("read", tabular.TableLeads, err)
		return nil, apperr.Persistence("could not read leads", err)
	}

	leads := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		lead, err := rowToLead(row)
		if err != nil {
			r.log.Warn("skipping undecodable lead row", "error", err)
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func leadToRow(lead domain.Lead) (tabular.Row, error) {
	data, err := json.Marshal(lead)
	if err != nil {
		return nil, err
	}
	var row tabular.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func rowToLead(row tabular.Row) (domain.Lead, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return domain.Lead{}, err
	}
	var lead domain.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return domain.Lead{}, err
	}
	return lead, nil
}
