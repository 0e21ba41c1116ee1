// Package repository persists clients through the tabular store.
package repository

import (
	"context"
	"encoding/json"

	"agency_portal_backend/internal/clients/domain"
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

// Create appends a new client.
func (r *Repository) Create(ctx context.Context, client domain.Client) error {
	row, err := toRow(client)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode client", err)
	}
	if err := r.store.Append(ctx, tabular.TableClients, row); err != nil {
		r.log.PersistenceError("create", tabular.TableClients, err)
		return apperr.Persistence("client not durably persisted", err)
	}
	return nil
}

// GetByID returns one client.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Client{}, apperr.NotFound("client not found")
}

// List returns all clients in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.store.Read(ctx, tabular.TableClients)
	if err != nil {
		r.log.PersistenceError("read", tabular.TableClients, err)
		return nil, apperr.Persistence("could not read clients", err)
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		c, err := fromRow(row)
		if err != nil {
			r.log.Warn("skipping undecodable client row", "error", err)
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func toRow(client domain.Client) (tabular.Row, error) {
	data, err := json.Marshal(client)
	if err != nil {
		return nil, err
	}
	var row tabular.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func fromRow(row tabular.Row) (domain.Client, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return domain.Client{}, err
	}
	var client domain.Client
	if err := json.Unmarshal(data, &client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}
