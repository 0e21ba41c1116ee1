// Package repository persists projects through the tabular store.
package repository

import (
	"context"
	"encoding/json"

	"agency_portal_backend/internal/projects/domain"
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

// Create appends a new project.
func (r *Repository) Create(ctx context.Context, project domain.Project) error {
	row, err := toRow(project)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode project", err)
	}
	if err := r.store.Append(ctx, tabular.TableProjects, row); err != nil {
		r.log.PersistenceError("create", tabular.TableProjects, err)
		return apperr.Persistence("project not durably persisted", err)
	}
	return nil
}

// GetByID returns one project.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	projects, err := r.List(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, apperr.NotFound("project not found")
}

// List returns all projects in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.store.Read(ctx, tabular.TableProjects)
	if err != nil {
		r.log.PersistenceError("read", tabular.TableProjects, err)
		return nil, apperr.Persistence("could not read projects", err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := fromRow(row)
		if err != nil {
			r.log.Warn("skipping undecodable project row", "error", err)
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func toRow(project domain.Project) (tabular.Row, error) {
	data, err := json.Marshal(project)
	if err != nil {
		return nil, err
	}
	var row tabular.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func fromRow(row tabular.Row) (domain.Project, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return domain.Project{}, err
	}
	var project domain.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}
