package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/innovators-hub-api/internal/models"
)

// AnalyticsRepository exposes the raw projections the admin dashboard tallies.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ProjectStatuses returns the status and faculty of every project.
func (r *AnalyticsRepository) ProjectStatuses(ctx context.Context) ([]models.ProjectStatusRow, error) {
	rows := make([]models.ProjectStatusRow, 0)
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, faculty_id FROM projects`); err != nil {
		return nil, fmt.Errorf("query project statuses: %w", err)
	}
	return rows, nil
}

// Faculties returns every faculty so empty ones still appear in the breakdown.
func (r *AnalyticsRepository) Faculties(ctx context.Context) ([]models.Faculty, error) {
	rows := make([]models.Faculty, 0)
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM faculties ORDER BY name`); err != nil {
		return nil, fmt.Errorf("query faculties: %w", err)
	}
	return rows, nil
}

// TechnologyTags returns one technology name per project tag.
func (r *AnalyticsRepository) TechnologyTags(ctx context.Context) ([]string, error) {
	const query = `SELECT t.name FROM project_technologies pt JOIN technologies t ON t.id = pt.technology_id`
	names := make([]string, 0)
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("query technology tags: %w", err)
	}
	return names, nil
}
