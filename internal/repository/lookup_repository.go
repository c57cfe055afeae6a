package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/innovators-hub-api/internal/models"
)

// LookupRepository reads the reference tables used by forms and filters.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository constructs the repository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// Faculties lists faculties by name.
func (r *LookupRepository) Faculties(ctx context.Context) ([]models.Faculty, error) {
	items := make([]models.Faculty, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM faculties ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return items, nil
}

// Categories lists categories by name.
func (r *LookupRepository) Categories(ctx context.Context) ([]models.Category, error) {
	items := make([]models.Category, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM categories ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// Technologies lists technologies by name.
func (r *LookupRepository) Technologies(ctx context.Context) ([]models.Technology, error) {
	items := make([]models.Technology, 0)
	if err := r.db.SelectContext(ctx, &items, `SELECT id, name FROM technologies ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return items, nil
}

// CategoryExists reports whether the category id is known.
func (r *LookupRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}
