package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/innovators-hub-api/internal/models"
)

// ReviewRepository reads the append-only review history.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository constructs the repository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListByProject returns reviews for a project, latest first.
func (r *ReviewRepository) ListByProject(ctx context.Context, projectID string) ([]models.ReviewDetail, error) {
	const query = `SELECT rv.id, rv.project_id, rv.reviewer_id, rv.status, rv.comment, rv.created_at, pr.full_name AS reviewer_name
	FROM reviews rv
	LEFT JOIN profiles pr ON pr.id = rv.reviewer_id
	WHERE rv.project_id = $1
	ORDER BY rv.created_at DESC`
	reviews := make([]models.ReviewDetail, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, projectID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
