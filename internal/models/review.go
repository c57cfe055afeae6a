package models

import "time"

// Review is an append-only record of a supervisor decision on a project.
type Review struct {
	ID         string        `db:"id" json:"id"`
	ProjectID  string        `db:"project_id" json:"project_id"`
	ReviewerID string        `db:"reviewer_id" json:"reviewer_id"`
	Status     ProjectStatus `db:"status" json:"status"`
	Comment    *string       `db:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// ReviewDetail adds the reviewer name to a review.
type ReviewDetail struct {
	Review
	ReviewerName *string `db:"reviewer_name" json:"reviewer_name,omitempty"`
}
