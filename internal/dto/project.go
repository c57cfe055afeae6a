package dto

import "github.com/noah-isme/innovators-hub-api/internal/models"

// SubmitProjectRequest is the student submission form.
type SubmitProjectRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Description   string   `json:"description" validate:"required"`
	CategoryID    string   `json:"category_id" validate:"required,uuid"`
	GithubLink    string   `json:"github_link" validate:"omitempty,url"`
	DemoLink      string   `json:"demo_link" validate:"omitempty,url"`
	TechnologyIDs []string `json:"technology_ids" validate:"omitempty,dive,uuid"`
}

// ResubmitProjectRequest updates a project sent back for revision.
type ResubmitProjectRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	GithubLink  string `json:"github_link" validate:"omitempty,url"`
	DemoLink    string `json:"demo_link" validate:"omitempty,url"`
}

// SubmissionOptions lists the choices offered by the submission form.
type SubmissionOptions struct {
	Categories   []models.Category   `json:"categories"`
	Technologies []models.Technology `json:"technologies"`
}

// StudentDashboardResponse is the student's own project list with status counts.
type StudentDashboardResponse struct {
	Projects []models.ProjectDetail `json:"projects"`
	Totals   models.ProjectTotals   `json:"totals"`
}
