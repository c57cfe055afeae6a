package dto

import "github.com/noah-isme/innovators-hub-api/internal/models"

// ReviewProjectRequest captures a supervisor decision and optional comment.
type ReviewProjectRequest struct {
	Status  models.ProjectStatus `json:"status" validate:"required"`
	Comment string               `json:"comment" validate:"max=2000"`
}

// SupervisorDashboardResponse is the review queue with status counts.
type SupervisorDashboardResponse struct {
	Projects []models.ProjectDetail `json:"projects"`
	Totals   models.ProjectTotals   `json:"totals"`
}
