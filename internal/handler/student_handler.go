package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type studentProjectService interface {
	Submit(ctx context.Context, student *models.Profile, req dto.SubmitProjectRequest) (*models.ProjectDetail, error)
	ListOwn(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error)
	Resubmit(ctx context.Context, studentID, projectID string, req dto.ResubmitProjectRequest) (*models.ProjectDetail, error)
}

type submissionOptionsProvider interface {
	SubmissionOptions(ctx context.Context) (*dto.SubmissionOptions, error)
}

// StudentHandler serves the student dashboard and submission endpoints.
type StudentHandler struct {
	projects studentProjectService
	options  submissionOptionsProvider
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(projects studentProjectService, options submissionOptionsProvider) *StudentHandler {
	return &StudentHandler{projects: projects, options: options}
}

// Dashboard godoc
// @Summary Student dashboard
// @Description The caller's own projects newest first with per-status counts
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /student/dashboard [get]
func (h *StudentHandler) Dashboard(c *gin.Context) {
	profile := profileFromContext(c)
	if profile == nil {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	resp, err := h.projects.ListOwn(c.Request.Context(), profile.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// SubmissionForm godoc
// @Summary Submission form options
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/submit [get]
func (h *StudentHandler) SubmissionForm(c *gin.Context) {
	opts, err := h.options.SubmissionOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opts)
}

// Submit godoc
// @Summary Submit a project
// @Description Creates a pending project tagged with the selected technologies
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SubmitProjectRequest true "Project"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/submit [post]
func (h *StudentHandler) Submit(c *gin.Context) {
	var req dto.SubmitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid project payload"))
		return
	}
	project, err := h.projects.Submit(c.Request.Context(), profileFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Resubmit godoc
// @Summary Resubmit a project in revision
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param payload body dto.ResubmitProjectRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/projects/{id}/resubmit [put]
func (h *StudentHandler) Resubmit(c *gin.Context) {
	profile := profileFromContext(c)
	if profile == nil {
		response.Error(c, appErrors.ErrForbidden)
		return
	}
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	var req dto.ResubmitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resubmission payload"))
		return
	}
	project, err := h.projects.Resubmit(c.Request.Context(), profile.ID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project)
}
