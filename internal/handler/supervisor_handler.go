package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type reviewService interface {
	Review(ctx context.Context, reviewerID, projectID string, req dto.ReviewProjectRequest) (*models.Review, error)
	Queue(ctx context.Context, status string) (*dto.SupervisorDashboardResponse, error)
	History(ctx context.Context, projectID string) ([]models.ReviewDetail, error)
}

// SupervisorHandler serves the review queue and review actions.
type SupervisorHandler struct {
	service reviewService
}

// NewSupervisorHandler constructs the handler.
func NewSupervisorHandler(svc reviewService) *SupervisorHandler {
	return &SupervisorHandler{service: svc}
}

// Dashboard godoc
// @Summary Supervisor review queue
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, rejected, revision or all"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /supervisor/dashboard [get]
func (h *SupervisorHandler) Dashboard(c *gin.Context) {
	resp, err := h.service.Queue(c.Request.Context(), strings.ToLower(strings.TrimSpace(c.Query("status"))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Reviews godoc
// @Summary Review history of a project
// @Tags Supervisor
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /supervisor/projects/{id}/reviews [get]
func (h *SupervisorHandler) Reviews(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	reviews, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews)
}

// Review godoc
// @Summary Review a pending project
// @Description Moves the project to approved, rejected or revision and records the review
// @Tags Supervisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param payload body dto.ReviewProjectRequest true "Decision"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /supervisor/projects/{id}/review [post]
func (h *SupervisorHandler) Review(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	var req dto.ReviewProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}
	review, err := h.service.Review(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}
