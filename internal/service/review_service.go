package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type reviewTransitioner interface {
	TransitionStatus(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

type reviewHistoryReader interface {
	ListByProject(ctx context.Context, projectID string) ([]models.ReviewDetail, error)
}

// ReviewService implements the supervisor review workflow.
type ReviewService struct {
	projects  reviewTransitioner
	lister    projectLister
	reviews   reviewHistoryReader
	notifier  projectsChangedNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// ReviewServiceParams groups constructor dependencies.
type ReviewServiceParams struct {
	Projects  reviewTransitioner
	Lister    projectLister
	Reviews   reviewHistoryReader
	Notifier  projectsChangedNotifier
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewReviewService constructs the service.
func NewReviewService(params ReviewServiceParams) *ReviewService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Notifier == nil {
		params.Notifier = noopNotifier{}
	}
	return &ReviewService{
		projects:  params.Projects,
		lister:    params.Lister,
		reviews:   params.Reviews,
		notifier:  params.Notifier,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

// Review moves a pending project to the chosen outcome and records the decision.
func (s *ReviewService) Review(ctx context.Context, reviewerID, projectID string, req dto.ReviewProjectRequest) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "invalid review payload")
	}
	if !req.Status.IsReviewOutcome() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved, rejected or revision")
	}

	review := &models.Review{
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		Status:     req.Status,
		Comment:    optionalString(strings.TrimSpace(req.Comment)),
	}
	if err := s.projects.TransitionStatus(ctx, review); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.explainTransitionMiss(ctx, projectID)
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to record review")
	}

	s.metrics.RecordReview(review.Status)
	s.notifier.ProjectsChanged(ctx)
	s.logger.Info("project reviewed",
		zap.String("project_id", projectID),
		zap.String("reviewer_id", reviewerID),
		zap.String("status", string(review.Status)),
	)
	return review, nil
}

// Queue returns every project newest first, optionally narrowed to one status. Totals
// always cover the whole queue.
func (s *ReviewService) Queue(ctx context.Context, status string) (*dto.SupervisorDashboardResponse, error) {
	var filter *models.ProjectStatus
	if status != "" && status != "all" {
		parsed := models.ProjectStatus(status)
		if !parsed.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
		}
		filter = &parsed
	}

	projects, err := s.lister.List(ctx, models.ProjectFilter{})
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load review queue")
	}

	resp := &dto.SupervisorDashboardResponse{Projects: projects, Totals: TallyDetails(projects)}
	if filter != nil {
		narrowed := make([]models.ProjectDetail, 0, len(projects))
		for _, p := range projects {
			if p.Status == *filter {
				narrowed = append(narrowed, p)
			}
		}
		resp.Projects = narrowed
	}
	return resp, nil
}

// History returns the reviews recorded for a project, latest first.
func (s *ReviewService) History(ctx context.Context, projectID string) ([]models.ReviewDetail, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load project")
	}
	reviews, err := s.reviews.ListByProject(ctx, projectID)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load reviews")
	}
	return reviews, nil
}

func (s *ReviewService) explainTransitionMiss(ctx context.Context, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return appErrors.As(err, appErrors.ErrInternal, "failed to load project")
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition, "project is "+string(project.Status)+", only pending projects can be reviewed")
}
