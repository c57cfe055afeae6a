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
	"github.com/noah-isme/innovators-hub-api/internal/repository"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type projectWriter interface {
	Create(ctx context.Context, project *models.Project, technologyIDs []string) error
	Resubmit(ctx context.Context, params repository.ResubmitParams) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	GetDetail(ctx context.Context, id string) (*models.ProjectDetail, error)
}

type projectLister interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectDetail, error)
}

type categoryChecker interface {
	CategoryExists(ctx context.Context, id string) (bool, error)
}

type projectsChangedNotifier interface {
	ProjectsChanged(ctx context.Context)
}

// ProjectService implements the student submission workflow.
type ProjectService struct {
	projects   projectWriter
	lister     projectLister
	categories categoryChecker
	notifier   projectsChangedNotifier
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// ProjectServiceParams groups constructor dependencies.
type ProjectServiceParams struct {
	Projects   projectWriter
	Lister     projectLister
	Categories categoryChecker
	Notifier   projectsChangedNotifier
	Metrics    *MetricsService
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// NewProjectService constructs the service.
func NewProjectService(params ProjectServiceParams) *ProjectService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Notifier == nil {
		params.Notifier = noopNotifier{}
	}
	return &ProjectService{
		projects:   params.Projects,
		lister:     params.Lister,
		categories: params.Categories,
		notifier:   params.Notifier,
		metrics:    params.Metrics,
		validator:  params.Validator,
		logger:     params.Logger,
	}
}

// Submit creates a pending project owned by the student, tagged with the distinct technologies.
func (s *ProjectService) Submit(ctx context.Context, student *models.Profile, req dto.SubmitProjectRequest) (*models.ProjectDetail, error) {
	if student == nil || student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can submit projects")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.GithubLink = strings.TrimSpace(req.GithubLink)
	req.DemoLink = strings.TrimSpace(req.DemoLink)
	req.TechnologyIDs = distinct(req.TechnologyIDs)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "invalid project submission")
	}

	if s.categories != nil {
		ok, err := s.categories.CategoryExists(ctx, req.CategoryID)
		if err != nil {
			return nil, appErrors.As(err, appErrors.ErrInternal, "failed to check category")
		}
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
		}
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectStatusPending,
		StudentID:   student.ID,
		FacultyID:   student.FacultyID,
		CategoryID:  req.CategoryID,
		GithubLink:  optionalString(req.GithubLink),
		DemoLink:    optionalString(req.DemoLink),
	}
	if err := s.projects.Create(ctx, project, req.TechnologyIDs); err != nil {
		if errors.Is(err, repository.ErrUnknownReference) {
			return nil, appErrors.As(err, appErrors.ErrValidation, "unknown category or technology")
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to submit project")
	}
	s.metrics.RecordSubmission()
	s.notifier.ProjectsChanged(ctx)
	s.logger.Info("project submitted", zap.String("project_id", project.ID), zap.String("student_id", student.ID))

	detail, err := s.projects.GetDetail(ctx, project.ID)
	if err != nil {
		s.logger.Warn("reload submitted project failed", zap.String("project_id", project.ID), zap.Error(err))
		return &models.ProjectDetail{Project: *project, Technologies: []string{}}, nil
	}
	return detail, nil
}

// ListOwn returns the student's projects newest first with per-status counts.
func (s *ProjectService) ListOwn(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	projects, err := s.lister.List(ctx, models.ProjectFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load projects")
	}
	return &dto.StudentDashboardResponse{Projects: projects, Totals: TallyDetails(projects)}, nil
}

// Resubmit returns a project in revision to pending with the student's edits.
func (s *ProjectService) Resubmit(ctx context.Context, studentID, projectID string, req dto.ResubmitProjectRequest) (*models.ProjectDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.GithubLink = strings.TrimSpace(req.GithubLink)
	req.DemoLink = strings.TrimSpace(req.DemoLink)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.As(err, appErrors.ErrValidation, "invalid resubmission")
	}

	err := s.projects.Resubmit(ctx, repository.ResubmitParams{
		ID:          projectID,
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		GithubLink:  optionalString(req.GithubLink),
		DemoLink:    optionalString(req.DemoLink),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.explainResubmitMiss(ctx, studentID, projectID)
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to resubmit project")
	}
	s.notifier.ProjectsChanged(ctx)

	detail, err := s.projects.GetDetail(ctx, projectID)
	if err != nil {
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to reload project")
	}
	return detail, nil
}

func (s *ProjectService) explainResubmitMiss(ctx context.Context, studentID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return appErrors.As(err, appErrors.ErrInternal, "failed to load project")
	}
	if project.StudentID != studentID {
		return appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	return appErrors.Clone(appErrors.ErrInvalidTransition, "only projects in revision can be resubmitted")
}

type noopNotifier struct{}

func (noopNotifier) ProjectsChanged(context.Context) {}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
