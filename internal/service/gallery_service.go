package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type projectDetailReader interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectDetail, error)
	GetDetail(ctx context.Context, id string) (*models.ProjectDetail, error)
}

// GalleryService serves approved projects to the public.
type GalleryService struct {
	projects projectDetailReader
	cache    *CacheService
	metrics  *MetricsService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewGalleryService constructs the service; cache and metrics may be nil.
func NewGalleryService(projects projectDetailReader, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *GalleryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{projects: projects, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// canonicalFilterID normalises an optional id filter. Only UUIDs are accepted so arbitrary
// query strings never reach SQL or mint cache keys.
func canonicalFilterID(raw, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", appErrors.As(err, appErrors.ErrValidation, field+" must be a UUID")
	}
	return id.String(), nil
}

// List returns approved projects matching the equality filters, newest first, narrowed by
// the search term. The bool reports whether the unsearched listing came from cache.
func (s *GalleryService) List(ctx context.Context, query dto.GalleryQuery) ([]models.ProjectDetail, bool, error) {
	var err error
	if query.CategoryID, err = canonicalFilterID(query.CategoryID, "category_id"); err != nil {
		return nil, false, err
	}
	if query.FacultyID, err = canonicalFilterID(query.FacultyID, "faculty_id"); err != nil {
		return nil, false, err
	}
	key := CacheKey(CachePrefixGallery, query.CategoryID, query.FacultyID)

	var projects []models.ProjectDetail
	hit, err := s.cache.Get(ctx, key, &projects)
	if err != nil {
		s.logger.Warn("gallery cache unavailable", zap.Error(err))
		hit = false
	}
	if !hit {
		approved := models.ProjectStatusApproved
		start := time.Now()
		projects, err = s.projects.List(ctx, models.ProjectFilter{
			Status:     &approved,
			CategoryID: query.CategoryID,
			FacultyID:  query.FacultyID,
		})
		if err != nil {
			return nil, false, appErrors.As(err, appErrors.ErrInternal, "failed to load gallery")
		}
		s.metrics.ObserveDBQuery("gallery_list", time.Since(start))
		if err := s.cache.Set(ctx, key, projects, s.ttl); err != nil {
			s.logger.Warn("gallery cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return FilterBySearch(projects, query.Search), hit, nil
}

// Detail returns one approved project; anything else is reported as not found.
func (s *GalleryService) Detail(ctx context.Context, id string) (*models.ProjectDetail, error) {
	detail, err := s.projects.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.As(err, appErrors.ErrInternal, "failed to load project")
	}
	if detail.Status != models.ProjectStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	return detail, nil
}

// FilterBySearch keeps projects whose title or description contains term, ignoring case.
// An empty term keeps everything.
func FilterBySearch(projects []models.ProjectDetail, term string) []models.ProjectDetail {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		if projects == nil {
			return []models.ProjectDetail{}
		}
		return projects
	}
	matched := make([]models.ProjectDetail, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), term) || strings.Contains(strings.ToLower(p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched
}
