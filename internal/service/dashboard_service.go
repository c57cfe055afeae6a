package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

// TopTechnologiesLimit caps the technology ranking on the admin dashboard.
const TopTechnologiesLimit = 8

type analyticsSource interface {
	ProjectStatuses(ctx context.Context) ([]models.ProjectStatusRow, error)
	Faculties(ctx context.Context) ([]models.Faculty, error)
	TechnologyTags(ctx context.Context) ([]string, error)
}

// DashboardService composes the admin analytics, caching the result.
type DashboardService struct {
	source analyticsSource
	cache   *CacheService
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewDashboardService constructs a DashboardService; cache and metrics may be nil.
func NewDashboardService(source analyticsSource, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{source: source, cache: cache, metrics: metrics, ttl: ttl, logger: logger, now: time.Now}
}

// Admin returns the admin analytics and whether they were served from cache.
func (s *DashboardService) Admin(ctx context.Context) (*models.AdminAnalytics, bool, error) {
	key := CacheKey(CachePrefixAnalytics, "admin")
	var cached models.AdminAnalytics
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("analytics cache unavailable", zap.Error(err))
	} else if hit {
		return &cached, true, nil
	}

	start := time.Now()
	statuses, err := s.source.ProjectStatuses(ctx)
	if err != nil {
		return nil, false, appErrors.As(err, appErrors.ErrInternal, "failed to load project statuses")
	}
	s.metrics.ObserveDBQuery("analytics_project_statuses", time.Since(start))

	start = time.Now()
	faculties, err := s.source.Faculties(ctx)
	if err != nil {
		return nil, false, appErrors.As(err, appErrors.ErrInternal, "failed to load faculties")
	}
	s.metrics.ObserveDBQuery("analytics_faculties", time.Since(start))

	start = time.Now()
	tags, err := s.source.TechnologyTags(ctx)
	if err != nil {
		return nil, false, appErrors.As(err, appErrors.ErrInternal, "failed to load technology tags")
	}
	s.metrics.ObserveDBQuery("analytics_technology_tags", time.Since(start))

	analytics := ComputeAnalytics(statuses, faculties, tags)
	analytics.GeneratedAt = s.now().UTC()
	if err := s.cache.Set(ctx, key, analytics, s.ttl); err != nil {
		s.logger.Warn("analytics cache write failed", zap.Error(err))
	}
	return analytics, false, nil
}

// ComputeAnalytics tallies the admin dashboard from raw projections.
func ComputeAnalytics(statuses []models.ProjectStatusRow, faculties []models.Faculty, tags []string) *models.AdminAnalytics {
	totals := models.ProjectTotals{}
	type facultyTally struct{ count, approved int }
	byFaculty := make(map[string]*facultyTally, len(faculties))
	for _, f := range faculties {
		byFaculty[f.ID] = &facultyTally{}
	}

	for _, row := range statuses {
		addToTotals(&totals, row.Status)
		if row.FacultyID == nil {
			continue
		}
		if tally, ok := byFaculty[*row.FacultyID]; ok {
			tally.count++
			if row.Status == models.ProjectStatusApproved {
				tally.approved++
			}
		}
	}

	breakdown := make([]models.FacultyBreakdown, 0, len(faculties))
	for _, f := range faculties {
		tally := byFaculty[f.ID]
		breakdown = append(breakdown, models.FacultyBreakdown{
			FacultyID: f.ID,
			Name:      shortFacultyName(f.Name),
			Count:     tally.count,
			Approved:  tally.approved,
		})
	}

	return &models.AdminAnalytics{
		Totals:       totals,
		ApprovalRate: ApprovalRate(totals.Approved, totals.Total),
		Faculties:    breakdown,
		Technologies: TopTechnologies(tags, TopTechnologiesLimit),
	}
}

// ApprovalRate is approved/total as an integer percentage, halves rounded up; 0 when total is 0.
func ApprovalRate(approved, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*approved + total) / (2 * total)
}

// TopTechnologies counts tag occurrences and returns the limit most used, ties by name.
func TopTechnologies(tags []string, limit int) []models.TechnologyUsage {
	counts := make(map[string]int)
	for _, name := range tags {
		counts[name]++
	}
	usage := make([]models.TechnologyUsage, 0, len(counts))
	for name, count := range counts {
		usage = append(usage, models.TechnologyUsage{Name: name, Count: count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].Name < usage[j].Name
	})
	if limit > 0 && len(usage) > limit {
		usage = usage[:limit]
	}
	return usage
}

// TallyDetails counts project details per status.
func TallyDetails(projects []models.ProjectDetail) models.ProjectTotals {
	totals := models.ProjectTotals{}
	for _, p := range projects {
		addToTotals(&totals, p.Status)
	}
	return totals
}

func addToTotals(totals *models.ProjectTotals, status models.ProjectStatus) {
	totals.Total++
	switch status {
	case models.ProjectStatusApproved:
		totals.Approved++
	case models.ProjectStatusPending:
		totals.Pending++
	case models.ProjectStatusRejected:
		totals.Rejected++
	case models.ProjectStatusRevision:
		totals.Revision++
	}
}

func shortFacultyName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
