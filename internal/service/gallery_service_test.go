package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

const galleryCategoryID = "6f1c2a9e-3b7d-4c55-9a0e-2d8f4b1e7c30"

func detail(id, title, description string, status models.ProjectStatus) models.ProjectDetail {
	return models.ProjectDetail{
		Project:      models.Project{ID: id, Title: title, Description: description, Status: status},
		Technologies: []string{},
	}
}

func TestFilterBySearch(t *testing.T) {
	projects := []models.ProjectDetail{
		detail("p1", "Smart Irrigation", "soil moisture sensors", models.ProjectStatusApproved),
		detail("p2", "Campus Map", "Indoor navigation for SMART buildings", models.ProjectStatusApproved),
		detail("p3", "Library bot", "book reminders", models.ProjectStatusApproved),
	}

	matched := FilterBySearch(projects, "  smart ")
	require.Len(t, matched, 2)
	assert.Equal(t, "p1", matched[0].ID)
	assert.Equal(t, "p2", matched[1].ID)

	assert.Len(t, FilterBySearch(projects, ""), 3)
	assert.Empty(t, FilterBySearch(projects, "blockchain"))
	assert.NotNil(t, FilterBySearch(nil, ""))
}

func TestGalleryServiceListUsesApprovedFilterAndCache(t *testing.T) {
	store := newStubProjectStore()
	store.listResult = []models.ProjectDetail{
		detail("p1", "Smart Irrigation", "sensors", models.ProjectStatusApproved),
		detail("p2", "Campus Map", "navigation", models.ProjectStatusApproved),
	}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	metrics := NewMetricsService()
	svc := NewGalleryService(store, cache, metrics, time.Minute, zap.NewNop())

	projects, hit, err := svc.List(context.Background(), dto.GalleryQuery{CategoryID: " " + galleryCategoryID + " ", Search: "map"})
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, projects, 1)
	assert.Equal(t, "p2", projects[0].ID)
	require.NotNil(t, store.listFilter.Status)
	assert.Equal(t, models.ProjectStatusApproved, *store.listFilter.Status)
	assert.Equal(t, galleryCategoryID, store.listFilter.CategoryID)
	assert.Empty(t, store.listFilter.FacultyID)
	assert.Equal(t, uint64(1), metrics.Snapshot().DBQueryCount)

	store.listResult = nil
	projects, hit, err = svc.List(context.Background(), dto.GalleryQuery{CategoryID: strings.ToUpper(galleryCategoryID)})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, projects, 2)
	assert.Equal(t, uint64(1), metrics.Snapshot().DBQueryCount)
}

func TestGalleryServiceListRejectsMalformedFilters(t *testing.T) {
	store := newStubProjectStore()
	cacheRepo := newMemoryCacheRepo()
	svc := NewGalleryService(store, NewCacheService(cacheRepo, nil, time.Minute, nil, true), nil, time.Minute, nil)

	cases := []dto.GalleryQuery{
		{CategoryID: "cat-1"},
		{FacultyID: "a:b"},
		{CategoryID: galleryCategoryID, FacultyID: "all"},
	}
	for _, query := range cases {
		_, _, err := svc.List(context.Background(), query)
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeValidation, appErrors.FromError(err).Code)
	}
	assert.Nil(t, store.listFilter.Status)
	assert.Empty(t, cacheRepo.data)
}

func TestGalleryServiceCacheFailureFallsBackToStore(t *testing.T) {
	store := newStubProjectStore()
	store.listResult = []models.ProjectDetail{detail("p1", "A", "B", models.ProjectStatusApproved)}
	repo := newMemoryCacheRepo()
	repo.getErr = assert.AnError
	svc := NewGalleryService(store, NewCacheService(repo, nil, time.Minute, nil, true), nil, time.Minute, nil)

	projects, hit, err := svc.List(context.Background(), dto.GalleryQuery{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, projects, 1)
}

func TestGalleryServiceDetailHidesUnapproved(t *testing.T) {
	store := newStubProjectStore()
	store.projects["approved"] = &models.Project{ID: "approved", Status: models.ProjectStatusApproved}
	store.projects["pending"] = &models.Project{ID: "pending", Status: models.ProjectStatusPending}
	svc := NewGalleryService(store, nil, nil, time.Minute, nil)

	got, err := svc.Detail(context.Background(), "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", got.ID)

	_, err = svc.Detail(context.Background(), "pending")
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	_, err = svc.Detail(context.Background(), "missing")
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
