package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	"github.com/noah-isme/innovators-hub-api/internal/service"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type fakeAdminAnalytics struct{ hit bool }

func (f fakeAdminAnalytics) Admin(context.Context) (*models.AdminAnalytics, bool, error) {
	return &models.AdminAnalytics{
		Totals:       models.ProjectTotals{Total: 2, Approved: 1, Pending: 1},
		ApprovalRate: 50,
		Faculties:    []models.FacultyBreakdown{},
		Technologies: []models.TechnologyUsage{{Name: "Go", Count: 2}},
	}, f.hit, nil
}

type fakeExports struct {
	format string
}

func (f *fakeExports) Generate(_ context.Context, req dto.ExportRequest) (*dto.ExportResponse, error) {
	f.format = req.Format
	if req.Format == "xlsx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	return &dto.ExportResponse{ID: "exp-1", Format: req.Format, URL: "/downloads/token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeSnapshot struct{}

func (fakeSnapshot) Snapshot() models.AnalyticsSystemMetrics {
	return models.AnalyticsSystemMetrics{RequestsTotal: 7, Goroutines: 3}
}

func TestAdminHandlerDashboard(t *testing.T) {
	handler := NewAdminHandler(fakeAdminAnalytics{hit: false}, &fakeExports{}, fakeSnapshot{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var analytics models.AdminAnalytics
	envelope := decodeEnvelope(t, rec, &analytics)
	assert.Equal(t, 50, analytics.ApprovalRate)
	assert.Equal(t, "Go", analytics.Technologies[0].Name)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Contains(t, rec.Body.String(), `"value":2`)
}

func TestAdminHandlerExport(t *testing.T) {
	exports := &fakeExports{}
	handler := NewAdminHandler(fakeAdminAnalytics{}, exports, fakeSnapshot{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/dashboard/export", bytes.NewBufferString(`{"format":"pdf"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Export(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pdf", exports.format)
	var resp dto.ExportResponse
	decodeEnvelope(t, rec, &resp)
	assert.Equal(t, "/downloads/token", resp.URL)

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/dashboard/export", bytes.NewBufferString(`{"format":"xlsx"}`))
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminHandlerSystem(t *testing.T) {
	handler := NewAdminHandler(fakeAdminAnalytics{}, &fakeExports{}, fakeSnapshot{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/system", nil)

	handler.System(c)

	var snapshot models.AnalyticsSystemMetrics
	decodeEnvelope(t, rec, &snapshot)
	assert.Equal(t, uint64(7), snapshot.RequestsTotal)
}

type fileOpener struct{ path string }

func (f fileOpener) Open(token string) (*service.Download, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "download not found")
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	return &service.Download{File: file, Filename: filepath.Base(f.path), ContentType: "text/csv"}, nil
}

func TestDownloadHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics_20260301.csv")
	require.NoError(t, os.WriteFile(path, []byte("Metric,Value\n"), 0o600))
	handler := NewDownloadHandler(fileOpener{path: path})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/downloads/good", nil)

	handler.Download(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "analytics_20260301.csv")
	assert.Equal(t, "Metric,Value\n", rec.Body.String())

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/downloads/bad", nil)
	handler.Download(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
