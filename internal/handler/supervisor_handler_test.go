package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type fakeReviewService struct {
	reviewer    string
	project     string
	request     dto.ReviewProjectRequest
	queueStatus string
	reviewErr   error
}

func (f *fakeReviewService) Review(_ context.Context, reviewerID, projectID string, req dto.ReviewProjectRequest) (*models.Review, error) {
	f.reviewer, f.project, f.request = reviewerID, projectID, req
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	return &models.Review{ID: "rev-1", ProjectID: projectID, ReviewerID: reviewerID, Status: req.Status}, nil
}

func (f *fakeReviewService) Queue(_ context.Context, status string) (*dto.SupervisorDashboardResponse, error) {
	f.queueStatus = status
	return &dto.SupervisorDashboardResponse{Projects: []models.ProjectDetail{}}, nil
}

func (f *fakeReviewService) History(context.Context, string) ([]models.ReviewDetail, error) {
	return []models.ReviewDetail{}, nil
}

var testSupervisor = &models.Profile{ID: "sup-1", Role: models.RoleSupervisor}

func TestSupervisorHandlerReview(t *testing.T) {
	svc := &fakeReviewService{}
	handler := NewSupervisorHandler(svc)

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: testProjectID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/supervisor/projects/"+testProjectID+"/review", bytes.NewBufferString(`{"status":"revision","comment":"add a demo"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	signIn(c, testSupervisor)

	handler.Review(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "sup-1", svc.reviewer)
	assert.Equal(t, testProjectID, svc.project)
	assert.Equal(t, models.ProjectStatusRevision, svc.request.Status)
	assert.Equal(t, "add a demo", svc.request.Comment)

	var review models.Review
	decodeEnvelope(t, rec, &review)
	assert.Equal(t, models.ProjectStatusRevision, review.Status)
}

func TestSupervisorHandlerReviewConflict(t *testing.T) {
	handler := NewSupervisorHandler(&fakeReviewService{reviewErr: appErrors.Clone(appErrors.ErrInvalidTransition, "already approved")})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: testProjectID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/supervisor/projects/"+testProjectID+"/review", bytes.NewBufferString(`{"status":"approved"}`))
	signIn(c, testSupervisor)

	handler.Review(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSupervisorHandlerRejectsMalformedProjectID(t *testing.T) {
	svc := &fakeReviewService{}
	handler := NewSupervisorHandler(svc)

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "proj-9"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/supervisor/projects/proj-9/review", bytes.NewBufferString(`{"status":"approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	signIn(c, testSupervisor)
	handler.Review(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, svc.project)

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "proj-9"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/supervisor/projects/proj-9/reviews", nil)
	signIn(c, testSupervisor)
	handler.Reviews(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSupervisorHandlerReviewRequiresClaims(t *testing.T) {
	handler := NewSupervisorHandler(&fakeReviewService{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/supervisor/projects/"+testProjectID+"/review", bytes.NewBufferString(`{}`))

	handler.Review(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSupervisorHandlerDashboardNormalisesStatus(t *testing.T) {
	svc := &fakeReviewService{}
	handler := NewSupervisorHandler(svc)

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/supervisor/dashboard?status=%20Pending%20", nil)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", svc.queueStatus)
	envelope := decodeEnvelope(t, rec, nil)
	require.Nil(t, envelope.Error)
}
