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

type fakeStudentProjects struct {
	submitted   *dto.SubmitProjectRequest
	submitter   *models.Profile
	listedFor   string
	resubmitErr error
}

func (f *fakeStudentProjects) Submit(_ context.Context, student *models.Profile, req dto.SubmitProjectRequest) (*models.ProjectDetail, error) {
	f.submitter = student
	f.submitted = &req
	return &models.ProjectDetail{Project: models.Project{ID: "proj-1", Title: req.Title, Status: models.ProjectStatusPending}}, nil
}

func (f *fakeStudentProjects) ListOwn(_ context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	f.listedFor = studentID
	return &dto.StudentDashboardResponse{Projects: []models.ProjectDetail{}, Totals: models.ProjectTotals{}}, nil
}

func (f *fakeStudentProjects) Resubmit(_ context.Context, studentID, projectID string, req dto.ResubmitProjectRequest) (*models.ProjectDetail, error) {
	if f.resubmitErr != nil {
		return nil, f.resubmitErr
	}
	return &models.ProjectDetail{Project: models.Project{ID: projectID, StudentID: studentID, Status: models.ProjectStatusPending}}, nil
}

type fakeOptions struct{}

func (fakeOptions) SubmissionOptions(context.Context) (*dto.SubmissionOptions, error) {
	return &dto.SubmissionOptions{
		Categories:   []models.Category{{ID: "cat-1", Name: "Agritech"}},
		Technologies: []models.Technology{},
	}, nil
}

var testStudent = &models.Profile{ID: "stu-1", Role: models.RoleStudent}

func TestStudentHandlerSubmit(t *testing.T) {
	projects := &fakeStudentProjects{}
	handler := NewStudentHandler(projects, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/student/submit", bytes.NewBufferString(`{"title":"Smart irrigation","description":"d","category_id":"cat-1","technology_ids":["t1","t2"]}`))
	c.Request.Header.Set("Content-Type", "application/json")
	signIn(c, testStudent)

	handler.Submit(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, projects.submitted)
	assert.Equal(t, []string{"t1", "t2"}, projects.submitted.TechnologyIDs)
	assert.Equal(t, "stu-1", projects.submitter.ID)

	var detail models.ProjectDetail
	decodeEnvelope(t, rec, &detail)
	assert.Equal(t, "proj-1", detail.ID)
}

func TestStudentHandlerSubmitRejectsMalformedJSON(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentProjects{}, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/student/submit", bytes.NewBufferString(`{"title":`))
	signIn(c, testStudent)

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerDashboard(t *testing.T) {
	projects := &fakeStudentProjects{}
	handler := NewStudentHandler(projects, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
	signIn(c, testStudent)

	handler.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stu-1", projects.listedFor)
	assert.JSONEq(t, `{"data":{"projects":[],"totals":{"total":0,"approved":0,"pending":0,"rejected":0,"revision":0}}}`, rec.Body.String())
}

func TestStudentHandlerSubmissionForm(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentProjects{}, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/student/submit", nil)

	handler.SubmissionForm(c)

	var opts dto.SubmissionOptions
	decodeEnvelope(t, rec, &opts)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Agritech", opts.Categories[0].Name)
}

func TestStudentHandlerResubmitConflict(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentProjects{resubmitErr: appErrors.Clone(appErrors.ErrInvalidTransition, "not in revision")}, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: testProjectID}}
	c.Request = httptest.NewRequest(http.MethodPut, "/student/projects/"+testProjectID+"/resubmit", bytes.NewBufferString(`{"title":"t","description":"d"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	signIn(c, testStudent)

	handler.Resubmit(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_TRANSITION", envelope.Error.Code)
}

func TestStudentHandlerResubmitMalformedID(t *testing.T) {
	handler := NewStudentHandler(&fakeStudentProjects{resubmitErr: appErrors.Clone(appErrors.ErrInternal, "store should not be reached")}, fakeOptions{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "proj-1"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/student/projects/proj-1/resubmit", bytes.NewBufferString(`{"title":"t","description":"d"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	signIn(c, testStudent)

	handler.Resubmit(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
