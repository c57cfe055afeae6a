package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/middleware"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type fakeAuthService struct {
	signUp models.SignUpRequest
}

func (f *fakeAuthService) SignUp(_ context.Context, req models.SignUpRequest) (*models.SessionResponse, error) {
	f.signUp = req
	if req.Email == "taken@ucu.ac.ug" {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	return &models.SessionResponse{AccessToken: "token", Session: models.Session{UserID: "u1", HomePath: req.Role.HomePath()}}, nil
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (*models.SessionResponse, error) {
	if req.Password != "secret" {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &models.SessionResponse{AccessToken: "token"}, nil
}

func TestAuthHandlerSignUp(t *testing.T) {
	svc := &fakeAuthService{}
	handler := NewAuthHandler(svc)

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(`{"email":"a@ucu.ac.ug","password":"secret1","full_name":"Amani","role":"student"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.SignUp(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.RoleStudent, svc.signUp.Role)
	var resp models.SessionResponse
	decodeEnvelope(t, rec, &resp)
	assert.Equal(t, "/student/dashboard", resp.Session.HomePath)
}

func TestAuthHandlerSignUpConflict(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthService{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(`{"email":"taken@ucu.ac.ug"}`))

	handler.SignUp(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthService{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@ucu.ac.ug","password":"nope"}`))

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeAndHome(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthService{})

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	signIn(c, &models.Profile{ID: "adm-1", Role: models.RoleAdmin})

	handler.Me(c)

	var session models.Session
	decodeEnvelope(t, rec, &session)
	assert.Equal(t, "adm-1", session.UserID)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "/admin/dashboard", session.HomePath)

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/home", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-orphan"})
	c.Set(middleware.ContextSessionKey, &access.Session{Resolved: true, UserID: "u-orphan"})

	handler.Home(c)

	var home map[string]string
	decodeEnvelope(t, rec, &home)
	assert.Equal(t, "/", home["home_path"])
}

func TestHomeHandlerIndex(t *testing.T) {
	handler := NewHomeHandler("UCU Innovators Hub")

	rec := httptest.NewRecorder()
	c := newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.Index(c)

	var home struct {
		Name  string            `json:"name"`
		Links map[string]string `json:"links"`
	}
	decodeEnvelope(t, rec, &home)
	assert.Equal(t, "UCU Innovators Hub", home.Name)
	assert.Equal(t, "/gallery", home.Links["gallery"])
	assert.NotContains(t, home.Links, "dashboard")

	rec = httptest.NewRecorder()
	c = newTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	signIn(c, &models.Profile{ID: "sup-1", Role: models.RoleSupervisor})
	handler.Index(c)

	decodeEnvelope(t, rec, &home)
	assert.Equal(t, "/supervisor/dashboard", home.Links["dashboard"])
}
