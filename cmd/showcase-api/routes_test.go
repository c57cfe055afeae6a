package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/handler"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	"github.com/noah-isme/innovators-hub-api/pkg/config"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
)

type staticAuth struct{}

func (staticAuth) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "admin-token" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.JWTClaims{UserID: "adm-1", Role: models.RoleAdmin}, nil
}

func (staticAuth) ResolveSession(_ context.Context, claims *models.JWTClaims) *access.Session {
	return &access.Session{Resolved: true, UserID: claims.UserID, Profile: &models.Profile{ID: claims.UserID, Role: models.RoleAdmin}}
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvProduction, AppName: "test"}
	return newRouter(cfg, zap.NewNop(), routeDeps{
		auth: staticAuth{},
		home: handler.NewHomeHandler(cfg.AppName),
		ops:  handler.NewMetricsHandler(nil, nil),
	})
}

func TestRouterGatesRoleRoutes(t *testing.T) {
	router := testRouter()

	cases := []struct {
		path   string
		token  string
		status int
	}{
		{path: "/student/dashboard", status: http.StatusUnauthorized},
		{path: "/supervisor/dashboard", token: "forged", status: http.StatusUnauthorized},
		{path: "/student/dashboard", token: "admin-token", status: http.StatusForbidden},
		{path: "/supervisor/dashboard", token: "admin-token", status: http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		router.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.path)
	}
}

func TestRouterPublicAndUnknownRoutes(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
