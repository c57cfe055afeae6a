package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/innovators-hub-api/internal/models"
)

func TestRequireRolesMapsDecisions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/student/dashboard", JWT(newAuthenticator()), RequireRoles(models.RoleStudent), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/auth/home", JWT(newAuthenticator()), RequireRoles(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name     string
		path     string
		token    string
		status   int
		code     string
		redirect interface{}
	}{
		{name: "matching role", path: "/student/dashboard", token: "student", status: http.StatusNoContent},
		{name: "wrong role", path: "/student/dashboard", token: "admin", status: http.StatusForbidden, code: "FORBIDDEN", redirect: "/"},
		{name: "no profile", path: "/student/dashboard", token: "orphan", status: http.StatusForbidden, code: "FORBIDDEN", redirect: "/"},
		{name: "profile store down", path: "/student/dashboard", token: "stalled", status: http.StatusServiceUnavailable, code: "SESSION_PENDING"},
		{name: "signed in only", path: "/auth/home", token: "orphan", status: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.code == "" {
				return
			}
			body := decode(t, rec)
			if assert.NotNil(t, body.Error) {
				assert.Equal(t, tc.code, body.Error.Code)
			}
			assert.Equal(t, tc.redirect, body.Meta["redirect"])
		})
	}
}

func TestRequireRolesWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)

	RequireRoles(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/auth", decode(t, rec).Meta["redirect"])
}
