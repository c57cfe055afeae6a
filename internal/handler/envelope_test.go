package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/middleware"
	"github.com/noah-isme/innovators-hub-api/internal/models"
)

type responseEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string `json:"code"`
		Status int    `json:"status"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

const testProjectID = "3c9e2f4a-7b1d-4e6a-8f20-5a1b2c3d4e5f"

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if data != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope
}

func newTestContext(rec *httptest.ResponseRecorder) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(rec)
	return c
}

func signIn(c *gin.Context, profile *models.Profile) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: profile.ID, Email: profile.ID + "@ucu.ac.ug", Role: profile.Role})
	c.Set(middleware.ContextSessionKey, &access.Session{Resolved: true, UserID: profile.ID, Profile: profile})
}
