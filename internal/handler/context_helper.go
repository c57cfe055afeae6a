package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/innovators-hub-api/internal/middleware"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

func profileFromContext(c *gin.Context) *models.Profile {
	session := middleware.Session(c)
	if session == nil {
		return nil
	}
	return session.Profile
}

func cacheMeta(c *gin.Context, hit bool) map[string]interface{} {
	middleware.SetCacheHit(c, hit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return meta
}

// projectIDParam reads the :id path parameter. Anything that is not a UUID cannot name a
// project, so it is answered with 404 before reaching the store.
func projectIDParam(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.As(err, appErrors.ErrNotFound, "project not found"))
		return "", false
	}
	return id.String(), true
}
