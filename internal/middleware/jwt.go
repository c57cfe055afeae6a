package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/logger"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing JWT claims.
	ContextUserKey = "currentUser"
	// ContextSessionKey is the gin context key storing the resolved access session.
	ContextSessionKey = "currentSession"
)

// SessionAuthenticator validates tokens and loads the session behind them.
type SessionAuthenticator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
	ResolveSession(ctx context.Context, claims *models.JWTClaims) *access.Session
}

// JWT protects routes by requiring a valid access token and attaches the caller's session.
func JWT(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized, redirectMeta(access.RedirectLogin))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(c, err, redirectMeta(access.RedirectLogin))
			c.Abort()
			return
		}

		attach(c, auth, claims)
		c.Next()
	}
}

// OptionalJWT attaches the session when a valid token is present but does not block.
func OptionalJWT(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		attach(c, auth, claims)
		c.Next()
	}
}

// Claims returns the validated JWT claims of the request, if any.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}

// Session returns the access session of the request; nil for anonymous callers.
func Session(c *gin.Context) *access.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*access.Session)
	return session
}

func attach(c *gin.Context, auth SessionAuthenticator, claims *models.JWTClaims) {
	c.Set(ContextUserKey, claims)
	c.Set(logger.UserIDKey, claims.UserID)
	c.Set(ContextSessionKey, auth.ResolveSession(c.Request.Context(), claims))
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
