package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

// RequireRoles gates a route on the caller's profile role. With no roles it only requires
// a signed-in caller.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	required := append([]models.UserRole(nil), roles...)
	return func(c *gin.Context) {
		decision := access.Decide(Session(c), required)
		switch decision {
		case access.Allow:
			c.Next()
			return
		case access.Pending:
			response.Error(c, appErrors.ErrSessionPending)
		case access.RedirectLogin:
			response.Error(c, appErrors.ErrUnauthorized, redirectMeta(decision))
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role not permitted"), redirectMeta(decision))
		}
		c.Abort()
	}
}

func redirectMeta(decision access.Decision) map[string]interface{} {
	return map[string]interface{}{"redirect": decision.Target()}
}
