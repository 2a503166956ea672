package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/undiziwa/userpanel/internal/models"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
	"github.com/undiziwa/userpanel/pkg/response"
)

// RequireRoles enforces role-based access control for routes.
func RequireRoles(allowed ...models.UserRole) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		if _, ok := allowedRoles[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
