package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/vendora-platform/backend/services/common/errors"
)

const OwnerKey = "ownerID"

// OptionalAuth resolves the cart owner from either a logged-in user header
// or a guest session header. Guest carts are namespaced so a session id
// can never collide with a user id.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(OwnerKey, "user:"+userID)
			c.Next()
			return
		}
		if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
			c.Set(OwnerKey, "guest:"+sessionID)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized)
	}
}

// GetOwnerID returns the resolved cart owner for the request.
func GetOwnerID(c *gin.Context) string {
	if val, exists := c.Get(OwnerKey); exists {
		return val.(string)
	}
	return ""
}
