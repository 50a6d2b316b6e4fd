package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendora-platform/backend/services/common/auth"
	apperrors "github.com/vendora-platform/backend/services/common/errors"
)

const (
	VendorContextKey = "vendorID"
	AdminContextKey  = "adminID"
	AdminRole        = "admin"
)

// VendorAuth resolves the requesting vendor from the gateway-injected
// header. Requests without a vendor identity are rejected.
func VendorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID := c.GetHeader("X-Vendor-ID")
		if vendorID == "" {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized)
			return
		}
		c.Set(VendorContextKey, vendorID)
		c.Next()
	}
}

// AdminAuth validates the bearer token and requires the admin role.
// The admin's user id is stored in context so transitions can record
// who acted.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized)
			return
		}
		claims, err := auth.ParseAndValidateToken(token, "")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.New(http.StatusUnauthorized, "invalid or expired token", nil))
			return
		}
		role, _ := claims["role"].(string)
		if role != AdminRole {
			c.AbortWithStatusJSON(apperrors.ErrForbidden.Code, apperrors.ErrForbidden)
			return
		}
		adminID, _ := claims["user_id"].(string)
		c.Set(AdminContextKey, adminID)
		c.Next()
	}
}

func GetVendorID(c *gin.Context) (string, error) {
	if val, ok := c.Get(VendorContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("vendor ID not found in context")
}

func GetAdminID(c *gin.Context) string {
	if val, ok := c.Get(AdminContextKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
