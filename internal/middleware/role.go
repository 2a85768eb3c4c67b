package middleware

import (
	"net/http"

	"homeserve/internal/domain"
	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		current := domain.UserRole(role.(string))
		for _, allowed := range roles {
			if current == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly middleware requires admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
