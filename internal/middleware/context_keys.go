package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context. It returns the role and a boolean indicating if it was found.
func GetUserRoleFromContext(c *gin.Context) (domain.Role, bool) {
	roleVal, exists := c.Get(string(userRoleKey))
	if !exists {
		roleCtxVal := c.Request.Context().Value(userRoleKey)
		if roleCtxVal != nil {
			return roleCtxVal.(domain.Role), true
		}
		return "", false
	}

	role, ok := roleVal.(domain.Role)
	if !ok {
		return "", false
	}

	return role, true
}
