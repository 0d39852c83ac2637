package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and stores the caller's ID and role in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve logger from the standard context
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		role := domain.Role(claims.Role)

		// Store identity in both the Gin context and the standard context
		c.Set(string(userIDKey), userID)
		c.Set(string(userRoleKey), role)

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctxWithRole := context.WithValue(ctxWithUser, userRoleKey, role)

		// Add user ID to the logger
		enrichedLogger := logger.With(slog.String("user_id", userID), slog.String("role", string(role)))
		ctxWithLogger := context.WithValue(ctxWithRole, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLogger)

		c.Next()
	}
}
