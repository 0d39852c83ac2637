package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// actorFromContext builds the acting user from the authenticated request
// context. Services receive only the identity and role; audit fields are
// filled from it.
func actorFromContext(c *gin.Context) (domain.User, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return domain.User{}, false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		return domain.User{}, false
	}
	return domain.User{UserID: userID, Role: role}, true
}

// respondServiceError translates service errors into HTTP responses. Anything
// not matching a known sentinel is a 500 with a generic message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
