package services

import (
	"context"
	"log/slog"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireCapability checks the actor's role against the capability table and
// returns ErrForbidden with a log entry when the action is denied.
func (s *BaseService) RequireCapability(ctx context.Context, actor domain.User, action authz.Action) error {
	if !authz.CanPerform(actor.Role, action) {
		s.LogDebug(ctx, "Capability denied",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
			slog.String("action", string(action)))
		return apperrors.ErrForbidden
	}
	return nil
}
