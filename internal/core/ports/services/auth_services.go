package services

import (
	"context"
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user's ID and
	// role, returning the token and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken validates a refresh token string against a
	// user's stored token details. It returns the user if the token is valid
	// and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}
