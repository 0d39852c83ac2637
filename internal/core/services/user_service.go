package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/microcred/loan_management_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the staff account service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password for new user")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", "username", req.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", "user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by username")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", "user_id", userID)
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token", "user_id", userID)
		return err
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", "user_id", userID)
		return err
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", "user_id", userID)
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", "user_id", userID)
	return nil
}

// AuthenticateUser verifies the username/password pair. It deliberately
// returns ErrUnauthorized for both an unknown user and a wrong password so
// callers cannot distinguish the two.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for authentication")
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}
