package dto

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
)

// CreateUserRequest defines the data required to register a staff member.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MANAGER LOAN_OFFICER CASHIER VIEWER"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER LOAN_OFFICER CASHIER VIEWER"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
