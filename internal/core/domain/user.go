package domain

import "time"

// Role is a user's position in the branch, compared case-sensitively against
// the capability table in the authz package.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleManager     Role = "MANAGER"
	RoleLoanOfficer Role = "LOAN_OFFICER"
	RoleCashier     Role = "CASHIER"
	RoleViewer      Role = "VIEWER"
)

// User represents a staff member of the loan operation.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh token state, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
