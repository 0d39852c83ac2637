package models

import (
	"database/sql"
	"time"
)

// User is the database representation of a staff member, including
// authentication state.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh token fields, stored hashed.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
