package domain

import "time"

// Client represents a borrower registered with the branch.
type Client struct {
	ClientID   string `json:"clientID"` // Primary Key (UUID)
	Name       string `json:"name"`
	NationalID string `json:"nationalID"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
