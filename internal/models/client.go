package models

import "time"

// Client is the database representation of a borrower.
type Client struct {
	ClientID   string `db:"client_id"`
	Name       string `db:"name"`
	NationalID string `db:"national_id"`
	Phone      string `db:"phone"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
