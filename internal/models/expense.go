package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the database representation of an operating expense.
type Expense struct {
	ExpenseID  string          `db:"expense_id"`
	Category   string          `db:"category"`
	Amount     decimal.Decimal `db:"amount"`
	IncurredAt time.Time       `db:"incurred_at"`
	Notes      string          `db:"notes"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
