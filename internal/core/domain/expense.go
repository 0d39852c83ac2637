package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operating cost entry on the finance pages.
type Expense struct {
	ExpenseID  string          `json:"expenseID"` // Primary Key (UUID)
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredAt time.Time       `json:"incurredAt"`
	Notes      string          `json:"notes,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
