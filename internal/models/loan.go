package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the database representation of a loan application and its
// lifecycle state.
type Loan struct {
	LoanID         string          `db:"loan_id"`
	ClientID       string          `db:"client_id"`
	ProductID      string          `db:"product_id"`
	Principal      decimal.Decimal `db:"principal"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	TermMonths     int             `db:"term_months"`
	WorkflowStatus string          `db:"workflow_status"`
	LoanStatus     string          `db:"loan_status"`
	Outstanding    decimal.Decimal `db:"outstanding"`
	DisbursedAt    *time.Time      `db:"disbursed_at"`
	NextDueDate    *time.Time      `db:"next_due_date"`
	MaturityDate   *time.Time      `db:"maturity_date"`
	DecidedBy      string          `db:"decided_by"`
	DecisionNote   string          `db:"decision_note"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
	DeletedBy string     `db:"deleted_by"`
}

// WorkflowEvent is one append-only row of a loan's approval timeline.
type WorkflowEvent struct {
	EventID     string    `db:"event_id"`
	LoanID      string    `db:"loan_id"`
	Action      string    `db:"action"`
	PerformedBy string    `db:"performed_by"`
	Notes       string    `db:"notes"`
	OccurredAt  time.Time `db:"occurred_at"`
}
