package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan carries both lifecycle axes: the administrative workflow status set
// by the approval pipeline and the operational status driven by repayments.
// The two must satisfy ValidateStatusPairing at every committed transition.
type Loan struct {
	LoanID         string          `json:"loanID"` // Primary Key (UUID)
	ClientID       string          `json:"clientID"`
	ProductID      string          `json:"productID"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	TermMonths     int             `json:"termMonths"`
	WorkflowStatus WorkflowStatus  `json:"workflowStatus"`
	LoanStatus     LoanStatus      `json:"loanStatus"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	DisbursedAt    *time.Time      `json:"disbursedAt,omitempty"`
	NextDueDate    *time.Time      `json:"nextDueDate,omitempty"`
	MaturityDate   *time.Time      `json:"maturityDate,omitempty"`
	DecidedBy      string          `json:"decidedBy,omitempty"` // Approver or rejecter UserID
	DecisionNote   string          `json:"decisionNote,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// WorkflowEvent is one entry in a loan's append-only approval timeline. The
// producer writes events in chronological order; consumers render them as-is.
type WorkflowEvent struct {
	EventID     string    `json:"eventID"` // Primary Key (UUID)
	LoanID      string    `json:"loanID"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}
