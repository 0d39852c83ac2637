package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a repayment against a disbursed loan. PenaltyPortion is
// the late charge included in Amount, derived by the penalty engine at the
// time of recording.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	LoanID         string          `json:"loanID"`
	Amount         decimal.Decimal `json:"amount"`
	PenaltyPortion decimal.Decimal `json:"penaltyPortion"`
	Method         string          `json:"method"`
	PaidAt         time.Time       `json:"paidAt"`
	IsReversed     bool            `json:"isReversed"`
	ReversedBy     string          `json:"reversedBy,omitempty"`
	ReversalNote   string          `json:"reversalNote,omitempty"`
	AuditFields
}

// TrackingSnapshot is a point-in-time view of repayment progress, computed
// from the loan and its payments. It is a read-only presentation value.
type TrackingSnapshot struct {
	LoanID            string          `json:"loanID"`
	InstallmentsPaid  int             `json:"installmentsPaid"`
	TotalInstallments int             `json:"totalInstallments"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	Balance           decimal.Decimal `json:"balance"`
	Penalty           decimal.Decimal `json:"penalty"`
	NextPaymentDate   *time.Time      `json:"nextPaymentDate,omitempty"`
	NextPaymentAmount decimal.Decimal `json:"nextPaymentAmount"`
	Status            string          `json:"status"` // Display label
}
