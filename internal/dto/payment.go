package dto

import (
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data for recording a repayment.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
	Method string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER MOBILE_MONEY"`
	PaidAt *time.Time      `json:"paidAt"` // Defaults to now
}

// ReversePaymentRequest carries the reason for undoing a payment.
type ReversePaymentRequest struct {
	Note string `json:"note" binding:"required"`
}

// PaymentResponse is the public view of a payment.
type PaymentResponse struct {
	PaymentID      string          `json:"paymentID"`
	LoanID         string          `json:"loanID"`
	Amount         decimal.Decimal `json:"amount"`
	PenaltyPortion decimal.Decimal `json:"penaltyPortion"`
	Method         string          `json:"method"`
	PaidAt         time.Time       `json:"paidAt"`
	IsReversed     bool            `json:"isReversed"`
	ReversalNote   string          `json:"reversalNote,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      payment.PaymentID,
		LoanID:         payment.LoanID,
		Amount:         payment.Amount,
		PenaltyPortion: payment.PenaltyPortion,
		Method:         payment.Method,
		PaidAt:         payment.PaidAt,
		IsReversed:     payment.IsReversed,
		ReversalNote:   payment.ReversalNote,
	}
}

// ListPaymentsResponse wraps the payments of a loan.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts payments to the list DTO.
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return ListPaymentsResponse{Payments: responses}
}

// PenaltyPreviewRequest asks what penalties would apply as of a date.
type PenaltyPreviewRequest struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" json:"asOf"` // Defaults to now
}

// PenaltyFigures reports one calculator's outcome.
type PenaltyFigures struct {
	DaysLate int             `json:"daysLate"`
	Penalty  decimal.Decimal `json:"penalty"`
}

// PenaltyPreviewResponse reports the late and after-maturity penalties that
// would apply to a loan without recording anything.
type PenaltyPreviewResponse struct {
	LoanID        string          `json:"loanID"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Late          *PenaltyFigures `json:"late,omitempty"`
	AfterMaturity *PenaltyFigures `json:"afterMaturity,omitempty"`
}
