package repositories

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByLoanID retrieves all payments for a loan in
	// chronological order, including reversed ones.
	FindPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new payment and updates the loan's balance and
	// operational status in the same transaction.
	SavePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error

	// ReversePayment flags a payment as reversed and restores the loan's
	// balance and operational status in the same transaction.
	ReversePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
