package services

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments and repayment
// progress.
type PaymentReaderSvc interface {
	// ListPaymentsByLoanID returns all payments for a loan in chronological
	// order.
	ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error)

	// GetTrackingSnapshot derives the loan's current repayment progress.
	GetTrackingSnapshot(ctx context.Context, loanID string) (*domain.TrackingSnapshot, error)

	// PreviewPenalty computes the late and after-maturity penalties that
	// would apply to the loan as of the given request, without recording
	// anything.
	PreviewPenalty(ctx context.Context, loanID string, req dto.PenaltyPreviewRequest) (*dto.PenaltyPreviewResponse, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// RecordPayment records a repayment against a disbursed loan, applying
	// the product's late-penalty rule and updating the loan's balance and
	// operational status.
	RecordPayment(ctx context.Context, loanID string, req dto.RecordPaymentRequest, actor domain.User) (*domain.Payment, error)

	// ReversePayment undoes a recorded payment, restoring the loan's balance
	// and operational status.
	ReversePayment(ctx context.Context, paymentID string, note string, actor domain.User) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
