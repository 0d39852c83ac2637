package services

import (
	"context"
	"fmt"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/core/penalty"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	loanRepo    portsrepo.LoanRepositoryFacade
	productRepo portsrepo.LoanProductRepositoryFacade
	now         func() time.Time
}

// PaymentServiceOption configures the payment service.
type PaymentServiceOption func(*paymentService)

// WithPaymentClock overrides the time source, for tests.
func WithPaymentClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPaymentService creates the repayment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	productRepo portsrepo.LoanProductRepositoryFacade,
	opts ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	s := &paymentService{
		paymentRepo: paymentRepo,
		loanRepo:    loanRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ListPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindPaymentsByLoanID(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", "loan_id", loanID)
		return nil, err
	}
	return payments, nil
}

// RecordPayment records a repayment against a disbursed loan. The product's
// late rule prices any penalty first; the remainder of the amount reduces the
// outstanding balance. Clearing the balance closes the loan.
func (s *paymentService) RecordPayment(ctx context.Context, loanID string, req dto.RecordPaymentRequest, actor domain.User) (*domain.Payment, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionRecordPayment); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.WorkflowStatus != domain.WorkflowDisbursed {
		return nil, fmt.Errorf("loan %s is not disbursed: %w", loanID, apperrors.ErrConflict)
	}
	if loan.LoanStatus == domain.LoanClosed {
		return nil, fmt.Errorf("loan %s is already closed: %w", loanID, apperrors.ErrConflict)
	}

	product, err := s.productRepo.FindLoanProductByID(ctx, loan.ProductID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	penaltyPortion := decimal.Zero
	if loan.NextDueDate != nil {
		res, err := penalty.CalculateLate(*loan.NextDueDate, paidAt, loan.Outstanding, product.LateGraceDays, product.LatePenaltyRule)
		if err != nil {
			s.LogError(ctx, err, "Late penalty rule rejected", "loan_id", loanID, "product_id", product.ProductID)
			return nil, fmt.Errorf("late penalty rule: %w", apperrors.ErrValidation)
		}
		penaltyPortion = res.Penalty
	}
	// The penalty portion never exceeds what was actually paid.
	if penaltyPortion.GreaterThan(req.Amount) {
		penaltyPortion = req.Amount
	}

	principalPortion := req.Amount.Sub(penaltyPortion)
	newOutstanding := loan.Outstanding.Sub(principalPortion)

	if newOutstanding.LessThanOrEqual(decimal.Zero) {
		loan.Outstanding = decimal.Zero
		loan.LoanStatus = domain.LoanClosed
		loan.NextDueDate = nil
	} else {
		loan.Outstanding = newOutstanding
		loan.LoanStatus = domain.LoanInProgress
		if loan.NextDueDate != nil {
			next := loan.NextDueDate.AddDate(0, 1, 0)
			loan.NextDueDate = &next
		}
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		LoanID:         loanID,
		Amount:         req.Amount,
		PenaltyPortion: penaltyPortion,
		Method:         req.Method,
		PaidAt:         paidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, *loan); err != nil {
		s.LogError(ctx, err, "Failed to save payment", "loan_id", loanID)
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		"payment_id", payment.PaymentID,
		"loan_id", loanID,
		"amount", payment.Amount.String(),
		"penalty_portion", payment.PenaltyPortion.String(),
		"loan_status", string(loan.LoanStatus))
	return &payment, nil
}

// ReversePayment undoes a recorded payment, restoring the principal portion
// to the loan's balance. Reversing an already reversed payment is a conflict.
func (s *paymentService) ReversePayment(ctx context.Context, paymentID string, note string, actor domain.User) (*domain.Payment, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionReversePayment); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.IsReversed {
		return nil, fmt.Errorf("payment %s is already reversed: %w", paymentID, apperrors.ErrConflict)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, payment.LoanID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	principalPortion := payment.Amount.Sub(payment.PenaltyPortion)
	if principalPortion.IsNegative() {
		principalPortion = decimal.Zero
	}

	loan.Outstanding = loan.Outstanding.Add(principalPortion)
	if loan.Outstanding.IsPositive() && loan.LoanStatus == domain.LoanClosed {
		loan.LoanStatus = domain.LoanInProgress
	}
	if loan.NextDueDate == nil {
		// The loan was closed by this payment; re-open the schedule one
		// month after the reversed payment date.
		next := payment.PaidAt.AddDate(0, 1, 0)
		loan.NextDueDate = &next
	} else {
		next := loan.NextDueDate.AddDate(0, -1, 0)
		loan.NextDueDate = &next
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	payment.IsReversed = true
	payment.ReversedBy = actor.UserID
	payment.ReversalNote = note
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = actor.UserID

	if err := s.paymentRepo.ReversePayment(ctx, *payment, *loan); err != nil {
		s.LogError(ctx, err, "Failed to reverse payment", "payment_id", paymentID)
		return nil, err
	}

	s.LogInfo(ctx, "Payment reversed", "payment_id", paymentID, "loan_id", payment.LoanID)
	return payment, nil
}

// GetTrackingSnapshot derives the loan's repayment progress from its payment
// history. Reversed payments do not count.
func (s *paymentService) GetTrackingSnapshot(ctx context.Context, loanID string) (*domain.TrackingSnapshot, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindPaymentsByLoanID(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for tracking snapshot", "loan_id", loanID)
		return nil, err
	}

	installmentsPaid := 0
	amountPaid := decimal.Zero
	penaltyPaid := decimal.Zero
	for _, p := range payments {
		if p.IsReversed {
			continue
		}
		installmentsPaid++
		amountPaid = amountPaid.Add(p.Amount)
		penaltyPaid = penaltyPaid.Add(p.PenaltyPortion)
	}

	nextAmount := loan.Outstanding
	if remaining := loan.TermMonths - installmentsPaid; remaining > 0 {
		nextAmount = loan.Outstanding.Div(decimal.NewFromInt(int64(remaining))).Round(2)
	}

	return &domain.TrackingSnapshot{
		LoanID:            loanID,
		InstallmentsPaid:  installmentsPaid,
		TotalInstallments: loan.TermMonths,
		AmountPaid:        amountPaid,
		Balance:           loan.Outstanding,
		Penalty:           penaltyPaid,
		NextPaymentDate:   loan.NextDueDate,
		NextPaymentAmount: nextAmount,
		Status:            domain.ClassifyLoanStatus(string(loan.LoanStatus)).Label,
	}, nil
}

// PreviewPenalty reports what the late and after-maturity calculators would
// charge on the loan as of a date, without recording anything.
func (s *paymentService) PreviewPenalty(ctx context.Context, loanID string, req dto.PenaltyPreviewRequest) (*dto.PenaltyPreviewResponse, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindLoanProductByID(ctx, loan.ProductID)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	resp := &dto.PenaltyPreviewResponse{
		LoanID:      loanID,
		Outstanding: loan.Outstanding,
	}

	if loan.NextDueDate != nil {
		late, err := penalty.CalculateLate(*loan.NextDueDate, asOf, loan.Outstanding, product.LateGraceDays, product.LatePenaltyRule)
		if err != nil {
			return nil, fmt.Errorf("late penalty rule: %w", apperrors.ErrValidation)
		}
		resp.Late = &dto.PenaltyFigures{DaysLate: late.DaysLate, Penalty: late.Penalty}
	}

	if loan.MaturityDate != nil {
		after, err := penalty.CalculateAfterMaturity(*loan.MaturityDate, asOf, loan.Outstanding, product.MaturityRule)
		if err != nil {
			return nil, fmt.Errorf("maturity penalty rule: %w", apperrors.ErrValidation)
		}
		resp.AfterMaturity = &dto.PenaltyFigures{DaysLate: after.DaysLate, Penalty: after.Penalty}
	}

	return resp, nil
}
