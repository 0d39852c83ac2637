package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	oneHundred  = decimal.NewFromInt(100)
	twelve      = decimal.NewFromInt(12)
	defaultDays = 90
)

type loanService struct {
	BaseService
	loanRepo         portsrepo.LoanRepositoryFacade
	clientRepo       portsrepo.ClientRepositoryFacade
	productRepo      portsrepo.LoanProductRepositoryFacade
	defaultAfterDays int
	now              func() time.Time
}

// LoanServiceOption configures the loan service.
type LoanServiceOption func(*loanService)

// WithDefaultAfterDays sets how many days past maturity a loan may stay
// unpaid before the sweep marks it defaulted.
func WithDefaultAfterDays(days int) LoanServiceOption {
	return func(s *loanService) {
		if days > 0 {
			s.defaultAfterDays = days
		}
	}
}

// WithLoanClock overrides the time source, for tests.
func WithLoanClock(now func() time.Time) LoanServiceOption {
	return func(s *loanService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLoanService creates the loan application and workflow service.
func NewLoanService(
	loanRepo portsrepo.LoanRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	productRepo portsrepo.LoanProductRepositoryFacade,
	opts ...LoanServiceOption,
) portssvc.LoanSvcFacade {
	s := &loanService{
		loanRepo:         loanRepo,
		clientRepo:       clientRepo,
		productRepo:      productRepo,
		defaultAfterDays: defaultDays,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get loan", "loan_id", loanID)
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, params dto.ListLoansParams) ([]domain.Loan, error) {
	var statusFilter *domain.WorkflowStatus
	if raw := strings.TrimSpace(params.WorkflowStatus); raw != "" {
		status := domain.WorkflowStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return nil, fmt.Errorf("unknown workflow status %q: %w", raw, apperrors.ErrValidation)
		}
		statusFilter = &status
	}

	loans, err := s.loanRepo.FindLoans(ctx, statusFilter, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, err
	}
	return loans, nil
}

func (s *loanService) ListLoansByClientID(ctx context.Context, clientID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.FindLoansByClientID(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans for client", "client_id", clientID)
		return nil, err
	}
	return loans, nil
}

func (s *loanService) ListLoanEvents(ctx context.Context, loanID string) ([]domain.WorkflowEvent, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}

	events, err := s.loanRepo.FindWorkflowEventsByLoanID(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workflow events", "loan_id", loanID)
		return nil, err
	}
	return events, nil
}

func (s *loanService) AllowedActions(ctx context.Context, loanID string, role domain.Role) ([]authz.Action, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return authz.GetAllowedActions(loan.WorkflowStatus, role), nil
}

// CreateLoan registers a new application. Every loan starts in
// PENDING_APPROVAL with its operational axis OPEN.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actor domain.User) (*domain.Loan, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionCreateLoan); err != nil {
		return nil, err
	}
	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("principal must be positive: %w", apperrors.ErrValidation)
	}

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, apperrors.ErrValidation)
		}
		return nil, err
	}

	product, err := s.productRepo.FindLoanProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("loan product %s: %w", req.ProductID, apperrors.ErrValidation)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("loan product %s is inactive: %w", req.ProductID, apperrors.ErrValidation)
	}

	interestRate := product.InterestRate
	if req.InterestRate != nil {
		interestRate = *req.InterestRate
	}
	termMonths := product.TermMonths
	if req.TermMonths != nil {
		termMonths = *req.TermMonths
	}

	now := s.now()
	loan := domain.Loan{
		LoanID:         uuid.NewString(),
		ClientID:       req.ClientID,
		ProductID:      req.ProductID,
		Principal:      req.Principal,
		InterestRate:   interestRate,
		TermMonths:     termMonths,
		WorkflowStatus: domain.WorkflowPendingApproval,
		LoanStatus:     domain.LoanOpen,
		Outstanding:    req.Principal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan application")
		return nil, err
	}

	s.LogInfo(ctx, "Loan application created", "loan_id", loan.LoanID, "client_id", loan.ClientID)
	return &loan, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, actor domain.User) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !authz.CanPerform(actor.Role, authz.ActionEdit) {
		return nil, apperrors.ErrForbidden
	}
	if !authz.CanPerformAction(loan, "EDIT") {
		return nil, fmt.Errorf("loan %s is not editable in status %s: %w", loanID, loan.WorkflowStatus, apperrors.ErrConflict)
	}

	if req.Principal != nil {
		if !req.Principal.IsPositive() {
			return nil, fmt.Errorf("principal must be positive: %w", apperrors.ErrValidation)
		}
		loan.Principal = *req.Principal
		loan.Outstanding = *req.Principal
	}
	if req.InterestRate != nil {
		loan.InterestRate = *req.InterestRate
	}
	if req.TermMonths != nil {
		loan.TermMonths = *req.TermMonths
	}
	loan.LastUpdatedAt = s.now()
	loan.LastUpdatedBy = actor.UserID

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to update loan", "loan_id", loanID)
		return nil, err
	}
	return loan, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID string, actor domain.User) error {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}

	if !authz.CanPerform(actor.Role, authz.ActionDelete) {
		return apperrors.ErrForbidden
	}
	if !authz.ShouldShowDeleteButton(loan) {
		return fmt.Errorf("loan %s cannot be deleted in status %s: %w", loanID, loan.WorkflowStatus, apperrors.ErrConflict)
	}

	if err := s.loanRepo.MarkLoanDeleted(ctx, loanID, s.now(), actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan", "loan_id", loanID)
		return err
	}
	s.LogInfo(ctx, "Loan deleted", "loan_id", loanID)
	return nil
}

func (s *loanService) ApproveLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !authz.CanPerform(actor.Role, authz.ActionApprove) {
		return nil, apperrors.ErrForbidden
	}
	if !authz.CanPerformAction(loan, "APPROVE") {
		return nil, fmt.Errorf("loan %s cannot be approved in status %s: %w", loanID, loan.WorkflowStatus, apperrors.ErrConflict)
	}

	now := s.now()
	loan.WorkflowStatus = domain.WorkflowApproved
	loan.LoanStatus = domain.LoanOpen
	loan.DecidedBy = actor.UserID
	loan.DecisionNote = note
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	event := domain.WorkflowEvent{
		EventID:     uuid.NewString(),
		LoanID:      loanID,
		Action:      "APPROVED",
		PerformedBy: actor.UserID,
		Notes:       note,
		OccurredAt:  now,
	}

	if err := s.loanRepo.TransitionLoanStatus(ctx, *loan, event); err != nil {
		s.LogError(ctx, err, "Failed to approve loan", "loan_id", loanID)
		return nil, err
	}

	s.LogInfo(ctx, "Loan approved", "loan_id", loanID)
	return loan, nil
}

func (s *loanService) RejectLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !authz.CanPerform(actor.Role, authz.ActionReject) {
		return nil, apperrors.ErrForbidden
	}
	if !authz.CanPerformAction(loan, "REJECT") {
		return nil, fmt.Errorf("loan %s cannot be rejected in status %s: %w", loanID, loan.WorkflowStatus, apperrors.ErrConflict)
	}

	now := s.now()
	loan.WorkflowStatus = domain.WorkflowRejected
	loan.LoanStatus = domain.LoanClosed
	loan.DecidedBy = actor.UserID
	loan.DecisionNote = note
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	event := domain.WorkflowEvent{
		EventID:     uuid.NewString(),
		LoanID:      loanID,
		Action:      "REJECTED",
		PerformedBy: actor.UserID,
		Notes:       note,
		OccurredAt:  now,
	}

	if err := s.loanRepo.TransitionLoanStatus(ctx, *loan, event); err != nil {
		s.LogError(ctx, err, "Failed to reject loan", "loan_id", loanID)
		return nil, err
	}

	s.LogInfo(ctx, "Loan rejected", "loan_id", loanID)
	return loan, nil
}

// DisburseLoan pays out an approved application. The repayment schedule is a
// flat-rate monthly plan: total repayable is principal plus simple interest
// over the term, the first installment falls due one month after payout.
func (s *loanService) DisburseLoan(ctx context.Context, loanID string, actor domain.User) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !authz.CanPerform(actor.Role, authz.ActionDisburse) {
		return nil, apperrors.ErrForbidden
	}
	if !authz.CanPerformAction(loan, "DISBURSE") {
		return nil, fmt.Errorf("loan %s cannot be disbursed in status %s: %w", loanID, loan.WorkflowStatus, apperrors.ErrConflict)
	}

	now := s.now()
	interest := loan.Principal.
		Mul(loan.InterestRate).Div(oneHundred).
		Mul(decimal.NewFromInt(int64(loan.TermMonths))).Div(twelve)
	nextDue := now.AddDate(0, 1, 0)
	maturity := now.AddDate(0, loan.TermMonths, 0)

	loan.WorkflowStatus = domain.WorkflowDisbursed
	loan.LoanStatus = domain.LoanOpen
	loan.Outstanding = loan.Principal.Add(interest).Round(2)
	loan.DisbursedAt = &now
	loan.NextDueDate = &nextDue
	loan.MaturityDate = &maturity
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	event := domain.WorkflowEvent{
		EventID:     uuid.NewString(),
		LoanID:      loanID,
		Action:      "DISBURSED",
		PerformedBy: actor.UserID,
		OccurredAt:  now,
	}

	if err := s.loanRepo.TransitionLoanStatus(ctx, *loan, event); err != nil {
		s.LogError(ctx, err, "Failed to disburse loan", "loan_id", loanID)
		return nil, err
	}

	s.LogInfo(ctx, "Loan disbursed", "loan_id", loanID, "outstanding", loan.Outstanding.String())
	return loan, nil
}

// MarkOverdueLoans is the sweep behind the nightly cron job. Disbursed loans
// past their next due date become OVERDUE; loans unpaid longer than
// defaultAfterDays past maturity become DEFAULTED. A failed loan does not
// stop the sweep.
func (s *loanService) MarkOverdueLoans(ctx context.Context) (int, error) {
	now := s.now()
	loans, err := s.loanRepo.FindDisbursedLoansDueBefore(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to load due loans for overdue sweep")
		return 0, err
	}

	transitioned := 0
	for i := range loans {
		loan := loans[i]

		target := domain.LoanOverdue
		action := "MARKED_OVERDUE"
		if loan.MaturityDate != nil && now.After(loan.MaturityDate.AddDate(0, 0, s.defaultAfterDays)) {
			target = domain.LoanDefaulted
			action = "MARKED_DEFAULTED"
		}
		if loan.LoanStatus == target {
			continue
		}

		loan.LoanStatus = target
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = "system"

		event := domain.WorkflowEvent{
			EventID:     uuid.NewString(),
			LoanID:      loan.LoanID,
			Action:      action,
			PerformedBy: "system",
			OccurredAt:  now,
		}

		if err := s.loanRepo.TransitionLoanStatus(ctx, loan, event); err != nil {
			s.LogError(ctx, err, "Failed to transition loan during overdue sweep", "loan_id", loan.LoanID)
			continue
		}
		transitioned++
	}

	s.LogInfo(ctx, "Overdue sweep finished", "candidates", len(loans), "transitioned", transitioned)
	return transitioned, nil
}
