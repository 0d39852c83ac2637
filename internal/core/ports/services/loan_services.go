package services

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/dto"
)

// LoanReaderSvc defines read operations for loan data
type LoanReaderSvc interface {
	// GetLoanByID retrieves a loan by ID.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves a paginated list of loans, optionally filtered by
	// workflow status.
	ListLoans(ctx context.Context, params dto.ListLoansParams) ([]domain.Loan, error)

	// ListLoansByClientID retrieves all loans belonging to a client.
	ListLoansByClientID(ctx context.Context, clientID string) ([]domain.Loan, error)

	// ListLoanEvents returns the loan's approval timeline in chronological
	// order.
	ListLoanEvents(ctx context.Context, loanID string) ([]domain.WorkflowEvent, error)

	// AllowedActions returns the ordered action set the role may take on the
	// loan, for the dashboard to render.
	AllowedActions(ctx context.Context, loanID string, role domain.Role) ([]authz.Action, error)
}

// LoanWriterSvc defines write operations for loan applications
type LoanWriterSvc interface {
	// CreateLoan registers a new application in PENDING_APPROVAL/OPEN.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actor domain.User) (*domain.Loan, error)

	// UpdateLoan edits the terms of a pending application.
	UpdateLoan(ctx context.Context, loanID string, req dto.UpdateLoanRequest, actor domain.User) (*domain.Loan, error)

	// DeleteLoan soft-deletes a pending or rejected application.
	DeleteLoan(ctx context.Context, loanID string, actor domain.User) error
}

// LoanWorkflowSvc drives the administrative status axis.
type LoanWorkflowSvc interface {
	// ApproveLoan moves a pending application to APPROVED.
	ApproveLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error)

	// RejectLoan moves a pending application to REJECTED and closes it.
	RejectLoan(ctx context.Context, loanID string, note string, actor domain.User) (*domain.Loan, error)

	// DisburseLoan moves an approved application to DISBURSED and opens the
	// repayment schedule.
	DisburseLoan(ctx context.Context, loanID string, actor domain.User) (*domain.Loan, error)

	// MarkOverdueLoans flips disbursed loans past their due date to OVERDUE
	// and loans past maturity beyond the default threshold to DEFAULTED.
	// Returns the number of loans transitioned.
	MarkOverdueLoans(ctx context.Context) (int, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
	LoanWorkflowSvc
}
