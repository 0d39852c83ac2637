package repositories

import (
	"context"
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its ID.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoans retrieves a paginated list of loans, optionally filtered by
	// workflow status.
	FindLoans(ctx context.Context, workflowStatus *domain.WorkflowStatus, limit int, offset int) ([]domain.Loan, error)

	// FindLoansByClientID retrieves all loans for a client.
	FindLoansByClientID(ctx context.Context, clientID string) ([]domain.Loan, error)

	// FindDisbursedLoansDueBefore retrieves DISBURSED loans whose next due
	// date is before the cutoff; used by the overdue sweep.
	FindDisbursedLoansDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan updates an existing loan's terms.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// TransitionLoanStatus commits a workflow/operational status pair along
	// with decision metadata and appends the workflow event atomically.
	TransitionLoanStatus(ctx context.Context, loan domain.Loan, event domain.WorkflowEvent) error

	// UpdateLoanBalance updates the outstanding balance and operational
	// status after a payment is recorded or reversed.
	UpdateLoanBalance(ctx context.Context, loan domain.Loan) error
}

// LoanLifecycleManager defines operations for managing loan lifecycle
type LoanLifecycleManager interface {
	// MarkLoanDeleted marks a loan as deleted (soft delete).
	MarkLoanDeleted(ctx context.Context, loanID string, deletedAt time.Time, deletedBy string) error
}

// WorkflowEventReader reads a loan's append-only approval timeline.
type WorkflowEventReader interface {
	// FindWorkflowEventsByLoanID returns events in chronological order.
	FindWorkflowEventsByLoanID(ctx context.Context, loanID string) ([]domain.WorkflowEvent, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanLifecycleManager
	WorkflowEventReader
}
