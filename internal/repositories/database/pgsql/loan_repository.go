package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	"github.com/microcred/loan_management_app/internal/models"
	"github.com/microcred/loan_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `loan_id, client_id, product_id, principal, interest_rate, term_months, workflow_status, loan_status, outstanding, disbursed_at, next_due_date, maturity_date, decided_by, decision_note, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(db *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.ClientID,
		&m.ProductID,
		&m.Principal,
		&m.InterestRate,
		&m.TermMonths,
		&m.WorkflowStatus,
		&m.LoanStatus,
		&m.Outstanding,
		&m.DisbursedAt,
		&m.NextDueDate,
		&m.MaturityDate,
		&m.DecidedBy,
		&m.DecisionNote,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	if err := domain.ValidateStatusPairing(loan.WorkflowStatus, loan.LoanStatus); err != nil {
		return err
	}
	m := mapping.ToModelLoan(loan)
	query := `
        INSERT INTO loans (loan_id, client_id, product_id, principal, interest_rate, term_months, workflow_status, loan_status, outstanding, decided_by, decision_note, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.LoanID, m.ClientID, m.ProductID, m.Principal, m.InterestRate, m.TermMonths,
		m.WorkflowStatus, m.LoanStatus, m.Outstanding, m.DecidedBy, m.DecisionNote,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1 AND deleted_at IS NULL;`
	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by ID %s: %w", loanID, err)
	}
	loan := mapping.ToDomainLoan(*m)
	return &loan, nil
}

func (r *PgxLoanRepository) FindLoans(ctx context.Context, workflowStatus *domain.WorkflowStatus, limit int, offset int) ([]domain.Loan, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE deleted_at IS NULL AND ($1::text IS NULL OR workflow_status = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	var statusArg *string
	if workflowStatus != nil {
		s := string(*workflowStatus)
		statusArg = &s
	}
	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func (r *PgxLoanRepository) FindLoansByClientID(ctx context.Context, clientID string) ([]domain.Loan, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE client_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans for client %s: %w", clientID, err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func (r *PgxLoanRepository) FindDisbursedLoansDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Loan, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE deleted_at IS NULL
          AND workflow_status = $1
          AND loan_status IN ($2, $3, $4)
          AND next_due_date IS NOT NULL
          AND next_due_date < $5
        ORDER BY next_due_date;
    `
	rows, err := r.Pool.Query(ctx, query,
		string(domain.WorkflowDisbursed),
		string(domain.LoanOpen),
		string(domain.LoanInProgress),
		string(domain.LoanOverdue),
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list due loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func collectLoans(rows pgx.Rows) ([]domain.Loan, error) {
	var loans []domain.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, mapping.ToDomainLoan(*m))
	}
	return loans, rows.Err()
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
        UPDATE loans
        SET principal = $2, interest_rate = $3, term_months = $4, last_updated_at = $5, last_updated_by = $6
        WHERE loan_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.Pool.Exec(ctx, query, m.LoanID, m.Principal, m.InterestRate, m.TermMonths, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TransitionLoanStatus writes the new status pair, decision metadata and the
// workflow event in one transaction, so a loan can never show a transition
// without its timeline entry. The pairing invariant is enforced here as the
// last gate before commit.
func (r *PgxLoanRepository) TransitionLoanStatus(ctx context.Context, loan domain.Loan, event domain.WorkflowEvent) error {
	if err := domain.ValidateStatusPairing(loan.WorkflowStatus, loan.LoanStatus); err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelLoan(loan)
	updateQuery := `
        UPDATE loans
        SET workflow_status = $2, loan_status = $3, outstanding = $4,
            disbursed_at = $5, next_due_date = $6, maturity_date = $7,
            decided_by = $8, decision_note = $9,
            last_updated_at = $10, last_updated_by = $11
        WHERE loan_id = $1 AND deleted_at IS NULL;
    `
	tag, err := tx.Exec(ctx, updateQuery,
		m.LoanID, m.WorkflowStatus, m.LoanStatus, m.Outstanding,
		m.DisbursedAt, m.NextDueDate, m.MaturityDate,
		m.DecidedBy, m.DecisionNote,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to transition loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	me := mapping.ToModelWorkflowEvent(event)
	eventQuery := `
        INSERT INTO loan_workflow_events (event_id, loan_id, action, performed_by, notes, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	if _, err := tx.Exec(ctx, eventQuery, me.EventID, me.LoanID, me.Action, me.PerformedBy, me.Notes, me.OccurredAt); err != nil {
		return fmt.Errorf("failed to append workflow event for loan %s: %w", loan.LoanID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLoanRepository) UpdateLoanBalance(ctx context.Context, loan domain.Loan) error {
	if err := domain.ValidateStatusPairing(loan.WorkflowStatus, loan.LoanStatus); err != nil {
		return err
	}
	m := mapping.ToModelLoan(loan)
	query := `
        UPDATE loans
        SET loan_status = $2, outstanding = $3, next_due_date = $4, last_updated_at = $5, last_updated_by = $6
        WHERE loan_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.Pool.Exec(ctx, query, m.LoanID, m.LoanStatus, m.Outstanding, m.NextDueDate, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance for loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) MarkLoanDeleted(ctx context.Context, loanID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE loans
        SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
        WHERE loan_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.Pool.Exec(ctx, query, loanID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark loan %s deleted: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) FindWorkflowEventsByLoanID(ctx context.Context, loanID string) ([]domain.WorkflowEvent, error) {
	query := `
        SELECT event_id, loan_id, action, performed_by, notes, occurred_at
        FROM loan_workflow_events
        WHERE loan_id = $1
        ORDER BY occurred_at;
    `
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow events for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	var events []domain.WorkflowEvent
	for rows.Next() {
		var m models.WorkflowEvent
		if err := rows.Scan(&m.EventID, &m.LoanID, &m.Action, &m.PerformedBy, &m.Notes, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan workflow event row: %w", err)
		}
		events = append(events, mapping.ToDomainWorkflowEvent(m))
	}
	return events, rows.Err()
}
