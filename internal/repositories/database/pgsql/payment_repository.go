package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	"github.com/microcred/loan_management_app/internal/models"
	"github.com/microcred/loan_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, loan_id, amount, penalty_portion, method, paid_at, is_reversed, reversed_by, reversal_note, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.LoanID,
		&m.Amount,
		&m.PenaltyPortion,
		&m.Method,
		&m.PaidAt,
		&m.IsReversed,
		&m.ReversedBy,
		&m.ReversalNote,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

func (r *PgxPaymentRepository) FindPaymentsByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE loan_id = $1
        ORDER BY paid_at;
    `
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	return payments, rows.Err()
}

// SavePayment inserts the payment and applies the recalculated balance and
// operational status to the loan row in one transaction. A payment must never
// exist without its effect on the loan.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error {
	if err := domain.ValidateStatusPairing(loan.WorkflowStatus, loan.LoanStatus); err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	mp := mapping.ToModelPayment(payment)
	insertQuery := `
        INSERT INTO payments (payment_id, loan_id, amount, penalty_portion, method, paid_at, is_reversed, reversed_by, reversal_note, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	if _, err := tx.Exec(ctx, insertQuery,
		mp.PaymentID, mp.LoanID, mp.Amount, mp.PenaltyPortion, mp.Method, mp.PaidAt,
		mp.IsReversed, mp.ReversedBy, mp.ReversalNote,
		mp.CreatedAt, mp.CreatedBy, mp.LastUpdatedAt, mp.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save payment for loan %s: %w", payment.LoanID, err)
	}

	if err := applyLoanBalance(ctx, tx, loan); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReversePayment flags the payment and restores the loan's balance and
// operational status in one transaction.
func (r *PgxPaymentRepository) ReversePayment(ctx context.Context, payment domain.Payment, loan domain.Loan) error {
	if err := domain.ValidateStatusPairing(loan.WorkflowStatus, loan.LoanStatus); err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	mp := mapping.ToModelPayment(payment)
	reverseQuery := `
        UPDATE payments
        SET is_reversed = TRUE, reversed_by = $2, reversal_note = $3, last_updated_at = $4, last_updated_by = $5
        WHERE payment_id = $1 AND is_reversed = FALSE;
    `
	tag, err := tx.Exec(ctx, reverseQuery, mp.PaymentID, mp.ReversedBy, mp.ReversalNote, mp.LastUpdatedAt, mp.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to reverse payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s already reversed: %w", payment.PaymentID, apperrors.ErrConflict)
	}

	if err := applyLoanBalance(ctx, tx, loan); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func applyLoanBalance(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	ml := mapping.ToModelLoan(loan)
	query := `
        UPDATE loans
        SET loan_status = $2, outstanding = $3, next_due_date = $4, last_updated_at = $5, last_updated_by = $6
        WHERE loan_id = $1 AND deleted_at IS NULL;
    `
	tag, err := tx.Exec(ctx, query, ml.LoanID, ml.LoanStatus, ml.Outstanding, ml.NextDueDate, ml.LastUpdatedAt, ml.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance for loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
