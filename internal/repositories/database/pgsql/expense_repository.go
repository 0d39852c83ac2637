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

const expenseColumns = `expense_id, category, amount, incurred_at, notes, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Category,
		&m.Amount,
		&m.IncurredAt,
		&m.Notes,
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

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, category, amount, incurred_at, notes, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.Category, m.Amount, m.IncurredAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND deleted_at IS NULL;`
	m, err := scanExpense(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	expense := mapping.ToDomainExpense(*m)
	return &expense, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, limit int, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE deleted_at IS NULL
        ORDER BY incurred_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(*m))
	}
	return expenses, rows.Err()
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET category = $2, amount = $3, incurred_at = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
        WHERE expense_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, m.ExpenseID, m.Category, m.Amount, m.IncurredAt, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, expenseID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE expenses
        SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
        WHERE expense_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, expenseID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s deleted: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
