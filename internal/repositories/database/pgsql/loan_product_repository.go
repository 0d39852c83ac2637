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

const loanProductColumns = `product_id, name, interest_rate, term_months, late_penalty_type, late_penalty_value, late_penalty_cap_pct, late_grace_days, maturity_penalty_type, maturity_penalty_value, maturity_penalty_cap_pct, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxLoanProductRepository struct {
	db *pgxpool.Pool
}

func newPgxLoanProductRepository(db *pgxpool.Pool) portsrepo.LoanProductRepositoryFacade {
	return &PgxLoanProductRepository{db: db}
}

var _ portsrepo.LoanProductRepositoryFacade = (*PgxLoanProductRepository)(nil)

func scanLoanProduct(row pgx.Row) (*models.LoanProduct, error) {
	var m models.LoanProduct
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.InterestRate,
		&m.TermMonths,
		&m.LatePenaltyType,
		&m.LatePenaltyValue,
		&m.LatePenaltyCapPct,
		&m.LateGraceDays,
		&m.MaturityType,
		&m.MaturityValue,
		&m.MaturityCapPct,
		&m.IsActive,
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

func (r *PgxLoanProductRepository) SaveLoanProduct(ctx context.Context, product domain.LoanProduct) error {
	m := mapping.ToModelLoanProduct(product)
	query := `
        INSERT INTO loan_products (product_id, name, interest_rate, term_months, late_penalty_type, late_penalty_value, late_penalty_cap_pct, late_grace_days, maturity_penalty_type, maturity_penalty_value, maturity_penalty_cap_pct, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.InterestRate, m.TermMonths,
		m.LatePenaltyType, m.LatePenaltyValue, m.LatePenaltyCapPct, m.LateGraceDays,
		m.MaturityType, m.MaturityValue, m.MaturityCapPct,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan product: %w", err)
	}
	return nil
}

func (r *PgxLoanProductRepository) FindLoanProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	query := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE product_id = $1 AND deleted_at IS NULL;`
	m, err := scanLoanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan product by ID %s: %w", productID, err)
	}
	product := mapping.ToDomainLoanProduct(*m)
	return &product, nil
}

func (r *PgxLoanProductRepository) FindLoanProducts(ctx context.Context, limit int, offset int) ([]domain.LoanProduct, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + loanProductColumns + `
        FROM loan_products
        WHERE deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan products: %w", err)
	}
	defer rows.Close()

	var products []domain.LoanProduct
	for rows.Next() {
		m, err := scanLoanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan product row: %w", err)
		}
		products = append(products, mapping.ToDomainLoanProduct(*m))
	}
	return products, rows.Err()
}

func (r *PgxLoanProductRepository) UpdateLoanProduct(ctx context.Context, product domain.LoanProduct) error {
	m := mapping.ToModelLoanProduct(product)
	query := `
        UPDATE loan_products
        SET name = $2, interest_rate = $3, term_months = $4,
            late_penalty_type = $5, late_penalty_value = $6, late_penalty_cap_pct = $7, late_grace_days = $8,
            maturity_penalty_type = $9, maturity_penalty_value = $10, maturity_penalty_cap_pct = $11,
            is_active = $12, last_updated_at = $13, last_updated_by = $14
        WHERE product_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.InterestRate, m.TermMonths,
		m.LatePenaltyType, m.LatePenaltyValue, m.LatePenaltyCapPct, m.LateGraceDays,
		m.MaturityType, m.MaturityValue, m.MaturityCapPct,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanProductRepository) MarkLoanProductDeleted(ctx context.Context, productID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE loan_products
        SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
        WHERE product_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, productID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark loan product %s deleted: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
