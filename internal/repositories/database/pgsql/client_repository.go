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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `client_id, name, national_id, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.NationalID,
		&m.Phone,
		&m.Address,
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

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (client_id, name, national_id, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.ClientID, m.Name, m.NationalID, m.Phone, m.Address, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("national ID %s: %w", client.NationalID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 AND deleted_at IS NULL;`
	m, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(*m)
	return &client, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(*m))
	}
	return clients, rows.Err()
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        UPDATE clients
        SET name = $2, phone = $3, address = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
        WHERE client_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, m.ClientID, m.Name, m.Phone, m.Address, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE clients
        SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
        WHERE client_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, clientID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark client %s deleted: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
