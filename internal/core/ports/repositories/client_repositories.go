package repositories

import (
	"context"
	"time"

	"github.com/microcred/loan_management_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by their ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClients retrieves a paginated list of clients.
	FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ClientLifecycleManager defines operations for managing client lifecycle
type ClientLifecycleManager interface {
	// MarkClientDeleted marks a client as deleted (soft delete).
	MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time, deletedBy string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientLifecycleManager
}
