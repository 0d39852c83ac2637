package services

import (
	"context"

	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of clients.
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient registers a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, actor domain.User) (*domain.Client, error)

	// UpdateClient updates a client's details.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor domain.User) (*domain.Client, error)

	// DeleteClient soft-deletes a client.
	DeleteClient(ctx context.Context, clientID string, actor domain.User) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
