package services

import (
	"context"
	"errors"
	"time"

	"github.com/microcred/loan_management_app/internal/apperrors"
	"github.com/microcred/loan_management_app/internal/core/authz"
	"github.com/microcred/loan_management_app/internal/core/domain"
	portsrepo "github.com/microcred/loan_management_app/internal/core/ports/repositories"
	portssvc "github.com/microcred/loan_management_app/internal/core/ports/services"
	"github.com/microcred/loan_management_app/internal/dto"
	"github.com/google/uuid"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates the borrower registry service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get client", "client_id", clientID)
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	return clients, nil
}

// CreateClient registers a borrower. Registration shares the loan
// origination capability, so loan officers and admins may do it.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, actor domain.User) (*domain.Client, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionCreateLoan); err != nil {
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Address:    req.Address,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client")
		return nil, err
	}

	s.LogInfo(ctx, "Client created", "client_id", client.ClientID)
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor domain.User) (*domain.Client, error) {
	if err := s.RequireCapability(ctx, actor, authz.ActionCreateLoan); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", "client_id", clientID)
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, actor domain.User) error {
	if err := s.RequireCapability(ctx, actor, authz.ActionDelete); err != nil {
		return err
	}

	if err := s.clientRepo.MarkClientDeleted(ctx, clientID, time.Now(), actor.UserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete client", "client_id", clientID)
		}
		return err
	}
	s.LogInfo(ctx, "Client deleted", "client_id", clientID)
	return nil
}
