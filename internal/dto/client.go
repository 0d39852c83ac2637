package dto

import "github.com/microcred/loan_management_app/internal/core/domain"

// CreateClientRequest defines the data required to register a borrower.
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"nationalID" binding:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ClientResponse is the public view of a client.
type ClientResponse struct {
	ClientID   string `json:"clientID"`
	Name       string `json:"name"`
	NationalID string `json:"nationalID"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
}

// ToClientResponse converts a domain.Client to its response DTO.
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   client.ClientID,
		Name:       client.Name,
		NationalID: client.NationalID,
		Phone:      client.Phone,
		Address:    client.Address,
		IsActive:   client.IsActive,
	}
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to the list DTO.
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return ListClientsResponse{Clients: responses}
}
