package mapping

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		Name:        d.Name,
		NationalID:  d.NationalID,
		Phone:       d.Phone,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		NationalID:  m.NationalID,
		Phone:       m.Phone,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
