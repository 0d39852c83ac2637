package dto

import (
	"github.com/microcred/loan_management_app/internal/core/domain"
	"github.com/microcred/loan_management_app/internal/core/penalty"
	"github.com/shopspring/decimal"
)

// PenaltyRuleDTO is the wire form of a penalty rule.
type PenaltyRuleDTO struct {
	Type                    string           `json:"type" binding:"required,oneof=fixed_per_day percent_per_day"`
	Value                   decimal.Decimal  `json:"value"`
	CapPercentOfOutstanding *decimal.Decimal `json:"capPercentOfOutstanding,omitempty"`
}

// ToPenaltyRule converts the DTO to the engine's rule value.
func (d PenaltyRuleDTO) ToPenaltyRule() penalty.Rule {
	return penalty.Rule{
		Type:                    penalty.RuleType(d.Type),
		Value:                   d.Value,
		CapPercentOfOutstanding: d.CapPercentOfOutstanding,
	}
}

// FromPenaltyRule converts an engine rule to its wire form.
func FromPenaltyRule(rule penalty.Rule) PenaltyRuleDTO {
	return PenaltyRuleDTO{
		Type:                    string(rule.Type),
		Value:                   rule.Value,
		CapPercentOfOutstanding: rule.CapPercentOfOutstanding,
	}
}

// CreateLoanProductRequest defines the data required to create a product.
type CreateLoanProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	TermMonths    int             `json:"termMonths" binding:"required,gt=0"`
	LatePenalty   PenaltyRuleDTO  `json:"latePenalty" binding:"required"`
	LateGraceDays int             `json:"lateGraceDays" binding:"gte=0"`
	MaturityRule  PenaltyRuleDTO  `json:"maturityRule" binding:"required"`
}

// UpdateLoanProductRequest defines the data allowed for updating a product.
type UpdateLoanProductRequest struct {
	Name          *string          `json:"name"`
	InterestRate  *decimal.Decimal `json:"interestRate"`
	TermMonths    *int             `json:"termMonths" binding:"omitempty,gt=0"`
	LatePenalty   *PenaltyRuleDTO  `json:"latePenalty"`
	LateGraceDays *int             `json:"lateGraceDays" binding:"omitempty,gte=0"`
	MaturityRule  *PenaltyRuleDTO  `json:"maturityRule"`
	IsActive      *bool            `json:"isActive"`
}

// ListLoanProductsParams defines query parameters for listing products.
type ListLoanProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// LoanProductResponse is the public view of a loan product.
type LoanProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	TermMonths    int             `json:"termMonths"`
	LatePenalty   PenaltyRuleDTO  `json:"latePenalty"`
	LateGraceDays int             `json:"lateGraceDays"`
	MaturityRule  PenaltyRuleDTO  `json:"maturityRule"`
	IsActive      bool            `json:"isActive"`
}

// ToLoanProductResponse converts a domain.LoanProduct to its response DTO.
func ToLoanProductResponse(product *domain.LoanProduct) LoanProductResponse {
	return LoanProductResponse{
		ProductID:     product.ProductID,
		Name:          product.Name,
		InterestRate:  product.InterestRate,
		TermMonths:    product.TermMonths,
		LatePenalty:   FromPenaltyRule(product.LatePenaltyRule),
		LateGraceDays: product.LateGraceDays,
		MaturityRule:  FromPenaltyRule(product.MaturityRule),
		IsActive:      product.IsActive,
	}
}

// ListLoanProductsResponse wraps the list of products.
type ListLoanProductsResponse struct {
	Products []LoanProductResponse `json:"products"`
}

// ToListLoanProductsResponse converts products to the list DTO.
func ToListLoanProductsResponse(products []domain.LoanProduct) ListLoanProductsResponse {
	responses := make([]LoanProductResponse, len(products))
	for i := range products {
		responses[i] = ToLoanProductResponse(&products[i])
	}
	return ListLoanProductsResponse{Products: responses}
}
