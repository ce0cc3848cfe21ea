package dto

import (
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the account creation payload.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	OwnerKind    string `json:"ownerKind" binding:"omitempty,oneof=OFFICE CUSTOMER USER"`
	OwnerID      string `json:"ownerID" binding:"required_with=OwnerKind"`
}

// AccountResponse is the API view of an account.
type AccountResponse struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`
	OwnerKind    string          `json:"ownerKind,omitempty"`
	OwnerID      string          `json:"ownerID,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// ToAccountResponse converts a domain account.
func ToAccountResponse(a domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		CurrencyCode: a.CurrencyCode,
		Total:        a.Total,
		IsActive:     a.IsActive,
	}
	if a.Owner != nil {
		resp.OwnerKind = string(a.Owner.Kind)
		resp.OwnerID = a.Owner.ID
	}
	return resp
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountResponse(a)
	}
	return out
}
