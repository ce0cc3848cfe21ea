package dto

import (
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest adds a category to the reference table.
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Widget string `json:"widget" binding:"omitempty,oneof=OFFICE CUSTOMER USER"`
}

// CategoryResponse is the API view of a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Widget     string `json:"widget,omitempty"`
}

func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Widget: string(c.Widget)}
}

func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCategoryResponse(c)
	}
	return out
}

// CreateCurrencyRequest adds a supported currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Symbol       string `json:"symbol" binding:"required,max=8"`
	Name         string `json:"name" binding:"required,max=100"`
}

// CurrencyResponse is the API view of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{CurrencyCode: c.CurrencyCode, Symbol: c.Symbol, Name: c.Name}
}

func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCurrencyResponse(c)
	}
	return out
}

// UpsertExchangeRateRequest sets the rate for a currency against the base.
type UpsertExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// ExchangeRateResponse is the API view of an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
}

func ToExchangeRateResponse(r domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{ExchangeRateID: r.ExchangeRateID, CurrencyCode: r.CurrencyCode, Rate: r.Rate}
}

// ContractorResponse is one autocomplete entry for the creation form.
type ContractorResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToContractorResponses(cs []domain.Contractor) []ContractorResponse {
	out := make([]ContractorResponse, len(cs))
	for i, c := range cs {
		out[i] = ContractorResponse{Kind: string(c.Ref.Kind), ID: c.Ref.ID, Name: c.Name}
	}
	return out
}

// NewTransactionFormResponse bundles the reference data the creation form
// needs in a single round trip.
type NewTransactionFormResponse struct {
	Accounts   []AccountResponse  `json:"accounts"`
	Categories []CategoryResponse `json:"categories"`
	Currencies []CurrencyResponse `json:"currencies"`
}
