package services

import (
	"context"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade manages the currency reference table.
type CurrencySvcFacade interface {
	// CreateCurrency adds a supported currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rates.
type ExchangeRateReaderSvc interface {
	// RateFor returns the stored rate for a currency against the base
	// currency, or 1 when no rate is stored.
	RateFor(ctx context.Context, currencyCode string) (decimal.Decimal, error)

	// ListRates retrieves every stored exchange rate.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rates.
type ExchangeRateWriterSvc interface {
	// UpsertRate sets the rate for a currency, replacing any previous one.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, actorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange-rate-related service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// CategorySvcFacade manages the category reference table.
type CategorySvcFacade interface {
	// CreateCategory adds a category, optionally tagged with the contractor
	// widget its transactions resolve through.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// GetCategoryByID retrieves a specific category.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
