package repositories

import (
	"context"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
)

// CategoryRepository persists account items.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CurrencyRepository persists supported currencies.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepository persists base-currency conversion rates.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ContractorRepository resolves polymorphic entity references.
type ContractorRepository interface {
	// FindContractor returns the entity behind ref, or apperrors.ErrNotFound
	// when no entity of that kind carries the id.
	FindContractor(ctx context.Context, ref domain.EntityRef) (*domain.Contractor, error)
	ListContractors(ctx context.Context, kind domain.EntityKind) ([]domain.Contractor, error)
}

// UserRepository persists authentication principals.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
