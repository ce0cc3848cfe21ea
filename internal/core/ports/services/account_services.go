package services

import (
	"context"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// AccountReaderSvc defines read operations for accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// ContractorSvc resolves counterparties and their owned sub-accounts.
type ContractorSvc interface {
	// ListContractors returns the autocomplete entries for a widget kind.
	ListContractors(ctx context.Context, kind domain.EntityKind) ([]domain.Contractor, error)

	// EnsureAccount returns the contractor's account in the given currency,
	// creating it with a zero balance when absent.
	EnsureAccount(ctx context.Context, ref domain.EntityRef, currencyCode string, creatorUserID string) (*domain.Account, error)
}
