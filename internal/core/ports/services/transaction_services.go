package services

import (
	"context"
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions.
type TransactionWriterSvc interface {
	// CreateTransaction builds and persists the full ledger for one creation
	// request: the head transaction plus, for recurring requests, its
	// expanded occurrences through the end of the head's year.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) ([]domain.Transaction, error)

	// UpdateStatus drives a pending transaction to COMPLETE or DISABLED.
	UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, actorUserID string) error

	// DeleteTransaction removes a single transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DeleteTransactions removes several transactions in one call.
	DeleteTransactions(ctx context.Context, ids []string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// RolloverSvc extends recurring transaction groups into a new year.
type RolloverSvc interface {
	// Run finds every recurring group and plants its new-year occurrences.
	// A failing group is skipped and reported, not fatal to the run.
	Run(ctx context.Context, year int, now time.Time) (*domain.RolloverReport, error)
}
