package repositories

import (
	"context"
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsQuery carries the filter and cursor for the listing query.
type ListTransactionsQuery struct {
	PeriodFrom time.Time
	PeriodTo   time.Time
	Limit      int
	NextToken  *string
}

// TransactionRepository persists ledger records. Multi-row operations run
// inside a single database transaction: either every write lands or none.
type TransactionRepository interface {
	// SaveTransactions bulk-inserts a base instance plus its expansion,
	// applies the given balance deltas to the affected accounts (rows are
	// locked in sorted-ID order) and, when deleteAccountID is non-empty,
	// removes that account after the balance write.
	SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, deleteAccountID string) error

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindGroupRepresentatives returns one planned, completed transaction
	// per repeat code dated in the given year.
	FindGroupRepresentatives(ctx context.Context, year int) ([]domain.Transaction, error)

	// CompleteTemplate inserts the realized twin, applies its balance
	// deltas and marks the template row COMPLETE, all in one transaction.
	CompleteTemplate(ctx context.Context, templateID string, realized domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DisableGroup flips every COMPLETE row of the group to DISABLED and
	// hard-deletes every PENDING row dated on or after cutoff, in one
	// transaction. PENDING rows before cutoff are untouched.
	DisableGroup(ctx context.Context, repeatCode string, cutoff time.Time, actorID string, now time.Time) error

	// DisableOne marks a single non-recurring row DISABLED.
	DisableOne(ctx context.Context, transactionID string, actorID string, now time.Time) error

	ListTransactions(ctx context.Context, q ListTransactionsQuery) ([]domain.Transaction, *string, error)

	DeleteTransaction(ctx context.Context, transactionID string) error
	DeleteTransactions(ctx context.Context, transactionIDs []string) error
}
