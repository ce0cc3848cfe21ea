package repositories

import (
	"context"
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository persists balance holders.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindOwnedAccountByCurrency returns the owner's account in the given
	// currency, or apperrors.ErrNotFound when no such sub-account exists yet.
	FindOwnedAccountByCurrency(ctx context.Context, owner domain.EntityRef, currencyCode string) (*domain.Account, error)

	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	ListAccountsByOwnerKind(ctx context.Context, kind domain.EntityKind) ([]domain.Account, error)

	// FindAccountsByIDsForUpdate locks the account rows for the duration of
	// the surrounding transaction. Callers must lock in sorted-ID order to
	// keep lock acquisition deterministic.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
	DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error
}
