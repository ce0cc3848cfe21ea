package pgsql

import (
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	categoryRepo := newPgxCategoryRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	contractorRepo := newPgxContractorRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo:  transactionRepo,
		AccountRepo:      accountRepo,
		CategoryRepo:     categoryRepo,
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		ContractorRepo:   contractorRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}
