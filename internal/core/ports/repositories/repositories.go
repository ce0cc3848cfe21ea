package repositories

// RepositoryProvider bundles every repository implementation for wiring.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepository
	AccountRepo      AccountRepository
	CategoryRepo     CategoryRepository
	CurrencyRepo     CurrencyRepository
	ExchangeRateRepo ExchangeRateRepository
	ContractorRepo   ContractorRepository
	UserRepo         UserRepository
	ReportingRepo    ReportingRepository
}
