package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/core/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, deleteAccountID string) error {
	args := m.Called(ctx, txns, balanceChanges, deleteAccountID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindGroupRepresentatives(ctx context.Context, year int) ([]domain.Transaction, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CompleteTemplate(ctx context.Context, templateID string, realized domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, templateID, realized, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DisableGroup(ctx context.Context, repeatCode string, cutoff time.Time, actorID string, now time.Time) error {
	args := m.Called(ctx, repeatCode, cutoff, actorID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) DisableOne(ctx context.Context, transactionID string, actorID string, now time.Time) error {
	args := m.Called(ctx, transactionID, actorID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, q portsrepo.ListTransactionsQuery) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, q)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactions(ctx context.Context, transactionIDs []string) error {
	args := m.Called(ctx, transactionIDs)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindOwnedAccountByCurrency(ctx context.Context, owner domain.EntityRef, currencyCode string) (*domain.Account, error) {
	args := m.Called(ctx, owner, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOwnerKind(ctx context.Context, kind domain.EntityKind) ([]domain.Account, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) error {
	args := m.Called(ctx, tx, accountID)
	return args.Error(0)
}

// --- Mock CategorySvcFacade ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// --- Mock ExchangeRateReaderSvc ---
type MockRateReader struct {
	mock.Mock
}

func (m *MockRateReader) RateFor(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateReader) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock ContractorSvc ---
type MockContractorService struct {
	mock.Mock
}

func (m *MockContractorService) ListContractors(ctx context.Context, kind domain.EntityKind) ([]domain.Contractor, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contractor), args.Error(1)
}

func (m *MockContractorService) EnsureAccount(ctx context.Context, ref domain.EntityRef, currencyCode string, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ref, currencyCode, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockCategories  *MockCategoryService
	mockRates       *MockRateReader
	mockContractors *MockContractorService
	service         portssvc.TransactionSvcFacade

	userID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategories = new(MockCategoryService)
	suite.mockRates = new(MockRateReader)
	suite.mockContractors = new(MockContractorService)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockCategories,
		suite.mockRates,
		suite.mockContractors,
	)
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) account(currency string, owner *domain.EntityRef) *domain.Account {
	return &domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "acct",
		CurrencyCode: currency,
		Total:        decimal.NewFromInt(100),
		Owner:        owner,
		IsActive:     true,
	}
}

func (suite *TransactionServiceTestSuite) expenseRequest(accountID, categoryID, contractorID string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:         "EXPENSE",
		Amount:       decimal.RequireFromString("25.50"),
		AccountID:    accountID,
		CategoryID:   categoryID,
		ContractorID: contractorID,
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

// --- Creation: expense ---

func (suite *TransactionServiceTestSuite) TestCreateExpense_ResolvesContractorAccountAndRateOne() {
	ctx := context.Background()
	source := suite.account("USD", nil)
	contractorAcct := suite.account("USD", &domain.EntityRef{Kind: domain.EntityCustomer, ID: "cust-1"})
	category := &domain.Category{CategoryID: "cat-1", Name: "Rent", Widget: domain.WidgetCustomer}
	req := suite.expenseRequest(source.AccountID, category.CategoryID, "cust-1")

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockCategories.On("GetCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockContractors.On("EnsureAccount", ctx, domain.EntityRef{Kind: domain.EntityCustomer, ID: "cust-1"}, "USD", suite.userID).
		Return(contractorAcct, nil).Once()

	var savedTxns []domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txns, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)

	base := savedTxns[0]
	suite.Equal(domain.Expense, base.Type)
	suite.Equal(source.AccountID, base.AccountFromID)
	suite.Equal(contractorAcct.AccountID, base.AccountToID)
	suite.True(base.ConversionRate.Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.EntityCustomer, base.Contractor.Kind)
	suite.Equal("cust-1", base.Contractor.ID)
	suite.Equal(domain.StatusComplete, base.Status)
	suite.False(base.Planned)

	// Immediate settlement moves both balances by the same amount.
	suite.True(savedChanges[source.AccountID].Equal(req.Amount.Neg()))
	suite.True(savedChanges[contractorAcct.AccountID].Equal(req.Amount))

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockContractors.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreatePlanned_LeavesBalancesUntouched() {
	ctx := context.Background()
	source := suite.account("USD", nil)
	contractorAcct := suite.account("USD", &domain.EntityRef{Kind: domain.EntityOffice, ID: "office-1"})
	category := &domain.Category{CategoryID: "cat-2", Name: "Utilities", Widget: domain.WidgetOffice}
	req := suite.expenseRequest(source.AccountID, category.CategoryID, "office-1")
	req.Planned = true

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockCategories.On("GetCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockContractors.On("EnsureAccount", ctx, mock.Anything, "USD", suite.userID).Return(contractorAcct, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txns, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txns[0].Status)
	suite.True(txns[0].Planned)
	suite.Empty(savedChanges)
}

// --- Creation: recurrence ---

func (suite *TransactionServiceTestSuite) TestCreateRecurring_ExpandsYearBoundedSeriesWithOneCode() {
	ctx := context.Background()
	source := suite.account("USD", nil)
	contractorAcct := suite.account("USD", &domain.EntityRef{Kind: domain.EntityUser, ID: "user-9"})
	category := &domain.Category{CategoryID: "cat-3", Name: "Salary", Widget: domain.WidgetUser}

	req := suite.expenseRequest(source.AccountID, category.CategoryID, "user-9")
	req.Date = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	req.Repeat = "MONTHLY"
	req.RepeatEvery = 1

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockCategories.On("GetCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockContractors.On("EnsureAccount", ctx, mock.Anything, "USD", suite.userID).Return(contractorAcct, nil).Once()

	var savedTxns []domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)

	// Base + 11 monthly occurrences through December of the starting year.
	suite.Require().Len(savedTxns, 12)
	suite.Equal(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), savedTxns[11].Date)

	code := savedTxns[0].RepeatCode
	suite.NotEmpty(code)
	for i, txn := range savedTxns {
		suite.Equal(code, txn.RepeatCode)
		suite.Equal(domain.StatusPending, txn.Status)
		suite.True(txn.Planned)
		if i > 0 {
			suite.True(txn.Date.After(savedTxns[i-1].Date))
			suite.Equal(2024, txn.Date.Year())
		}
	}

	// Recurring series is forced planned, so nothing moves.
	suite.Empty(savedChanges)
}

// --- Creation: transfer ---

func (suite *TransactionServiceTestSuite) TestCreateTransfer_CallerRateWins() {
	ctx := context.Background()
	owner := &domain.EntityRef{Kind: domain.EntityCustomer, ID: "cust-7"}
	source := suite.account("USD", nil)
	dest := suite.account("EUR", owner)
	callerRate := decimal.RequireFromString("0.9")

	req := dto.CreateTransactionRequest{
		Type:              "TRANSFER",
		Amount:            decimal.NewFromInt(100),
		AccountID:         source.AccountID,
		TransferAccountID: dest.AccountID,
		CategoryID:        "cat-transfer",
		ConversionRate:    &callerRate,
		Date:              time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, dest.AccountID).Return(dest, nil).Once()

	var savedTxns []domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)

	base := savedTxns[0]
	suite.True(base.Amount.Equal(decimal.NewFromInt(90)), "amount repriced by caller rate, got %s", base.Amount)
	suite.True(base.ConversionRate.Equal(callerRate))
	// Transfer is attributed to the destination account's owner.
	suite.Equal(*owner, base.Contractor)

	suite.True(savedChanges[source.AccountID].Equal(decimal.NewFromInt(-90)))
	suite.True(savedChanges[dest.AccountID].Equal(decimal.NewFromInt(100)))

	// The rate lookup must not be consulted when the caller supplies a rate.
	suite.mockRates.AssertNotCalled(suite.T(), "RateFor", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_FallsBackToStoredRate() {
	ctx := context.Background()
	source := suite.account("USD", nil)
	dest := suite.account("EUR", nil)
	storedRate := decimal.RequireFromString("0.5")

	req := dto.CreateTransactionRequest{
		Type:              "TRANSFER",
		Amount:            decimal.NewFromInt(10),
		AccountID:         source.AccountID,
		TransferAccountID: dest.AccountID,
		CategoryID:        "cat-transfer",
		Date:              time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, dest.AccountID).Return(dest, nil).Once()
	suite.mockRates.On("RateFor", ctx, "EUR").Return(storedRate, nil).Once()

	var savedTxns []domain.Transaction
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)
	suite.True(savedTxns[0].Amount.Equal(decimal.NewFromInt(5)))
	// Unowned destination leaves the contractor unset.
	suite.True(savedTxns[0].Contractor.IsZero())
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransfer_SameCurrencySkipsRate() {
	ctx := context.Background()
	source := suite.account("USD", nil)
	dest := suite.account("USD", nil)

	req := dto.CreateTransactionRequest{
		Type:              "TRANSFER",
		Amount:            decimal.NewFromInt(40),
		AccountID:         source.AccountID,
		TransferAccountID: dest.AccountID,
		CategoryID:        "cat-transfer",
		Date:              time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, source.AccountID).Return(source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, dest.AccountID).Return(dest, nil).Once()

	var savedTxns []domain.Transaction
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
		}).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().NoError(err)
	suite.True(savedTxns[0].Amount.Equal(decimal.NewFromInt(40)))
	suite.True(savedTxns[0].ConversionRate.Equal(decimal.NewFromInt(1)))
	suite.mockRates.AssertNotCalled(suite.T(), "RateFor", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreate_AmountOutOfBoundsRejected() {
	ctx := context.Background()
	req := suite.expenseRequest("acct", "cat", "contractor")
	req.Amount = decimal.RequireFromString("1000000.00")

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Status transitions ---

func (suite *TransactionServiceTestSuite) pendingTemplate() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Expense,
		CategoryID:     "cat-1",
		AccountFromID:  "acct-from",
		AccountToID:    "acct-to",
		Amount:         decimal.NewFromInt(30),
		ConversionRate: decimal.NewFromInt(1),
		Date:           time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Planned:        true,
		Status:         domain.StatusPending,
		Repeat:         domain.RepeatMonthly,
		RepeatEvery:    1,
		RepeatCode:     "code-abc",
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_CompleteInsertsRealizedTwin() {
	ctx := context.Background()
	template := suite.pendingTemplate()
	override := decimal.NewFromInt(28)
	desc := "actual bill"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()

	var realized domain.Transaction
	var changes map[string]decimal.Decimal
	suite.mockTxnRepo.On("CompleteTemplate", ctx, template.TransactionID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			realized = args.Get(2).(domain.Transaction)
			changes = args.Get(3).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{
		Status:      "COMPLETE",
		Amount:      &override,
		Description: &desc,
	}, suite.userID)
	suite.Require().NoError(err)

	suite.NotEqual(template.TransactionID, realized.TransactionID)
	suite.False(realized.Planned)
	suite.Equal(domain.StatusComplete, realized.Status)
	suite.True(realized.Amount.Equal(override))
	suite.Equal(desc, realized.Description)
	suite.Empty(realized.RepeatCode)

	// Settlement moves balances by the realized amount.
	suite.True(changes["acct-from"].Equal(override.Neg()))
	suite.True(changes["acct-to"].Equal(override))
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_DisableCascadesGroup() {
	ctx := context.Background()
	template := suite.pendingTemplate()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()
	suite.mockTxnRepo.On("DisableGroup", ctx, template.RepeatCode, template.Date, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{Status: "DISABLED"}, suite.userID)
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_DisableNonRecurringMarksSingleRow() {
	ctx := context.Background()
	template := suite.pendingTemplate()
	template.Repeat = ""
	template.RepeatEvery = 0
	template.RepeatCode = ""

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()
	suite.mockTxnRepo.On("DisableOne", ctx, template.TransactionID, suite.userID, mock.Anything).Return(nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{Status: "DISABLED"}, suite.userID)
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DisableGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_CompletedTemplateRejected() {
	ctx := context.Background()
	template := suite.pendingTemplate()
	template.Status = domain.StatusComplete

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{Status: "COMPLETE"}, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CompleteTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_NonPlannedRejected() {
	ctx := context.Background()
	template := suite.pendingTemplate()
	template.Planned = false

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{Status: "DISABLED"}, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DisableGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DisableOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateStatus_PendingTargetRejected() {
	ctx := context.Background()
	template := suite.pendingTemplate()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, template.TransactionID).Return(template, nil).Once()

	err := suite.service.UpdateStatus(ctx, template.TransactionID, dto.UpdateTransactionStatusRequest{Status: "PENDING"}, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
