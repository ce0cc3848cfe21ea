package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/finoffice/finoffice_backend/internal/handlers"
	"github.com/finoffice/finoffice_backend/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, actorUserID string) error {
	args := m.Called(ctx, transactionID, req, actorUserID)
	return args.Error(0)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
func (m *MockTransactionService) DeleteTransactions(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
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

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ContractorService ---
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

var _ portssvc.ContractorSvc = (*MockContractorService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockAccountService     *MockAccountService
	mockCategoryService    *MockCategoryService
	mockCurrencyService    *MockCurrencyService
	mockContractorService  *MockContractorService
	jwtSecret              string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockAccountService = new(MockAccountService)
	suite.mockCategoryService = new(MockCategoryService)
	suite.mockCurrencyService = new(MockCurrencyService)
	suite.mockContractorService = new(MockContractorService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, &portssvc.ServiceContainer{
		Transaction: suite.mockTransactionService,
		Account:     suite.mockAccountService,
		Category:    suite.mockCategoryService,
		Currency:    suite.mockCurrencyService,
		Contractor:  suite.mockContractorService,
	})
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	contractorID := uuid.NewString()

	body := dto.CreateTransactionRequest{
		Type:         string(domain.Expense),
		Amount:       decimal.NewFromFloat(120.50),
		AccountID:    accountID,
		CategoryID:   categoryID,
		ContractorID: contractorID,
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	created := []domain.Transaction{{
		TransactionID:  uuid.NewString(),
		Type:           domain.Expense,
		CategoryID:     categoryID,
		AccountFromID:  accountID,
		AccountToID:    uuid.NewString(),
		Amount:         decimal.NewFromFloat(120.50),
		ConversionRate: decimal.NewFromInt(1),
		Date:           body.Date,
		Status:         domain.StatusComplete,
	}}

	suite.mockTransactionService.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Type == body.Type && r.AccountID == accountID && r.Amount.Equal(body.Amount)
		}),
		userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(created[0].TransactionID, resp.Transactions[0].TransactionID)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidPayload() {
	userID := uuid.NewString()

	// missing required fields
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", userID, gin.H{"type": "EXPENSE"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", "", gin.H{})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, transactionID).
		Return(nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateStatus_InvalidTransition() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockTransactionService.On("UpdateStatus",
		mock.Anything, transactionID, mock.AnythingOfType("dto.UpdateTransactionStatusRequest"), userID,
	).Return(fmt.Errorf("%w: transaction is not pending", apperrors.ErrInvalidTransition)).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/transactions/"+transactionID+"/status", userID,
		dto.UpdateTransactionStatusRequest{Status: string(domain.StatusComplete)})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_ParsesQuery() {
	userID := uuid.NewString()
	nextToken := "b64cursor"
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{},
		NextToken:    &nextToken,
	}

	suite.mockTransactionService.On("ListTransactions",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 25 &&
				p.PeriodFrom != nil && p.PeriodFrom.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				p.PeriodTo != nil && p.PeriodTo.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
		}),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?period_from=2025-01-01&period_to=2025-01-31&limit=25", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_RejectsBadDate() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?period_from=31-01-2025", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestListContractors_UnknownWidget() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/contractors?widget=BOGUS", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockContractorService.AssertNotCalled(suite.T(), "ListContractors")
}

func (suite *TransactionHandlerTestSuite) TestListContractors_Success() {
	userID := uuid.NewString()
	contractors := []domain.Contractor{
		{Ref: domain.EntityRef{Kind: domain.EntityCustomer, ID: uuid.NewString()}, Name: "Acme GmbH"},
	}

	suite.mockContractorService.On("ListContractors", mock.Anything, domain.EntityCustomer).
		Return(contractors, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/contractors?widget="+string(domain.WidgetCustomer), userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ContractorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Acme GmbH", resp[0].Name)
	suite.mockContractorService.AssertExpectations(suite.T())
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
