package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/core/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	service  portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRepo)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_CachesAfterFirstRead() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{CurrencyCode: "EUR", Rate: decimal.RequireFromString("0.85")}

	suite.mockRepo.On("FindRateByCurrency", ctx, "EUR").Return(stored, nil).Once()

	first, err := suite.service.RateFor(ctx, "EUR")
	suite.Require().NoError(err)
	suite.True(first.Equal(stored.Rate))

	// Second read is served from the cache; the mock allows only one call.
	second, err := suite.service.RateFor(ctx, "EUR")
	suite.Require().NoError(err)
	suite.True(second.Equal(stored.Rate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_DefaultsToOneWhenUnstored() {
	ctx := context.Background()
	suite.mockRepo.On("FindRateByCurrency", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.RateFor(ctx, "XXX")
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_InvalidatesCache() {
	ctx := context.Background()
	old := &domain.ExchangeRate{CurrencyCode: "EUR", Rate: decimal.RequireFromString("0.85")}
	suite.mockRepo.On("FindRateByCurrency", ctx, "EUR").Return(old, nil).Once()

	_, err := suite.service.RateFor(ctx, "EUR")
	suite.Require().NoError(err)

	newRate := decimal.RequireFromString("0.90")
	suite.mockRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "EUR" && r.Rate.Equal(newRate)
	})).Return(nil).Once()

	_, err = suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{CurrencyCode: "EUR", Rate: newRate}, "admin")
	suite.Require().NoError(err)

	// Next read goes back to the table and sees the new rate.
	updated := &domain.ExchangeRate{CurrencyCode: "EUR", Rate: newRate}
	suite.mockRepo.On("FindRateByCurrency", ctx, "EUR").Return(updated, nil).Once()

	rate, err := suite.service.RateFor(ctx, "EUR")
	suite.Require().NoError(err)
	suite.True(rate.Equal(newRate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_RejectsNonPositive() {
	ctx := context.Background()
	_, err := suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{CurrencyCode: "EUR", Rate: decimal.Zero}, "admin")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
