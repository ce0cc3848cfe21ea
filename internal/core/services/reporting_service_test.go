package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumByBucket(ctx context.Context, q portsrepo.ChartQuery) ([]domain.ChartRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartRow), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestChart_ZeroFillsEmptyBuckets() {
	ctx := context.Background()
	rows := []domain.ChartRow{
		{Bucket: "2025-01", Sum: decimal.NewFromInt(120)},
		{Bucket: "2025-03", Sum: decimal.NewFromInt(45)},
	}
	suite.mockRepo.On("SumByBucket", ctx, mock.Anything).Return(rows, nil).Once()

	resp, err := suite.service.Chart(ctx, dto.ChartParams{
		Type:       "EXPENSE",
		PeriodFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		Bucket:     "MONTH",
	})
	suite.Require().NoError(err)

	suite.Equal([]string{"2025-01", "2025-02", "2025-03", "2025-04"}, resp.Labels)
	suite.Require().Len(resp.Values, 4)
	suite.True(resp.Values[0].Equal(decimal.NewFromInt(120)))
	suite.True(resp.Values[1].IsZero())
	suite.True(resp.Values[2].Equal(decimal.NewFromInt(45)))
	suite.True(resp.Values[3].IsZero())
}

func (suite *ReportingServiceTestSuite) TestChart_QuarterLabels() {
	ctx := context.Background()
	suite.mockRepo.On("SumByBucket", ctx, mock.Anything).Return([]domain.ChartRow{}, nil).Once()

	resp, err := suite.service.Chart(ctx, dto.ChartParams{
		Type:       "INCOME",
		PeriodFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Bucket:     "QUARTER",
	})
	suite.Require().NoError(err)
	suite.Equal([]string{"2025-Q1", "2025-Q2", "2025-Q3", "2025-Q4"}, resp.Labels)
}

func (suite *ReportingServiceTestSuite) TestChart_UnknownBucketRejected() {
	ctx := context.Background()
	_, err := suite.service.Chart(ctx, dto.ChartParams{
		Type:       "EXPENSE",
		PeriodFrom: time.Now(),
		PeriodTo:   time.Now(),
		Bucket:     "DECADE",
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SumByBucket", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
