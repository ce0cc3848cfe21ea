package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/core/services"
)

type RolloverServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.RolloverSvc
}

func (suite *RolloverServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewRolloverService(suite.mockTxnRepo)
}

func (suite *RolloverServiceTestSuite) representative(date time.Time, unit domain.RepeatUnit, every int) domain.Transaction {
	return domain.Transaction{
		TransactionID:  uuid.NewString(),
		Type:           domain.Expense,
		CategoryID:     "cat-1",
		AccountFromID:  "acct-from",
		AccountToID:    "acct-to",
		Amount:         decimal.NewFromInt(100),
		ConversionRate: decimal.NewFromInt(1),
		Date:           date,
		Planned:        true,
		Status:         domain.StatusComplete,
		Repeat:         unit,
		RepeatEvery:    every,
		RepeatCode:     uuid.NewString(),
	}
}

func (suite *RolloverServiceTestSuite) TestRun_PlantsMonthlyGroupIntoNewYear() {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	// Last honored occurrence: Friday 2024-12-13, monthly from month 2.
	rep := suite.representative(time.Date(2024, 12, 13, 0, 0, 0, 0, time.UTC), domain.RepeatMonthly, 2)

	suite.mockTxnRepo.On("FindGroupRepresentatives", ctx, 2024).Return([]domain.Transaction{rep}, nil).Once()

	var series []domain.Transaction
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			series = args.Get(1).([]domain.Transaction)
		}).Return(nil).Once()

	report, err := suite.service.Run(ctx, 2025, now)
	suite.Require().NoError(err)
	suite.Equal(1, report.GroupsSeen)
	suite.Equal(1, report.GroupsPlanted)
	suite.Equal(0, report.GroupsSkipped)

	suite.Require().NotEmpty(series)
	// 2025 opens on a Wednesday; the Friday-aligned day number is 3, so the
	// series starts 2025-02-03 and steps two months at a time.
	suite.Equal(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), series[0].Date)
	for i, txn := range series {
		suite.Equal(rep.RepeatCode, txn.RepeatCode, "rolled series keeps the group's code")
		suite.Equal(domain.StatusPending, txn.Status)
		suite.True(txn.Planned)
		suite.Equal(2025, txn.Date.Year())
		if i > 0 {
			suite.True(txn.Date.After(series[i-1].Date))
		}
	}
	suite.Equal(report.RowsCreated, len(series))
}

func (suite *RolloverServiceTestSuite) TestRun_FailingGroupIsSkippedNotFatal() {
	ctx := context.Background()
	now := time.Now()
	bad := suite.representative(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), domain.RepeatWeekly, 1)
	good := suite.representative(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), domain.RepeatYearly, 1)

	suite.mockTxnRepo.On("FindGroupRepresentatives", ctx, 2024).Return([]domain.Transaction{bad, good}, nil).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(series []domain.Transaction) bool {
		return len(series) > 0 && series[0].RepeatCode == bad.RepeatCode
	}), mock.Anything, "").Return(assert.AnError).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(series []domain.Transaction) bool {
		return len(series) > 0 && series[0].RepeatCode == good.RepeatCode
	}), mock.Anything, "").Return(nil).Once()

	report, err := suite.service.Run(ctx, 2025, now)
	suite.Require().NoError(err)
	suite.Equal(2, report.GroupsSeen)
	suite.Equal(1, report.GroupsPlanted)
	suite.Equal(1, report.GroupsSkipped)
	suite.Contains(report.SkippedReasons, bad.RepeatCode)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *RolloverServiceTestSuite) TestRun_RepresentativeWithoutDescriptorSkipped() {
	ctx := context.Background()
	rep := suite.representative(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), "", 0)
	rep.RepeatCode = "stale-code"

	suite.mockTxnRepo.On("FindGroupRepresentatives", ctx, 2024).Return([]domain.Transaction{rep}, nil).Once()

	report, err := suite.service.Run(ctx, 2025, time.Now())
	suite.Require().NoError(err)
	suite.Equal(1, report.GroupsSkipped)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRolloverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RolloverServiceTestSuite))
}
