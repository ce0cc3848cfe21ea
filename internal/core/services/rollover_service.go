package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/middleware"
	"github.com/finoffice/finoffice_backend/internal/utils/schedule"
)

// rolloverService extends recurring groups that were honored in the prior
// year into the new year. One representative per repeat code is taken from
// the planned, completed rows of the prior year; its weekday/day-of-period
// alignment determines the new year's first occurrence, and the remainder of
// the year is expanded from there under the same repeat code.
type rolloverService struct {
	txnRepo portsrepo.TransactionRepository
}

// NewRolloverService creates a new RolloverSvc.
func NewRolloverService(txnRepo portsrepo.TransactionRepository) portssvc.RolloverSvc {
	return &rolloverService{txnRepo: txnRepo}
}

var _ portssvc.RolloverSvc = (*rolloverService)(nil)

// Run rolls every eligible group of priorYear = year-1 into year. A failing
// group is recorded and skipped; the run continues with the next group.
// Re-running against an already rolled year duplicates series, so the
// scheduler must guarantee at-most-once invocation per year.
func (s *rolloverService) Run(ctx context.Context, year int, now time.Time) (*domain.RolloverReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	priorYear := year - 1

	reps, err := s.txnRepo.FindGroupRepresentatives(ctx, priorYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurrence groups for %d: %w", priorYear, err)
	}

	report := &domain.RolloverReport{
		Year:           year,
		GroupsSeen:     len(reps),
		SkippedReasons: map[string]string{},
	}

	for _, rep := range reps {
		created, err := s.rollGroup(ctx, rep, year, now)
		if err != nil {
			logger.Error("rollover group failed",
				"repeatCode", rep.RepeatCode,
				"error", err,
			)
			report.GroupsSkipped++
			report.SkippedReasons[rep.RepeatCode] = err.Error()
			continue
		}
		report.GroupsPlanted++
		report.RowsCreated += created
	}

	logger.Info("rollover finished",
		"year", year,
		"groups", report.GroupsSeen,
		"planted", report.GroupsPlanted,
		"skipped", report.GroupsSkipped,
		"rows", report.RowsCreated,
	)
	return report, nil
}

func (s *rolloverService) rollGroup(ctx context.Context, rep domain.Transaction, year int, now time.Time) (int, error) {
	if !rep.Recurring() {
		return 0, fmt.Errorf("representative %s carries no recurrence descriptor", rep.TransactionID)
	}

	first := schedule.FirstOccurrence(rep.Date, rep.Repeat, rep.RepeatEvery, year)

	head := rep
	head.TransactionID = uuid.NewString()
	head.Date = first
	head.Planned = true
	head.Status = domain.StatusPending
	head.CreatedAt = now
	head.LastUpdatedAt = now

	series := []domain.Transaction{head}
	for _, d := range schedule.ExpandDates(first, rep.Repeat, rep.RepeatEvery) {
		inst := head
		inst.TransactionID = uuid.NewString()
		inst.Date = d
		series = append(series, inst)
	}

	// Planned rows never move balances at insert time.
	if err := s.txnRepo.SaveTransactions(ctx, series, map[string]decimal.Decimal{}, ""); err != nil {
		return 0, fmt.Errorf("failed to insert new-year series: %w", err)
	}
	return len(series), nil
}
