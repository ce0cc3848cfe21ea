package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingSvcFacade.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Chart aggregates matching transactions into a label/value series. Buckets
// with no transactions appear with a zero value so consecutive labels are
// contiguous over the requested period.
func (s *reportingService) Chart(ctx context.Context, params dto.ChartParams) (*dto.ChartResponse, error) {
	bucket := domain.PeriodBucket(params.Bucket)
	switch bucket {
	case domain.BucketDay, domain.BucketWeek, domain.BucketMonth, domain.BucketQuarter, domain.BucketYear:
	default:
		return nil, fmt.Errorf("%w: unknown bucket %q", apperrors.ErrValidation, params.Bucket)
	}
	if params.PeriodTo.Before(params.PeriodFrom) {
		return nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}

	q := portsrepo.ChartQuery{
		Type:       domain.TransactionType(params.Type),
		PeriodFrom: params.PeriodFrom,
		PeriodTo:   params.PeriodTo,
		Bucket:     bucket,
	}
	if params.Planned != nil {
		q.Planned = *params.Planned
	}

	rows, err := s.reportingRepo.SumByBucket(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate chart: %w", err)
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.Bucket] = r.Sum
	}

	resp := &dto.ChartResponse{}
	for _, label := range bucketLabels(params.PeriodFrom, params.PeriodTo, bucket) {
		resp.Labels = append(resp.Labels, label)
		if sum, ok := sums[label]; ok {
			resp.Values = append(resp.Values, sum)
		} else {
			resp.Values = append(resp.Values, decimal.Zero)
		}
	}
	return resp, nil
}

// BucketLabel renders the bucket key for a date, matching the keys produced
// by the aggregation query.
func BucketLabel(d time.Time, bucket domain.PeriodBucket) string {
	switch bucket {
	case domain.BucketDay:
		return d.Format(time.DateOnly)
	case domain.BucketWeek:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case domain.BucketMonth:
		return d.Format("2006-01")
	case domain.BucketQuarter:
		return fmt.Sprintf("%04d-Q%d", d.Year(), (int(d.Month())-1)/3+1)
	default:
		return d.Format("2006")
	}
}

func bucketLabels(from, to time.Time, bucket domain.PeriodBucket) []string {
	var labels []string
	seen := map[string]bool{}
	for d := from; !d.After(to); d = stepBucket(d, bucket) {
		label := BucketLabel(d, bucket)
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	// The final partial bucket still gets a label.
	last := BucketLabel(to, bucket)
	if !seen[last] {
		labels = append(labels, last)
	}
	return labels
}

func stepBucket(d time.Time, bucket domain.PeriodBucket) time.Time {
	switch bucket {
	case domain.BucketDay:
		return d.AddDate(0, 0, 1)
	case domain.BucketWeek:
		return d.AddDate(0, 0, 7)
	case domain.BucketMonth:
		return d.AddDate(0, 1, 0)
	case domain.BucketQuarter:
		return d.AddDate(0, 3, 0)
	default:
		return d.AddDate(1, 0, 0)
	}
}
