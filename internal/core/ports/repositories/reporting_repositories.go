package repositories

import (
	"context"
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
)

// ChartQuery selects the transactions aggregated into one chart series.
type ChartQuery struct {
	Type       domain.TransactionType
	Planned    bool
	PeriodFrom time.Time
	PeriodTo   time.Time
	Bucket     domain.PeriodBucket
}

// ReportingRepository runs read-side aggregations over stored transactions.
type ReportingRepository interface {
	// SumByBucket groups matching transactions into period buckets, summing
	// amounts normalized to the base currency via the exchange-rate table.
	SumByBucket(ctx context.Context, q ChartQuery) ([]domain.ChartRow, error)
}
