package services

import (
	"context"

	"github.com/finoffice/finoffice_backend/internal/dto"
)

// ReportingSvcFacade aggregates transaction amounts for charting.
type ReportingSvcFacade interface {
	// Chart sums amounts per period bucket over a date range, zero-filling
	// buckets with no transactions so the series has no gaps.
	Chart(ctx context.Context, params dto.ChartParams) (*dto.ChartResponse, error)
}
