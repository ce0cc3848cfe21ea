package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartParams carries chart aggregation filters from the handler.
type ChartParams struct {
	Type       string
	Planned    *bool
	PeriodFrom time.Time
	PeriodTo   time.Time
	Bucket     string
}

// ChartResponse is a label/value series with gaps zero-filled.
type ChartResponse struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}
