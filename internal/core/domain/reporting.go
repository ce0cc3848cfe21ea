package domain

import "github.com/shopspring/decimal"

// PeriodBucket selects the grouping granularity of chart aggregation.
type PeriodBucket string

const (
	BucketDay     PeriodBucket = "DAY"
	BucketWeek    PeriodBucket = "WEEK"
	BucketMonth   PeriodBucket = "MONTH"
	BucketQuarter PeriodBucket = "QUARTER"
	BucketYear    PeriodBucket = "YEAR"
)

// ChartRow is one aggregated bucket: the bucket key as produced by the
// storage layer (e.g. "2025-03" for a month bucket) and the summed amount
// normalized to the base currency.
type ChartRow struct {
	Bucket string          `json:"bucket"`
	Sum    decimal.Decimal `json:"sum"`
}
