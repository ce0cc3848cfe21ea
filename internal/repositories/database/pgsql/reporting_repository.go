package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-side aggregation repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// bucketExpr renders the to_char expression whose output matches the labels
// produced by the reporting service.
func bucketExpr(bucket domain.PeriodBucket) (string, error) {
	switch bucket {
	case domain.BucketDay:
		return `to_char(t.date, 'YYYY-MM-DD')`, nil
	case domain.BucketWeek:
		return `to_char(t.date, 'IYYY-"W"IW')`, nil
	case domain.BucketMonth:
		return `to_char(t.date, 'YYYY-MM')`, nil
	case domain.BucketQuarter:
		return `to_char(t.date, 'YYYY-"Q"Q')`, nil
	case domain.BucketYear:
		return `to_char(t.date, 'YYYY')`, nil
	default:
		return "", fmt.Errorf("%w: unknown bucket %q", apperrors.ErrValidation, bucket)
	}
}

// SumByBucket groups matching transactions into period buckets. Amounts are
// normalized to the base currency by dividing by the stored rate of the
// acting account's currency (source for expenses, destination otherwise);
// currencies with no stored rate count at face value.
func (r *PgxReportingRepository) SumByBucket(ctx context.Context, q portsrepo.ChartQuery) ([]domain.ChartRow, error) {
	expr, err := bucketExpr(q.Bucket)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + expr + ` AS bucket,
		       SUM(t.amount / COALESCE(er.rate, 1)) AS total
		FROM transactions t
		JOIN accounts a
		  ON a.account_id = CASE WHEN t.type = 'EXPENSE' THEN t.account_from_id ELSE t.account_to_id END
		LEFT JOIN exchange_rates er
		  ON er.currency_code = a.currency_code
		WHERE t.type = $1
		  AND t.planned = $2
		  AND t.status <> 'DISABLED'
		  AND t.date >= $3 AND t.date <= $4
		GROUP BY bucket
		ORDER BY bucket;
	`
	rows, err := r.Pool.Query(ctx, query, string(q.Type), q.Planned, q.PeriodFrom, q.PeriodTo)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to run chart aggregation", err)
	}
	defer rows.Close()

	var out []domain.ChartRow
	for rows.Next() {
		var row domain.ChartRow
		if err := rows.Scan(&row.Bucket, &row.Sum); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan chart row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating chart rows", err)
	}
	return out, nil
}
