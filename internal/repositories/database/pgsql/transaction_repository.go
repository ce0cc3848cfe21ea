package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	"github.com/finoffice/finoffice_backend/internal/models"
	"github.com/finoffice/finoffice_backend/internal/utils/mapping"
	"github.com/finoffice/finoffice_backend/internal/utils/pagination"
)

const transactionColumns = `
	transaction_id, owner_id, type, category_id, project_id, description,
	account_from_id, account_to_id, contractor_kind, contractor_id,
	amount, conversion_rate, date, planned, status,
	repeat, repeat_every, repeat_code,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxTransactionRepository creates the repository for ledger rows. The
// account repository is injected so balance writes share the same database
// transaction as the row inserts.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func queueTransactionInsert(batch *pgx.Batch, m models.Transaction) {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	batch.Queue(query,
		m.TransactionID,
		m.OwnerID,
		m.Type,
		m.CategoryID,
		nullable(m.ProjectID),
		m.Description,
		m.AccountFromID,
		m.AccountToID,
		m.ContractorKind,
		m.ContractorID,
		m.Amount,
		m.ConversionRate,
		m.Date,
		m.Planned,
		m.Status,
		nullable(m.Repeat),
		m.RepeatEvery,
		nullable(m.RepeatCode),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// applyBalanceChanges locks the affected accounts in sorted-ID order and
// applies the deltas inside the given transaction.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// SaveTransactions bulk-inserts a ledger, applies the balance deltas and
// optionally removes the emptied source account, all in one transaction.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, deleteAccountID string) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		queueTransactionInsert(batch, mapping.ToModelTransaction(txn))
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to execute transaction insert batch", err)
	}

	userID := txns[0].CreatedBy
	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, userID, txns[0].CreatedAt); err != nil {
		return err
	}

	if deleteAccountID != "" {
		if err := r.accountRepo.DeleteAccountInTx(ctx, tx, deleteAccountID); err != nil {
			return apperrors.NewAppError(500, "failed to delete source account "+deleteAccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var projectID, repeat, repeatCode sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Type,
		&m.CategoryID,
		&projectID,
		&m.Description,
		&m.AccountFromID,
		&m.AccountToID,
		&m.ContractorKind,
		&m.ContractorID,
		&m.Amount,
		&m.ConversionRate,
		&m.Date,
		&m.Planned,
		&m.Status,
		&repeat,
		&m.RepeatEvery,
		&repeatCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.ProjectID = projectID.String
	m.Repeat = repeat.String
	m.RepeatCode = repeatCode.String
	return &m, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// FindGroupRepresentatives picks the latest planned, completed row of each
// recurrence group dated in the given year.
func (r *PgxTransactionRepository) FindGroupRepresentatives(ctx context.Context, year int) ([]domain.Transaction, error) {
	query := `
		SELECT DISTINCT ON (repeat_code) ` + transactionColumns + `
		FROM transactions
		WHERE planned = TRUE
		  AND status = 'COMPLETE'
		  AND repeat_code IS NOT NULL
		  AND date >= $1 AND date < $2
		ORDER BY repeat_code, date DESC;
	`
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group representatives", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan representative row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating representative rows", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// CompleteTemplate inserts the realized twin, applies its balance deltas and
// marks the template COMPLETE, all in one transaction.
func (r *PgxTransactionRepository) CompleteTemplate(ctx context.Context, templateID string, realized domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queueTransactionInsert(batch, mapping.ToModelTransaction(realized))
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert realized transaction", err)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, realized.CreatedBy, realized.CreatedAt); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = 'COMPLETE', last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND status = 'PENDING';
	`, templateID, realized.CreatedAt, realized.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark template complete", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost the race with a concurrent transition.
		return apperrors.ErrInvalidTransition
	}

	return r.Commit(ctx, tx)
}

// DisableGroup flips honored rows of the group to DISABLED and hard-deletes
// pending rows dated on or after cutoff.
func (r *PgxTransactionRepository) DisableGroup(ctx context.Context, repeatCode string, cutoff time.Time, actorID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = 'DISABLED', last_updated_at = $2, last_updated_by = $3
		WHERE repeat_code = $1 AND status = 'COMPLETE';
	`, repeatCode, now, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to disable completed rows of group "+repeatCode, err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM transactions
		WHERE repeat_code = $1 AND status = 'PENDING' AND date >= $2;
	`, repeatCode, cutoff); err != nil {
		return apperrors.NewAppError(500, "failed to delete pending rows of group "+repeatCode, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DisableOne(ctx context.Context, transactionID string, actorID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET status = 'DISABLED', last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND status = 'PENDING';
	`, transactionID, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to disable transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// ListTransactions pages through rows newest first, keyed on (date,
// created_at) with an opaque cursor token.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, q portsrepo.ListTransactionsQuery) ([]domain.Transaction, *string, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = pagination.DefaultPageSize
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE date >= $1 AND date <= $2`
	orderBy := `ORDER BY date DESC, created_at DESC`
	args := []interface{}{q.PeriodFrom, q.PeriodTo}

	if q.NextToken != nil && *q.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*q.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (date, created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query := baseQuery + " " + orderBy + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextToken = &token
	}
	return mapping.ToDomainTransactionSlice(ms), nextToken, nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, transactionIDs []string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = ANY($1);`, transactionIDs); err != nil {
		return apperrors.NewAppError(500, "failed to delete transactions", err)
	}
	return nil
}
