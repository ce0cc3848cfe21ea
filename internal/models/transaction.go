package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a money movement.
type TransactionType string

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
)

// TransactionStatus is the lifecycle state of a transaction row.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusComplete TransactionStatus = "COMPLETE"
	StatusDisabled TransactionStatus = "DISABLED"
)

// Transaction is the DB row backing a ledger record.
type Transaction struct {
	TransactionID  string            `db:"transaction_id"`
	OwnerID        string            `db:"owner_id"`
	Type           TransactionType   `db:"type"`
	CategoryID     string            `db:"category_id"`
	ProjectID      string            `db:"project_id"` // nullable
	Description    string            `db:"description"`
	AccountFromID  string            `db:"account_from_id"`
	AccountToID    string            `db:"account_to_id"`
	ContractorKind string            `db:"contractor_kind"`
	ContractorID   string            `db:"contractor_id"`
	Amount         decimal.Decimal   `db:"amount"`
	ConversionRate decimal.Decimal   `db:"conversion_rate"`
	Date           time.Time         `db:"date"`
	Planned        bool              `db:"planned"`
	Status         TransactionStatus `db:"status"`
	Repeat         string            `db:"repeat"` // nullable
	RepeatEvery    int               `db:"repeat_every"`
	RepeatCode     string            `db:"repeat_code"` // nullable
	AuditFields
}
