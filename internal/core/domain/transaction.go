package domain

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

// TransactionStatus is the lifecycle state of a transaction.
// COMPLETE and DISABLED are terminal.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusComplete TransactionStatus = "COMPLETE"
	StatusDisabled TransactionStatus = "DISABLED"
)

// RepeatUnit is the recurrence period of a planned transaction.
// The empty value means the transaction does not recur.
type RepeatUnit string

const (
	RepeatNone    RepeatUnit = ""
	RepeatWeekly  RepeatUnit = "WEEKLY"
	RepeatMonthly RepeatUnit = "MONTHLY"
	RepeatYearly  RepeatUnit = "YEARLY"
)

// Transaction is the atomic ledger record. It references accounts, a
// category and a contractor but owns none of them; balances are mutated
// only through the creation/completion path.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	OwnerID        string            `json:"ownerID"`
	Type           TransactionType   `json:"type"`
	CategoryID     string            `json:"categoryID"`
	ProjectID      string            `json:"projectID"` // optional
	Description    string            `json:"description"`
	AccountFromID  string            `json:"accountFromID"`
	AccountToID    string            `json:"accountToID"`
	Contractor     EntityRef         `json:"contractor"`
	Amount         decimal.Decimal   `json:"amount"`
	ConversionRate decimal.Decimal   `json:"conversionRate"` // 1 unless cross-currency transfer
	Date           time.Time         `json:"date"`
	Planned        bool              `json:"planned"`
	Status         TransactionStatus `json:"status"`
	Repeat         RepeatUnit        `json:"repeat"`
	RepeatEvery    int               `json:"repeatEvery"`
	RepeatCode     string            `json:"repeatCode"` // group correlation key; empty when non-recurring
	AuditFields
}

// Recurring reports whether the transaction belongs to a recurrence group.
func (t Transaction) Recurring() bool {
	return t.RepeatCode != ""
}
