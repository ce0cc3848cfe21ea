package models

import (
	"github.com/shopspring/decimal"
)

// Account is the DB row backing a balance holder.
// OwnerKind/OwnerID are empty for free-standing accounts.
type Account struct {
	AccountID    string          `db:"account_id"`
	Name         string          `db:"name"`
	CurrencyCode string          `db:"currency_code"`
	Total        decimal.Decimal `db:"total"`
	OwnerKind    string          `db:"owner_kind"` // nullable
	OwnerID      string          `db:"owner_id"`   // nullable
	IsActive     bool            `db:"is_active"`
	AuditFields
}
