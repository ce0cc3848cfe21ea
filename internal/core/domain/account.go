package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a balance holder in a single currency. Owner is nil for
// free-standing (system) accounts; contractor sub-accounts carry the
// owning entity reference and are auto-created on first use.
type Account struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Total        decimal.Decimal `json:"total"`
	Owner        *EntityRef      `json:"owner,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
