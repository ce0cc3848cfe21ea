package dto

import (
	"time"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the pre-validated creation payload.
// Amount/rate bounds and recurrence consistency are checked again at the
// service boundary; binding tags catch the structural problems early.
type CreateTransactionRequest struct {
	Type              string          `json:"type" binding:"required,oneof=EXPENSE INCOME TRANSFER"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	AccountID         string          `json:"accountID" binding:"required"`
	TransferAccountID string          `json:"transferAccountID" binding:"required_if=Type TRANSFER"`
	CategoryID        string          `json:"categoryID" binding:"required"`
	ContractorID      string          `json:"contractorID" binding:"required_without=TransferAccountID"`
	ProjectID         string          `json:"projectID"`
	Description       string          `json:"description" binding:"max=3000"`
	ConversionRate    *decimal.Decimal `json:"conversionRate"`
	Date              time.Time       `json:"date" binding:"required" time_format:"2006-01-02"`
	Planned           bool            `json:"planned"`
	Repeat            string          `json:"repeat" binding:"omitempty,oneof=WEEKLY MONTHLY YEARLY,required_with=RepeatEvery"`
	RepeatEvery       int             `json:"repeatEvery" binding:"required_with=Repeat,omitempty,min=1"`

	// DeleteSourceAccount removes the source account once its balance has
	// been written, used when emptying an account with a final transfer.
	DeleteSourceAccount bool `json:"deleteSourceAccount"`
}

// UpdateTransactionStatusRequest drives the pending -> complete/disabled
// state machine. Amount and Description may override the template when
// completing.
type UpdateTransactionStatusRequest struct {
	Status      string           `json:"status" binding:"required,oneof=COMPLETE DISABLED"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

// OperationResult mirrors the generic success/message payload of the API.
type OperationResult struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
}

// ListTransactionsParams carries listing filters from the handler.
type ListTransactionsParams struct {
	PeriodFrom *time.Time
	PeriodTo   *time.Time
	Limit      int
	NextToken  *string
}

// DeleteTransactionsRequest is the bulk-delete payload.
type DeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// TransactionResponse is the API view of a transaction row.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	Type           string          `json:"type"`
	CategoryID     string          `json:"categoryID"`
	ProjectID      string          `json:"projectID,omitempty"`
	Description    string          `json:"description,omitempty"`
	AccountFromID  string          `json:"accountFromID"`
	AccountToID    string          `json:"accountToID"`
	ContractorKind string          `json:"contractorKind"`
	ContractorID   string          `json:"contractorID"`
	Amount         decimal.Decimal `json:"amount"`
	ConversionRate decimal.Decimal `json:"conversionRate"`
	Date           time.Time       `json:"date"`
	Planned        bool            `json:"planned"`
	Status         string          `json:"status"`
	Repeat         string          `json:"repeat,omitempty"`
	RepeatEvery    int             `json:"repeatEvery,omitempty"`
	RepeatCode     string          `json:"repeatCode,omitempty"`
	Actions        []string        `json:"actions"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Action hints surfaced to the UI next to a listed transaction.
const (
	ActionApprove  = "approve"
	ActionPlanned  = "planned"
	ActionRepeated = "repeated"
)

// ToTransactionResponse converts a domain transaction, deriving the action
// hints: planned items dated today are approvable, other planned items show
// as planned, recurring items additionally show the repeat marker.
func ToTransactionResponse(t domain.Transaction, today time.Time) TransactionResponse {
	actions := []string{}
	if t.Planned {
		if sameDay(t.Date, today) {
			actions = append(actions, ActionApprove)
		} else {
			actions = append(actions, ActionPlanned)
		}
	}
	if t.Recurring() {
		actions = append(actions, ActionRepeated)
	}
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		Type:           string(t.Type),
		CategoryID:     t.CategoryID,
		ProjectID:      t.ProjectID,
		Description:    t.Description,
		AccountFromID:  t.AccountFromID,
		AccountToID:    t.AccountToID,
		ContractorKind: string(t.Contractor.Kind),
		ContractorID:   t.Contractor.ID,
		Amount:         t.Amount,
		ConversionRate: t.ConversionRate,
		Date:           t.Date,
		Planned:        t.Planned,
		Status:         string(t.Status),
		Repeat:         string(t.Repeat),
		RepeatEvery:    t.RepeatEvery,
		RepeatCode:     t.RepeatCode,
		Actions:        actions,
		CreatedAt:      t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction, today time.Time) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t, today)
	}
	return out
}

// ListTransactionsResponse pairs a page of transactions with its cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
