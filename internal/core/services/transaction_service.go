package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/finoffice/finoffice_backend/internal/middleware"
	"github.com/finoffice/finoffice_backend/internal/utils"
	"github.com/finoffice/finoffice_backend/internal/utils/pagination"
	"github.com/finoffice/finoffice_backend/internal/utils/schedule"
)

var (
	maxAmount = decimal.RequireFromString("999999.99")
	maxRate   = decimal.RequireFromString("9999.99")
)

// Metrics
var (
	txnCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finoffice_transactions_created_total",
		Help: "Ledger rows created, by type",
	}, []string{"type", "planned"})

	txnTransitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finoffice_status_transitions_total",
		Help: "Planned transaction status transitions",
	}, []string{"target"})
)

// transactionService builds and persists ledgers: it resolves the parties of
// a creation request, expands recurring requests through the end of the
// starting year and drives the pending -> complete/disabled state machine.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepository
	accountRepo   portsrepo.AccountRepository
	categorySvc   portssvc.CategorySvcFacade
	rateSvc       portssvc.ExchangeRateReaderSvc
	contractorSvc portssvc.ContractorSvc
}

// NewTransactionService creates a new TransactionSvcFacade.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountRepository,
	categorySvc portssvc.CategorySvcFacade,
	rateSvc portssvc.ExchangeRateReaderSvc,
	contractorSvc portssvc.ContractorSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:       txnRepo,
		accountRepo:   accountRepo,
		categorySvc:   categorySvc,
		rateSvc:       rateSvc,
		contractorSvc: contractorSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) validateCreate(req dto.CreateTransactionRequest) error {
	if req.Amount.IsNegative() || req.Amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: amount must be between 0 and %s", apperrors.ErrValidation, maxAmount)
	}
	if req.ConversionRate != nil {
		if req.ConversionRate.IsNegative() || req.ConversionRate.GreaterThan(maxRate) {
			return fmt.Errorf("%w: conversion rate must be between 0 and %s", apperrors.ErrValidation, maxRate)
		}
	}
	if (req.Repeat == "") != (req.RepeatEvery == 0) {
		return fmt.Errorf("%w: repeat and repeatEvery must be provided together", apperrors.ErrValidation)
	}
	if req.Type == string(domain.Transfer) && req.TransferAccountID == "" {
		return fmt.Errorf("%w: transfer requires a destination account", apperrors.ErrValidation)
	}
	if req.Type != string(domain.Transfer) && req.ContractorID == "" {
		return fmt.Errorf("%w: contractor is required", apperrors.ErrValidation)
	}
	return nil
}

// resolveParties applies the per-type resolution rules and returns the
// resolved source/destination accounts, the effective conversion rate, the
// repriced amount and the contractor stamped on the record.
func (s *transactionService) resolveParties(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (from, to *domain.Account, rate, amount decimal.Decimal, contractor domain.EntityRef, err error) {
	zero := domain.EntityRef{}
	rate = decimal.NewFromInt(1)
	amount = req.Amount

	switch domain.TransactionType(req.Type) {
	case domain.Expense:
		from, err = s.accountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			return nil, nil, rate, amount, zero, fmt.Errorf("source account: %w", err)
		}
		contractor, err = s.contractorRef(ctx, req)
		if err != nil {
			return nil, nil, rate, amount, zero, err
		}
		to, err = s.contractorSvc.EnsureAccount(ctx, contractor, from.CurrencyCode, creatorUserID)
		if err != nil {
			return nil, nil, rate, amount, zero, err
		}

	case domain.Income:
		to, err = s.accountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			return nil, nil, rate, amount, zero, fmt.Errorf("destination account: %w", err)
		}
		contractor, err = s.contractorRef(ctx, req)
		if err != nil {
			return nil, nil, rate, amount, zero, err
		}
		from, err = s.contractorSvc.EnsureAccount(ctx, contractor, to.CurrencyCode, creatorUserID)
		if err != nil {
			return nil, nil, rate, amount, zero, err
		}

	case domain.Transfer:
		from, err = s.accountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			return nil, nil, rate, amount, zero, fmt.Errorf("source account: %w", err)
		}
		to, err = s.accountRepo.FindAccountByID(ctx, req.TransferAccountID)
		if err != nil {
			return nil, nil, rate, amount, zero, fmt.Errorf("destination account: %w", err)
		}
		if from.CurrencyCode != to.CurrencyCode {
			if req.ConversionRate != nil && req.ConversionRate.IsPositive() {
				rate = *req.ConversionRate
			} else {
				rate, err = s.rateSvc.RateFor(ctx, to.CurrencyCode)
				if err != nil {
					return nil, nil, rate, amount, zero, err
				}
			}
			if !rate.IsPositive() {
				return nil, nil, rate, amount, zero, fmt.Errorf("%w: no rate for %s", apperrors.ErrCurrencyMismatch, to.CurrencyCode)
			}
			amount = req.Amount.Mul(rate)
		}
		// A transfer is attributed to whoever receives the funds.
		if to.Owner != nil {
			contractor = *to.Owner
		}

	default:
		return nil, nil, rate, amount, zero, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	return from, to, rate, amount, contractor, nil
}

func (s *transactionService) contractorRef(ctx context.Context, req dto.CreateTransactionRequest) (domain.EntityRef, error) {
	category, err := s.categorySvc.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return domain.EntityRef{}, fmt.Errorf("category: %w", err)
	}
	kind, ok := KindForWidget(category.Widget)
	if !ok {
		return domain.EntityRef{}, fmt.Errorf("%w: category %s takes no contractor", apperrors.ErrValidation, category.CategoryID)
	}
	return domain.EntityRef{Kind: kind, ID: req.ContractorID}, nil
}

// CreateTransaction resolves the request, builds the base instance plus any
// recurrence expansion and persists everything in one database transaction.
// Balances move only for the non-planned base instance; planned rows settle
// later through UpdateStatus.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	from, to, rate, amount, contractor, err := s.resolveParties(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := domain.StatusComplete
	if req.Planned {
		status = domain.StatusPending
	}

	base := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OwnerID:        creatorUserID,
		Type:           domain.TransactionType(req.Type),
		CategoryID:     req.CategoryID,
		ProjectID:      req.ProjectID,
		Description:    req.Description,
		AccountFromID:  from.AccountID,
		AccountToID:    to.AccountID,
		Contractor:     contractor,
		Amount:         amount,
		ConversionRate: rate,
		Date:           req.Date,
		Planned:        req.Planned,
		Status:         status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	txns := []domain.Transaction{base}
	if req.Repeat != "" {
		code, err := utils.NewRepeatCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate repeat code: %w", err)
		}
		base.Repeat = domain.RepeatUnit(req.Repeat)
		base.RepeatEvery = req.RepeatEvery
		base.RepeatCode = code
		base.Planned = true
		base.Status = domain.StatusPending
		txns[0] = base

		for _, d := range schedule.ExpandDates(base.Date, base.Repeat, base.RepeatEvery) {
			inst := base
			inst.TransactionID = uuid.NewString()
			inst.Date = d
			txns = append(txns, inst)
		}
	}

	balanceChanges := map[string]decimal.Decimal{}
	deleteAccountID := ""
	if !txns[0].Planned {
		balanceChanges[from.AccountID] = base.Amount.Neg()
		credit := base.Amount
		if !rate.Equal(decimal.NewFromInt(1)) {
			credit = base.Amount.Div(rate)
		}
		balanceChanges[to.AccountID] = balanceChanges[to.AccountID].Add(credit)
		if req.DeleteSourceAccount {
			deleteAccountID = from.AccountID
		}
	}

	if err := s.txnRepo.SaveTransactions(ctx, txns, balanceChanges, deleteAccountID); err != nil {
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}

	txnCreatedTotal.WithLabelValues(string(base.Type), fmt.Sprintf("%t", txns[0].Planned)).Add(float64(len(txns)))
	logger.Info("created transaction ledger",
		"transactionID", base.TransactionID,
		"type", base.Type,
		"instances", len(txns),
		"planned", txns[0].Planned,
	)
	return txns, nil
}

// UpdateStatus drives a planned, pending transaction to COMPLETE or DISABLED.
func (s *transactionService) UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if !template.Planned || template.Status != domain.StatusPending {
		return fmt.Errorf("%w: transaction %s is %s/planned=%t", apperrors.ErrInvalidTransition, transactionID, template.Status, template.Planned)
	}

	now := time.Now()
	switch domain.TransactionStatus(req.Status) {
	case domain.StatusComplete:
		realized := *template
		realized.TransactionID = uuid.NewString()
		realized.Planned = false
		realized.Status = domain.StatusComplete
		realized.Repeat = ""
		realized.RepeatEvery = 0
		realized.RepeatCode = ""
		if req.Amount != nil {
			if req.Amount.IsNegative() || req.Amount.GreaterThan(maxAmount) {
				return fmt.Errorf("%w: amount must be between 0 and %s", apperrors.ErrValidation, maxAmount)
			}
			realized.Amount = *req.Amount
		}
		if req.Description != nil {
			realized.Description = *req.Description
		}
		realized.CreatedAt = now
		realized.CreatedBy = actorUserID
		realized.LastUpdatedAt = now
		realized.LastUpdatedBy = actorUserID

		credit := realized.Amount
		if !realized.ConversionRate.Equal(decimal.NewFromInt(1)) && realized.ConversionRate.IsPositive() {
			credit = realized.Amount.Div(realized.ConversionRate)
		}
		balanceChanges := map[string]decimal.Decimal{
			realized.AccountFromID: realized.Amount.Neg(),
		}
		balanceChanges[realized.AccountToID] = balanceChanges[realized.AccountToID].Add(credit)

		if err := s.txnRepo.CompleteTemplate(ctx, template.TransactionID, realized, balanceChanges); err != nil {
			return fmt.Errorf("failed to complete transaction: %w", err)
		}
		txnTransitionTotal.WithLabelValues("complete").Inc()
		logger.Info("completed planned transaction",
			"templateID", template.TransactionID,
			"realizedID", realized.TransactionID,
		)
		return nil

	case domain.StatusDisabled:
		if template.RepeatCode == "" {
			if err := s.txnRepo.DisableOne(ctx, template.TransactionID, actorUserID, now); err != nil {
				return fmt.Errorf("failed to disable transaction: %w", err)
			}
			return nil
		}
		if err := s.txnRepo.DisableGroup(ctx, template.RepeatCode, template.Date, actorUserID, now); err != nil {
			return fmt.Errorf("failed to disable recurrence group: %w", err)
		}
		txnTransitionTotal.WithLabelValues("disable").Inc()
		logger.Info("disabled recurrence group",
			"repeatCode", template.RepeatCode,
			"cutoff", template.Date.Format(time.DateOnly),
		)
		return nil

	default:
		return fmt.Errorf("%w: cannot move pending transaction to %q", apperrors.ErrInvalidTransition, req.Status)
	}
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	now := time.Now()
	q := portsrepo.ListTransactionsQuery{
		PeriodFrom: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		PeriodTo:   now,
		Limit:      params.Limit,
	}
	if params.PeriodFrom != nil {
		q.PeriodFrom = *params.PeriodFrom
	}
	if params.PeriodTo != nil {
		q.PeriodTo = *params.PeriodTo
	}
	if q.Limit <= 0 || q.Limit > pagination.MaxPageSize {
		q.Limit = pagination.DefaultPageSize
	}
	q.NextToken = params.NextToken

	txns, next, err := s.txnRepo.ListTransactions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns, now),
		NextToken:    next,
	}, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.txnRepo.DeleteTransaction(ctx, transactionID)
}

func (s *transactionService) DeleteTransactions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no transaction ids given", apperrors.ErrValidation)
	}
	return s.txnRepo.DeleteTransactions(ctx, ids)
}
