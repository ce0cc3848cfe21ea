package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// contractorService resolves counterparties and provisions the per-currency
// sub-accounts money is booked against for expenses and incomes.
type contractorService struct {
	contractorRepo portsrepo.ContractorRepository
	accountRepo    portsrepo.AccountRepository
}

// NewContractorService creates a new ContractorSvc.
func NewContractorService(contractorRepo portsrepo.ContractorRepository, accountRepo portsrepo.AccountRepository) portssvc.ContractorSvc {
	return &contractorService{
		contractorRepo: contractorRepo,
		accountRepo:    accountRepo,
	}
}

var _ portssvc.ContractorSvc = (*contractorService)(nil)

// KindForWidget maps a category widget to the contractor kind its
// autocomplete should search.
func KindForWidget(widget domain.CategoryWidget) (domain.EntityKind, bool) {
	switch widget {
	case domain.WidgetOffice:
		return domain.EntityOffice, true
	case domain.WidgetCustomer:
		return domain.EntityCustomer, true
	case domain.WidgetUser:
		return domain.EntityUser, true
	default:
		return "", false
	}
}

func (s *contractorService) ListContractors(ctx context.Context, kind domain.EntityKind) ([]domain.Contractor, error) {
	contractors, err := s.contractorRepo.ListContractors(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors of kind %s: %w", kind, err)
	}
	return contractors, nil
}

// EnsureAccount returns the contractor's account in the given currency,
// creating it on first use. The account is named after the contractor and
// starts at zero.
func (s *contractorService) EnsureAccount(ctx context.Context, ref domain.EntityRef, currencyCode string, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if ref.IsZero() {
		return nil, fmt.Errorf("%w: contractor reference is required", apperrors.ErrValidation)
	}

	existing, err := s.accountRepo.FindOwnedAccountByCurrency(ctx, ref, currencyCode)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up contractor account: %w", err)
	}

	contractor, err := s.contractorRepo.FindContractor(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: contractor %s/%s does not exist", apperrors.ErrValidation, ref.Kind, ref.ID)
		}
		return nil, fmt.Errorf("failed to find contractor: %w", err)
	}

	now := time.Now()
	owner := ref
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         contractor.Name,
		CurrencyCode: currencyCode,
		Total:        decimal.Zero,
		Owner:        &owner,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// A concurrent creation may have won the race, re-read before failing.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindOwnedAccountByCurrency(ctx, ref, currencyCode)
		}
		return nil, fmt.Errorf("failed to create contractor account: %w", err)
	}

	logger.Info("provisioned contractor account",
		"accountID", account.AccountID,
		"ownerKind", ref.Kind,
		"ownerID", ref.ID,
		"currency", currencyCode,
	)
	return &account, nil
}
