package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// exchangeRateService is a read-through cache over the rate table. Rates
// change rarely, every transfer reads them, so lookups are served from
// memory and the cache is invalidated on writes.
type exchangeRateService struct {
	rateRepo portsrepo.ExchangeRateRepository

	mu    sync.RWMutex
	cache map[string]decimal.Decimal
}

// NewExchangeRateService creates a new ExchangeRateSvcFacade.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo: rateRepo,
		cache:    make(map[string]decimal.Decimal),
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// RateFor returns the stored rate for the currency, or 1 when none is stored.
func (s *exchangeRateService) RateFor(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	s.mu.RLock()
	if rate, ok := s.cache[currencyCode]; ok {
		s.mu.RUnlock()
		return rate, nil
	}
	s.mu.RUnlock()

	stored, err := s.rateRepo.FindRateByCurrency(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, fmt.Errorf("failed to look up rate for %s: %w", currencyCode, err)
	}

	s.mu.Lock()
	s.cache[currencyCode] = stored.Rate
	s.mu.Unlock()
	return stored.Rate, nil
}

// ListRates returns every stored rate, bypassing the cache.
func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return s.rateRepo.ListExchangeRates(ctx)
}

// UpsertRate replaces the stored rate for a currency and drops the cached
// value so the next read sees the new rate.
func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, actorUserID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   req.CurrencyCode,
		Rate:           req.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.Invalidate(req.CurrencyCode)
	return &rate, nil
}

// Invalidate drops a cached rate. An empty code clears the whole cache.
func (s *exchangeRateService) Invalidate(currencyCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if currencyCode == "" {
		s.cache = make(map[string]decimal.Decimal)
		return
	}
	delete(s.cache, currencyCode)
}
