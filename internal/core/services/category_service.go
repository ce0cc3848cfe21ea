package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
)

// categoryService caches the category table. The widget tag is read on every
// expense/income creation; the table itself only changes by operator action.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository

	mu    sync.RWMutex
	byID  map[string]domain.Category
	all   []domain.Category
	ready bool
}

// NewCategoryService creates a new CategorySvcFacade.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		byID:         make(map[string]domain.Category),
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) load(ctx context.Context) error {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		return nil
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		s.byID[c.CategoryID] = c
	}
	s.all = categories
	s.ready = true
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Widget:     domain.CategoryWidget(req.Widget),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.ready {
		s.byID[category.CategoryID] = category
		s.all = append(s.all, category)
	}
	s.mu.Unlock()
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	c, ok := s.byID[categoryID]
	s.mu.RUnlock()
	if !ok {
		// Cache may be stale, fall through to the table once.
		fresh, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.byID[fresh.CategoryID] = *fresh
		s.mu.Unlock()
		return fresh, nil
	}
	return &c, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.all))
	copy(out, s.all)
	return out, nil
}
