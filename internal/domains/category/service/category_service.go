package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/pkg/cache"
)

const listCacheTTL = 5 * time.Minute

// categoryService implements category.Service
type categoryService struct {
	repo     category.Repository
	cache    cache.Cache
	enqueuer queue.Enqueuer
}

// NewCategoryService creates a new category service instance
// Dependency injection pattern - receives collaborators from container
func NewCategoryService(repo category.Repository, c cache.Cache, enqueuer queue.Enqueuer) category.Service {
	return &categoryService{
		repo:     repo,
		cache:    c,
		enqueuer: enqueuer,
	}
}

// ListCategories returns the cached list projection when available.
func (s *categoryService) ListCategories(ctx context.Context) ([]*category.CategorySummary, error) {
	var cached []*category.CategorySummary
	if found, err := s.cache.Get(ctx, category.ListCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, category.NewListCategoriesError(err)
	}
	if summaries == nil {
		summaries = []*category.CategorySummary{}
	}

	if err := s.cache.Set(ctx, category.ListCacheKey, summaries, listCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache category list")
	}

	return summaries, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	if req == nil {
		return nil, category.NewInvalidCategoryData(errRequired("request body"))
	}
	if err := req.Validate(); err != nil {
		return nil, category.NewInvalidCategoryData(err)
	}

	cat := &category.Category{
		EnglishName: strings.TrimSpace(req.EnglishName),
		ArabicName:  strings.TrimSpace(req.ArabicName),
	}

	created, err := s.repo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *category.UpdateCategoryRequest) (*category.Category, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, category.NewInvalidCategoryID(id)
	}

	if req == nil || req.Empty() {
		return nil, category.NewInvalidCategoryData(errRequired("update data"))
	}
	if err := req.Validate(); err != nil {
		return nil, category.NewInvalidCategoryData(err)
	}

	updated, err := s.repo.Update(ctx, catID, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, category.NewCategoryNotFound()
	}

	s.invalidateList(ctx)
	return updated, nil
}

// DeleteCategory removes the category and everything beneath it, then
// hands the orphaned external-store images to the cleanup queue.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) (*category.CascadeResult, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, category.NewInvalidCategoryID(id)
	}

	result, err := s.repo.DeleteCascade(ctx, catID)
	if err != nil {
		return nil, err
	}

	// The rows are gone; a cleanup failure only leaves external assets
	// behind, so it is logged rather than surfaced.
	if err := s.enqueuer.EnqueueImageCleanup(ctx, result.ImagePublicIDs); err != nil {
		log.Error().Err(err).
			Str("category_id", id).
			Int("images", len(result.ImagePublicIDs)).
			Msg("Failed to enqueue image cleanup after cascade")
	}

	s.invalidateList(ctx)
	return result, nil
}

func (s *categoryService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, category.ListCacheKey); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate category list cache")
	}
}

func errRequired(what string) error {
	return fmt.Errorf("%s is required", what)
}
