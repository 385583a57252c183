package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/pkg/cache"
)

// subCategoryService implements subcategory.Service
type subCategoryService struct {
	repo     subcategory.Repository
	cache    cache.Cache
	enqueuer queue.Enqueuer
}

// NewSubCategoryService creates a new sub-category service instance
func NewSubCategoryService(repo subcategory.Repository, c cache.Cache, enqueuer queue.Enqueuer) subcategory.Service {
	return &subCategoryService{
		repo:     repo,
		cache:    c,
		enqueuer: enqueuer,
	}
}

func (s *subCategoryService) ListByParent(ctx context.Context, mainCategoryID string) ([]*subcategory.SubCategorySummary, error) {
	parentID, err := uuid.Parse(mainCategoryID)
	if err != nil {
		return nil, subcategory.NewInvalidMainCategoryID(mainCategoryID)
	}

	exists, err := s.repo.MainCategoryExists(ctx, parentID)
	if err != nil {
		return nil, subcategory.NewListSubCategoriesError(err)
	}
	if !exists {
		return nil, subcategory.NewMainCategoryNotFound()
	}

	summaries, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, subcategory.NewListSubCategoriesError(err)
	}
	if summaries == nil {
		summaries = []*subcategory.SubCategorySummary{}
	}

	return summaries, nil
}

// CreateSubCategory verifies the parent first so a missing main category
// cannot leave an orphan row behind.
func (s *subCategoryService) CreateSubCategory(ctx context.Context, mainCategoryID string, req *subcategory.CreateSubCategoryRequest) (*subcategory.SubCategory, error) {
	parentID, err := uuid.Parse(mainCategoryID)
	if err != nil {
		return nil, subcategory.NewInvalidMainCategoryID(mainCategoryID)
	}

	if req == nil {
		return nil, subcategory.NewInvalidSubCategoryData(errors.New("request body is required"))
	}
	if err := req.Validate(); err != nil {
		return nil, subcategory.NewInvalidSubCategoryData(err)
	}

	exists, err := s.repo.MainCategoryExists(ctx, parentID)
	if err != nil {
		return nil, subcategory.NewCreateSubCategoryError(err)
	}
	if !exists {
		return nil, subcategory.NewMainCategoryNotFound()
	}

	sub := &subcategory.SubCategory{
		MainCategoryID: parentID,
		EnglishName:    strings.TrimSpace(req.EnglishName),
		ArabicName:     strings.TrimSpace(req.ArabicName),
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.invalidateCategoryList(ctx)
	return created, nil
}

func (s *subCategoryService) UpdateSubCategory(ctx context.Context, id string, req *subcategory.UpdateSubCategoryRequest) (*subcategory.SubCategory, error) {
	subID, err := uuid.Parse(id)
	if err != nil {
		return nil, subcategory.NewInvalidSubCategoryID(id)
	}

	if req == nil || req.Empty() {
		return nil, subcategory.NewInvalidSubCategoryData(errors.New("update data is required"))
	}
	if err := req.Validate(); err != nil {
		return nil, subcategory.NewInvalidSubCategoryData(err)
	}

	updated, err := s.repo.Update(ctx, subID, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, subcategory.NewSubCategoryNotFound()
	}

	return updated, nil
}

// DeleteSubCategory cascades to the providers beneath it. The parent link
// is a column on this row, so nothing dangles afterwards.
func (s *subCategoryService) DeleteSubCategory(ctx context.Context, id string) (*subcategory.CascadeResult, error) {
	subID, err := uuid.Parse(id)
	if err != nil {
		return nil, subcategory.NewInvalidSubCategoryID(id)
	}

	result, err := s.repo.DeleteCascade(ctx, subID)
	if err != nil {
		return nil, err
	}

	if err := s.enqueuer.EnqueueImageCleanup(ctx, result.ImagePublicIDs); err != nil {
		log.Error().Err(err).
			Str("sub_category_id", id).
			Int("images", len(result.ImagePublicIDs)).
			Msg("Failed to enqueue image cleanup after cascade")
	}

	s.invalidateCategoryList(ctx)
	return result, nil
}

// invalidateCategoryList drops the cached category projection; the
// subCategoryCount it carries just changed.
func (s *subCategoryService) invalidateCategoryList(ctx context.Context) {
	if err := s.cache.Delete(ctx, category.ListCacheKey); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate category list cache")
	}
}
