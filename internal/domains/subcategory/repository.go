package subcategory

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for sub-categories.
type Repository interface {
	// MainCategoryExists checks the parent before a create or list.
	MainCategoryExists(ctx context.Context, mainCategoryID uuid.UUID) (bool, error)

	// ListByParent returns the children of a main category with their
	// provider counts.
	ListByParent(ctx context.Context, mainCategoryID uuid.UUID) ([]*SubCategorySummary, error)

	// GetByID returns nil, nil when the sub-category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*SubCategory, error)

	Create(ctx context.Context, sub *SubCategory) (*SubCategory, error)

	// Update applies the non-nil patch fields; returns nil, nil when absent.
	Update(ctx context.Context, id uuid.UUID, patch *UpdateSubCategoryRequest) (*SubCategory, error)

	// DeleteCascade removes the sub-category and its providers in one
	// transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeResult, error)
}
