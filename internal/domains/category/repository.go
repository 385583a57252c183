package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for main categories.
type Repository interface {
	// List returns all categories with their sub-category counts.
	List(ctx context.Context) ([]*CategorySummary, error)

	// GetByID returns nil, nil when the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	Create(ctx context.Context, cat *Category) (*Category, error)

	// Update applies the non-nil patch fields; returns nil, nil when absent.
	Update(ctx context.Context, id uuid.UUID, patch *UpdateCategoryRequest) (*Category, error)

	// DeleteCascade removes the category, its sub-categories and their
	// service providers in one transaction, returning what was removed.
	DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeResult, error)
}
