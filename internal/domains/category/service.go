package category

import "context"

// Service is the business-logic contract for main categories.
// Identifier arguments arrive as raw strings and are validated before
// any store access.
type Service interface {
	ListCategories(ctx context.Context) ([]*CategorySummary, error)
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) (*CascadeResult, error)
}
