package subcategory

import "context"

// Service is the business-logic contract for sub-categories.
type Service interface {
	ListByParent(ctx context.Context, mainCategoryID string) ([]*SubCategorySummary, error)
	CreateSubCategory(ctx context.Context, mainCategoryID string, req *CreateSubCategoryRequest) (*SubCategory, error)
	UpdateSubCategory(ctx context.Context, id string, req *UpdateSubCategoryRequest) (*SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) (*CascadeResult, error)
}
