package provider

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// SubCategoryExists checks the parent before a create attaches to it.
	SubCategoryExists(ctx context.Context, subCategoryID uuid.UUID) (bool, error)
	ListByParent(ctx context.Context, subCategoryID uuid.UUID) ([]*ServiceProvider, error)
	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceProvider, error)
	Search(ctx context.Context, query string) ([]*ServiceProvider, error)
	Create(ctx context.Context, p *ServiceProvider) (*ServiceProvider, error)
	// Update writes every mutable column from p.
	Update(ctx context.Context, p *ServiceProvider) (*ServiceProvider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
