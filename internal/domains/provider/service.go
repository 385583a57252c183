package provider

import (
	"context"
	"io"
)

type Service interface {
	ListProviders(ctx context.Context, subCategoryID string) ([]*ServiceProvider, error)
	GetProvider(ctx context.Context, id string) (*ServiceProvider, error)
	SearchProviders(ctx context.Context, query string) ([]*ServiceProvider, error)
	CreateProvider(ctx context.Context, subCategoryID string, req *CreateServiceProviderRequest, images [][]byte) (*ServiceProvider, error)
	UpdateProvider(ctx context.Context, id string, req *UpdateServiceProviderRequest, images [][]byte) (*ServiceProvider, error)
	DeleteProvider(ctx context.Context, id string) error
	// BulkImport reads an xlsx sheet of provider rows and creates them
	// under the given sub-category. Rows that fail validation are
	// reported in the result, not fatal.
	BulkImport(ctx context.Context, subCategoryID string, file io.Reader) (*BulkImportResult, error)
}
