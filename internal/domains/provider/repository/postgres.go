package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/provider"
)

type providerRepository struct {
	db *pgxpool.Pool
}

func NewProviderRepository(db *pgxpool.Pool) provider.Repository {
	return &providerRepository{db: db}
}

const providerColumns = `id, sub_category_id, name, bio, images, working_days, working_hours,
		closing_hours, phone_contacts, location_links, offers, created_at, updated_at`

func (r *providerRepository) SubCategoryExists(ctx context.Context, subCategoryID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sub_categories WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, subCategoryID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sub-category existence: %w", err)
	}
	return exists, nil
}

func (r *providerRepository) ListByParent(ctx context.Context, subCategoryID uuid.UUID) ([]*provider.ServiceProvider, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM service_providers
		WHERE sub_category_id = $1
		ORDER BY created_at DESC`, providerColumns)

	rows, err := r.db.Query(ctx, query, subCategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service providers: %w", err)
	}
	defer rows.Close()

	return scanProviders(rows)
}

func (r *providerRepository) GetByID(ctx context.Context, id uuid.UUID) (*provider.ServiceProvider, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_providers WHERE id = $1`, providerColumns)

	p, err := scanProvider(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service provider: %w", err)
	}
	return p, nil
}

func (r *providerRepository) Search(ctx context.Context, query string) ([]*provider.ServiceProvider, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM service_providers
		WHERE name ILIKE '%%' || $1 || '%%'
		ORDER BY name ASC`, providerColumns)

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search service providers: %w", err)
	}
	defer rows.Close()

	return scanProviders(rows)
}

func (r *providerRepository) Create(ctx context.Context, p *provider.ServiceProvider) (*provider.ServiceProvider, error) {
	query := fmt.Sprintf(`
		INSERT INTO service_providers (
			sub_category_id, name, bio, images, working_days, working_hours,
			closing_hours, phone_contacts, location_links, offers, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING %s`, providerColumns)

	now := time.Now()
	created, err := scanProvider(r.db.QueryRow(ctx, query,
		p.SubCategoryID, p.Name, p.Bio, p.ImagesURL,
		p.WorkingDays, p.WorkingHours, p.ClosingHours,
		p.PhoneContacts, p.LocationLinks, p.Offers, now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create service provider: %w", err)
	}
	return created, nil
}

func (r *providerRepository) Update(ctx context.Context, p *provider.ServiceProvider) (*provider.ServiceProvider, error) {
	query := fmt.Sprintf(`
		UPDATE service_providers
		SET name = $2, bio = $3, images = $4, working_days = $5,
			working_hours = $6, closing_hours = $7, phone_contacts = $8,
			location_links = $9, offers = $10, updated_at = $11
		WHERE id = $1
		RETURNING %s`, providerColumns)

	updated, err := scanProvider(r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Bio, p.ImagesURL,
		p.WorkingDays, p.WorkingHours, p.ClosingHours,
		p.PhoneContacts, p.LocationLinks, p.Offers, time.Now(),
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, provider.NewProviderNotFound(p.ID.String())
		}
		return nil, fmt.Errorf("failed to update service provider: %w", err)
	}
	return updated, nil
}

func (r *providerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM service_providers WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return provider.NewProviderNotFound(id.String())
	}
	return nil
}

func scanProvider(row pgx.Row) (*provider.ServiceProvider, error) {
	var p provider.ServiceProvider
	err := row.Scan(
		&p.ID, &p.SubCategoryID, &p.Name, &p.Bio, &p.ImagesURL,
		&p.WorkingDays, &p.WorkingHours, &p.ClosingHours,
		&p.PhoneContacts, &p.LocationLinks, &p.Offers,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProviders(rows pgx.Rows) ([]*provider.ServiceProvider, error) {
	providers := make([]*provider.ServiceProvider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate service providers: %w", err)
	}
	return providers, nil
}
