package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/category"
)

// postgresRepository implements category.Repository on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new category repository instance
func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

// List returns the name projection plus a computed sub-category count.
func (r *postgresRepository) List(ctx context.Context) ([]*category.CategorySummary, error) {
	query := `
    SELECT c.id, c.english_name, c.arabic_name, COUNT(s.id) AS sub_category_count
    FROM main_categories c
    LEFT JOIN sub_categories s ON s.main_category_id = c.id
    GROUP BY c.id, c.english_name, c.arabic_name, c.created_at
    ORDER BY c.created_at
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var summaries []*category.CategorySummary
	for rows.Next() {
		var s category.CategorySummary
		if err := rows.Scan(&s.ID, &s.EnglishName, &s.ArabicName, &s.SubCategoryCount); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return summaries, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `
    SELECT id, english_name, arabic_name, created_at, updated_at
    FROM main_categories
    WHERE id = $1
  `

	var cat category.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&cat.ID,
		&cat.EnglishName,
		&cat.ArabicName,
		&cat.CreatedAt,
		&cat.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return &cat, nil
}

func (r *postgresRepository) Create(ctx context.Context, cat *category.Category) (*category.Category, error) {
	query := `
    INSERT INTO main_categories (english_name, arabic_name)
    VALUES ($1, $2)
    RETURNING id, english_name, arabic_name, created_at, updated_at
  `

	var created category.Category
	err := r.pool.QueryRow(ctx, query, cat.EnglishName, cat.ArabicName).Scan(
		&created.ID,
		&created.EnglishName,
		&created.ArabicName,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, category.NewCreateCategoryError(err)
	}

	return &created, nil
}

// Update applies only the non-nil patch fields via COALESCE.
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch *category.UpdateCategoryRequest) (*category.Category, error) {
	query := `
    UPDATE main_categories
    SET english_name = COALESCE($1, english_name),
        arabic_name  = COALESCE($2, arabic_name),
        updated_at   = NOW()
    WHERE id = $3
    RETURNING id, english_name, arabic_name, created_at, updated_at
  `

	var updated category.Category
	err := r.pool.QueryRow(ctx, query, patch.EnglishName, patch.ArabicName, id).Scan(
		&updated.ID,
		&updated.EnglishName,
		&updated.ArabicName,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, category.NewUpdateCategoryError(err)
	}

	return &updated, nil
}

// imageRef mirrors the provider images jsonb shape; only the public id
// matters for cleanup.
type imageRef struct {
	PublicID string `json:"publicId"`
}

// DeleteCascade removes the whole subtree in one transaction:
// providers of every sub-category, the sub-categories, then the category.
// Provider image ids are collected first so the caller can clean up the
// external store after commit.
func (r *postgresRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*category.CascadeResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}
	defer tx.Rollback(ctx)

	result := &category.CascadeResult{}

	// Collect external-store assets before the rows disappear
	imgQuery := `
    SELECT p.images
    FROM service_providers p
    JOIN sub_categories s ON p.sub_category_id = s.id
    WHERE s.main_category_id = $1
  `
	rows, err := tx.Query(ctx, imgQuery, id)
	if err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return nil, category.NewDeleteCategoryError(err)
		}
		var refs []imageRef
		if err := json.Unmarshal(raw, &refs); err != nil {
			// A corrupt images column must not block the cascade
			continue
		}
		for _, ref := range refs {
			if ref.PublicID != "" {
				result.ImagePublicIDs = append(result.ImagePublicIDs, ref.PublicID)
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}

	provTag, err := tx.Exec(ctx, `
    DELETE FROM service_providers
    WHERE sub_category_id IN (SELECT id FROM sub_categories WHERE main_category_id = $1)
  `, id)
	if err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}
	result.ProvidersDeleted = int(provTag.RowsAffected())

	subTag, err := tx.Exec(ctx, `DELETE FROM sub_categories WHERE main_category_id = $1`, id)
	if err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}
	result.SubCategoriesDeleted = int(subTag.RowsAffected())

	catTag, err := tx.Exec(ctx, `DELETE FROM main_categories WHERE id = $1`, id)
	if err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}
	if catTag.RowsAffected() == 0 {
		return nil, category.NewCategoryNotFound()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, category.NewDeleteCategoryError(err)
	}

	return result, nil
}
