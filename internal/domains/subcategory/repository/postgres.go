package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/subcategory"
)

// postgresRepository implements subcategory.Repository on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new sub-category repository instance
func NewPostgresRepository(pool *pgxpool.Pool) subcategory.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) MainCategoryExists(ctx context.Context, mainCategoryID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM main_categories WHERE id = $1)`,
		mainCategoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check main category: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ListByParent(ctx context.Context, mainCategoryID uuid.UUID) ([]*subcategory.SubCategorySummary, error) {
	query := `
    SELECT s.id, s.english_name, s.arabic_name, COUNT(p.id) AS provider_count
    FROM sub_categories s
    LEFT JOIN service_providers p ON p.sub_category_id = s.id
    WHERE s.main_category_id = $1
    GROUP BY s.id, s.english_name, s.arabic_name, s.created_at
    ORDER BY s.created_at
  `

	rows, err := r.pool.Query(ctx, query, mainCategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories: %w", err)
	}
	defer rows.Close()

	var summaries []*subcategory.SubCategorySummary
	for rows.Next() {
		var s subcategory.SubCategorySummary
		if err := rows.Scan(&s.ID, &s.EnglishName, &s.ArabicName, &s.ServiceProviderCount); err != nil {
			return nil, fmt.Errorf("failed to scan sub-category row: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-category rows: %w", err)
	}

	return summaries, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*subcategory.SubCategory, error) {
	query := `
    SELECT id, main_category_id, english_name, arabic_name, created_at, updated_at
    FROM sub_categories
    WHERE id = $1
  `

	var sub subcategory.SubCategory
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.MainCategoryID,
		&sub.EnglishName,
		&sub.ArabicName,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sub-category by id: %w", err)
	}

	return &sub, nil
}

func (r *postgresRepository) Create(ctx context.Context, sub *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	query := `
    INSERT INTO sub_categories (main_category_id, english_name, arabic_name)
    VALUES ($1, $2, $3)
    RETURNING id, main_category_id, english_name, arabic_name, created_at, updated_at
  `

	var created subcategory.SubCategory
	err := r.pool.QueryRow(ctx, query, sub.MainCategoryID, sub.EnglishName, sub.ArabicName).Scan(
		&created.ID,
		&created.MainCategoryID,
		&created.EnglishName,
		&created.ArabicName,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, subcategory.NewCreateSubCategoryError(err)
	}

	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch *subcategory.UpdateSubCategoryRequest) (*subcategory.SubCategory, error) {
	query := `
    UPDATE sub_categories
    SET english_name = COALESCE($1, english_name),
        arabic_name  = COALESCE($2, arabic_name),
        updated_at   = NOW()
    WHERE id = $3
    RETURNING id, main_category_id, english_name, arabic_name, created_at, updated_at
  `

	var updated subcategory.SubCategory
	err := r.pool.QueryRow(ctx, query, patch.EnglishName, patch.ArabicName, id).Scan(
		&updated.ID,
		&updated.MainCategoryID,
		&updated.EnglishName,
		&updated.ArabicName,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, subcategory.NewUpdateSubCategoryError(err)
	}

	return &updated, nil
}

type imageRef struct {
	PublicID string `json:"publicId"`
}

// DeleteCascade removes the sub-category and its providers in one
// transaction, collecting provider image ids for external cleanup.
func (r *postgresRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*subcategory.CascadeResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}
	defer tx.Rollback(ctx)

	result := &subcategory.CascadeResult{}

	rows, err := tx.Query(ctx,
		`SELECT images FROM service_providers WHERE sub_category_id = $1`, id)
	if err != nil {
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return nil, subcategory.NewDeleteSubCategoryError(err)
		}
		var refs []imageRef
		if err := json.Unmarshal(raw, &refs); err != nil {
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
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}

	provTag, err := tx.Exec(ctx,
		`DELETE FROM service_providers WHERE sub_category_id = $1`, id)
	if err != nil {
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}
	result.ProvidersDeleted = int(provTag.RowsAffected())

	subTag, err := tx.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}
	if subTag.RowsAffected() == 0 {
		return nil, subcategory.NewSubCategoryNotFound()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, subcategory.NewDeleteSubCategoryError(err)
	}

	return result, nil
}
