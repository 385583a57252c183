package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level entry of the two-level classification tree.
// Sub-categories link back via their main_category_id column, so the
// category row itself carries no child references.
type Category struct {
	ID          uuid.UUID `json:"id"`
	EnglishName string    `json:"englishName"`
	ArabicName  string    `json:"arabicName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategorySummary is the list projection: names plus a computed child count.
type CategorySummary struct {
	ID               uuid.UUID `json:"id"`
	EnglishName      string    `json:"englishName"`
	ArabicName       string    `json:"arabicName"`
	SubCategoryCount int       `json:"subCategoryCount"`
}

// CascadeResult reports what a category deletion removed.
type CascadeResult struct {
	SubCategoriesDeleted int
	ProvidersDeleted     int
	// ImagePublicIDs are the external-store assets of the deleted
	// providers, collected for cleanup.
	ImagePublicIDs []string
}
