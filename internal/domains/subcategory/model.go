package subcategory

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory is the middle level of the classification tree. It carries
// its parent id; service providers link back the same way one level down.
type SubCategory struct {
	ID             uuid.UUID `json:"id"`
	MainCategoryID uuid.UUID `json:"mainCategoryId"`
	EnglishName    string    `json:"englishName"`
	ArabicName     string    `json:"arabicName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SubCategorySummary is the list-by-parent projection: names plus a
// computed provider count, never raw child ids.
type SubCategorySummary struct {
	ID                   uuid.UUID `json:"id"`
	EnglishName          string    `json:"englishName"`
	ArabicName           string    `json:"arabicName"`
	ServiceProviderCount int       `json:"serviceProviderCount"`
}

// CascadeResult reports what a sub-category deletion removed.
type CascadeResult struct {
	ProvidersDeleted int
	ImagePublicIDs   []string
}
