package provider

import (
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/infrastructure/storage"
)

// ServiceProvider is a vendor record, the leaf of the classification tree.
type ServiceProvider struct {
	ID            uuid.UUID          `json:"id"`
	SubCategoryID uuid.UUID          `json:"subCategoryId"`
	Name          string             `json:"name"`
	Bio           string             `json:"bio"`
	ImagesURL     []storage.ImageRef `json:"imagesUrl"`
	WorkingDays   []string           `json:"workingDays"`
	WorkingHours  []string           `json:"workingHours"`
	ClosingHours  []string           `json:"closingHours"`
	PhoneContacts []PhoneContact     `json:"phoneContacts"`
	LocationLinks []string           `json:"locationLinks"`
	Offers        []Offer            `json:"offers,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type PhoneContact struct {
	PhoneNumber string `json:"phoneNumber"`
	HasWhatsApp bool   `json:"hasWhatsApp"`
	CanCall     bool   `json:"canCall"`
}

type Offer struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageUrls   []string `json:"imageUrls,omitempty"`
}

// BulkImportResult summarises an Excel import: rows created plus
// per-row failures. A bad row never aborts the whole import.
type BulkImportResult struct {
	Created int            `json:"created"`
	Errors  []BulkRowError `json:"errors,omitempty"`
}

type BulkRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
