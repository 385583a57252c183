package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListCacheKey caches the category list projection. Invalidated by every
// category write and by sub-category creates/deletes (the count changes).
const ListCacheKey = "categories:list"

type CreateCategoryRequest struct {
	EnglishName string `json:"englishName"`
	ArabicName  string `json:"arabicName"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EnglishName,
			validation.Required.Error("english name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.ArabicName,
			validation.Required.Error("arabic name is required"),
			validation.Length(1, 120),
		),
	)
}

type UpdateCategoryRequest struct {
	EnglishName *string `json:"englishName,omitempty"`
	ArabicName  *string `json:"arabicName,omitempty"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EnglishName,
			validation.NilOrNotEmpty.Error("english name cannot be empty"),
			validation.Length(1, 120),
		),
		validation.Field(&r.ArabicName,
			validation.NilOrNotEmpty.Error("arabic name cannot be empty"),
			validation.Length(1, 120),
		),
	)
}

// Empty reports whether the patch carries no fields.
func (r UpdateCategoryRequest) Empty() bool {
	return r.EnglishName == nil && r.ArabicName == nil
}
