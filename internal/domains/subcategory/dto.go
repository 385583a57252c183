package subcategory

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateSubCategoryRequest struct {
	EnglishName string `json:"englishName"`
	ArabicName  string `json:"arabicName"`
}

func (r CreateSubCategoryRequest) Validate() error {
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

type UpdateSubCategoryRequest struct {
	EnglishName *string `json:"englishName,omitempty"`
	ArabicName  *string `json:"arabicName,omitempty"`
}

func (r UpdateSubCategoryRequest) Validate() error {
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

func (r UpdateSubCategoryRequest) Empty() bool {
	return r.EnglishName == nil && r.ArabicName == nil
}
