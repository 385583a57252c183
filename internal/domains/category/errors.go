package category

import (
	"errors"
	"fmt"
	"net/http"
)

// CategoryError is the structured error type for the category domain.
type CategoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewCategoryNotFound() *CategoryError {
	return &CategoryError{
		Code:    "CATEGORY_NOT_FOUND",
		Message: "Category not found",
	}
}

func NewInvalidCategoryID(id string) *CategoryError {
	return &CategoryError{
		Code:    "INVALID_CATEGORY_ID",
		Message: fmt.Sprintf("Invalid category ID format: %q", id),
	}
}

func NewInvalidCategoryData(err error) *CategoryError {
	return &CategoryError{
		Code:    "INVALID_CATEGORY_DATA",
		Message: err.Error(),
		Err:     err,
	}
}

func NewListCategoriesError(err error) *CategoryError {
	return &CategoryError{
		Code:    "LIST_CATEGORIES_ERROR",
		Message: "Failed to list categories",
		Err:     err,
	}
}

func NewCreateCategoryError(err error) *CategoryError {
	return &CategoryError{
		Code:    "CREATE_CATEGORY_ERROR",
		Message: "Failed to create category",
		Err:     err,
	}
}

func NewUpdateCategoryError(err error) *CategoryError {
	return &CategoryError{
		Code:    "UPDATE_CATEGORY_ERROR",
		Message: "Failed to update category",
		Err:     err,
	}
}

func NewDeleteCategoryError(err error) *CategoryError {
	return &CategoryError{
		Code:    "DELETE_CATEGORY_ERROR",
		Message: "Failed to delete category",
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsCategoryNotFound(err error) bool {
	var catErr *CategoryError
	return errors.As(err, &catErr) && catErr.Code == "CATEGORY_NOT_FOUND"
}

func IsDomainError(err error) bool {
	var catErr *CategoryError
	return errors.As(err, &catErr)
}

// GetErrorResponse maps a category error to an HTTP status, message and code.
func GetErrorResponse(err error) (statusCode int, message string, errorCode string) {
	var catErr *CategoryError
	if !errors.As(err, &catErr) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}

	switch catErr.Code {
	case "CATEGORY_NOT_FOUND":
		return http.StatusNotFound, catErr.Message, catErr.Code
	case "INVALID_CATEGORY_ID", "INVALID_CATEGORY_DATA":
		return http.StatusBadRequest, catErr.Message, catErr.Code
	default:
		return http.StatusInternalServerError, catErr.Message, catErr.Code
	}
}
