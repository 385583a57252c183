package subcategory

import (
	"errors"
	"fmt"
	"net/http"
)

// SubCategoryError is the structured error type for the sub-category domain.
type SubCategoryError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubCategoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SubCategoryError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewSubCategoryNotFound() *SubCategoryError {
	return &SubCategoryError{
		Code:    "SUB_CATEGORY_NOT_FOUND",
		Message: "Sub-category not found",
	}
}

func NewMainCategoryNotFound() *SubCategoryError {
	return &SubCategoryError{
		Code:    "MAIN_CATEGORY_NOT_FOUND",
		Message: "Main category not found",
	}
}

func NewInvalidSubCategoryID(id string) *SubCategoryError {
	return &SubCategoryError{
		Code:    "INVALID_SUB_CATEGORY_ID",
		Message: fmt.Sprintf("Invalid sub-category ID format: %q", id),
	}
}

func NewInvalidMainCategoryID(id string) *SubCategoryError {
	return &SubCategoryError{
		Code:    "INVALID_MAIN_CATEGORY_ID",
		Message: fmt.Sprintf("Invalid main category ID format: %q", id),
	}
}

func NewInvalidSubCategoryData(err error) *SubCategoryError {
	return &SubCategoryError{
		Code:    "INVALID_SUB_CATEGORY_DATA",
		Message: err.Error(),
		Err:     err,
	}
}

func NewListSubCategoriesError(err error) *SubCategoryError {
	return &SubCategoryError{
		Code:    "LIST_SUB_CATEGORIES_ERROR",
		Message: "Failed to list sub-categories",
		Err:     err,
	}
}

func NewCreateSubCategoryError(err error) *SubCategoryError {
	return &SubCategoryError{
		Code:    "CREATE_SUB_CATEGORY_ERROR",
		Message: "Failed to create sub-category",
		Err:     err,
	}
}

func NewUpdateSubCategoryError(err error) *SubCategoryError {
	return &SubCategoryError{
		Code:    "UPDATE_SUB_CATEGORY_ERROR",
		Message: "Failed to update sub-category",
		Err:     err,
	}
}

func NewDeleteSubCategoryError(err error) *SubCategoryError {
	return &SubCategoryError{
		Code:    "DELETE_SUB_CATEGORY_ERROR",
		Message: "Failed to delete sub-category",
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsSubCategoryNotFound(err error) bool {
	var scErr *SubCategoryError
	return errors.As(err, &scErr) && scErr.Code == "SUB_CATEGORY_NOT_FOUND"
}

func IsMainCategoryNotFound(err error) bool {
	var scErr *SubCategoryError
	return errors.As(err, &scErr) && scErr.Code == "MAIN_CATEGORY_NOT_FOUND"
}

// GetErrorResponse maps a sub-category error to an HTTP status, message and code.
func GetErrorResponse(err error) (statusCode int, message string, errorCode string) {
	var scErr *SubCategoryError
	if !errors.As(err, &scErr) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}

	switch scErr.Code {
	case "SUB_CATEGORY_NOT_FOUND", "MAIN_CATEGORY_NOT_FOUND":
		return http.StatusNotFound, scErr.Message, scErr.Code
	case "INVALID_SUB_CATEGORY_ID", "INVALID_MAIN_CATEGORY_ID", "INVALID_SUB_CATEGORY_DATA":
		return http.StatusBadRequest, scErr.Message, scErr.Code
	default:
		return http.StatusInternalServerError, scErr.Message, scErr.Code
	}
}
