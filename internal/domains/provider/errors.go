package provider

import (
	"fmt"
	"net/http"
)

// ProviderError carries a stable machine code next to the human message.
type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderNotFound(id string) *ProviderError {
	return &ProviderError{
		Code:    "PROVIDER_NOT_FOUND",
		Message: fmt.Sprintf("service provider with id '%s' not found", id),
	}
}

func NewSubCategoryNotFound(id string) *ProviderError {
	return &ProviderError{
		Code:    "SUB_CATEGORY_NOT_FOUND",
		Message: fmt.Sprintf("sub-category with id '%s' not found", id),
	}
}

func NewInvalidProviderID(id string) *ProviderError {
	return &ProviderError{
		Code:    "INVALID_PROVIDER_ID",
		Message: fmt.Sprintf("invalid service provider id: %s", id),
	}
}

func NewInvalidSubCategoryID(id string) *ProviderError {
	return &ProviderError{
		Code:    "INVALID_SUB_CATEGORY_ID",
		Message: fmt.Sprintf("invalid sub-category id: %s", id),
	}
}

func NewInvalidProviderData(err error) *ProviderError {
	return &ProviderError{
		Code:    "INVALID_PROVIDER_DATA",
		Message: "invalid service provider data",
		Err:     err,
	}
}

func NewInvalidImage(err error) *ProviderError {
	return &ProviderError{
		Code:    "INVALID_IMAGE",
		Message: "invalid image file",
		Err:     err,
	}
}

func NewUploadError(err error) *ProviderError {
	return &ProviderError{
		Code:    "UPLOAD_FAILED",
		Message: "failed to upload images",
		Err:     err,
	}
}

func NewListProvidersError(err error) *ProviderError {
	return &ProviderError{
		Code:    "LIST_PROVIDERS_ERROR",
		Message: "failed to list service providers",
		Err:     err,
	}
}

func NewSearchProvidersError(err error) *ProviderError {
	return &ProviderError{
		Code:    "SEARCH_PROVIDERS_ERROR",
		Message: "failed to search service providers",
		Err:     err,
	}
}

func NewCreateProviderError(err error) *ProviderError {
	return &ProviderError{
		Code:    "CREATE_PROVIDER_ERROR",
		Message: "failed to create service provider",
		Err:     err,
	}
}

func NewUpdateProviderError(err error) *ProviderError {
	return &ProviderError{
		Code:    "UPDATE_PROVIDER_ERROR",
		Message: "failed to update service provider",
		Err:     err,
	}
}

func NewDeleteProviderError(err error) *ProviderError {
	return &ProviderError{
		Code:    "DELETE_PROVIDER_ERROR",
		Message: "failed to delete service provider",
		Err:     err,
	}
}

func NewBulkImportError(err error) *ProviderError {
	return &ProviderError{
		Code:    "BULK_IMPORT_ERROR",
		Message: "failed to import service providers",
		Err:     err,
	}
}

func IsNotFound(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && (pe.Code == "PROVIDER_NOT_FOUND" || pe.Code == "SUB_CATEGORY_NOT_FOUND")
}

func IsValidationError(err error) bool {
	pe, ok := err.(*ProviderError)
	if !ok {
		return false
	}
	switch pe.Code {
	case "INVALID_PROVIDER_ID", "INVALID_SUB_CATEGORY_ID", "INVALID_PROVIDER_DATA", "INVALID_IMAGE", "BULK_IMPORT_ERROR":
		return true
	}
	return false
}

// GetErrorResponse maps a service error to HTTP status, message and code.
func GetErrorResponse(err error) (int, string, string) {
	pe, ok := err.(*ProviderError)
	if !ok {
		return http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR"
	}

	switch pe.Code {
	case "PROVIDER_NOT_FOUND", "SUB_CATEGORY_NOT_FOUND":
		return http.StatusNotFound, pe.Message, pe.Code
	case "INVALID_PROVIDER_ID", "INVALID_SUB_CATEGORY_ID", "INVALID_PROVIDER_DATA", "INVALID_IMAGE", "BULK_IMPORT_ERROR":
		return http.StatusBadRequest, pe.Message, pe.Code
	default:
		return http.StatusInternalServerError, pe.Message, pe.Code
	}
}
