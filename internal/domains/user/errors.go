package user

import (
	"fmt"
	"net/http"
)

type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserAlreadyExists(field string) *UserError {
	return &UserError{
		Code:    "USER_ALREADY_EXISTS",
		Message: fmt.Sprintf("a user with this %s already exists", field),
	}
}

func NewUserNotFound(id string) *UserError {
	return &UserError{
		Code:    "USER_NOT_FOUND",
		Message: fmt.Sprintf("user with id '%s' not found", id),
	}
}

func NewInvalidCredentials() *UserError {
	return &UserError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid phone or password",
	}
}

func NewInvalidToken() *UserError {
	return &UserError{
		Code:    "INVALID_TOKEN",
		Message: "invalid or expired token",
	}
}

func NewInvalidUserID(id string) *UserError {
	return &UserError{
		Code:    "INVALID_USER_ID",
		Message: fmt.Sprintf("invalid user id: %s", id),
	}
}

func NewInvalidUserData(err error) *UserError {
	return &UserError{
		Code:    "INVALID_USER_DATA",
		Message: "invalid user data",
		Err:     err,
	}
}

func NewRegisterError(err error) *UserError {
	return &UserError{
		Code:    "REGISTER_ERROR",
		Message: "failed to register user",
		Err:     err,
	}
}

func NewListUsersError(err error) *UserError {
	return &UserError{
		Code:    "LIST_USERS_ERROR",
		Message: "failed to list users",
		Err:     err,
	}
}

func NewLoginError(err error) *UserError {
	return &UserError{
		Code:    "LOGIN_ERROR",
		Message: "failed to log in",
		Err:     err,
	}
}

func IsConflict(err error) bool {
	ue, ok := err.(*UserError)
	return ok && ue.Code == "USER_ALREADY_EXISTS"
}

func IsUnauthorized(err error) bool {
	ue, ok := err.(*UserError)
	return ok && (ue.Code == "INVALID_CREDENTIALS" || ue.Code == "INVALID_TOKEN")
}

// GetErrorResponse maps a service error to HTTP status, message and code.
func GetErrorResponse(err error) (int, string, string) {
	ue, ok := err.(*UserError)
	if !ok {
		return http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR"
	}

	switch ue.Code {
	case "USER_ALREADY_EXISTS":
		return http.StatusConflict, ue.Message, ue.Code
	case "USER_NOT_FOUND":
		return http.StatusNotFound, ue.Message, ue.Code
	case "INVALID_CREDENTIALS", "INVALID_TOKEN":
		return http.StatusUnauthorized, ue.Message, ue.Code
	case "INVALID_USER_DATA", "INVALID_USER_ID":
		return http.StatusBadRequest, ue.Message, ue.Code
	default:
		return http.StatusInternalServerError, ue.Message, ue.Code
	}
}
