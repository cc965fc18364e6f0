package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is lets wrapped domain errors match their predefined value by code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Signup / login
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")

	// Credential resolution. Revoked and malformed stay distinct kinds even
	// though both surface as 401.
	ErrTokenExpired   = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrTokenMalformed = NewDomainError("TOKEN_MALFORMED", "token is malformed or has an invalid signature")
	ErrTokenRevoked   = NewDomainError("TOKEN_REVOKED", "token has been revoked")
	ErrUserUnknown    = NewDomainError("UNKNOWN_USER", "user not found or inactive")

	// Authorization and role provisioning
	ErrForbidden         = NewDomainError("FORBIDDEN", "insufficient permissions")
	ErrRoleAlreadyHeld   = NewDomainError("ROLE_ALREADY_HELD", "user already holds this role")
	ErrRoleNotPresent    = NewDomainError("ROLE_NOT_PRESENT", "user does not hold this role")
	ErrIncompleteProfile = NewDomainError("INCOMPLETE_PROFILE", "missing required profile data for this role")

	// Generic CRUD
	ErrUserNotFound     = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrProfileNotFound  = NewDomainError("PROFILE_NOT_FOUND", "profile not found")
	ErrServiceNotFound  = NewDomainError("SERVICE_NOT_FOUND", "service not found")
	ErrCategoryExists   = NewDomainError("CATEGORY_EXISTS", "category already exists")
	ErrCategoryNotFound = NewDomainError("CATEGORY_NOT_FOUND", "category not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "invalid input")

	// System errors
	ErrStorage  = NewDomainError("STORAGE_FAILURE", "storage operation failed")
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "INCOMPLETE_PROFILE":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "INVALID_CREDENTIALS", "TOKEN_EXPIRED", "TOKEN_MALFORMED",
		"TOKEN_REVOKED", "UNKNOWN_USER":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "PROFILE_NOT_FOUND", "SERVICE_NOT_FOUND", "CATEGORY_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "CATEGORY_EXISTS", "ROLE_ALREADY_HELD", "ROLE_NOT_PRESENT":
		return http.StatusConflict

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
