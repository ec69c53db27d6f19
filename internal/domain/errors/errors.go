package errors

import (
	"net/http"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same business code, so copies made by
// WithDetails still match their predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Request-related errors
	ErrNotJSON = NewBaseError(
		http.StatusBadRequest,
		"NOT_A_JSON",
		"Not a JSON",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInvalidField = NewBaseError(
		http.StatusBadRequest,
		"INVALID_FIELD",
		"Invalid field",
		"",
	)

	ErrMissingAttribute = NewBaseError(
		http.StatusBadRequest,
		"MISSING_ATTRIBUTE",
		"Missing required attribute",
		"",
	)

	// Storage-related errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Not found",
		"",
	)

	ErrUnknownKind = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_KIND",
		"Unknown kind",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource already exists",
		"",
	)

	ErrStorageUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORAGE_UNAVAILABLE",
		"Storage is unavailable",
		"",
	)

	ErrStorageCorrupted = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_CORRUPTED",
		"Stored data could not be read",
		"",
	)

	// Password-related errors
	ErrPasswordInvalid = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_INVALID",
		"Invalid password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// FromDomain converts entity and storage sentinels to an AppError. Errors
// that already carry an AppError, and unknown errors, are returned as is.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return wrapDomain(ErrNotFound, err)
	case errors.Is(err, entity.ErrUnknownKind):
		return wrapDomain(ErrUnknownKind, err)
	case errors.Is(err, entity.ErrInvalidField):
		return wrapDomain(ErrInvalidField, err)
	case errors.Is(err, entity.ErrMissingAttribute):
		return wrapDomain(ErrMissingAttribute, err)
	case errors.Is(err, repository.ErrDuplicateIdentity):
		return wrapDomain(ErrConflict, err)
	case errors.Is(err, repository.ErrAdapterUnavailable):
		return wrapDomain(ErrStorageUnavailable, err)
	case errors.Is(err, entity.ErrMalformedRecord):
		return wrapDomain(ErrStorageCorrupted, err)
	default:
		return err
	}
}

// wrapDomain keeps the sentinel reachable through errors.Is and exposes the
// domain message as details.
func wrapDomain(base *BaseError, cause error) error {
	return &domainError{BaseError: base.WithDetails(cause.Error()), cause: cause}
}

type domainError struct {
	*BaseError
	cause error
}

func (e *domainError) Unwrap() error {
	return e.cause
}
