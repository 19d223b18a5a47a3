package apperror

import (
	"errors"
	"net/http"
	"strconv"
)

// Kind classifies an error for alerting and logging
type Kind string

const (
	KindValidation Kind = "validation"
	KindBackend    Kind = "backend"
	KindTransport  Kind = "transport"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrUnauthorized    = &AppError{Code: http.StatusUnauthorized, Kind: KindValidation, Message: "Unauthorized"}
	ErrInternalServer  = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrTokenExpired    = &AppError{Code: http.StatusUnauthorized, Kind: KindValidation, Message: "Token has expired"}
	ErrInvalidToken    = &AppError{Code: http.StatusUnauthorized, Kind: KindValidation, Message: "Invalid token"}
	ErrSessionEnded    = &AppError{Code: http.StatusUnauthorized, Kind: KindValidation, Message: "Terminal session has ended, please log in again"}
	ErrSaveInProgress  = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "A save is already in progress for this document"}
	ErrSuperseded      = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Request superseded by a newer one"}
	ErrBackendDown     = &AppError{Code: http.StatusBadGateway, Kind: KindTransport, Message: "The backend could not be reached, please try again"}
	ErrEmptyCart       = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "The cart is empty"}
	ErrVendorRequired  = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Select a vendor first"}
	ErrReadOnlyPricing = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Prices cannot be edited on this document type"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewRuleError creates a validation error for a business rule enforced locally
func NewRuleError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindValidation,
		Message: resource + " not found",
	}
}

// NewBackendError wraps a business error reported by the backend. The
// backend description is kept verbatim.
func NewBackendError(value int, desc string) *AppError {
	if desc == "" {
		desc = "The backend rejected the request"
	}
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindBackend,
		Message: desc,
		Errors:  []FieldError{{Field: "backend_error", Message: strconv.Itoa(value)}},
	}
}

// NewTransportError wraps a network or decoding failure. The message shown
// to the operator stays generic.
func NewTransportError(err error) *AppError {
	return &AppError{
		Code:    ErrBackendDown.Code,
		Kind:    KindTransport,
		Message: ErrBackendDown.Message,
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
		Err:     err,
	}
}
