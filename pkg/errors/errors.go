package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeDataLoad indicates the price dataset could not be loaded.
	// No estimate can be produced until a load succeeds.
	ErrorTypeDataLoad ErrorType = "DATA_LOAD"

	// ErrorTypeInvalidZip indicates a ZIP code that is not exactly five digits
	ErrorTypeInvalidZip ErrorType = "INVALID_ZIP"

	// ErrorTypeUnknownService indicates a service code absent from the loaded catalog
	ErrorTypeUnknownService ErrorType = "UNKNOWN_SERVICE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	// Field names the user input the error refers to, if any.
	Field string
	Err   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewDataLoadError creates a dataset load failure
func NewDataLoadError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeDataLoad,
		Message: message,
		Err:     err,
	}
}

// NewInvalidZipError creates a field-level error for the zip input
func NewInvalidZipError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidZip,
		Message: "Please enter a valid 5-digit ZIP code.",
		Field:   "zip",
	}
}

// NewUnknownServiceError creates an error for a service code missing from the catalog
func NewUnknownServiceError(code string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnknownService,
		Message: "Unknown service selected.",
		Field:   "service",
		Err:     fmt.Errorf("no service with code %q", code),
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err's chain contains an AppError of type t.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}
