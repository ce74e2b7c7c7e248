package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewStorageError creates a new error for a failed file or database operation
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewMalformedLogError creates the error raised when a tracking log line
// cannot be interpreted. It aborts the whole read.
func NewMalformedLogError(lineNumber int, line string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedLog,
		Message: fmt.Sprintf("line %d: %s: %q", lineNumber, reason, line),
		Code:    "MALFORMED_LOG",
		Context: map[string]interface{}{
			"line_number": lineNumber,
			"line":        line,
			"reason":      reason,
		},
	}
}

// NewRegistryError creates a new error for an unusable project list file
func NewRegistryError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRegistry,
		Message: message,
		Code:    "REGISTRY_ERROR",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDuplicateProjectError creates a new error for a project that is already registered
func NewDuplicateProjectError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicate,
		Message: fmt.Sprintf("project %s already defined", name),
		Code:    "DUPLICATE_PROJECT",
		Context: map[string]interface{}{
			"project": name,
		},
	}
}

// NewUnknownProjectError creates a new error for a project name missing from the registry
func NewUnknownProjectError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("Invalid project: %s", name),
		Code:    "UNKNOWN_PROJECT",
		Context: map[string]interface{}{
			"project": name,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeDuplicate:
			return appErr.Message
		case ErrorTypeMalformedLog:
			return "tracking log is malformed, " + appErr.Message
		case ErrorTypeRegistry:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeStorage:
			return "A file operation failed. Please check the configured paths and try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeDuplicate:
			return false // These are user errors, not system errors
		case ErrorTypeStorage, ErrorTypeMalformedLog, ErrorTypeRegistry:
			return true
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
