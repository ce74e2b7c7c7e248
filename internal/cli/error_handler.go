package cli

import (
	"fmt"

	"timetracking/internal/errors"
)

// commandError carries a user-facing message while keeping the cause
// reachable for errors.As
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string {
	return e.message
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if errors.IsAppError(err) {
		return &commandError{
			message: fmt.Sprintf("failed to %s: %s%s", operation, errors.GetUserMessage(err), eh.hint(err)),
			cause:   err,
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if errors.IsAppError(err) {
		return &commandError{message: errors.GetUserMessage(err) + eh.hint(err), cause: err}
	}

	return err
}

// IsDuplicateError checks if an error reports an already registered project
func (eh *ErrorHandler) IsDuplicateError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDuplicate)
}

// IsMalformedLogError checks if an error reports an unreadable tracking log
func (eh *ErrorHandler) IsMalformedLogError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeMalformedLog)
}

// hint points at the log line to repair when the log cannot be read
func (eh *ErrorHandler) hint(err error) string {
	if !eh.IsMalformedLogError(err) {
		return ""
	}
	appErr, _ := errors.AsAppError(err)

	path := "the tracking log"
	if p, ok := appErr.GetContext("path"); ok {
		path = fmt.Sprint(p)
	}
	if line, ok := appErr.GetContext("line_number"); ok {
		return fmt.Sprintf(" (fix line %v of %s to continue)", line, path)
	}
	return ""
}
