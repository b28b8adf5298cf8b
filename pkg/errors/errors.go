package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrAborted       ErrorCode = "ABORTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestLoad ErrorCode = "MANIFEST_LOAD"
	ErrManifestSave ErrorCode = "MANIFEST_SAVE"

	// Registry errors
	ErrDirectoryUnreadable ErrorCode = "DIRECTORY_UNREADABLE"
	ErrEntryNotFound       ErrorCode = "ENTRY_NOT_FOUND"

	// Batch (structural) errors, raised before any filesystem mutation
	ErrNoSelection          ErrorCode = "NO_SELECTION"
	ErrIncompleteRenamePlan ErrorCode = "INCOMPLETE_RENAME_PLAN"
	ErrInvalidDestination   ErrorCode = "INVALID_DESTINATION"
	ErrConflictsUnresolved  ErrorCode = "CONFLICTS_UNRESOLVED"

	// Per-entry errors, recorded on outcomes without aborting the batch
	ErrTransferFailed    ErrorCode = "TRANSFER_FAILED"
	ErrSourceMissing     ErrorCode = "SOURCE_MISSING"
	ErrDestinationExists ErrorCode = "DESTINATION_EXISTS"
	ErrSameFile          ErrorCode = "SAME_FILE"
	ErrPathInvalid       ErrorCode = "PATH_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// RebatchError represents a structured error with code and details
type RebatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RebatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RebatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RebatchError) Is(target error) bool {
	var targetErr *RebatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RebatchError with the given code and message
func New(code ErrorCode, message string) *RebatchError {
	return &RebatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RebatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RebatchError {
	return &RebatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RebatchError
func Wrap(err error, code ErrorCode, message string) *RebatchError {
	if err == nil {
		return nil
	}
	return &RebatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RebatchError {
	if err == nil {
		return nil
	}
	return &RebatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RebatchError) WithDetail(key string, value interface{}) *RebatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RebatchError) WithDetails(details map[string]interface{}) *RebatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rbErr *RebatchError
	if errors.As(err, &rbErr) {
		return rbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RebatchError
func GetErrorCode(err error) ErrorCode {
	var rbErr *RebatchError
	if errors.As(err, &rbErr) {
		return rbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RebatchError
func GetErrorDetails(err error) map[string]interface{} {
	var rbErr *RebatchError
	if errors.As(err, &rbErr) {
		return rbErr.Details
	}
	return nil
}

// structuralCodes are raised before any filesystem mutation and abort the whole batch
var structuralCodes = map[ErrorCode]bool{
	ErrNoSelection:          true,
	ErrIncompleteRenamePlan: true,
	ErrInvalidDestination:   true,
	ErrConflictsUnresolved:  true,
	ErrDirectoryUnreadable:  true,
}

// IsStructural reports whether err aborted a batch before any file was touched
func IsStructural(err error) bool {
	return structuralCodes[GetErrorCode(err)]
}
