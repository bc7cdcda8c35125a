package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for shopgraph errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Ingestion error codes
const (
	INGEST_FILE_NOT_FOUND    ErrorCode = "INGEST_FILE_NOT_FOUND"
	INGEST_FILE_UNREADABLE   ErrorCode = "INGEST_FILE_UNREADABLE"
	INGEST_HEADER_INVALID    ErrorCode = "INGEST_HEADER_INVALID"
	INGEST_VALIDATION_FAILED ErrorCode = "INGEST_VALIDATION_FAILED"
)

// ShopGraphError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints.
type ShopGraphError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *ShopGraphError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *ShopGraphError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *ShopGraphError) Is(target error) bool {
	var sgErr *ShopGraphError
	if errors.As(target, &sgErr) {
		return e.Code == sgErr.Code
	}
	return false
}

// NewError creates a new non-retryable ShopGraphError with the given code and message.
func NewError(code ErrorCode, message string) *ShopGraphError {
	return &ShopGraphError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable ShopGraphError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *ShopGraphError {
	return &ShopGraphError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable ShopGraphError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *ShopGraphError {
	return &ShopGraphError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
